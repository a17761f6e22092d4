package forecast

// Info carries the source's location metadata. Its presence is the
// marker that the response is usable at all.
type Info struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Hour is a single hourly forecast entry.
type Hour struct {
	Hour      string  `json:"hour"`
	Temp      float64 `json:"temp"`
	Condition string  `json:"condition"`
}

// Forecast holds one day of hourly entries.
type Forecast struct {
	Date  string `json:"date"`
	Hours []Hour `json:"hours"`
}

// Document is the raw forecast payload returned by the source for one city.
// CityName and Status are stamped on by the fetch stage before the document
// is persisted.
type Document struct {
	CityName  string     `json:"city_name,omitempty"`
	Status    string     `json:"status,omitempty"`
	Info      *Info      `json:"info,omitempty"`
	Forecasts []Forecast `json:"forecasts"`
}
