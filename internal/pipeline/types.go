package pipeline

import (
	"time"

	"github.com/ametelin/weather-ranking/internal/forecast"
	"github.com/ametelin/weather-ranking/internal/transform"
)

// Per-city statuses. Anything other than StatusOK excludes the city from
// ranking; failures are carried as status text, never as errors.
const (
	StatusOK              = "OK"
	StatusNoInfo          = "No info"
	StatusTimeout         = "timeout"
	StatusNoSuchFile      = "No such file or directory"
	StatusNoWeightedHours = "no weighted hours"
)

// FetchResult is the outcome of contacting the forecast source for one city.
type FetchResult struct {
	CityName string
	Status   string
	Document *forecast.Document
}

// CityAggregate is the weighted per-city summary produced by the
// aggregation stage. Rank is assigned later by the analyzer and is only
// meaningful when Status is OK.
type CityAggregate struct {
	CityName             string                 `json:"city_name"`
	Status               string                 `json:"status"`
	Days                 []transform.DayMetrics `json:"days,omitempty"`
	AggTempAvg           float64                `json:"agg_temp_avg"`
	AggRelevantCondHours float64                `json:"agg_relevant_cond_hours"`
	Rank                 int                    `json:"rank,omitempty"`
}

// RunResult is the full outcome of one pipeline pass.
type RunResult struct {
	ID         string                    `json:"id"`
	StartedAt  time.Time                 `json:"started_at"`
	FinishedAt time.Time                 `json:"finished_at"`
	Winners    []string                  `json:"winners"`
	Fetch      map[string]string         `json:"fetch_statuses"`
	Calc       map[string]string         `json:"calc_statuses"`
	Cities     map[string]*CityAggregate `json:"cities"`
}
