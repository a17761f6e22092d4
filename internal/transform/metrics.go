package transform

import "context"

// DayMetrics holds the computed statistics for a single day of one city.
type DayMetrics struct {
	Date              string  `json:"date"`
	HoursStart        int     `json:"hours_start"`
	HoursEnd          int     `json:"hours_end"`
	HoursCount        int     `json:"hours_count"`
	TempAvg           float64 `json:"temp_avg"`
	RelevantCondHours float64 `json:"relevant_cond_hours"`
}

// Metrics is the calculated-metrics record produced for one city.
type Metrics struct {
	Days []DayMetrics `json:"days"`
}

// Transform converts a fetched forecast document into per-day metrics,
// reading from inputPath and writing to outputPath. Implementations must
// keep the file contract: both sides are JSON documents on disk.
type Transform interface {
	Run(ctx context.Context, inputPath, outputPath string) error
}
