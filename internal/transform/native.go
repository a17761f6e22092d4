package transform

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/ametelin/weather-ranking/internal/forecast"
)

// Daytime window the statistics are computed over, hours inclusive.
const (
	windowStart = 9
	windowEnd   = 19
)

// Conditions that count as favorable (no precipitation).
var relevantConditions = map[string]bool{
	"clear":         true,
	"partly-cloudy": true,
	"cloudy":        true,
	"overcast":      true,
}

// Native computes per-day metrics in-process, replacing the external
// calculator binary while keeping its file-based input/output contract.
type Native struct{}

func (Native) Run(ctx context.Context, inputPath, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	var doc forecast.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", inputPath, err)
	}

	metrics := Calculate(&doc)

	out, err := json.Marshal(metrics)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, out, 0o644)
}

// Calculate derives the daytime-window statistics for every forecast day:
// the number of hours with data, their average temperature, and how many
// of them had favorable conditions.
func Calculate(doc *forecast.Document) *Metrics {
	metrics := &Metrics{Days: make([]DayMetrics, 0, len(doc.Forecasts))}

	for _, day := range doc.Forecasts {
		dm := DayMetrics{
			Date:       day.Date,
			HoursStart: windowStart,
			HoursEnd:   windowEnd,
		}

		var tempSum float64
		for _, h := range day.Hours {
			hour, err := strconv.Atoi(h.Hour)
			if err != nil || hour < windowStart || hour > windowEnd {
				continue
			}
			dm.HoursCount++
			tempSum += h.Temp
			if relevantConditions[h.Condition] {
				dm.RelevantCondHours++
			}
		}

		if dm.HoursCount > 0 {
			dm.TempAvg = tempSum / float64(dm.HoursCount)
		}
		metrics.Days = append(metrics.Days, dm)
	}

	return metrics
}
