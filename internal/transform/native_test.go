package transform

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ametelin/weather-ranking/internal/forecast"
)

func TestCalculate_DaytimeWindow(t *testing.T) {
	doc := &forecast.Document{
		Forecasts: []forecast.Forecast{
			{
				Date: "2026-05-26",
				Hours: []forecast.Hour{
					{Hour: "8", Temp: 99, Condition: "clear"}, // before window
					{Hour: "9", Temp: 10, Condition: "clear"},
					{Hour: "10", Temp: 12, Condition: "rain"},
					{Hour: "19", Temp: 14, Condition: "cloudy"},
					{Hour: "20", Temp: 99, Condition: "clear"}, // after window
				},
			},
			{Date: "2026-05-27"}, // no hourly data at all
		},
	}

	m := Calculate(doc)
	require.Len(t, m.Days, 2)

	day := m.Days[0]
	assert.Equal(t, "2026-05-26", day.Date)
	assert.Equal(t, 9, day.HoursStart)
	assert.Equal(t, 19, day.HoursEnd)
	assert.Equal(t, 3, day.HoursCount)
	assert.InDelta(t, 12.0, day.TempAvg, 1e-9)
	assert.InDelta(t, 2.0, day.RelevantCondHours, 1e-9) // rain hour is not relevant

	empty := m.Days[1]
	assert.Equal(t, 0, empty.HoursCount)
	assert.Zero(t, empty.TempAvg)
	assert.Zero(t, empty.RelevantCondHours)
}

func TestNative_RunWritesMetricsFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "CITY_fetched.json")
	out := filepath.Join(dir, "CITY_calc.json")

	doc := forecast.Document{
		Forecasts: []forecast.Forecast{
			{Date: "2026-01-01", Hours: []forecast.Hour{
				{Hour: "12", Temp: 5, Condition: "overcast"},
			}},
		},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(in, raw, 0o644))

	require.NoError(t, Native{}.Run(context.Background(), in, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var m Metrics
	require.NoError(t, json.Unmarshal(data, &m))
	require.Len(t, m.Days, 1)
	assert.Equal(t, 1, m.Days[0].HoursCount)
	assert.InDelta(t, 5.0, m.Days[0].TempAvg, 1e-9)
}

func TestNative_RunMissingInput(t *testing.T) {
	dir := t.TempDir()

	err := Native{}.Run(context.Background(),
		filepath.Join(dir, "missing.json"), filepath.Join(dir, "out.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSubprocess_NoCommand(t *testing.T) {
	err := NewSubprocess(nil).Run(context.Background(), "in", "out")
	require.Error(t, err)
}
