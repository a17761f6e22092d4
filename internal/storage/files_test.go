package storage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ametelin/weather-ranking/internal/forecast"
	"github.com/ametelin/weather-ranking/internal/transform"
)

func TestDir_RoundTrip(t *testing.T) {
	dir, err := New(t.TempDir())
	require.NoError(t, err)

	doc := &forecast.Document{
		CityName: "BERLIN",
		Status:   "OK",
		Info:     &forecast.Info{Lat: 52.5, Lon: 13.4},
	}
	require.NoError(t, dir.WriteFetched("BERLIN", doc))

	got, err := dir.ReadFetched("BERLIN")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	m := &transform.Metrics{Days: []transform.DayMetrics{{Date: "2026-05-26", HoursCount: 11}}}
	require.NoError(t, dir.WriteMetrics("BERLIN", m))

	gotM, err := dir.ReadMetrics("BERLIN")
	require.NoError(t, err)
	assert.Equal(t, m, gotM)
}

func TestDir_NotFound(t *testing.T) {
	dir, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = dir.ReadFetched("GIZA")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = dir.ReadMetrics("GIZA")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNew_CreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/data"

	_, err := New(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
