package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Len(t, cfg.Cities, 15)
	assert.Contains(t, cfg.Cities, "MOSCOW")
	assert.Equal(t, "Saint Petersburg", cfg.CityLabels["SPETERSBURG"])
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "report.xlsx", cfg.ReportPath)
	assert.Equal(t, "3s", cfg.FetchTimeout.String())
	assert.Zero(t, cfg.Workers)
	assert.Empty(t, cfg.TransformCmd)
}

func TestLoad_RosterFromEnv(t *testing.T) {
	t.Setenv("CITIES", "berlin, london ,MOSCOW")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"BERLIN", "LONDON", "MOSCOW"}, cfg.Cities)
}

func TestLoad_CityLabelOverride(t *testing.T) {
	t.Setenv("CITY_LABELS", "giza=Giza,berlin=West Berlin")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Giza", cfg.CityLabels["GIZA"])
	assert.Equal(t, "West Berlin", cfg.CityLabels["BERLIN"])
	// untouched entries survive the overlay
	assert.Equal(t, "Moscow", cfg.CityLabels["MOSCOW"])
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_EmptyRosterRejected(t *testing.T) {
	t.Setenv("CITIES", " , ,")

	_, err := Load()
	require.Error(t, err)
}
