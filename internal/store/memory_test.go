package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ametelin/weather-ranking/internal/pipeline"
)

func runAt(id string, finished time.Time) *pipeline.RunResult {
	return &pipeline.RunResult{
		ID:         id,
		FinishedAt: finished,
		Winners:    []string{},
		Cities: map[string]*pipeline.CityAggregate{
			"BERLIN": {CityName: "BERLIN", Status: pipeline.StatusOK},
		},
	}
}

func TestMemoryStore_LatestEmpty(t *testing.T) {
	s := NewMemoryStore(10, 0)

	_, err := s.Latest()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RetentionByCount(t *testing.T) {
	s := NewMemoryStore(2, 0)

	now := time.Now().UTC()
	s.SaveRun(runAt("a", now))
	s.SaveRun(runAt("b", now))
	s.SaveRun(runAt("c", now))

	runs := s.History()
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].ID)
	assert.Equal(t, "c", runs[1].ID)

	latest, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, "c", latest.ID)
}

func TestMemoryStore_RetentionByAge(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)

	now := time.Now().UTC()
	s.SaveRun(runAt("old", now.Add(-2*time.Hour)))
	s.SaveRun(runAt("new", now))

	runs := s.History()
	require.Len(t, runs, 1)
	assert.Equal(t, "new", runs[0].ID)
}

func TestMemoryStore_LatestCity(t *testing.T) {
	s := NewMemoryStore(10, 0)
	s.SaveRun(runAt("a", time.Now().UTC()))

	agg, err := s.LatestCity("BERLIN")
	require.NoError(t, err)
	assert.Equal(t, "BERLIN", agg.CityName)

	_, err = s.LatestCity("GIZA")
	assert.ErrorIs(t, err, ErrNotFound)
}
