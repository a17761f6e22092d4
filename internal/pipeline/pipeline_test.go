package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ametelin/weather-ranking/internal/forecast"
	"github.com/ametelin/weather-ranking/internal/transform"
)

func TestPipeline_EndToEnd(t *testing.T) {
	dir := newTestDir(t)

	src := &stubSource{
		docs: map[string]*forecast.Document{
			"BERLIN": docWithTemps("2026-05-26", "clear", 24, 25, 26),
			"LONDON": docWithTemps("2026-05-26", "cloudy", 14, 15, 16),
			"MOSCOW": docWithTemps("2026-05-26", "rain", 10, 11, 12),
		},
		errs: map[string]error{
			"GIZA": errors.New("HTTP Error 404: Not Found"),
		},
	}

	cities := []string{"BERLIN", "LONDON", "MOSCOW", "GIZA"}

	reportPath := filepath.Join(t.TempDir(), "report.xlsx")
	pipe := New(cities,
		NewFetcher(src, dir, 2*time.Second),
		NewCalculator(dir, transform.Native{}, 2),
		NewAggregator(dir, 2),
		NewAnalyzer(&pathReport{path: reportPath}, map[string]string{"BERLIN": "Berlin"}),
	)

	result, err := pipe.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.ID)

	assert.Equal(t, []string{"BERLIN"}, result.Winners)

	// GIZA failed at fetch and stays failed through every stage.
	assert.NotEqual(t, StatusOK, result.Fetch["GIZA"])
	assert.Equal(t, StatusNoSuchFile, result.Calc["GIZA"])
	assert.NotEqual(t, StatusOK, result.Cities["GIZA"].Status)
	assert.Zero(t, result.Cities["GIZA"].Rank)

	// The healthy cities completed every stage.
	for _, city := range []string{"BERLIN", "LONDON", "MOSCOW"} {
		assert.Equal(t, StatusOK, result.Fetch[city], city)
		assert.Equal(t, StatusOK, result.Calc[city], city)
		assert.Equal(t, StatusOK, result.Cities[city].Status, city)
	}
	assert.Equal(t, 1, result.Cities["BERLIN"].Rank)
	assert.Equal(t, 2, result.Cities["LONDON"].Rank)
	assert.Equal(t, 3, result.Cities["MOSCOW"].Rank)

	// The report artifact was produced as a side effect.
	_, statErr := os.Stat(reportPath)
	assert.NoError(t, statErr)
}

// pathReport writes a marker file; the end-to-end test only needs to
// observe that the report side effect happened.
type pathReport struct {
	path string
}

func (p *pathReport) Write(cities []*CityAggregate, labels map[string]string) error {
	return os.WriteFile(p.path, []byte("report"), 0o644)
}
