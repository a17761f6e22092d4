package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ametelin/weather-ranking/internal/forecast"
	"github.com/ametelin/weather-ranking/internal/transform"
)

// ErrNotFound is returned when no intermediate record exists for a city.
var ErrNotFound = errors.New("no data for city")

// Dir is the per-run intermediate storage: one fetched-document file and
// one calculated-metrics file per city, keyed by canonical city name.
// Each city owns a disjoint pair of files, so stages never contend.
type Dir struct {
	path string
}

// New creates the storage directory if needed.
func New(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", path, err)
	}
	return &Dir{path: path}, nil
}

// FetchedPath returns the fetched-document file for a city.
func (d *Dir) FetchedPath(city string) string {
	return filepath.Join(d.path, city+"_fetched.json")
}

// MetricsPath returns the calculated-metrics file for a city.
func (d *Dir) MetricsPath(city string) string {
	return filepath.Join(d.path, city+"_calc.json")
}

// WriteFetched persists a city's raw forecast document.
func (d *Dir) WriteFetched(city string, doc *forecast.Document) error {
	return writeJSON(d.FetchedPath(city), doc)
}

// ReadFetched loads a city's raw forecast document.
func (d *Dir) ReadFetched(city string) (*forecast.Document, error) {
	var doc forecast.Document
	if err := readJSON(d.FetchedPath(city), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteMetrics persists a city's calculated metrics.
func (d *Dir) WriteMetrics(city string, m *transform.Metrics) error {
	return writeJSON(d.MetricsPath(city), m)
}

// ReadMetrics loads a city's calculated metrics.
func (d *Dir) ReadMetrics(city string) (*transform.Metrics, error) {
	var m transform.Metrics
	if err := readJSON(d.MetricsPath(city), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return err
	}
	return json.Unmarshal(data, v)
}
