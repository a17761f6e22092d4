package store

import (
	"errors"
	"sync"
	"time"

	"github.com/ametelin/weather-ranking/internal/pipeline"
)

var (
	// ErrNotFound is returned when no run data is available.
	ErrNotFound = errors.New("no pipeline runs recorded")
)

// MemoryStore is a concurrency-safe in-memory history of pipeline runs.
type MemoryStore struct {
	mu sync.RWMutex

	runs []*pipeline.RunResult

	// retention configuration
	maxHistory int           // max number of retained runs
	maxAge     time.Duration // optional max age for runs
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveRun appends a completed run and enforces retention.
func (s *MemoryStore) SaveRun(run *pipeline.RunResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, run)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.runs) > s.maxHistory {
		over := len(s.runs) - s.maxHistory
		s.runs = s.runs[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().UTC().Add(-s.maxAge)
		i := 0
		for ; i < len(s.runs); i++ {
			if !s.runs[i].FinishedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(s.runs) {
			s.runs = s.runs[i:]
		}
	}
}

// Latest returns the most recent run.
func (s *MemoryStore) Latest() (*pipeline.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return nil, ErrNotFound
	}
	return s.runs[len(s.runs)-1], nil
}

// History returns all retained runs, oldest first.
func (s *MemoryStore) History() []*pipeline.RunResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*pipeline.RunResult, len(s.runs))
	copy(out, s.runs)
	return out
}

// LatestCity returns the latest aggregate for one city.
func (s *MemoryStore) LatestCity(city string) (*pipeline.CityAggregate, error) {
	latest, err := s.Latest()
	if err != nil {
		return nil, err
	}

	agg, ok := latest.Cities[city]
	if !ok {
		return nil, ErrNotFound
	}
	return agg, nil
}
