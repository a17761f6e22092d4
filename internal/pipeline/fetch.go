package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/ametelin/weather-ranking/internal/forecast"
	"github.com/ametelin/weather-ranking/internal/storage"
)

// Source is the remote forecast endpoint the fetch stage talks to.
type Source interface {
	Forecast(ctx context.Context, city string) (*forecast.Document, error)
}

// Fetcher runs the first pipeline stage: one concurrent fetch per city,
// collected until the stage deadline fires.
type Fetcher struct {
	source   Source
	dir      *storage.Dir
	deadline time.Duration
}

func NewFetcher(source Source, dir *storage.Dir, deadline time.Duration) *Fetcher {
	return &Fetcher{source: source, dir: dir, deadline: deadline}
}

// FetchAll fetches every city concurrently and returns one result per
// city, in no particular order. Cities whose fetch has not completed by
// the deadline are reported with a timeout status; the in-flight goroutine
// writes into a buffered channel, so late results are dropped without
// leaking.
func (f *Fetcher) FetchAll(ctx context.Context, cities []string) []FetchResult {
	log.Printf("fetch: started for %d cities", len(cities))

	// Cancelling at the deadline aborts in-flight requests, so an
	// abandoned fetch cannot persist its payload after the stage barrier.
	ctx, cancel := context.WithTimeout(ctx, f.deadline)
	defer cancel()

	results := make(chan FetchResult, len(cities))
	for _, city := range cities {
		city := city
		go func() {
			results <- f.fetchCity(ctx, city)
		}()
	}

	collected := make([]FetchResult, 0, len(cities))
	seen := make(map[string]bool, len(cities))

	timer := time.NewTimer(f.deadline)
	defer timer.Stop()

loop:
	for range cities {
		select {
		case r := <-results:
			collected = append(collected, r)
			seen[r.CityName] = true
		case <-timer.C:
			log.Printf("fetch: deadline %s reached with %d/%d cities collected",
				f.deadline, len(collected), len(cities))
			break loop
		}
	}

	for _, city := range cities {
		if !seen[city] {
			log.Printf("fetch: failed %s: %s", city, StatusTimeout)
			collected = append(collected, FetchResult{CityName: city, Status: StatusTimeout})
		}
	}

	log.Printf("fetch: complete")
	return collected
}

func (f *Fetcher) fetchCity(ctx context.Context, city string) FetchResult {
	doc, err := f.source.Forecast(ctx, city)
	if err != nil {
		log.Printf("fetch: failed %s: %v", city, err)
		return FetchResult{CityName: city, Status: err.Error()}
	}

	doc.CityName = city
	if doc.Info == nil {
		log.Printf("fetch: failed %s: %s", city, StatusNoInfo)
		doc.Status = StatusNoInfo
		return FetchResult{CityName: city, Status: StatusNoInfo, Document: doc}
	}

	doc.Status = StatusOK
	if err := f.dir.WriteFetched(city, doc); err != nil {
		log.Printf("fetch: failed %s: %v", city, err)
		return FetchResult{CityName: city, Status: err.Error()}
	}

	return FetchResult{CityName: city, Status: StatusOK, Document: doc}
}
