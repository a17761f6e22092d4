package pipeline

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ametelin/weather-ranking/internal/storage"
	"github.com/ametelin/weather-ranking/internal/transform"
)

// Aggregator reduces each city's daily metrics into the two weighted
// summary scalars, across the same bounded worker pool as the calculator.
type Aggregator struct {
	dir     *storage.Dir
	workers int
}

func NewAggregator(dir *storage.Dir, workers int) *Aggregator {
	return &Aggregator{dir: dir, workers: workers}
}

// AggregateAll builds the per-city aggregate map. Read and parse failures
// are isolated to the failing city.
func (a *Aggregator) AggregateAll(ctx context.Context, cities []string) map[string]*CityAggregate {
	log.Printf("aggregate: started for %d cities", len(cities))

	var mu sync.Mutex
	results := make(map[string]*CityAggregate, len(cities))

	g := &errgroup.Group{}
	g.SetLimit(a.workers)

	for _, city := range cities {
		city := city
		g.Go(func() error {
			agg := a.aggregateCity(ctx, city)

			mu.Lock()
			results[city] = agg
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	log.Printf("aggregate: complete")
	return results
}

func (a *Aggregator) aggregateCity(ctx context.Context, city string) *CityAggregate {
	if err := ctx.Err(); err != nil {
		return &CityAggregate{CityName: city, Status: err.Error()}
	}

	metrics, err := a.dir.ReadMetrics(city)
	if err != nil {
		log.Printf("aggregate: failed %s: %v", city, err)
		return &CityAggregate{CityName: city, Status: err.Error()}
	}

	tempAvg, condHours, totalHours := weightedAverages(metrics.Days)
	if totalHours == 0 {
		// With no weighted hours the averages are undefined; give the
		// city a distinct status so the analyzer filters it out.
		log.Printf("aggregate: failed %s: %s", city, StatusNoWeightedHours)
		return &CityAggregate{CityName: city, Status: StatusNoWeightedHours, Days: metrics.Days}
	}

	return &CityAggregate{
		CityName:             city,
		Status:               StatusOK,
		Days:                 metrics.Days,
		AggTempAvg:           tempAvg,
		AggRelevantCondHours: condHours,
	}
}

// weightedAverages computes the hour-weighted means over all days with at
// least one hour of data. Zero-hour days carry weight zero and must not
// drag the averages down.
func weightedAverages(days []transform.DayMetrics) (tempAvg, condHours float64, totalHours int) {
	var tempSum, condSum float64
	for _, day := range days {
		if day.HoursCount <= 0 {
			continue
		}
		tempSum += float64(day.HoursCount) * day.TempAvg
		condSum += float64(day.HoursCount) * day.RelevantCondHours
		totalHours += day.HoursCount
	}
	if totalHours == 0 {
		return 0, 0, 0
	}
	return tempSum / float64(totalHours), condSum / float64(totalHours), totalHours
}
