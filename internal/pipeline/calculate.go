package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ametelin/weather-ranking/internal/common"
	"github.com/ametelin/weather-ranking/internal/storage"
	"github.com/ametelin/weather-ranking/internal/transform"
)

// Calculator runs the metrics transform for every city across a bounded
// worker pool.
type Calculator struct {
	dir       *storage.Dir
	transform transform.Transform
	workers   int
}

func NewCalculator(dir *storage.Dir, t transform.Transform, workers int) *Calculator {
	return &Calculator{dir: dir, transform: t, workers: workers}
}

// CalculateAll invokes the transform for each city and returns the
// per-city status map. Every city is attempted; a failure never aborts
// the batch.
func (c *Calculator) CalculateAll(ctx context.Context, cities []string) map[string]string {
	log.Printf("calculate: started for %d cities", len(cities))

	var mu sync.Mutex
	results := make(map[string]string, len(cities))

	g := &errgroup.Group{}
	g.SetLimit(c.workers)

	for _, city := range cities {
		city := city
		g.Go(func() error {
			status := c.calcCity(ctx, city)

			mu.Lock()
			results[city] = status
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	log.Printf("calculate: complete")
	return results
}

func (c *Calculator) calcCity(ctx context.Context, city string) string {
	err := c.transform.Run(ctx, c.dir.FetchedPath(city), c.dir.MetricsPath(city))
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, fs.ErrNotExist),
		common.HasAny(err.Error(), "No such file or directory", "no such file or directory"):
		log.Printf("calculate: failed %s: %s", city, StatusNoSuchFile)
		return StatusNoSuchFile
	default:
		log.Printf("calculate: failed %s: %v", city, err)
		return err.Error()
	}
}
