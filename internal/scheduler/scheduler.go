package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/ametelin/weather-ranking/internal/pipeline"
	"github.com/ametelin/weather-ranking/internal/store"
)

// Runner executes one pipeline pass.
type Runner interface {
	Run(ctx context.Context) (*pipeline.RunResult, error)
}

// Scheduler periodically re-runs the pipeline and records results.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    Runner
	store     *store.MemoryStore
	interval  time.Duration
}

// New creates a new Scheduler.
func New(runner Runner, st *store.MemoryStore, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		runner:    runner,
		store:     st,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running pipeline job")

		ctx, cancel := context.WithTimeout(context.Background(), s.interval)
		defer cancel()

		result, err := s.runner.Run(ctx)
		if err != nil {
			log.Printf("scheduler: pipeline run failed: %v", err)
			return
		}
		s.store.SaveRun(result)

		log.Printf("scheduler: completed pipeline job, winners: %v", result.Winners)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
