package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Pipeline sequences the four stages over the city roster. Each stage is
// barrier-synchronized: the next one starts only after every city has a
// final result from the previous one.
type Pipeline struct {
	cities     []string
	fetcher    *Fetcher
	calculator *Calculator
	aggregator *Aggregator
	analyzer   *Analyzer
}

func New(cities []string, f *Fetcher, c *Calculator, a *Aggregator, an *Analyzer) *Pipeline {
	return &Pipeline{
		cities:     cities,
		fetcher:    f,
		calculator: c,
		aggregator: a,
		analyzer:   an,
	}
}

// Run executes one full pass: fetch, calculate, aggregate, analyze.
// Per-city failures are carried as statuses in the result; Run itself
// only fails on context cancellation.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.NewString()
	started := time.Now().UTC()
	log.Printf("pipeline: run %s started for %d cities", runID, len(p.cities))

	fetched := p.fetcher.FetchAll(ctx, p.cities)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fetchStatuses := make(map[string]string, len(fetched))
	for _, r := range fetched {
		fetchStatuses[r.CityName] = r.Status
	}

	calcStatuses := p.calculator.CalculateAll(ctx, p.cities)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	aggregates := p.aggregator.AggregateAll(ctx, p.cities)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	winners := p.analyzer.Analyze(aggregates)

	result := &RunResult{
		ID:         runID,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Winners:    winners,
		Fetch:      fetchStatuses,
		Calc:       calcStatuses,
		Cities:     aggregates,
	}

	log.Printf("pipeline: run %s complete in %s, %d winner(s)",
		runID, result.FinishedAt.Sub(started).Round(time.Millisecond), len(winners))
	return result, nil
}
