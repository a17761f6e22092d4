package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/ametelin/weather-ranking/internal/api/http"
	"github.com/ametelin/weather-ranking/internal/config"
	"github.com/ametelin/weather-ranking/internal/forecast"
	"github.com/ametelin/weather-ranking/internal/pipeline"
	"github.com/ametelin/weather-ranking/internal/report"
	"github.com/ametelin/weather-ranking/internal/scheduler"
	"github.com/ametelin/weather-ranking/internal/storage"
	"github.com/ametelin/weather-ranking/internal/store"
	"github.com/ametelin/weather-ranking/internal/transform"
)

func main() {
	once := flag.Bool("once", false, "run a single pipeline pass and exit")
	flag.Parse()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pipe, err := buildPipeline(cfg)
	if err != nil {
		log.Fatalf("failed to build pipeline: %v", err)
	}

	if *once {
		result, err := pipe.Run(context.Background())
		if err != nil {
			log.Fatalf("pipeline run failed: %v", err)
		}
		for _, city := range result.Winners {
			label := city
			if l, ok := cfg.CityLabels[city]; ok {
				label = l
			}
			log.Printf("best city to live in: %s", label)
		}
		return
	}

	// In-memory run history with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// First pass at startup so the API has data before the first tick.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RunInterval)
		defer cancel()

		result, err := pipe.Run(ctx)
		if err != nil {
			log.Printf("initial pipeline run failed: %v", err)
			return
		}
		memStore.SaveRun(result)
	}()

	// Scheduler that periodically re-runs the pipeline.
	sched := scheduler.New(pipe, memStore, cfg.RunInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-ranking",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-ranking",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, memStore)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

// buildPipeline assembles the four stages from configuration.
func buildPipeline(cfg *config.AppConfig) (*pipeline.Pipeline, error) {
	dir, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	// Shared HTTP client for outbound source calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	source := forecast.NewClient(httpClient, cfg.SourceBaseURL)

	var tr transform.Transform = transform.Native{}
	if cfg.TransformCmd != "" {
		tr = transform.NewSubprocess(strings.Fields(cfg.TransformCmd))
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	fetcher := pipeline.NewFetcher(source, dir, cfg.FetchTimeout)
	calculator := pipeline.NewCalculator(dir, tr, workers)
	aggregator := pipeline.NewAggregator(dir, workers)
	analyzer := pipeline.NewAnalyzer(report.NewXLSX(cfg.ReportPath), cfg.CityLabels)

	return pipeline.New(cfg.Cities, fetcher, calculator, aggregator, analyzer), nil
}
