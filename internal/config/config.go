package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	// Cities is the roster of canonical city names processed each run.
	Cities []string `validate:"required,min=1"`

	// CityLabels maps canonical names to human-readable display labels,
	// used only for logging and the report, never for computation.
	CityLabels map[string]string

	// DataDir holds the per-city intermediate files.
	DataDir string `validate:"required"`

	// ReportPath is where the xlsx summary is written.
	ReportPath string `validate:"required"`

	// SourceBaseURL is the forecast source endpoint.
	SourceBaseURL string `validate:"required,url"`

	// HTTPTimeout bounds a single outbound source request.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// FetchTimeout is the hard deadline for the whole fetch stage.
	FetchTimeout time.Duration `validate:"gt=0"`

	// Workers sizes the calculate/aggregate pools (0 = GOMAXPROCS).
	Workers int `validate:"gte=0"`

	// TransformCmd, when set, runs the external calculator command
	// instead of the native transform.
	TransformCmd string

	// RunInterval controls how often serve mode re-runs the pipeline.
	RunInterval time.Duration `validate:"gt=0"`

	// Store retention for run history in serve mode.
	StoreMaxHistory int
	StoreMaxAge     time.Duration

	Port string
}

// defaultCities is the roster used when CITIES is not set.
var defaultCities = []string{
	"MOSCOW", "PARIS", "LONDON", "BERLIN", "BEIJING", "KAZAN",
	"SPETERSBURG", "VOLGOGRAD", "NOVOSIBIRSK", "KALININGRAD",
	"ABUDHABI", "WARSZAWA", "BUCHAREST", "ROMA", "CAIRO",
}

var defaultCityLabels = map[string]string{
	"MOSCOW":      "Moscow",
	"PARIS":       "Paris",
	"LONDON":      "London",
	"BERLIN":      "Berlin",
	"BEIJING":     "Beijing",
	"KAZAN":       "Kazan",
	"SPETERSBURG": "Saint Petersburg",
	"VOLGOGRAD":   "Volgograd",
	"NOVOSIBIRSK": "Novosibirsk",
	"KALININGRAD": "Kaliningrad",
	"ABUDHABI":    "Abu Dhabi",
	"WARSZAWA":    "Warsaw",
	"BUCHAREST":   "Bucharest",
	"ROMA":        "Rome",
	"CAIRO":       "Cairo",
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Cities = loadCities()
	cfg.CityLabels = loadCityLabels()

	cfg.DataDir = getenvDefault("DATA_DIR", "./data")
	cfg.ReportPath = getenvDefault("REPORT_PATH", "report.xlsx")
	cfg.SourceBaseURL = getenvDefault("SOURCE_BASE_URL", "https://code.s3.yandex.net/async-module")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getenvDuration("FETCH_TIMEOUT", "3s"); err != nil {
		return nil, err
	}
	if cfg.RunInterval, err = getenvDuration("RUN_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	cfg.Workers = getenvInt("WORKERS", 0)
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96)
	cfg.TransformCmd = os.Getenv("TRANSFORM_CMD")
	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadCities parses the comma-separated CITIES roster; names are
// canonicalized to upper case.
func loadCities() []string {
	raw := os.Getenv("CITIES")
	if raw == "" {
		return append([]string{}, defaultCities...)
	}

	var cities []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name != "" {
			cities = append(cities, name)
		}
	}
	return cities
}

// loadCityLabels parses CITY_LABELS as comma-separated NAME=Label pairs,
// overlaid on the built-in table.
func loadCityLabels() map[string]string {
	labels := make(map[string]string, len(defaultCityLabels))
	for k, v := range defaultCityLabels {
		labels[k] = v
	}

	raw := os.Getenv("CITY_LABELS")
	if raw == "" {
		return labels
	}

	for _, pair := range strings.Split(raw, ",") {
		name, label, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name = strings.ToUpper(strings.TrimSpace(name))
		label = strings.TrimSpace(label)
		if name != "" && label != "" {
			labels[name] = label
		}
	}
	return labels
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
