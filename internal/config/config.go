package config

import (
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"gsakit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Database DatabaseConfig
	Paths    PathConfig
}

// AnalysisConfig holds engine defaults
type AnalysisConfig struct {
	Workers         int     // worker count for the parallel correlation driver
	ConfidenceLevel float64 // confidence level for iteration-count derivation
	IntervalWidth   float64 // target confidence-interval width
}

// DatabaseConfig holds result-repository connection settings
type DatabaseConfig struct {
	URL string
}

// PathConfig holds file system paths
type PathConfig struct {
	DataDir string
}

// Load reads configuration from environment variables and validates it.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{}

	analysis, err := loadAnalysisConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load analysis configuration")
	}
	config.Analysis = *analysis

	config.Database = DatabaseConfig{URL: os.Getenv("DATABASE_URL")}

	dataDir := os.Getenv("GSA_DATA_DIR")
	if dataDir == "" {
		dataDir = "arrays"
	}
	config.Paths = PathConfig{DataDir: dataDir}

	return config, nil
}

func loadAnalysisConfig() (*AnalysisConfig, error) {
	workers := runtime.NumCPU()
	if raw := os.Getenv("GSA_WORKERS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, errors.ConfigInvalid("GSA_WORKERS must be a positive integer")
		}
		workers = parsed
	}

	confidence := 0.99
	if raw := os.Getenv("GSA_CONFIDENCE_LEVEL"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 || parsed >= 1 {
			return nil, errors.ConfigInvalid("GSA_CONFIDENCE_LEVEL must be in (0,1)")
		}
		confidence = parsed
	}

	width := 0.1
	if raw := os.Getenv("GSA_INTERVAL_WIDTH"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			return nil, errors.ConfigInvalid("GSA_INTERVAL_WIDTH must be positive")
		}
		width = parsed
	}

	return &AnalysisConfig{
		Workers:         workers,
		ConfidenceLevel: confidence,
		IntervalWidth:   width,
	}, nil
}
