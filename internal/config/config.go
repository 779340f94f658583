package config

import (
	"os"
	"strconv"
	"time"

	"inmopanel/internal/errors"
)

// Data source backends
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Ops      OpsConfig
	Data     DataConfig
	Database DatabaseConfig
	Metrics  MetricsConfig
}

// ServerConfig holds dashboard API server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// OpsConfig holds the operational (health/pprof) server settings
type OpsConfig struct {
	Port    string
	Enabled bool
}

// DataConfig holds dataset source settings
type DataConfig struct {
	Source         string // csv or postgres
	ListingsFile   string
	HousingFile    string
	CrimeFile      string
	CrimeDelimiter rune
	CacheTTL       time.Duration
}

// DatabaseConfig holds Postgres connection settings (postgres source only)
type DatabaseConfig struct {
	URL string
}

// MetricsConfig holds the investment-metric policy values. These were
// historically hard-coded; they are configuration with documented defaults.
type MetricsConfig struct {
	AverageUnitM2       float64 // assumed unit size when valuing a listing, default 70
	AnnualOperatingCost float64 // fixed yearly running cost per listing, default 3000
	FallbackPricePerM2  float64 // reference price when the sales data has no price column, default 2000
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Ops: OpsConfig{
			Port:    getEnvOrDefault("OPS_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
		},
		Data: DataConfig{
			Source:         getEnvOrDefault("DATA_SOURCE", SourceCSV),
			ListingsFile:   getEnvOrDefault("LISTINGS_FILE", "data/Valencia_limpio.csv"),
			HousingFile:    getEnvOrDefault("HOUSING_FILE", "data/valencia_vivienda_limpio.csv"),
			CrimeFile:      getEnvOrDefault("CRIME_FILE", "data/crimenValencia.csv"),
			CrimeDelimiter: ';',
			CacheTTL:       getEnvDurationOrDefault("CACHE_TTL", time.Hour),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Metrics: MetricsConfig{
			AverageUnitM2:       getEnvFloatOrDefault("AVERAGE_UNIT_M2", 70),
			AnnualOperatingCost: getEnvFloatOrDefault("ANNUAL_OPERATING_COST", 3000),
			FallbackPricePerM2:  getEnvFloatOrDefault("FALLBACK_PRICE_M2", 2000),
		},
	}

	if delim := os.Getenv("CRIME_DELIMITER"); delim != "" {
		config.Data.CrimeDelimiter = rune(delim[0])
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	switch config.Data.Source {
	case SourceCSV:
		if config.Data.ListingsFile == "" || config.Data.HousingFile == "" || config.Data.CrimeFile == "" {
			return errors.ConfigInvalid("csv source requires LISTINGS_FILE, HOUSING_FILE and CRIME_FILE")
		}
	case SourcePostgres:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("postgres source requires DATABASE_URL")
		}
	default:
		return errors.ConfigInvalid("DATA_SOURCE must be csv or postgres")
	}
	if config.Data.CacheTTL <= 0 {
		return errors.ConfigInvalid("CACHE_TTL must be positive")
	}
	if config.Metrics.AverageUnitM2 <= 0 {
		return errors.ConfigInvalid("AVERAGE_UNIT_M2 must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
