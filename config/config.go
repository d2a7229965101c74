package config

import (
	"os"
	"strconv"

	"gopkg.in/ini.v1"
)

// Config holds the runner configuration
type Config struct {
	Runner   RunnerConfig
	Database DatabaseConfig
	Metrics  MetricsConfig
}

// RunnerConfig holds worker pool and binding options
type RunnerConfig struct {
	Workers            int  // Fixed worker pool size
	ValidateParameters bool // Check declared placeholder count before binding
}

// DatabaseConfig holds the database/sql driver settings
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// MetricsConfig holds the metrics endpoint settings
type MetricsConfig struct {
	Listen string
}

// Load reads configuration from an INI file with environment variable overrides
func Load(path string) (*Config, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	runner := cfg.Section("runner")
	database := cfg.Section("database")
	metrics := cfg.Section("metrics")

	config := &Config{
		Runner: RunnerConfig{
			Workers:            runner.Key("workers").MustInt(4),
			ValidateParameters: runner.Key("validate_parameters").MustBool(true),
		},
		Database: DatabaseConfig{
			Driver: database.Key("driver").MustString("sqlite3"),
			DSN:    database.Key("dsn").MustString(":memory:"),
		},
		Metrics: MetricsConfig{
			Listen: metrics.Key("listen").MustString(":9090"),
		},
	}

	// Environment variable overrides
	if v := os.Getenv("DBUTILS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Runner.Workers = n
		}
	}
	if v := os.Getenv("DBUTILS_DB_DRIVER"); v != "" {
		config.Database.Driver = v
	}
	if v := os.Getenv("DBUTILS_DB_DSN"); v != "" {
		config.Database.DSN = v
	}
	if v := os.Getenv("DBUTILS_METRICS_LISTEN"); v != "" {
		config.Metrics.Listen = v
	}

	return config, nil
}
