package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Runner.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Runner.Workers)
	}
	if !cfg.Runner.ValidateParameters {
		t.Error("Expected parameter validation enabled by default")
	}
	if cfg.Database.Driver != "sqlite3" {
		t.Errorf("Expected sqlite3 driver, got %q", cfg.Database.Driver)
	}
	if cfg.Metrics.Listen != ":9090" {
		t.Errorf("Expected :9090, got %q", cfg.Metrics.Listen)
	}
}

func TestLoad_Values(t *testing.T) {
	path := writeConfig(t, `[runner]
workers = 8
validate_parameters = false

[database]
driver = mysql
dsn = user:pass@tcp(127.0.0.1:3306)/app

[metrics]
listen = :9100
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Runner.Workers != 8 {
		t.Errorf("Expected 8 workers, got %d", cfg.Runner.Workers)
	}
	if cfg.Runner.ValidateParameters {
		t.Error("Expected parameter validation disabled")
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Expected mysql driver, got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "user:pass@tcp(127.0.0.1:3306)/app" {
		t.Errorf("Unexpected DSN %q", cfg.Database.DSN)
	}
	if cfg.Metrics.Listen != ":9100" {
		t.Errorf("Expected :9100, got %q", cfg.Metrics.Listen)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `[runner]
workers = 2
`)

	t.Setenv("DBUTILS_WORKERS", "16")
	t.Setenv("DBUTILS_DB_DRIVER", "postgres")
	t.Setenv("DBUTILS_DB_DSN", "postgres://localhost/app")
	t.Setenv("DBUTILS_METRICS_LISTEN", ":9200")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Runner.Workers != 16 {
		t.Errorf("Expected 16 workers, got %d", cfg.Runner.Workers)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Expected postgres driver, got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "postgres://localhost/app" {
		t.Errorf("Unexpected DSN %q", cfg.Database.DSN)
	}
	if cfg.Metrics.Listen != ":9200" {
		t.Errorf("Expected :9200, got %q", cfg.Metrics.Listen)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.ini")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
