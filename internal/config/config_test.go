package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// unset clears keys for the duration of the test.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unset(t, "PORT", "DB_DRIVER", "DB_PORT", "BREAKER_TIMEOUT", "BREAKER_MAX_FAILURES")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.Port != 5432 {
		t.Errorf("unexpected database defaults %+v", cfg.Database)
	}
	if cfg.Breaker.Timeout != 5*time.Second || cfg.Breaker.MaxFailures != 3 {
		t.Errorf("unexpected breaker defaults %+v", cfg.Breaker)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/studio.db")
	t.Setenv("DB_SEED", "true")
	t.Setenv("REVENUE_TARGET", "45000")
	t.Setenv("BREAKER_TIMEOUT", "30s")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "9000" || !cfg.App.Seed || cfg.App.RevenueTarget != 45000 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Database.DSN() != "/tmp/studio.db" {
		t.Errorf("sqlite DSN = %q", cfg.Database.DSN())
	}
	if cfg.Breaker.Timeout != 30*time.Second {
		t.Errorf("breaker timeout = %v", cfg.Breaker.Timeout)
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown driver")
	}
}

func TestDatabaseConfig_DSNAndURL(t *testing.T) {
	d := DatabaseConfig{Driver: "postgres", Host: "db", Port: 5433, User: "u", Password: "p@ss", DBName: "studio", SSLMode: "disable"}
	if got := d.DSN(); !strings.Contains(got, "host=db port=5433") || !strings.Contains(got, "sslmode=disable") {
		t.Errorf("DSN() = %q", got)
	}
	if got, want := d.URL(), "postgres://u:p%40ss@db:5433/studio?sslmode=disable"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
