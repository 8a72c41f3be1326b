package config_test

import (
	"testing"
	"time"

	"github.com/remaimber-it/quizcore/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	for _, k := range []string{
		"DATABASE_PATH", "ENRICHMENT_WORKERS", "ENRICHMENT_QUEUE_SIZE",
		"PRACTICE_MAX_ATTEMPTS", "GENERATOR_SEED", "RECOVERY_LENIENT_REPAIR", "RECOVERY_MAX_STRATEGY",
	} {
		t.Setenv(k, "")
	}

	cfg := config.Load()

	if cfg.ServerAddress != ":9090" {
		t.Errorf("expected address :9090, got %q", cfg.ServerAddress)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.ShutdownTimeout)
	}
	if cfg.DatabasePath != "quizcore.db" {
		t.Errorf("expected default database path, got %q", cfg.DatabasePath)
	}
	if cfg.EnrichmentWorkers != 2 || cfg.EnrichmentQueueSize != 64 {
		t.Errorf("expected 2 workers and queue 64, got %d and %d", cfg.EnrichmentWorkers, cfg.EnrichmentQueueSize)
	}
	if cfg.PracticeMaxAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", cfg.PracticeMaxAttempts)
	}
	if cfg.LenientRepair || cfg.MaxStrategy != "" || cfg.GeneratorSeed != 0 {
		t.Errorf("expected recovery defaults, got %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":8080")
	t.Setenv("SHUTDOWN_TIMEOUT", "1m")
	t.Setenv("DATABASE_PATH", "/tmp/q.db")
	t.Setenv("ENRICHMENT_WORKERS", "8")
	t.Setenv("ENRICHMENT_QUEUE_SIZE", "128")
	t.Setenv("PRACTICE_MAX_ATTEMPTS", "5")
	t.Setenv("GENERATOR_SEED", "42")
	t.Setenv("RECOVERY_LENIENT_REPAIR", "true")
	t.Setenv("RECOVERY_MAX_STRATEGY", "field_extraction")

	cfg := config.Load()

	if cfg.DatabasePath != "/tmp/q.db" || cfg.EnrichmentWorkers != 8 || cfg.EnrichmentQueueSize != 128 {
		t.Errorf("unexpected storage/pool settings: %+v", cfg)
	}
	if cfg.PracticeMaxAttempts != 5 || cfg.GeneratorSeed != 42 {
		t.Errorf("unexpected generation settings: %+v", cfg)
	}
	if !cfg.LenientRepair || cfg.MaxStrategy != "field_extraction" {
		t.Errorf("unexpected recovery settings: %+v", cfg)
	}
}
