package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	DatabasePath    string

	// Background enrichment of evaluation items
	EnrichmentWorkers   int
	EnrichmentQueueSize int

	// Practice generation
	PracticeMaxAttempts int
	GeneratorSeed       int64 // 0 means derive from the clock at startup

	// Salvage of malformed model output
	LenientRepair bool
	MaxStrategy   string // last strategy allowed to win, "" for no limit
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:       mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout:     mustGetDuration("SHUTDOWN_TIMEOUT"),
		DatabasePath:        getenvDefault("DATABASE_PATH", "quizcore.db"),
		EnrichmentWorkers:   getInt("ENRICHMENT_WORKERS", 2),
		EnrichmentQueueSize: getInt("ENRICHMENT_QUEUE_SIZE", 64),
		PracticeMaxAttempts: getInt("PRACTICE_MAX_ATTEMPTS", 3),
		GeneratorSeed:       int64(getInt("GENERATOR_SEED", 0)),
		LenientRepair:       getBool("RECOVERY_LENIENT_REPAIR", false),
		MaxStrategy:         getenvDefault("RECOVERY_MAX_STRATEGY", ""),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}

func getBool(k string, fallback bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid boolean: %v", k, v, err)
	}
	return b
}
