package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort         string
	MetricsAddr      string
	PostgresDSN      string
	DBTimeout        time.Duration
	JournalQueueSize int
	// JournalRecordTimeout bounds one journal write.
	JournalRecordTimeout time.Duration
	ShutdownTimeout      time.Duration
}

// JournalEnabled reports whether synthesized orders should be written to Postgres.
func (c Config) JournalEnabled() bool {
	return c.PostgresDSN != ""
}

func Load() (Config, error) {
	cfg := Config{
		HTTPPort:    getenv("HTTP_PORT", "8080"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
	}

	var err error
	if cfg.DBTimeout, err = durationEnv("DB_TIMEOUT", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.JournalRecordTimeout, err = durationEnv("JOURNAL_RECORD_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.JournalQueueSize, err = intEnv("JOURNAL_QUEUE_SIZE", 100); err != nil {
		return Config{}, err
	}
	if cfg.JournalQueueSize <= 0 {
		return Config{}, fmt.Errorf("JOURNAL_QUEUE_SIZE must be greater than 0, got %d", cfg.JournalQueueSize)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return n, nil
}
