// Package config holds the run configuration. Values come from the
// environment (with optional .env file) and may be overridden by CLI flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is an immutable snapshot of the processing options. Workers receive
// a copy and never mutate it.
type Config struct {
	// Normalization rules applied during record assembly.
	DefaultCurrency string
	DefaultVATRate  float64
	DateFormat      string

	// Parallelism is the worker count; 0 means use all available CPUs.
	Parallelism int

	// FileTimeout bounds the processing of a single file.
	FileTimeout time.Duration

	// Logging configuration.
	LogLevel  string
	LogFormat string
	LogOutput string
	LogFile   string
}

// Load reads configuration from the environment, after loading a .env file
// if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DefaultCurrency: getEnv("FATTURA_DEFAULT_CURRENCY", "EUR"),
		DateFormat:      getEnv("FATTURA_DATE_FORMAT", "2006-01-02"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		LogOutput:       getEnv("LOG_OUTPUT", "stderr"),
		LogFile:         getEnv("LOG_FILE", ""),
	}

	var err error
	if cfg.DefaultVATRate, err = getEnvFloat("FATTURA_DEFAULT_VAT_RATE", 22.0); err != nil {
		return nil, err
	}
	if cfg.Parallelism, err = getEnvInt("FATTURA_PARALLELISM", 0); err != nil {
		return nil, err
	}
	if cfg.FileTimeout, err = getEnvDuration("FATTURA_FILE_TIMEOUT", 2*time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in defaults without touching the environment.
func Default() *Config {
	return &Config{
		DefaultCurrency: "EUR",
		DefaultVATRate:  22.0,
		DateFormat:      "2006-01-02",
		Parallelism:     0,
		FileTimeout:     2 * time.Minute,
		LogLevel:        "info",
		LogFormat:       "console",
		LogOutput:       "stderr",
	}
}

func (c *Config) validate() error {
	if c.DefaultCurrency == "" {
		return fmt.Errorf("default currency must not be empty")
	}
	if c.DefaultVATRate < 0 {
		return fmt.Errorf("default VAT rate must not be negative")
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative")
	}
	if _, err := time.Parse(c.DateFormat, time.Now().Format(c.DateFormat)); err != nil {
		return fmt.Errorf("invalid date format %q: %w", c.DateFormat, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
