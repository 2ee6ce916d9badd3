package config

import (
	"os"
	"strconv"

	"evidec/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Sweep  SweepConfig
	Data   DataConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// SweepConfig holds batch-evaluation settings
type SweepConfig struct {
	Workers int
}

// DataConfig holds file ingestion settings
type DataConfig struct {
	InputFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Sweep: SweepConfig{
			Workers: getEnvInt("SWEEP_WORKERS", 4),
		},
		Data: DataConfig{
			InputFile: os.Getenv("INPUT_FILE"),
		},
	}

	if cfg.Server.Port == "" {
		return nil, errors.ConfigInvalid("PORT must not be empty")
	}
	if cfg.Sweep.Workers < 1 {
		return nil, errors.ConfigInvalid("SWEEP_WORKERS must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
