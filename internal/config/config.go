package config

import (
	"os"
	"strconv"

	"kpiboard/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data   DataConfig
	Server ServerConfig
}

// DataConfig holds the workbook paths and extraction settings
type DataConfig struct {
	SourceFile   string
	SourceSheet  string
	PreparedFile string
	Year         int
}

// ServerConfig holds dashboard web server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			SourceFile:   getEnvOrDefault("KPI_SOURCE_FILE", "KPI - 2025 BAP.xlsx"),
			SourceSheet:  getEnvOrDefault("KPI_SOURCE_SHEET", "Marketing"),
			PreparedFile: getEnvOrDefault("KPI_PREPARED_FILE", "KPI_Marketing_Preparado.xlsx"),
			Year:         getEnvIntOrDefault("KPI_YEAR", 2025),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.SourceFile == "" {
		return errors.ConfigInvalid("source workbook path is required")
	}
	if config.Data.PreparedFile == "" {
		return errors.ConfigInvalid("prepared workbook path is required")
	}
	if config.Data.Year < 2000 || config.Data.Year > 2100 {
		return errors.ConfigInvalid("KPI_YEAR must be a plausible calendar year")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
