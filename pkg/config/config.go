// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Data sources
	API      *APIConfig
	Postgres *PostgresConfig

	// Source tables to extract, in processing order
	Tables []string

	// Directory for CSV snapshots
	DataDir string

	// Logging
	LogLevel  string
	LogFormat string
}

// Default source tables exposed by the provider API.
var defaultTables = []string{
	"alumn_pract",
	"alumn_pract_eva_inf_pract",
	"alumn_pract_eva_jef",
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Tables:    getEnvAsStringSlice("SOURCE_TABLES", defaultTables),
		DataDir:   getEnv("DATA_DIR", "data"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	apiConfig, err := LoadAPIConfig()
	if err != nil {
		return nil, errors.New("failed to load API configuration: " + err.Error())
	}
	cfg.API = apiConfig

	pgConfig, err := LoadPostgresConfig()
	if err != nil {
		return nil, errors.New("failed to load PostgreSQL configuration: " + err.Error())
	}
	cfg.Postgres = pgConfig

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.API == nil {
		return errors.New("API configuration is required")
	}

	if c.Postgres == nil {
		return errors.New("postgreSQL configuration is required")
	}

	if len(c.Tables) == 0 {
		return errors.New("at least one source table is required")
	}

	if c.DataDir == "" {
		return errors.New("data directory is required")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result []string
	current := ""
	for _, char := range value {
		if char == ',' {
			if trimmed := trimSpace(current); trimmed != "" {
				result = append(result, trimmed)
			}
			current = ""
			continue
		}
		current += string(char)
	}
	if trimmed := trimSpace(current); trimmed != "" {
		result = append(result, trimmed)
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}

func trimSpace(s string) string {
	start := 0
	end := len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}
