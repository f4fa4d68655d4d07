// pkg/config/database.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// APIConfig holds provider API connection parameters
type APIConfig struct {
	BaseURL string
	Token   string

	// Pagination page size
	PageSize int

	// Fixed per-request deadline
	RequestTimeout time.Duration
}

// PostgresConfig holds PostgreSQL connection parameters
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// Statement timeout
	StatementTimeout time.Duration
}

// LoadAPIConfig loads provider API configuration from environment variables
func LoadAPIConfig() (*APIConfig, error) {
	token := os.Getenv("API_TOKEN")
	if token == "" {
		return nil, errors.New("API_TOKEN environment variable is required")
	}

	cfg := &APIConfig{
		BaseURL:        getEnv("API_URL", "https://www.eciem.cl/api/api_datos.php"),
		Token:          token,
		PageSize:       getEnvAsInt("API_PAGE_SIZE", 2000),
		RequestTimeout: getEnvAsDuration("API_REQUEST_TIMEOUT_SECONDS", 40),
	}

	if cfg.PageSize <= 0 {
		return nil, errors.New("API page size must be positive")
	}

	return cfg, nil
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables
func LoadPostgresConfig() (*PostgresConfig, error) {
	user := os.Getenv("POSTGRES_USER")
	if user == "" {
		return nil, errors.New("POSTGRES_USER environment variable is required")
	}

	password := os.Getenv("POSTGRES_PASSWORD")
	if password == "" {
		return nil, errors.New("POSTGRES_PASSWORD environment variable is required")
	}

	database := os.Getenv("POSTGRES_DB")
	if database == "" {
		return nil, errors.New("POSTGRES_DB environment variable is required")
	}

	cfg := &PostgresConfig{
		Host:     getEnv("POSTGRES_HOST", "localhost"),
		Port:     getEnvAsInt("POSTGRES_PORT", 5432),
		User:     user,
		Password: password,
		Database: database,
		SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxOpenConns:     getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 5),
		MaxIdleConns:     getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 2),
		ConnMaxLifetime:  getEnvAsDuration("POSTGRES_CONN_MAX_LIFETIME_SECONDS", 1800),
		ConnMaxIdleTime:  getEnvAsDuration("POSTGRES_CONN_MAX_IDLE_TIME_SECONDS", 600),
		StatementTimeout: getEnvAsDuration("POSTGRES_STATEMENT_TIMEOUT_SECONDS", 300),
	}

	return cfg, nil
}

// ConnectionString returns a formatted PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}
