// pkg/store/store.go
package store

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/eciem/practicas-etl/pkg/config"
)

// Querier is the store-access capability that load operations run through.
// Both *sqlx.DB and *sqlx.Tx satisfy it, so callers decide the scope instead
// of loaders holding ambient connection state.
type Querier = sqlx.ExtContext

// Store wraps the long-lived PostgreSQL handle used for a pipeline run.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
	cfg    *config.PostgresConfig
}

// Connect opens and verifies the PostgreSQL connection for a run
func Connect(ctx context.Context, cfg *config.PostgresConfig) (*Store, error) {
	logger := zap.L().Named("store")

	logger.Info("Connecting to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("user", cfg.User))

	db, err := sqlx.Open("pgx", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL connection: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if cfg.StatementTimeout > 0 {
		_, err = db.ExecContext(ctx,
			fmt.Sprintf("SET statement_timeout = %d", cfg.StatementTimeout.Milliseconds()))
		if err != nil {
			logger.Warn("Failed to set statement timeout", zap.Error(err))
		}
	}

	if err := pingWithTimeout(ctx, db, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	logger.Info("PostgreSQL connection established")

	return &Store{
		db:     db,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// DB returns the underlying database handle.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection
func (s *Store) Close() error {
	s.logger.Info("Closing PostgreSQL connection")
	return s.db.Close()
}

// pingWithTimeout attempts to ping the database within a deadline.
func pingWithTimeout(ctx context.Context, db *sqlx.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping failed after %v: %w", timeout, err)
	}
	return nil
}
