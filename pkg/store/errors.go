// pkg/store/errors.go
package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// StoreError wraps a failed DDL or DML statement with enough context to log
// it usefully.
type StoreError struct {
	Op    string // short statement description, e.g. "create table"
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("store: %s %s: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsUniqueViolation reports whether an error is a PostgreSQL unique
// constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
