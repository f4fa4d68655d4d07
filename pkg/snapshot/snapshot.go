// pkg/snapshot/snapshot.go
package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/eciem/practicas-etl/pkg/model"
)

// Store persists cleaned tables as UTF-8 CSV files with a header row, one
// file per source table. The snapshot directory is the sole hand-off between
// the extraction stage and the load stage.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore creates a snapshot store rooted at dir, creating it if needed
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("snapshot directory cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	return &Store{dir: dir, logger: logger}, nil
}

// Path returns the CSV file path for a table name.
func (s *Store) Path(table string) string {
	return filepath.Join(s.dir, table+".csv")
}

// Write persists a table snapshot, overwriting any previous file.
func (s *Store) Write(table string, t *model.Table) error {
	path := s.Path(table)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}

	row := make([]string, len(t.Columns))
	for _, rec := range t.Records {
		for i, col := range t.Columns {
			row[i] = rec[col]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write snapshot row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush snapshot %s: %w", path, err)
	}

	s.logger.Info("Snapshot written",
		zap.String("table", table),
		zap.String("path", path),
		zap.Int("rows", t.Len()))

	return nil
}

// Read loads a table snapshot back, preserving column order.
func (s *Store) Read(table string) (*model.Table, error) {
	path := s.Path(table)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	t := model.NewTable()
	if len(rows) == 0 {
		return t, nil
	}

	t.Columns = rows[0]
	for _, row := range rows[1:] {
		rec := make(model.Record, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		t.Append(rec)
	}

	return t, nil
}
