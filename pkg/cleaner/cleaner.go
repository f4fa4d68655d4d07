// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/eciem/practicas-etl/pkg/model"
)

// Zero-date sentinels the provider emits for unset dates.
var zeroDateSentinels = map[string]bool{
	"0000-00-00":          true,
	"0000-00-00 00:00:00": true,
}

// RecordCleaner normalizes raw extracted records: trims every string value,
// converts sentinel zero-dates to missing, and coerces date-prefixed columns
// to the canonical YYYY-MM-DD form. Unparseable dates become missing values,
// never a hard failure.
type RecordCleaner struct {
	logger *zap.Logger
}

// NewRecordCleaner creates a new RecordCleaner instance
func NewRecordCleaner(logger *zap.Logger) (*RecordCleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &RecordCleaner{logger: logger}, nil
}

// Clean normalizes a whole table in place and returns it. An empty table
// passes through unchanged.
func (c *RecordCleaner) Clean(t *model.Table) *model.Table {
	if t == nil || t.Empty() {
		return t
	}

	dateColumns := make(map[string]bool)
	for _, col := range t.Columns {
		if model.IsDateColumn(col) {
			dateColumns[col] = true
		}
	}

	coerced := 0
	for _, rec := range t.Records {
		for col, value := range rec {
			trimmed := strings.TrimSpace(value)

			if dateColumns[col] {
				normalized := normalizeDate(trimmed)
				if normalized != trimmed {
					coerced++
				}
				rec[col] = normalized
				continue
			}

			rec[col] = trimmed
		}
	}

	if coerced > 0 {
		c.logger.Info("Normalized date values",
			zap.Int("values", coerced),
			zap.Int("date_columns", len(dateColumns)))
	}

	return t
}

// normalizeDate maps sentinels and unparseable values to missing, and
// renders everything else as YYYY-MM-DD.
func normalizeDate(value string) string {
	if value == "" || zeroDateSentinels[value] {
		return ""
	}

	parsed, ok := ParseDate(value)
	if !ok {
		return ""
	}
	return parsed.Format(dateLayout)
}
