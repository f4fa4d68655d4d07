// pkg/loader/helpers.go
package loader

import (
	"strconv"
	"time"

	"github.com/eciem/practicas-etl/pkg/model"
)

// TimePeriod holds the calendar attributes derived for one tiempo row.
type TimePeriod struct {
	Year     int
	Month    int
	Quarter  int
	Semester int
}

// DeriveTimePeriod computes the tiempo dimension attributes for a date:
// quarter = ((month-1) div 3)+1, semester = 1 for Jan-Jun, 2 otherwise.
func DeriveTimePeriod(date time.Time) TimePeriod {
	month := int(date.Month())
	semester := 1
	if month > 6 {
		semester = 2
	}
	return TimePeriod{
		Year:     date.Year(),
		Month:    month,
		Quarter:  (month-1)/3 + 1,
		Semester: semester,
	}
}

// nullableString returns a column value for binding, nil when missing.
func nullableString(rec model.Record, col string) interface{} {
	if v, ok := rec.Get(col); ok {
		return v
	}
	return nil
}

// nullableID returns a resolved surrogate key for binding, nil on a miss.
func nullableID(id int64, ok bool) interface{} {
	if !ok {
		return nil
	}
	return id
}

// safeInt converts a source value to an integer for binding, accepting a
// float rendering, nil when missing or unparseable.
func safeInt(value string) interface{} {
	if value == "" {
		return nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}
	return nil
}

// truncateRunes bounds a string to n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
