// pkg/model/table.go
package model

// Record is a single row of a source table, keyed by column name.
// All values are kept as strings; missing and null source values are
// represented as the empty string.
type Record map[string]string

// Table is an ordered tabular batch: the column list preserves the order in
// which columns were first observed in the source, and every Record is keyed
// by a subset of those columns.
type Table struct {
	Columns []string
	Records []Record
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		Columns: make([]string, 0),
		Records: make([]Record, 0),
	}
}

// HasColumn reports whether the table already declares the given column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column to the declaration order if not already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Append adds a record to the table.
func (t *Table) Append(rec Record) {
	t.Records = append(t.Records, rec)
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.Records)
}

// Empty reports whether the table has no records.
func (t *Table) Empty() bool {
	return len(t.Records) == 0
}

// Get returns the value of a column for a record, treating the empty string
// as missing.
func (r Record) Get(column string) (string, bool) {
	v, ok := r[column]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
