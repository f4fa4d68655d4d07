// pkg/model/columns.go
package model

import "strings"

// Date columns in the source follow a fixed prefix convention.
var dateColumnPrefixes = []string{"fech_", "fecha_"}

// IsDateColumn reports whether a column name follows the source's
// date-prefix naming convention.
func IsDateColumn(name string) bool {
	lowered := strings.ToLower(name)
	for _, prefix := range dateColumnPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return true
		}
	}
	return false
}

// Known aliases for the student RUT column, in preference order.
var rutColumnAliases = []string{
	"rut_alum",
	"rut",
	"rut_alumno",
	"rutalum",
	"rut_alumn",
	"rut_estudiante",
	"rut_alumno_practica",
}

// DetectRUTColumn returns the first column matching a known RUT alias
// (case-insensitive), or "" when none matches.
func DetectRUTColumn(columns []string) string {
	lowered := make([]string, len(columns))
	for i, c := range columns {
		lowered[i] = strings.ToLower(c)
	}
	for _, alias := range rutColumnAliases {
		for i, c := range lowered {
			if c == alias {
				return columns[i]
			}
		}
	}
	return ""
}
