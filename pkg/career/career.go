// pkg/career/career.go
package career

import "strings"

// Canonical career names. The store only ever holds these two entries.
const (
	InformationControl = "INGENIERIA EN INFORMACION Y CONTROL DE GESTION"
	Commercial         = "INGENIERIA COMERCIAL"

	// School is the parent grouping label shared by both careers.
	School = "Escuela de Ciencias Empresariales"

	// Default is the canonical name used for unmatched or missing input.
	Default = InformationControl
)

// Canonicals returns the closed set of canonical careers in creation order.
func Canonicals() []string {
	return []string{InformationControl, Commercial}
}

// aliases maps normalized (trimmed, upper-cased) free-text labels to their
// canonical career name.
var aliases = map[string]string{
	"INGENIERIA EN INFORMACION Y CONTROL DE GESTION":  InformationControl,
	"ING. EN INFORMACIÓN Y CONTROL DE GESTIÓN":        InformationControl,
	"INGENIERÍA EN INFORMACIÓN Y CONTROL DE GESTIÓN":  InformationControl,
	"ING. INFORMACION Y CONTROL DE GESTION":           InformationControl,
	"INGENIERIA INFORMACION Y CONTROL GESTION":        InformationControl,
	"IICG":                                            InformationControl,
	"INGENIERIA EN INFORMACION Y CONTROL DE GESTIÓN":  InformationControl,

	"INGENIERIA COMERCIAL": Commercial,
	"ING. COMERCIAL":       Commercial,
	"INGENIERÍA COMERCIAL": Commercial,
	"ING COMERCIAL":        Commercial,
	"IC":                   Commercial,
}

// Canonical maps an arbitrary free-text career label onto the closed
// canonical set. Unmatched or missing input maps to Default; the function
// never fails and never answers "unknown".
func Canonical(raw string) string {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return Default
	}
	if canonical, ok := aliases[normalized]; ok {
		return canonical
	}
	return Default
}
