// pkg/cleaner/dates.go
package cleaner

import "time"

// dateLayout is the canonical rendering for cleaned calendar dates.
const dateLayout = "2006-01-02"

// Layouts accepted when coercing source values to calendar dates.
var acceptedLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

// ParseDate attempts to interpret a source value as a calendar date.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
