// pkg/comments/comments.go
package comments

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/eciem/practicas-etl/pkg/model"
)

// NoCommentSentinel marks records where no candidate field held real
// commentary.
const NoCommentSentinel = "Sin comentarios específicos"

// CommentColumn is the column appended to the evaluation snapshot with the
// synthesized comment for each record.
const CommentColumn = "comentarios_evaluacion"

// separator joins accepted values across candidate fields.
const separator = " | "

// Candidate evaluation columns that may carry free-text commentary. The
// questionnaire overloads these with categorical answers, so each value is
// filtered through the prose heuristics below. r_2_7 is a numeric score and
// is deliberately absent.
var candidateColumns = []string{
	"r_2_1", "r_2_2", "r_2_3", "r_2_4", "r_2_5", "r_2_6",
	"r_2_8", "r_2_9", "r_2_10", "r_2_11", "r_2_12", "r_2_13",
	"r_2_14", "r_2_15",
}

// Categorical answers that are never commentary.
var denylist = map[string]bool{
	"A": true, "B": true, "C": true, "D": true,
	"Si": true, "SI": true, "NO": true, "No": true,
	"De acuerdo": true,
	"1":          true, "2": true, "3": true,
}

// Extractor synthesizes a single free-text comment per evaluation record by
// scanning a fixed set of semantically overloaded response columns. It is a
// heuristic classifier: the contract is the rule set, not semantic quality.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a comment extractor
func NewExtractor(logger *zap.Logger) (*Extractor, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Extractor{logger: logger}, nil
}

// Extract synthesizes the comment for one record. Accepted values are joined
// in column-declaration order; when nothing qualifies the sentinel is
// returned.
func (e *Extractor) Extract(rec model.Record) string {
	var accepted []string
	for _, col := range candidateColumns {
		value, ok := rec.Get(col)
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(value)
		if isRealComment(trimmed) {
			accepted = append(accepted, trimmed)
		}
	}

	if len(accepted) == 0 {
		return NoCommentSentinel
	}
	return strings.Join(accepted, separator)
}

// Enrich appends the synthesized comment column to an evaluation snapshot.
func (e *Extractor) Enrich(t *model.Table) *model.Table {
	t.AddColumn(CommentColumn)

	withComments := 0
	for _, rec := range t.Records {
		comment := e.Extract(rec)
		rec[CommentColumn] = comment
		if comment != NoCommentSentinel {
			withComments++
		}
	}

	e.logger.Info("Extracted evaluation comments",
		zap.Int("with_commentary", withComments),
		zap.Int("records", t.Len()))

	return t
}

// isRealComment applies the prose heuristics: long enough, not a categorical
// answer, not shouting, not a bare word, and punctuated or spaced like text.
func isRealComment(value string) bool {
	if value == "" || denylist[value] {
		return false
	}
	if utf8.RuneCountInString(value) <= 10 {
		return false
	}
	if isAllUpper(value) {
		return false
	}
	if isAllAlpha(strings.ReplaceAll(value, " ", "")) {
		return false
	}
	return strings.ContainsAny(value, ",. ")
}

// isAllUpper reports whether every cased rune is upper-case, mirroring
// Python's str.isupper: at least one cased rune, none of them lower-case.
func isAllUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

// isAllAlpha reports whether the string is non-empty and entirely letters,
// mirroring Python's str.isalpha.
func isAllAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
