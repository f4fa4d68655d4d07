package comments

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eciem/practicas-etl/pkg/model"
)

func newTestExtractor(t *testing.T) *Extractor {
	e, err := NewExtractor(zap.NewNop())
	require.NoError(t, err)
	return e
}

func TestExtractRejectsCategoricalAnswers(t *testing.T) {
	e := newTestExtractor(t)

	got := e.Extract(model.Record{
		"r_2_1": "Si",
		"r_2_2": "B",
		"r_2_3": "1234567890123", // long, but no comma, period, or space
	})

	require.Equal(t, NoCommentSentinel, got)
}

func TestExtractAcceptsProse(t *testing.T) {
	e := newTestExtractor(t)
	prose := "El desempeño fue excelente, muy puntual."

	got := e.Extract(model.Record{
		"r_2_1": "De acuerdo",
		"r_2_4": prose,
	})

	require.Contains(t, got, prose)
}

func TestExtractJoinsInDeclarationOrder(t *testing.T) {
	e := newTestExtractor(t)

	got := e.Extract(model.Record{
		"r_2_15": "Buen manejo de herramientas, aunque llegó tarde.",
		"r_2_2":  "Demostró gran iniciativa, siempre dispuesto.",
	})

	require.Equal(t,
		"Demostró gran iniciativa, siempre dispuesto. | Buen manejo de herramientas, aunque llegó tarde.",
		got)
}

func TestExtractRejectsShoutingAndBareWords(t *testing.T) {
	e := newTestExtractor(t)

	require.Equal(t, NoCommentSentinel, e.Extract(model.Record{
		"r_2_1": "EXCELENTE TRABAJO",  // all upper-case
		"r_2_2": "Responsabilidad",    // single bare word
		"r_2_3": "  De acuerdo  ",     // denylisted after trim
	}))
}

func TestEnrichAppendsCommentColumn(t *testing.T) {
	e := newTestExtractor(t)

	table := model.NewTable()
	table.Columns = []string{"rut_alum", "r_2_4"}
	table.Append(model.Record{"rut_alum": "1-9", "r_2_4": "Cumplió todas las metas, destacable."})
	table.Append(model.Record{"rut_alum": "2-7", "r_2_4": "No"})

	enriched := e.Enrich(table)

	require.Contains(t, enriched.Columns, CommentColumn)
	require.Equal(t, "Cumplió todas las metas, destacable.", enriched.Records[0][CommentColumn])
	require.Equal(t, NoCommentSentinel, enriched.Records[1][CommentColumn])
}
