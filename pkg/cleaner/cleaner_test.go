package cleaner

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eciem/practicas-etl/pkg/model"
)

func newTestCleaner(t *testing.T) *RecordCleaner {
	c, err := NewRecordCleaner(zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestCleanTrimsStrings(t *testing.T) {
	table := model.NewTable()
	table.Columns = []string{"nomb_alum", "ciudad_emp_prac"}
	table.Append(model.Record{
		"nomb_alum":       "  Ana María  ",
		"ciudad_emp_prac": "\tTemuco\n",
	})

	cleaned := newTestCleaner(t).Clean(table)

	require.Equal(t, "Ana María", cleaned.Records[0]["nomb_alum"])
	require.Equal(t, "Temuco", cleaned.Records[0]["ciudad_emp_prac"])
}

func TestCleanZeroDateSentinels(t *testing.T) {
	table := model.NewTable()
	table.Columns = []string{"fech_ini_prac", "fech_fin_prac"}
	table.Append(model.Record{
		"fech_ini_prac": "0000-00-00",
		"fech_fin_prac": "0000-00-00 00:00:00",
	})

	cleaned := newTestCleaner(t).Clean(table)

	require.Equal(t, "", cleaned.Records[0]["fech_ini_prac"])
	require.Equal(t, "", cleaned.Records[0]["fech_fin_prac"])
}

func TestCleanCoercesDateColumns(t *testing.T) {
	table := model.NewTable()
	table.Columns = []string{"fech_ini_prac", "fecha_registro", "niv_estudio_alum"}
	table.Append(model.Record{
		"fech_ini_prac":    "2024-04-02 10:30:00",
		"fecha_registro":   "not a date",
		"niv_estudio_alum": "2024-04-02", // not a date column, untouched
	})

	cleaned := newTestCleaner(t).Clean(table)

	require.Equal(t, "2024-04-02", cleaned.Records[0]["fech_ini_prac"])
	require.Equal(t, "", cleaned.Records[0]["fecha_registro"])
	require.Equal(t, "2024-04-02", cleaned.Records[0]["niv_estudio_alum"])
}

func TestCleanEmptyTablePassesThrough(t *testing.T) {
	table := model.NewTable()
	cleaned := newTestCleaner(t).Clean(table)
	require.True(t, cleaned.Empty())
}

func TestParseDateLayouts(t *testing.T) {
	for _, value := range []string{
		"2024-04-02",
		"2024-04-02 10:30:00",
		"2024/04/02",
		"02-04-2024",
	} {
		parsed, ok := ParseDate(value)
		require.True(t, ok, value)
		require.Equal(t, 2024, parsed.Year(), value)
	}

	_, ok := ParseDate("sin fecha")
	require.False(t, ok)
}
