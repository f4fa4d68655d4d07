package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsDateColumn(t *testing.T) {
	require.True(t, IsDateColumn("fech_ini_prac"))
	require.True(t, IsDateColumn("fecha_registro"))
	require.True(t, IsDateColumn("FECH_FIN_PRAC"))
	require.False(t, IsDateColumn("nomb_alum"))
	require.False(t, IsDateColumn("r_2_1"))
}

func TestDetectRUTColumn(t *testing.T) {
	require.Equal(t, "rut_alum",
		DetectRUTColumn([]string{"nomb_alum", "rut_alum", "rut"}))

	// Preference order wins over declaration order.
	require.Equal(t, "RUT_ALUM",
		DetectRUTColumn([]string{"rut_estudiante", "RUT_ALUM"}))

	require.Equal(t, "", DetectRUTColumn([]string{"nomb_alum", "carr_alum"}))
	require.Equal(t, "", DetectRUTColumn(nil))
}

func TestTableColumnsAndRecords(t *testing.T) {
	table := NewTable()
	table.AddColumn("a")
	table.AddColumn("b")
	table.AddColumn("a")
	require.Equal(t, []string{"a", "b"}, table.Columns)

	table.Append(Record{"a": "1", "b": ""})
	require.Equal(t, 1, table.Len())

	v, ok := table.Records[0].Get("a")
	require.True(t, ok)
	require.Equal(t, "1", v)

	_, ok = table.Records[0].Get("b")
	require.False(t, ok)
}
