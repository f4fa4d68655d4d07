package loader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeriveTimePeriod(t *testing.T) {
	cases := []struct {
		month    time.Month
		quarter  int
		semester int
	}{
		{time.January, 1, 1},
		{time.April, 2, 1},
		{time.June, 2, 1},
		{time.July, 3, 2},
		{time.December, 4, 2},
	}

	for _, c := range cases {
		date := time.Date(2024, c.month, 15, 0, 0, 0, 0, time.UTC)
		period := DeriveTimePeriod(date)
		require.Equal(t, 2024, period.Year)
		require.Equal(t, int(c.month), period.Month)
		require.Equal(t, c.quarter, period.Quarter, c.month)
		require.Equal(t, c.semester, period.Semester, c.month)
	}
}

func TestSafeInt(t *testing.T) {
	require.Equal(t, 2021, safeInt("2021"))
	require.Equal(t, 2021, safeInt("2021.0"))
	require.Nil(t, safeInt(""))
	require.Nil(t, safeInt("n/a"))
}

func TestTruncateRunes(t *testing.T) {
	require.Equal(t, "añej", truncateRunes("añejo", 4))
	require.Equal(t, "corto", truncateRunes("corto", 200))
}
