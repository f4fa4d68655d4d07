package career

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalKnownAliases(t *testing.T) {
	cases := map[string]string{
		"ING. COMERCIAL":       Commercial,
		"Ingeniería Comercial": Commercial,
		"IC":                   Commercial,
		"IICG":                 InformationControl,
		"ING. INFORMACION Y CONTROL DE GESTION": InformationControl,
		"  ingenieria comercial  ":              Commercial,
	}

	for input, want := range cases {
		require.Equal(t, want, Canonical(input), input)
	}
}

func TestCanonicalFallsBackToDefault(t *testing.T) {
	require.Equal(t, Default, Canonical("xyz-unrecognized"))
	require.Equal(t, Default, Canonical(""))
	require.Equal(t, Default, Canonical("   "))
}

func TestCanonicalsClosedSet(t *testing.T) {
	require.Equal(t, []string{InformationControl, Commercial}, Canonicals())
}
