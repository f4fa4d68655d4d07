package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfigRequiresToken(t *testing.T) {
	t.Setenv("API_TOKEN", "")
	_, err := LoadAPIConfig()
	require.Error(t, err)
}

func TestLoadAPIConfigDefaults(t *testing.T) {
	t.Setenv("API_TOKEN", "abc")

	cfg, err := LoadAPIConfig()
	require.NoError(t, err)
	require.Equal(t, 2000, cfg.PageSize)
	require.NotEmpty(t, cfg.BaseURL)
}

func TestLoadPostgresConfigConnectionString(t *testing.T) {
	t.Setenv("POSTGRES_USER", "etl")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_DB", "reportes")
	t.Setenv("POSTGRES_PORT", "5433")

	cfg, err := LoadPostgresConfig()
	require.NoError(t, err)
	require.Equal(t,
		"host=localhost port=5433 user=etl password=pw dbname=reportes sslmode=disable",
		cfg.ConnectionString())
}

func TestGetEnvAsStringSlice(t *testing.T) {
	t.Setenv("SOURCE_TABLES", "alumn_pract, alumn_pract_eva_jef")
	got := getEnvAsStringSlice("SOURCE_TABLES", nil)
	require.Equal(t, []string{"alumn_pract", "alumn_pract_eva_jef"}, got)
}
