package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPostgresConfigDefaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")

	cfg, err := LoadPostgresConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled())
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
}

func TestLoadPostgresConfigInvalidPort(t *testing.T) {
	t.Setenv("DB_PORT", "five")
	_, err := LoadPostgresConfig()
	assert.Error(t, err)
}

func TestPostgresConfigDSN(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: 5433, User: "shop", Password: "p@ss word", DBName: "pricing", SSLMode: "require"}
	assert.Equal(t, "postgres://shop:p%40ss%20word@db:5433/pricing?sslmode=require", cfg.DSN())
	assert.True(t, cfg.Enabled())
}
