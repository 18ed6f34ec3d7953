package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	files, err := MigrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_base_fares.sql", files[0])

	content, err := fs.ReadFile(migrationsFS, "migrations/"+files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS base_fares")
	assert.Contains(t, string(content), "ON CONFLICT (route, class) DO NOTHING")
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5433, User: "u", Password: "p", Name: "fares"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=fares sslmode=disable", cfg.DSN())

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}
