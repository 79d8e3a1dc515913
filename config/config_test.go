package config

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "DB_DRIVER", "DB_HOST", "AWS_REGION", "CATALOG_CACHE_SIZE", "ADMIN_EMAILS", "REKOGNITION_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "ap-south-1", cfg.AWSRegion)
	assert.Equal(t, 128, cfg.CatalogCacheSize)
	assert.Empty(t, cfg.AdminEmails)
	assert.False(t, cfg.Rekognition)
	assert.False(t, cfg.UseDatabase())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("ADMIN_EMAILS", " a@example.com, ,b@example.com ")
	t.Setenv("CATALOG_CACHE_SIZE", "not-a-number")
	t.Setenv("REKOGNITION_ENABLED", "true")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.AdminEmails)
	assert.Equal(t, 128, cfg.CatalogCacheSize)
	assert.True(t, cfg.Rekognition)
	assert.True(t, cfg.UseDatabase())
}

func TestUseDatabase_Postgres(t *testing.T) {
	assert.True(t, Config{DBDriver: "postgres", DBHost: "db"}.UseDatabase())
	assert.False(t, Config{DBDriver: "postgres"}.UseDatabase())
}

func TestOpenDB_SQLite(t *testing.T) {
	db, err := OpenDB(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)

	for _, table := range []string{"users", "user_settings", "user_meals", "habits", "goals", "challenges", "alerts", "user_devices"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasColumn("user_meals", "total_calories"))
}
