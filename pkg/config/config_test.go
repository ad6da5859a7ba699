package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("HTTP_PORT", "")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "almacen-api", cfg.App.Name)
	assert.Equal(t, config.StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.Migrations.AutoRun)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MIGRATIONS_AUTO_RUN", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Migrations.AutoRun)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "almacen", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/almacen?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
