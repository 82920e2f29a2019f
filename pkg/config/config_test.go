package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 7, cfg.DB.MaxConns)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.App.MetricsEnabled)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DB_MAX_CONNS", "muchas")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.DB.MaxConns)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "contable", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/contable?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
