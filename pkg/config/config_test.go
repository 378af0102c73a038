package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rectificadora-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORAGE", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.DB.Storage)
	assert.Equal(t, "0.19", cfg.Taller.TasaIVA)
	assert.Equal(t, "57", cfg.Taller.CodigoPais)
	assert.Equal(t, 24*time.Hour, cfg.Taller.ExportTTL)
	assert.False(t, cfg.Auth.Enabled)
	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTP.Addr())

	p := cfg.Retry.Policy()
	assert.Equal(t, 500*time.Millisecond, p.Initial)
	assert.Equal(t, 1.5, p.Multiplier)
	assert.Equal(t, 5*time.Second, p.Max)
	assert.Equal(t, 12, p.MaxRetries)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("STORAGE", "POSTGRES")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("RETRY_INITIAL", "250ms")
	t.Setenv("RETRY_MAX_RETRIES", "3")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("TALLER_EXPORT_TTL", "no-es-duracion")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoragePostgres, cfg.DB.Storage)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.Initial)
	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.False(t, cfg.DB.Migrate)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, 24*time.Hour, cfg.Taller.ExportTTL, "un valor inválido usa el defecto")
}

func TestLoad_Invalida(t *testing.T) {
	t.Run("storage desconocido", func(t *testing.T) {
		t.Setenv("STORAGE", "sqlite")
		_, err := config.Load()
		assert.Error(t, err)
	})
	t.Run("auth sin secreto", func(t *testing.T) {
		t.Setenv("STORAGE", "memory")
		t.Setenv("AUTH_ENABLED", "true")
		t.Setenv("JWT_SECRET", "")
		_, err := config.Load()
		assert.Error(t, err)
	})
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "taller", Password: "p@ss:word", DBName: "rectificadora", SSLMode: "disable"}
	assert.Equal(t, "postgres://taller:p%40ss%3Aword@db:5432/rectificadora?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro@host/db"
	assert.Equal(t, "postgres://otro@host/db", c.ConnectionString())
}
