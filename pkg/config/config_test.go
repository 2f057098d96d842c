package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Consent-api/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "consent-api", cfg.App.Name)
	assert.Equal(t, config.StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "consent.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Sobrescribe(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "Postgres")
	v.Set("HTTP_PORT", "9090")
	v.Set("DB_PASSWORD", "p@ss:word")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%3Aword", "la contraseña debe ir codificada")
}

func TestFromViper_PuertoNoNumericoUsaDefault(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "abc")
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "redis")
	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestConnectionString_PrefiereDatabaseURL(t *testing.T) {
	c := config.DBConfig{DatabaseURL: "postgres://x@y/z", Host: "h"}
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
