package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	t.Run("fills empty config with defaults", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)

		assert.Equal(t, "backoffice", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, time.Minute, cfg.Cache.AvailabilityTTL)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := &Config{}
		cfg.App.Port = "9090"
		cfg.Database.MaxOpenConns = 50
		cfg.Cache.AvailabilityTTL = 5 * time.Minute
		applyDefaults(cfg)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5*time.Minute, cfg.Cache.AvailabilityTTL)
	})

	t.Run("does not default CORS origins", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	})
}

func TestValidate(t *testing.T) {
	validCfg := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("accepts defaults in development", func(t *testing.T) {
		require.NoError(t, validCfg().validate())
	})

	t.Run("rejects idle conns exceeding open conns", func(t *testing.T) {
		cfg := validCfg()
		cfg.Database.MaxIdleConns = 100
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects missing database password in production", func(t *testing.T) {
		cfg := validCfg()
		cfg.App.Env = "production"
		cfg.Database.SSLMode = "require"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects wildcard CORS origin in production", func(t *testing.T) {
		cfg := validCfg()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	t.Run("escapes credentials", func(t *testing.T) {
		d := DatabaseConfig{
			Host:     "db.internal",
			Port:     5432,
			User:     "svc",
			Password: "p@ss/word",
			DBName:   "backoffice",
			SSLMode:  "require",
		}
		dsn := d.DSN()
		assert.Contains(t, dsn, "postgres://")
		assert.Contains(t, dsn, "db.internal:5432")
		assert.Contains(t, dsn, "sslmode=require")
		assert.NotContains(t, dsn, "p@ss/word")
	})
}
