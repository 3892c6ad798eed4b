package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("UPLOADS_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:3000", cfg.App.Addr())
	assert.Equal(t, DevJWTSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, UploadsDriverLocal, cfg.Uploads.Driver)
	assert.Equal(t, int64(5*1024*1024), cfg.Uploads.MaxBytes)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoadFallbackVariables(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "legacy-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.Postgres.DSN)
	assert.Equal(t, "legacy-secret", cfg.Auth.JWTSecret)
}

func TestLoadRejectsDevSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:     AppConfig{Env: "development"},
			Auth:    AuthConfig{JWTSecret: "s", BcryptCost: 10},
			Uploads: UploadsConfig{Driver: UploadsDriverLocal, MaxBytes: 1},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Uploads.Driver = "ftp"
	assert.ErrorContains(t, cfg.Validate(), "UPLOADS_DRIVER")

	cfg = base()
	cfg.Uploads.Driver = UploadsDriverMinIO
	assert.ErrorContains(t, cfg.Validate(), "MINIO_ENDPOINT")

	cfg = base()
	cfg.Auth.BcryptCost = 99
	assert.ErrorContains(t, cfg.Validate(), "AUTH_BCRYPT_COST")
}

func TestInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	_, err := Load()
	assert.ErrorContains(t, err, "REDIS_DB")
}
