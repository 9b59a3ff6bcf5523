package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_DATABASE", "portfolio_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("JWT_SECRET", "testsecret123456789012345678901234")
	t.Setenv("ADMIN_EMAIL", "  Owner@Example.com ")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017/testdb", cfg.MongoDB.URI)
	require.Equal(t, "portfolio_test", cfg.MongoDB.Database)
	require.Equal(t, "localhost:6380", cfg.Redis.Addr())
	require.Equal(t, "testsecret123456789012345678901234", cfg.JWT.Secret)
	require.Equal(t, "owner@example.com", cfg.Admin.Email)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "8001", cfg.Server.Port)
	require.Empty(t, cfg.MongoDB.URI)
	require.Equal(t, "portfolio", cfg.MongoDB.Database)
	require.Empty(t, cfg.Redis.Addr())
	require.Equal(t, devJWTSecret, cfg.JWT.Secret)
	require.Equal(t, 30*24*time.Hour, cfg.JWT.AccessTokenTTL)
	require.Equal(t, int64(10*1024*1024), cfg.Uploads.MaxBytes)
	require.Equal(t, "/api/files", cfg.Uploads.PublicPrefix)
	require.Equal(t, 1920, cfg.Uploads.MaxDimension)
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, time.Minute, cfg.Cache.TTL)
}

func TestOIDCAdminEmailFallsBackToAdmin(t *testing.T) {
	t.Setenv("OIDC_ISSUER", "https://idp.example.com")
	t.Setenv("OIDC_ADMIN_EMAIL", "")
	t.Setenv("ADMIN_EMAIL", "me@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "me@example.com", cfg.OIDC.AdminEmail)
}
