package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                "development",
		Store:              "memory",
		AccessTokenSecret:  defaultAccessSecret,
		RefreshTokenSecret: defaultRefreshSecret,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"development defaults", func(*Config) {}, ""},
		{"unknown store", func(c *Config) { c.Store = "sqlite" }, "unknown STORE"},
		{"equal secrets", func(c *Config) { c.RefreshTokenSecret = c.AccessTokenSecret }, "must differ"},
		{"production default secrets", func(c *Config) {
			c.Env = "production"
			c.Store = "postgres"
		}, "token secrets must be set"},
		{"production memory store", func(c *Config) {
			c.Env = "production"
			c.AccessTokenSecret = "a"
			c.RefreshTokenSecret = "b"
		}, "memory store is not allowed"},
		{"production ok", func(c *Config) {
			c.Env = "production"
			c.Store = "postgres"
			c.AccessTokenSecret = "a"
			c.RefreshTokenSecret = "b"
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORE", "memory")
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("CORS_ORIGIN", "http://a.test, ,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 240*time.Hour, cfg.RefreshTokenTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("STORE", "memory")

	t.Run("duration", func(t *testing.T) {
		t.Setenv("REFRESH_TOKEN_TTL", "ten days")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "REFRESH_TOKEN_TTL")
	})
	t.Run("bool", func(t *testing.T) {
		t.Setenv("MINIO_USE_SSL", "maybe")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "MINIO_USE_SSL")
	})
}

func TestSplitList(t *testing.T) {
	assert.Empty(t, splitList(""))
	assert.NotNil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
}
