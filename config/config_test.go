package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		t.Setenv("CONTACT_API_BASE_URL", "https://api.example.com/")
		t.Setenv("FRONTEND_URL", "http://localhost:3000/")
		t.Setenv("APP_ENV", "development")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com", cfg.ContactAPIBaseURL)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
		assert.Equal(t, time.Minute, cfg.RateLimitWindow())
		assert.Equal(t, 30*time.Minute, cfg.FormSessionTTL())
		assert.Equal(t, 5, cfg.RateLimitContactThreshold)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("Should read overrides and ignore invalid numbers", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("ALLOWED_ORIGINS", "https://a.example/, ,https://b.example")
		t.Setenv("RATE_LIMIT_CONTACT_THRESHOLD", "not-a-number")
		t.Setenv("FORM_SESSION_MAX", "50")
		t.Setenv("AUDIT_LOG_ENABLED", "false")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
		assert.Equal(t, 5, cfg.RateLimitContactThreshold)
		assert.Equal(t, 50, cfg.FormSessionMax)
		assert.False(t, cfg.AuditLogEnabled)
	})

	t.Run("Should fall back to BASE_URL for the contact backend", func(t *testing.T) {
		t.Setenv("CONTACT_API_BASE_URL", "")
		require.NoError(t, os.Unsetenv("CONTACT_API_BASE_URL"))
		t.Setenv("BASE_URL", "https://legacy.example.com/")
		assert.Equal(t, "https://legacy.example.com", LoadContactAPIBaseURL())
	})
}
