package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	for _, key := range []string{"GO_ENV", "PORT", "BACKEND_URL", "BACKEND_KEY", "ADMIN_EMAILS", "EMAIL_PROVIDER"} {
		t.Setenv(key, "")
	}

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.AuthTokenExpiry)
	assert.Equal(t, 30*time.Minute, cfg.ClientIdleTimeout)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Empty(t, cfg.AdminEmails)
	assert.False(t, cfg.BackendConfigured())
}

func TestParse_Values(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("BACKEND_URL", "sqlite://:memory:")
	t.Setenv("BACKEND_KEY", "secret")
	t.Setenv("AUTH_TOKEN_EXPIRY", "2h")
	t.Setenv("ADMIN_EMAILS", "boss@x.com, ops@x.com ,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	t.Setenv("EMAIL_PROVIDER", "ses")
	t.Setenv("EMAIL_FROM_ADDRESS", "noreply@x.com")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.BackendConfigured())
	assert.Equal(t, 2*time.Hour, cfg.AuthTokenExpiry)
	assert.Equal(t, []string{"boss@x.com", "ops@x.com"}, cfg.AdminEmails)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, "ses", cfg.Email.Provider)
	assert.Equal(t, "noreply@x.com", cfg.Email.FromAddress)
}

func TestParse_InvalidDuration(t *testing.T) {
	t.Setenv("AUTH_TOKEN_EXPIRY", "soon")
	_, err := Parse()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env:"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&Config{Environment: "production", LogLevel: "warn"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "v", line["k"])

	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
