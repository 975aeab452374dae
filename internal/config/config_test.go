package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "JWT_SECRET", "JWT_TTL", "ADMIN_EMAIL", "ADMIN_PASSWORD", "SECURE_COOKIE", "API_URL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "expenses.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.False(t, cfg.SecureCookie)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("SECURE_COOKIE", "true")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "supersecret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.SecureCookie)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_TTL")
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:      "8080",
		DBPath:    "x.db",
		JWTSecret: "0123456789abcdef",
		JWTTTL:    time.Hour,
		LogFormat: "json",
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Port = "abc"
	bad.JWTSecret = "short"
	bad.AdminEmail = "admin@example.com"
	bad.LogFormat = "xml"

	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "ADMIN_EMAIL")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}
