package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("UPSTREAM_TIMEOUT", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.True(t, cfg.EmailTestMode)
	assert.Equal(t, "0 7 * * *", cfg.ReminderCron)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")
	t.Setenv("EMAIL_TEST_MODE", "off")
	t.Setenv("ALLOWED_ORIGINS", "https://a.cl,https://b.cl")

	cfg := Load()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.False(t, cfg.EmailTestMode)
	assert.Equal(t, []string{"https://a.cl", "https://b.cl"}, cfg.AllowedOrigins)
}

func TestGetEnvDuration_Invalid(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "soon")
	assert.Equal(t, 2*time.Second, getEnvDuration("SOME_TIMEOUT", 2*time.Second))

	t.Setenv("SOME_TIMEOUT", "-3s")
	assert.Equal(t, 2*time.Second, getEnvDuration("SOME_TIMEOUT", 2*time.Second))
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"0", true, false},
		{"maybe", true, true},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Setenv("FLAG", tt.value)
		assert.Equal(t, tt.want, getEnvBool("FLAG", tt.fallback), tt.value)
	}
}
