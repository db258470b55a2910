package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loan.toml")
	content := `
addr = ":9090"
log_level = "debug"
redis_addr = "localhost:6379"
cache_ttl = "5m"
rate_limit_rps = 2.5
rate_limit_burst = 4
power_strategy = "float"
cors_origins = ["https://example.com"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 4, cfg.RateLimitBurst)
	assert.Equal(t, "float", cfg.PowerStrategy)
	assert.Equal(t, []string{"https://example.com"}, cfg.CORSOrigins)

	ttl, err := cfg.CacheTTLDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, ttl)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loan.toml")
	require.NoError(t, os.WriteFile(path, []byte(`addr = ":9090"`), 0o600))

	t.Setenv("LOAN_ADDR", ":7070")
	t.Setenv("LOAN_LOG_PRETTY", "true")
	t.Setenv("LOAN_RATE_LIMIT_BURST", "20")
	t.Setenv("LOAN_CORS_ORIGINS", "https://a.test, https://b.test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad ttl", func(c *Config) { c.CacheTTL = "soon" }},
		{"negative ttl", func(c *Config) { c.CacheTTL = "-1m" }},
		{"zero rps", func(c *Config) { c.RateLimitRPS = 0 }},
		{"zero burst", func(c *Config) { c.RateLimitBurst = 0 }},
		{"bad strategy", func(c *Config) { c.PowerStrategy = "taylor" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestCacheTTLDuration_Disabled(t *testing.T) {
	cfg := Default()
	cfg.CacheTTL = ""
	ttl, err := cfg.CacheTTLDuration()
	require.NoError(t, err)
	assert.Zero(t, ttl)
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "configs", "loan.example.toml"))
	require.NoError(t, err)

	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("example file should match defaults (-want +got):\n%s", diff)
	}
}
