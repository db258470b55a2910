package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"loan-payment/logger"
)

// Config holds configuration for the HTTP API.
type Config struct {
	Addr           string   `toml:"addr"`
	LogLevel       string   `toml:"log_level"`
	LogPretty      bool     `toml:"log_pretty"`
	RedisAddr      string   `toml:"redis_addr"`
	CacheTTL       string   `toml:"cache_ttl"`
	RateLimitRPS   float64  `toml:"rate_limit_rps"`
	RateLimitBurst int      `toml:"rate_limit_burst"`
	PowerStrategy  string   `toml:"power_strategy"`
	CORSOrigins    []string `toml:"cors_origins"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:           ":8080",
		LogLevel:       "info",
		CacheTTL:       "1h",
		RateLimitRPS:   5,
		RateLimitBurst: 10,
		PowerStrategy:  "decimal",
		CORSOrigins:    []string{"*"},
	}
}

// Load builds the configuration from defaults, the optional TOML file at
// path, a .env file and the environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// Load .env file if it exists
	_ = godotenv.Load()

	cfg.Addr = getEnv("LOAN_ADDR", cfg.Addr)
	cfg.LogLevel = getEnv("LOAN_LOG_LEVEL", cfg.LogLevel)
	cfg.LogPretty = getEnvAsBool("LOAN_LOG_PRETTY", cfg.LogPretty)
	cfg.RedisAddr = getEnv("LOAN_REDIS_ADDR", cfg.RedisAddr)
	cfg.CacheTTL = getEnv("LOAN_CACHE_TTL", cfg.CacheTTL)
	cfg.RateLimitRPS = getEnvAsFloat("LOAN_RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = getEnvAsInt("LOAN_RATE_LIMIT_BURST", cfg.RateLimitBurst)
	cfg.PowerStrategy = getEnv("LOAN_POWER_STRATEGY", cfg.PowerStrategy)
	if origins := os.Getenv("LOAN_CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if _, err := c.CacheTTLDuration(); err != nil {
		return err
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive (rps=%v, burst=%d)", c.RateLimitRPS, c.RateLimitBurst)
	}
	switch c.PowerStrategy {
	case "decimal", "float":
	default:
		return fmt.Errorf("invalid power strategy %q", c.PowerStrategy)
	}
	return nil
}

// CacheTTLDuration parses CacheTTL. An empty value or "0" disables expiry.
func (c *Config) CacheTTLDuration() (time.Duration, error) {
	if c.CacheTTL == "" || c.CacheTTL == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache ttl %q: %w", c.CacheTTL, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid cache ttl %q: negative", c.CacheTTL)
	}
	return d, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
