package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env         string
	ListenAddr  string
	MetricsAddr string
	MaxRetries  int
	RetryDelay  time.Duration
}

func Load() *Config {
	return &Config{
		Env:         getEnv("APP_ENV", "dev"),
		ListenAddr:  getEnv("CHAT_ADDR", ":12345"),
		MetricsAddr: getEnv("METRICS_ADDR", ":9090"),
		MaxRetries:  getEnvInt("CHAT_MAX_RETRIES", 5),
		RetryDelay:  getEnvDuration("CHAT_RETRY_DELAY", 2*time.Second),
	}
}

// getEnv returns the env var or a default
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt parses an int env var with a fallback
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return def
}

// getEnvDuration parses a duration env var (e.g. "2s") with a fallback
func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
