package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr    string
	CORSOrigins []string

	LogLevel string

	// Flatten memoizer sizing. Entries are keyed by a hash of the raw
	// payload, so the TTL bounds memory, never correctness.
	FlattenCacheTTL        time.Duration
	FlattenCacheMaxEntries int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "insights"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		CORSOrigins: getenvList("CORS_ORIGINS", []string{"http://localhost:5173"}),

		LogLevel: getenv("LOG_LEVEL", "info"),

		FlattenCacheTTL:        getenvDuration("FLATTEN_CACHE_TTL", 15*time.Minute),
		FlattenCacheMaxEntries: getenvInt("FLATTEN_CACHE_MAX_ENTRIES", 256),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}

func getenvList(key string, def []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
