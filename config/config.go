// Package config loads the service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
}

// ServerConfig covers the HTTP listener and its edge concerns.
type ServerConfig struct {
	Port        string
	RateLimit   int
	RateWindow  time.Duration
	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string
}

// CacheConfig sizes the optimization-result cache.
type CacheConfig struct {
	Size int
	TTL  time.Duration
	// DefaultTargets overrides the built-in daily targets, given as four
	// comma-separated values: calories,protein,carbohydrates,fat.
	DefaultTargets []float64
}

// AuthConfig covers both auth modes: static API keys and JWT sessions.
type AuthConfig struct {
	Enabled          bool
	APIKeys          map[string]bool
	JWTSecretKey     string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
}

// DatabaseConfig covers MongoDB and the circuit breaker guarding it.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// Load reads every setting from the environment, falling back to defaults
// that suit local development. Malformed values fall back silently rather
// than failing startup.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:        envString("PORT", "8080"),
			RateLimit:   envInt("RATE_LIMIT", 100),
			RateWindow:  envDuration("RATE_WINDOW", time.Minute),
			CORSOrigins: splitCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser: envString("SWAGGER_USER", ""),
			SwaggerPass: envString("SWAGGER_PASS", ""),
		},
		Cache: CacheConfig{
			Size:           envInt("CACHE_SIZE", 1000),
			TTL:            envDuration("CACHE_TTL", 5*time.Minute),
			DefaultTargets: splitTargets(os.Getenv("DEFAULT_TARGETS")),
		},
		Auth: AuthConfig{
			Enabled:          envBool("AUTH_ENABLED", false),
			APIKeys:          splitAPIKeys(os.Getenv("API_KEYS")),
			JWTSecretKey:     envString("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			JWTRefreshSecret: envString("JWT_REFRESH_SECRET_KEY", "your-refresh-secret-key-change-in-production"),
			AccessTokenTTL:   envDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTokenTTL:  envDuration("JWT_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		},
		Database: DatabaseConfig{
			URI:                            envString("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   envString("MONGODB_DATABASE", "nutrihub"),
			LogsTTL:                        envDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        envBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: envInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: envInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          envDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// splitTargets parses the comma-separated macro override. Negative or
// unparsable entries are dropped; the optimizer validates the final count.
func splitTargets(s string) []float64 {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	targets := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err == nil && v >= 0 {
			targets = append(targets, v)
		}
	}
	return targets
}

func splitAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := make(map[string]bool)
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys[k] = true
		}
	}
	return keys
}

// splitCORSOrigins appends configured origins to the local-development
// defaults, so a production deployment never locks out local tooling.
func splitCORSOrigins(s string) []string {
	origins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return origins
	}
	for _, p := range strings.Split(s, ",") {
		if origin := strings.TrimSpace(p); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
