// Package config provides configuration loading and management for the application.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration. It is read once at startup and
// treated as immutable afterwards; every component receives it explicitly.
type Config struct {
	// HTTP server port
	Port string

	// Timeout applied to each outbound call
	RequestTimeout time.Duration

	// Base URLs for external services
	DexScreenerURL string
	HoldersAPIURL  string

	// Generative-text service. An empty key degrades the risk narrative
	// gracefully instead of failing requests.
	OpenAIKey   string
	OpenAIModel string
	OpenAIURL   string

	// Display name used in rendered report headers
	PersonaName string

	// Launchpad page acceptance
	LaunchpadDomain string

	// Vanity-suffix gate for token addresses
	AllowedSuffixes []string
	EnforceSuffix   bool

	// Which input classes the endpoint accepts
	AcceptURL           bool
	AcceptDirectAddress bool

	// Inbound rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Observability
	EnableMetrics bool
	OtelEndpoint  string

	// Market-data circuit breaker
	EnableBreaker    bool
	BreakerThreshold int
	BreakerCooldown  time.Duration

	// Report webhook export
	ExportWebhookURL string
	ExportWebhookKey string
	ExportBatchSize  int
	ExportInterval   time.Duration

	// Report signing
	SignReports bool
}

// Load creates a new Config from environment variables
func Load() Config {
	return Config{
		Port:                GetEnvOrDefault("PORT", "8080"),
		RequestTimeout:      GetEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
		DexScreenerURL:      GetEnvOrDefault("DEXSCREENER_URL", "https://api.dexscreener.com"),
		HoldersAPIURL:       GetEnvOrDefault("HOLDERS_API_URL", "https://api.solana.fm/v1"),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         GetEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIURL:           GetEnvOrDefault("OPENAI_URL", "https://api.openai.com/v1/chat/completions"),
		PersonaName:         GetEnvOrDefault("PERSONA_NAME", "Token Sleuth"),
		LaunchpadDomain:     GetEnvOrDefault("LAUNCHPAD_DOMAIN", "anoncoin.it"),
		AllowedSuffixes:     GetEnvAsList("ALLOWED_SUFFIXES", "doge,DUB"),
		EnforceSuffix:       GetEnvAsBool("ENFORCE_SUFFIX", false),
		AcceptURL:           GetEnvAsBool("ACCEPT_URL", true),
		AcceptDirectAddress: GetEnvAsBool("ACCEPT_DIRECT_ADDRESS", true),
		RateLimitRPS:        GetEnvAsFloat("RATE_LIMIT_RPS", 10.0),
		RateLimitBurst:      GetEnvAsInt("RATE_LIMIT_BURST", 20),
		EnableMetrics:       GetEnvAsBool("ENABLE_METRICS", true),
		OtelEndpoint:        GetEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		EnableBreaker:       GetEnvAsBool("ENABLE_BREAKER", true),
		BreakerThreshold:    GetEnvAsInt("BREAKER_THRESHOLD", 5),
		BreakerCooldown:     GetEnvAsDuration("BREAKER_COOLDOWN", 30*time.Second),
		ExportWebhookURL:    GetEnvOrDefault("EXPORT_WEBHOOK_URL", ""),
		ExportWebhookKey:    os.Getenv("EXPORT_WEBHOOK_API_KEY"),
		ExportBatchSize:     GetEnvAsInt("EXPORT_BATCH_SIZE", 25),
		ExportInterval:      GetEnvAsDuration("EXPORT_INTERVAL", time.Minute),
		SignReports:         GetEnvAsBool("SIGN_REPORTS", false),
	}
}

// GetEnv retrieves an environment variable and whether it exists
func GetEnv(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	return value, exists
}

// GetEnvOrDefault retrieves an environment variable or returns the default value if not set
func GetEnvOrDefault(key, defaultValue string) string {
	if value, exists := GetEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt retrieves an environment variable as an integer with a default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := GetEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsFloat retrieves an environment variable as a float with a default value
func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := GetEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetEnvAsBool retrieves an environment variable as a boolean with a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := GetEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration retrieves an environment variable as a duration with a default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := GetEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetEnvAsList retrieves a comma-separated environment variable as a slice,
// dropping empty entries.
func GetEnvAsList(key, defaultValue string) []string {
	raw := GetEnvOrDefault(key, defaultValue)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
