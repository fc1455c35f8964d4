package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
// Every external integration is optional: with no database, bucket or LLM keys
// the service still composes and returns files.
type Config struct {
	// Environment
	Environment string
	Port        string

	// History database (optional)
	DatabaseURL string

	// Artifact storage (optional)
	S3Bucket  string
	S3Prefix  string
	AWSRegion string

	// In-memory fallback when no bucket is set; entries live for ShareLinkTTL
	MemoryStoreEntries int

	// CloudWatch metrics
	MetricsEnabled   bool
	MetricsNamespace string

	// Share links
	ShareSecret   string
	ShareLinkTTL  time.Duration
	PublicBaseURL string

	// Engine limits
	NoteCeiling int

	// LLM API Keys for the brief interpreter
	OpenAIAPIKey     string
	GeminiAPIKey     string
	InterpreterModel string

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from an upstream gateway
	AuthMode string
}

func Load() *Config {
	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3Prefix:           getEnv("S3_PREFIX", "compositions/"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		MemoryStoreEntries: getInt("MEMORY_STORE_ENTRIES", 256),
		MetricsEnabled:     getEnv("METRICS_ENABLED", "false") == "true",
		MetricsNamespace:   getEnv("METRICS_NAMESPACE", "Songsmith/API"),
		ShareSecret:        getEnv("SHARE_SECRET", ""),
		ShareLinkTTL:       getDuration("SHARE_LINK_TTL", 24*time.Hour),
		PublicBaseURL:      getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		NoteCeiling:        getInt("NOTE_CEILING", 10000),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		InterpreterModel:   getEnv("INTERPRETER_MODEL", "gpt-5-mini"),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		LangfusePublicKey:  getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:  getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:       getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:    getEnv("LANGFUSE_ENABLED", "false") == "true",
		AuthMode:           getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

// IsGatewayMode returns true if running behind the auth gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// HistoryEnabled reports whether compositions are recorded in Postgres
func (c *Config) HistoryEnabled() bool {
	return c.DatabaseURL != ""
}

// SharingEnabled reports whether signed download links can be issued
func (c *Config) SharingEnabled() bool {
	return c.ShareSecret != ""
}
