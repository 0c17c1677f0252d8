package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prettyknit/pattern-service/internal/language"
)

// ServiceConfig holds the pattern service configuration
type ServiceConfig struct {
	Port string

	// OpenAI-compatible chat completion endpoint. An empty key routes all
	// translation through the glossary dictionary.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	LLMTimeout    time.Duration
	LLMRateLimit  float64 // requests per second, 0 disables the limiter

	GlossaryPath string
	FontDir      string
	FooterText   string

	// Translation cache, enabled only when RedisHost is set
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	TranslationCacheTTL time.Duration

	SecretKey       string
	MaxRequestBytes int64
	WriteTimeout    time.Duration
	EnableCORS      bool

	InstanceID string
}

// LoadFromEnv loads the service configuration from environment variables.
// .env files are loaded by the binaries before this is called.
func LoadFromEnv() *ServiceConfig {
	llmTimeout := getEnvAsDurationOrDefault("LLM_TIMEOUT", 60*time.Second)
	targets := len(language.Default().Targets())

	return &ServiceConfig{
		Port: getEnvOrDefault("PORT", "8080"),

		OpenAIAPIKey:  getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o"),
		LLMTimeout:    llmTimeout,
		LLMRateLimit:  getEnvAsFloatOrDefault("LLM_REQUESTS_PER_SECOND", 0),

		GlossaryPath: getEnvOrDefault("GLOSSARY_PATH", ""),
		FontDir:      getEnvOrDefault("FONT_DIR", "static/fonts"),
		FooterText:   getEnvOrDefault("FOOTER_TEXT", "Prettyknit.se"),

		RedisHost:           getEnvOrDefault("REDIS_HOST", ""),
		RedisPort:           getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword:       getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:             getEnvAsIntOrDefault("REDIS_DB", 0),
		TranslationCacheTTL: getEnvAsDurationOrDefault("TRANSLATION_CACHE_TTL", 24*time.Hour),

		SecretKey:       getEnvOrDefault("SECRET_KEY", ""),
		MaxRequestBytes: int64(getEnvAsIntOrDefault("MAX_REQUEST_BYTES", 25<<20)),
		WriteTimeout:    getEnvAsDurationOrDefault("SERVER_WRITE_TIMEOUT", BatchWriteTimeout(llmTimeout, targets)),
		EnableCORS:      getEnvAsBoolOrDefault("ENABLE_CORS", true),

		InstanceID: getDynamicInstanceID(),
	}
}

// BatchWriteTimeout is long enough to deliver an archive for targets
// languages when every title and content call runs into llmTimeout.
// Rendering and the response write get one extra minute.
func BatchWriteTimeout(llmTimeout time.Duration, targets int) time.Duration {
	return time.Duration(2*targets)*llmTimeout + time.Minute
}

// LLMEnabled reports whether an external translation service is configured
func (c *ServiceConfig) LLMEnabled() bool {
	return strings.TrimSpace(c.OpenAIAPIKey) != ""
}

// CacheEnabled reports whether the Redis translation cache is configured
func (c *ServiceConfig) CacheEnabled() bool {
	return c.RedisHost != ""
}

// Validate checks values that would make the server unusable
func (c *ServiceConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("llm timeout must be positive, got %s", c.LLMTimeout)
	}
	if c.LLMRateLimit < 0 {
		return fmt.Errorf("llm rate limit must not be negative, got %v", c.LLMRateLimit)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %s", c.WriteTimeout)
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("max request bytes must be positive, got %d", c.MaxRequestBytes)
	}
	return nil
}

// getEnvOrDefault gets environment variable or returns default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault gets environment variable as int or returns default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault gets environment variable as bool or returns default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getDynamicInstanceID returns the hostname (pod name in Kubernetes) or a
// timestamp based fallback.
func getDynamicInstanceID() string {
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		return hostname
	}
	return fmt.Sprintf("pattern-service-%d", time.Now().UnixNano())
}
