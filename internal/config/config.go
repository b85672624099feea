// ABOUTME: Centralized configuration for the mathbank retrieval subsystem
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the retrieval subsystem
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	EmbeddingModel string
	Dimensions     int
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Vector store settings
	DatabaseURL  string
	Namespace    string
	MaxListPages int

	// Retrieval settings
	TopK int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel: getEnv("MATHBANK_EMBEDDING_MODEL", "text-embedding-3-small"),
		Dimensions:     getEnvInt("MATHBANK_VECTOR_DIMENSION", 1536),
		Timeout:        getEnvDuration("MATHBANK_EMBED_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("MATHBANK_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("MATHBANK_RETRY_DELAY", 2*time.Second),
		DatabaseURL:    os.Getenv("MATHBANK_DATABASE_URL"),
		Namespace:      getEnv("MATHBANK_NAMESPACE", "questions"),
		MaxListPages:   getEnvInt("MATHBANK_MAX_LIST_PAGES", 1000),
		TopK:           getEnvInt("MATHBANK_TOP_K", 5),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	if c.Dimensions <= 0 {
		return fmt.Errorf("MATHBANK_VECTOR_DIMENSION must be positive, got %d", c.Dimensions)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("MATHBANK_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("MATHBANK_TOP_K must be positive, got %d", c.TopK)
	}
	if c.MaxListPages <= 0 {
		return fmt.Errorf("MATHBANK_MAX_LIST_PAGES must be positive, got %d", c.MaxListPages)
	}
	return nil
}

// IsEmbeddingConfigured reports whether the embedding provider credential is
// present. Retrieval must not attempt any network call when this is false.
func (c *Config) IsEmbeddingConfigured() bool {
	return c.OpenAIKey != ""
}

// IsStoreConfigured reports whether the vector store connection settings are
// present.
func (c *Config) IsStoreConfigured() bool {
	return c.DatabaseURL != "" && c.Namespace != ""
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
