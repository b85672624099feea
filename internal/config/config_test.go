// ABOUTME: Tests for environment-based configuration loading
// ABOUTME: Covers defaults, overrides, validation and configured checks
package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv clears inherited values per test.
	for _, key := range []string{
		"OPENAI_API_KEY",
		"MATHBANK_EMBEDDING_MODEL",
		"MATHBANK_VECTOR_DIMENSION",
		"MATHBANK_EMBED_TIMEOUT",
		"MATHBANK_MAX_RETRIES",
		"MATHBANK_RETRY_DELAY",
		"MATHBANK_DATABASE_URL",
		"MATHBANK_NAMESPACE",
		"MATHBANK_MAX_LIST_PAGES",
		"MATHBANK_TOP_K",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %q", cfg.EmbeddingModel)
	}
	if cfg.Dimensions != 1536 {
		t.Errorf("Dimensions = %d, want 1536", cfg.Dimensions)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.Namespace != "questions" {
		t.Errorf("Namespace = %q, want questions", cfg.Namespace)
	}
	if cfg.MaxListPages != 1000 {
		t.Errorf("MaxListPages = %d, want 1000", cfg.MaxListPages)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MATHBANK_EMBEDDING_MODEL", "text-embedding-3-large")
	t.Setenv("MATHBANK_VECTOR_DIMENSION", "3072")
	t.Setenv("MATHBANK_EMBED_TIMEOUT", "10s")
	t.Setenv("MATHBANK_TOP_K", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OpenAIKey != "sk-test" {
		t.Errorf("OpenAIKey = %q", cfg.OpenAIKey)
	}
	if cfg.EmbeddingModel != "text-embedding-3-large" {
		t.Errorf("EmbeddingModel = %q", cfg.EmbeddingModel)
	}
	if cfg.Dimensions != 3072 {
		t.Errorf("Dimensions = %d, want 3072", cfg.Dimensions)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.TopK != 8 {
		t.Errorf("TopK = %d, want 8", cfg.TopK)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MATHBANK_VECTOR_DIMENSION", "not-a-number")
	t.Setenv("MATHBANK_EMBED_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Dimensions != 1536 {
		t.Errorf("Dimensions = %d, want default 1536 for malformed input", cfg.Dimensions)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s for malformed input", cfg.Timeout)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Dimensions: 1536, MaxRetries: 3, TopK: 5, MaxListPages: 1000}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero dimensions", func(c *Config) { c.Dimensions = 0 }, true},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, true},
		{"excessive retries", func(c *Config) { c.MaxRetries = 11 }, true},
		{"zero topK", func(c *Config) { c.TopK = 0 }, true},
		{"zero page bound", func(c *Config) { c.MaxListPages = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfiguredChecks(t *testing.T) {
	cfg := &Config{}
	if cfg.IsEmbeddingConfigured() {
		t.Error("IsEmbeddingConfigured() = true without key")
	}
	if cfg.IsStoreConfigured() {
		t.Error("IsStoreConfigured() = true without database URL")
	}

	cfg.OpenAIKey = "sk-test"
	cfg.DatabaseURL = "postgres://localhost/mathbank"
	cfg.Namespace = "questions"
	if !cfg.IsEmbeddingConfigured() {
		t.Error("IsEmbeddingConfigured() = false with key")
	}
	if !cfg.IsStoreConfigured() {
		t.Error("IsStoreConfigured() = false with database URL and namespace")
	}
}
