// ABOUTME: Shared client wiring for CLI commands
// ABOUTME: Loads .env plus config and constructs embedding and store clients
package commands

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/harper/mathbank/internal/config"
	"github.com/harper/mathbank/internal/llm"
	"github.com/harper/mathbank/internal/store"
)

// loadConfig reads .env (when present) and the environment.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load()
}

// newEmbedder constructs the embedding client, failing with a clear message
// when the credential is absent.
func newEmbedder(cfg *config.Config) (*llm.Client, error) {
	if !cfg.IsEmbeddingConfigured() {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return llm.NewClient(cfg)
}

// newStore connects to the vector index and wraps it in the store client.
// The caller owns the returned index and must Close it.
func newStore(ctx context.Context, cfg *config.Config) (*store.Client, *store.PgIndex, error) {
	if !cfg.IsStoreConfigured() {
		return nil, nil, fmt.Errorf("MATHBANK_DATABASE_URL is not set")
	}

	index, err := store.NewPgIndex(ctx, cfg.DatabaseURL, cfg.Dimensions)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to vector store: %w", err)
	}
	return store.NewClient(index, cfg.Dimensions, cfg.MaxListPages), index, nil
}
