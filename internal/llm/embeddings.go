// ABOUTME: OpenAI embedding client with retry logic and sequential batching
// ABOUTME: Produces fixed-dimension vectors for question indexing and queries
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/harper/mathbank/internal/config"
	"github.com/harper/mathbank/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// maxBatchSize is the provider's per-call input limit. EmbedBatch chunks
// its input at this size and issues one call per chunk, sequentially, to
// stay inside the provider's rate limits.
const maxBatchSize = 100

// EmbeddingError wraps any failure to produce embeddings, including a
// missing credential. Ingestion treats it as fatal for the batch; query-time
// retrieval catches it and degrades to an empty context.
type EmbeddingError struct {
	Op  string
	Err error
}

func (e *EmbeddingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("embedding %s failed", e.Op)
	}
	return fmt.Sprintf("embedding %s failed: %v", e.Op, e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// Client wraps the OpenAI embeddings API with retry and batching.
// A Client is immutable after construction and safe for concurrent use.
type Client struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates an embedding client from configuration. It fails with
// an EmbeddingError when no API key is configured; callers gate on
// config.IsEmbeddingConfigured to avoid constructing a dead client.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, &EmbeddingError{Op: "init", Err: fmt.Errorf("OPENAI_API_KEY is not set")}
	}

	return &Client{
		client:     openai.NewClient(cfg.OpenAIKey),
		model:      openai.EmbeddingModel(cfg.EmbeddingModel),
		dimensions: cfg.Dimensions,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Dimensions returns the fixed output vector length for this configuration.
// Callers must not mix vectors of different lengths in one namespace.
func (c *Client) Dimensions() int { return c.dimensions }

// Embed generates a single embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.embedChunk(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for all texts, preserving input order 1:1.
// Input is chunked into groups of at most 100 and each group is sent as one
// provider call, strictly sequentially. Any group failure aborts the whole
// call; partial vector lists are never returned, so ingestion stays
// all-or-nothing on the embedding side.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		chunk, err := c.embedChunk(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("batch group starting at %d: %w", start, err)
		}
		vectors = append(vectors, chunk...)
	}

	return vectors, nil
}

// embedChunk issues one provider call for up to maxBatchSize texts, with
// retry and exponential backoff on transient failures.
func (c *Client) embedChunk(ctx context.Context, texts []string) ([][]float32, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(util.CalculateBackoff(c.retryDelay, attempt)):
			case <-ctx.Done():
				return nil, &EmbeddingError{Op: "embed", Err: ctx.Err()}
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input:      texts,
			Model:      c.model,
			Dimensions: c.dimensions,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = fmt.Errorf("attempt %d: got %d embeddings for %d inputs", attempt+1, len(resp.Data), len(texts))
			continue
		}

		// The API reports an index per vector; honor it so output order
		// always matches input order.
		vectors := make([][]float32, len(texts))
		for _, item := range resp.Data {
			if item.Index < 0 || item.Index >= len(vectors) {
				return nil, &EmbeddingError{Op: "embed", Err: fmt.Errorf("embedding index %d out of range", item.Index)}
			}
			vectors[item.Index] = item.Embedding
		}
		for i, v := range vectors {
			if len(v) == 0 {
				return nil, &EmbeddingError{Op: "embed", Err: fmt.Errorf("empty embedding returned for input %d", i)}
			}
		}
		return vectors, nil
	}

	return nil, &EmbeddingError{Op: "embed", Err: fmt.Errorf("after %d attempts: %w", c.maxRetries+1, lastErr)}
}
