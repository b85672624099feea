// ABOUTME: Ingestion pipeline wiring parsed questions through embedding to the store
// ABOUTME: Fail-fast on embedding, failure-isolated on upsert, with an operator report
package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/harper/mathbank/internal/models"
	"github.com/harper/mathbank/internal/store"
)

// BatchEmbedder turns question texts into vectors, order-preserving.
type BatchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Upserter writes vector records into a namespace with per-group failure
// accumulation.
type Upserter interface {
	UpsertBatch(ctx context.Context, records []models.VectorRecord, namespace string) (*store.UpsertReport, error)
}

// Report summarizes one ingestion run for the operator. Ingestion is an
// offline, supervised process, so errors surface here as counts and
// messages rather than being swallowed.
type Report struct {
	RunID     string
	Questions int
	Succeeded int
	Failed    int
	Errors    []string
}

// Pipeline embeds questions and upserts them into the vector store.
type Pipeline struct {
	embedder  BatchEmbedder
	store     Upserter
	namespace string
}

// NewPipeline wires an ingestion pipeline for one namespace.
func NewPipeline(embedder BatchEmbedder, upserter Upserter, namespace string) *Pipeline {
	return &Pipeline{embedder: embedder, store: upserter, namespace: namespace}
}

// Run ingests the given questions. Embedding is all-or-nothing: any
// provider failure aborts the run with no partial writes. Upserting is
// failure-isolated per group; the report carries what succeeded and what
// did not.
func (p *Pipeline) Run(ctx context.Context, questions []models.Question) (*Report, error) {
	report := &Report{
		RunID:     fmt.Sprintf("ingest_%s", uuid.New().String()[:8]),
		Questions: len(questions),
	}
	if len(questions) == 0 {
		return report, nil
	}

	texts := make([]string, len(questions))
	for i, q := range questions {
		texts[i] = embeddingText(q)
	}

	log.Printf("[Ingest] %s: embedding %d questions", report.RunID, len(texts))
	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding batch: %w", err)
	}

	records := make([]models.VectorRecord, len(questions))
	for i, q := range questions {
		records[i] = models.VectorRecord{
			ID:        q.ID,
			Embedding: vectors[i],
			Metadata:  models.QuestionMetadata(q),
		}
	}

	log.Printf("[Ingest] %s: upserting %d records into %q", report.RunID, len(records), p.namespace)
	upsert, err := p.store.UpsertBatch(ctx, records, p.namespace)
	if err != nil {
		return nil, fmt.Errorf("upserting batch: %w", err)
	}

	report.Succeeded = upsert.Succeeded
	report.Failed = upsert.Failed
	report.Errors = upsert.Errors
	return report, nil
}

// embeddingText is what actually gets embedded for a question: grade and
// topic tokens up front, mirroring how query-time augmentation builds its
// query string, then the question body.
func embeddingText(q models.Question) string {
	return fmt.Sprintf("%s %s %s %s", q.GradeLevel, q.Topic, q.Subtopic, q.Text)
}
