// ABOUTME: Retrieval orchestrator composing intent, embedding and vector query
// ABOUTME: Always degrades to an empty context; never fails the caller's chat flow
package retrieval

import (
	"context"
	"log"
	"strings"

	"github.com/harper/mathbank/internal/intent"
	"github.com/harper/mathbank/internal/models"
	"github.com/harper/mathbank/internal/store"
)

// Embedder is the single-text embedding surface the orchestrator needs.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// QuestionStore is the similarity query surface the orchestrator needs.
type QuestionStore interface {
	Query(ctx context.Context, embedding []float32, topK int, namespace string, filter *store.Filter) ([]store.Match, error)
}

// Service assembles grounded example questions for the chat layer. It holds
// no per-request state; one Service serves concurrent requests.
//
// Either client may be nil when its credential is absent; the service then
// short-circuits to an empty context without any network call.
type Service struct {
	embedder  Embedder
	store     QuestionStore
	namespace string
	topK      int
}

// NewService creates a retrieval service. topK bounds how many examples a
// context may carry; values below 1 fall back to 5.
func NewService(embedder Embedder, questions QuestionStore, namespace string, topK int) *Service {
	if topK <= 0 {
		topK = 5
	}
	return &Service{embedder: embedder, store: questions, namespace: namespace, topK: topK}
}

// GetRetrievalContext turns a raw chat message into a bounded block of
// example questions. Retrieval is opt-in: messages that neither ask for
// questions nor mention a known topic return an empty context immediately,
// before any embedding or store call. Every external failure degrades to
// the same empty context, because the surrounding chat must keep working
// without grounding examples.
func (s *Service) GetRetrievalContext(ctx context.Context, query string) models.RetrievalContext {
	userIntent := intent.Detect(query)

	if !userIntent.WantsQuestions && userIntent.Topic == "" {
		return models.EmptyRetrievalContext()
	}

	if s.embedder == nil || s.store == nil {
		log.Printf("[Retrieval] not configured, skipping retrieval")
		return models.EmptyRetrievalContext()
	}

	augmented := augmentQuery(userIntent)
	filter := buildFilter(userIntent)

	embedding, err := s.embedder.Embed(ctx, augmented)
	if err != nil {
		log.Printf("[Retrieval] embedding failed, continuing without context: %v", err)
		return models.EmptyRetrievalContext()
	}

	matches, err := s.store.Query(ctx, embedding, s.topK, s.namespace, filter)
	if err != nil {
		log.Printf("[Retrieval] vector query failed, continuing without context: %v", err)
		return models.EmptyRetrievalContext()
	}

	results := make([]models.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, models.SearchResult{
			ID:       m.ID,
			Score:    m.Score,
			Question: models.QuestionFromMetadata(m.ID, m.Metadata),
		})
	}

	return buildContext(results)
}

// augmentQuery prefixes the raw query with the detected grade and topic
// tokens. The extra tokens sharpen the semantic match without changing
// what the user asked.
func augmentQuery(ui intent.UserIntent) string {
	var parts []string
	if ui.GradeLevel != "" {
		parts = append(parts, string(ui.GradeLevel))
	}
	if ui.Topic != "" {
		parts = append(parts, ui.Topic)
	}
	parts = append(parts, ui.RawQuery)
	return strings.Join(parts, " ")
}

// buildFilter maps detected intent onto the store's equality filter.
// Difficulty is deliberately left open; retrieval should surface a spread.
func buildFilter(ui intent.UserIntent) *store.Filter {
	filter := &store.Filter{}
	if ui.GradeLevel != "" {
		filter.GradeLevel = string(ui.GradeLevel)
	}
	if ui.Topic != "" {
		filter.Topic = ui.Topic
	}
	if filter.IsZero() {
		return nil
	}
	return filter
}

// buildContext assembles the final RetrievalContext, keeping store order.
func buildContext(results []models.SearchResult) models.RetrievalContext {
	if len(results) == 0 {
		return models.EmptyRetrievalContext()
	}

	examples := make([]models.Question, 0, len(results))
	for _, r := range results {
		examples = append(examples, r.Question)
	}

	return models.RetrievalContext{
		Examples:      examples,
		FormattedText: FormatContext(examples),
		Count:         len(examples),
	}
}
