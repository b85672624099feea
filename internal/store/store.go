// ABOUTME: Namespace-scoped vector store client with chunking and failure isolation
// ABOUTME: Wraps an external similarity index behind the consumer-defined Index interface
package store

import (
	"context"
	"fmt"
	"log"

	"github.com/harper/mathbank/internal/models"
)

const (
	// upsertGroupSize is how many records go into one index call.
	upsertGroupSize = 100
	// listPageSize is the page size used when walking all ids.
	listPageSize = 100
)

// StoreError wraps vector index failures. Ingestion accumulates them per
// group; query-time callers catch them and degrade to empty results.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("vector store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Filter restricts a similarity query to records whose metadata equals the
// given values. Empty fields mean no restriction; set fields combine as a
// conjunction, applied server-side by the index.
type Filter struct {
	GradeLevel string
	Topic      string
	Difficulty string
}

// IsZero reports whether the filter restricts nothing.
func (f *Filter) IsZero() bool {
	return f == nil || (f.GradeLevel == "" && f.Topic == "" && f.Difficulty == "")
}

// Metadata returns the filter as an equality metadata map, omitting unset
// fields.
func (f *Filter) Metadata() map[string]any {
	meta := map[string]any{}
	if f == nil {
		return meta
	}
	if f.GradeLevel != "" {
		meta[models.MetaGradeLevel] = f.GradeLevel
	}
	if f.Topic != "" {
		meta[models.MetaTopic] = f.Topic
	}
	if f.Difficulty != "" {
		meta[models.MetaDifficulty] = f.Difficulty
	}
	return meta
}

// QueryRequest is one similarity query against a namespace.
type QueryRequest struct {
	Vector []float32
	TopK   int
	Filter *Filter
}

// Match is one raw query hit: id, provider similarity score and the stored
// metadata. Matches arrive ordered by score descending; the client never
// re-sorts them, so ties keep index order.
type Match struct {
	ID       string
	Score    float32
	Metadata map[string]any
}

// IndexStats is the read-only introspection view of the index.
type IndexStats struct {
	TotalRecords       int
	PerNamespaceCounts map[string]int
}

// Index is the minimal surface the client needs from the external
// similarity index. Production uses the pgvector implementation; tests
// substitute a mock.
type Index interface {
	Upsert(ctx context.Context, namespace string, records []models.VectorRecord) error
	Query(ctx context.Context, namespace string, req QueryRequest) ([]Match, error)
	Fetch(ctx context.Context, namespace string, ids []string) ([]models.VectorRecord, error)
	Delete(ctx context.Context, namespace string, ids []string) error
	DeleteAll(ctx context.Context, namespace string) error
	ListPaginated(ctx context.Context, namespace string, limit int, token string) (ids []string, next string, err error)
	Stats(ctx context.Context) (*IndexStats, error)
}

// UpsertReport summarizes a batched upsert. Succeeded+Failed always equals
// the number of records submitted.
type UpsertReport struct {
	Succeeded int
	Failed    int
	Errors    []string
}

// Client is the namespace-scoped vector store client. It owns chunking,
// dimension guarding, pagination bounding and the never-raise cleanup
// semantics; similarity math stays in the index.
//
// A Client holds no mutable state and is safe for concurrent use.
type Client struct {
	index        Index
	dimensions   int
	maxListPages int
}

// NewClient creates a store client over the given index. dimensions is the
// provider's fixed vector length for this deployment; maxListPages bounds
// ListAllIDs against an index that never terminates pagination.
func NewClient(index Index, dimensions, maxListPages int) *Client {
	if maxListPages <= 0 {
		maxListPages = 1000
	}
	return &Client{index: index, dimensions: dimensions, maxListPages: maxListPages}
}

// UpsertBatch writes records to the namespace in groups of 100, issued
// sequentially. Same-id records overwrite (upsert semantics). A failing
// group is recorded and the remaining groups still run; the report carries
// per-group error messages for the operator.
//
// Mixed embedding dimensions are undefined behavior for the index, so they
// are rejected here before any network call.
func (c *Client) UpsertBatch(ctx context.Context, records []models.VectorRecord, namespace string) (*UpsertReport, error) {
	for i := range records {
		if err := records[i].ValidateDimension(c.dimensions); err != nil {
			return nil, &StoreError{Op: "upsert", Err: err}
		}
	}

	report := &UpsertReport{}
	for start := 0; start < len(records); start += upsertGroupSize {
		end := start + upsertGroupSize
		if end > len(records) {
			end = len(records)
		}
		group := records[start:end]

		if err := c.index.Upsert(ctx, namespace, group); err != nil {
			report.Failed += len(group)
			report.Errors = append(report.Errors, fmt.Sprintf("group %d-%d: %v", start, end-1, err))
			log.Printf("[Store] upsert group %d-%d failed: %v", start, end-1, err)
			continue
		}
		report.Succeeded += len(group)
	}

	return report, nil
}

// Query runs a filtered similarity query and returns at most topK matches
// in the order the index produced them.
func (c *Client) Query(ctx context.Context, embedding []float32, topK int, namespace string, filter *Filter) ([]Match, error) {
	if len(embedding) != c.dimensions {
		return nil, &StoreError{Op: "query", Err: fmt.Errorf("query dimension mismatch: expected %d, got %d", c.dimensions, len(embedding))}
	}
	if topK <= 0 {
		topK = 5
	}

	matches, err := c.index.Query(ctx, namespace, QueryRequest{Vector: embedding, TopK: topK, Filter: filter})
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Fetch retrieves records by id. Unknown ids are simply absent from the
// result.
func (c *Client) Fetch(ctx context.Context, ids []string, namespace string) ([]models.VectorRecord, error) {
	records, err := c.index.Fetch(ctx, namespace, ids)
	if err != nil {
		return nil, &StoreError{Op: "fetch", Err: err}
	}
	return records, nil
}

// DeleteOne removes a single record. Best effort: failures are logged and
// reported as false so cleanup scripts keep running.
func (c *Client) DeleteOne(ctx context.Context, id, namespace string) bool {
	if err := c.index.Delete(ctx, namespace, []string{id}); err != nil {
		log.Printf("[Store] delete %s failed: %v", id, err)
		return false
	}
	return true
}

// DeleteMany removes the given records. Best effort, same as DeleteOne.
func (c *Client) DeleteMany(ctx context.Context, ids []string, namespace string) bool {
	if len(ids) == 0 {
		return true
	}
	if err := c.index.Delete(ctx, namespace, ids); err != nil {
		log.Printf("[Store] delete %d ids failed: %v", len(ids), err)
		return false
	}
	return true
}

// DeleteAll clears a whole namespace. Best effort, same as DeleteOne.
func (c *Client) DeleteAll(ctx context.Context, namespace string) bool {
	if err := c.index.DeleteAll(ctx, namespace); err != nil {
		log.Printf("[Store] delete namespace %s failed: %v", namespace, err)
		return false
	}
	return true
}

// ListAllIDs pages through every id in the namespace using the index's
// continuation token. The walk is bounded: an index that keeps returning
// tokens past the page limit yields a StoreError instead of looping
// forever.
func (c *Client) ListAllIDs(ctx context.Context, namespace string) ([]string, error) {
	var all []string
	token := ""

	for page := 0; ; page++ {
		if page >= c.maxListPages {
			return nil, &StoreError{Op: "list", Err: fmt.Errorf("pagination did not terminate after %d pages", c.maxListPages)}
		}

		ids, next, err := c.index.ListPaginated(ctx, namespace, listPageSize, token)
		if err != nil {
			return nil, &StoreError{Op: "list", Err: err}
		}
		all = append(all, ids...)

		if next == "" {
			return all, nil
		}
		token = next
	}
}

// DescribeStats returns index statistics, or nil on any connectivity
// failure. Callers use this for optional diagnostics only, so it never
// raises.
func (c *Client) DescribeStats(ctx context.Context) *IndexStats {
	stats, err := c.index.Stats(ctx)
	if err != nil {
		log.Printf("[Store] stats unavailable: %v", err)
		return nil
	}
	return stats
}
