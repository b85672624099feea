// ABOUTME: Postgres + pgvector implementation of the Index interface
// ABOUTME: Cosine similarity queries with JSONB metadata filters and keyset paging
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"

	"github.com/harper/mathbank/internal/models"
)

// PgIndex stores question vectors in a single Postgres table, partitioned
// logically by the namespace column. Similarity uses pgvector's cosine
// distance operator; scores are mapped into [0,1].
type PgIndex struct {
	pool       *pgxpool.Pool
	dimensions int
}

var _ Index = (*PgIndex)(nil)

// NewPgIndex connects to Postgres and registers the pgvector types on every
// pooled connection.
func NewPgIndex(ctx context.Context, databaseURL string, dimensions int) (*PgIndex, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	return &PgIndex{pool: pool, dimensions: dimensions}, nil
}

// EnsureSchema creates the vectors table and its indexes if missing.
// Called by operator commands before ingestion.
func (p *PgIndex) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS question_vectors (
			namespace text NOT NULL,
			id text NOT NULL,
			embedding vector(%d) NOT NULL,
			metadata jsonb NOT NULL DEFAULT '{}',
			PRIMARY KEY (namespace, id)
		)`, p.dimensions),
		`CREATE INDEX IF NOT EXISTS question_vectors_metadata_idx
			ON question_vectors USING gin (metadata jsonb_path_ops)`,
	}

	for _, stmt := range statements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}

// Close releases the connection pool.
func (p *PgIndex) Close() {
	p.pool.Close()
}

const upsertSQL = `
	INSERT INTO question_vectors (namespace, id, embedding, metadata)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (namespace, id)
	DO UPDATE SET embedding = EXCLUDED.embedding, metadata = EXCLUDED.metadata`

// Upsert writes one group of records in a single batched round trip.
func (p *PgIndex) Upsert(ctx context.Context, namespace string, records []models.VectorRecord) error {
	batch := &pgx.Batch{}
	for i := range records {
		metaJSON, err := json.Marshal(records[i].Metadata)
		if err != nil {
			return fmt.Errorf("marshaling metadata for %s: %w", records[i].ID, err)
		}
		batch.Queue(upsertSQL, namespace, records[i].ID, pgvector.NewVector(records[i].Embedding), metaJSON)
	}

	results := p.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upserting %s: %w", records[i].ID, err)
		}
	}
	return nil
}

// Query runs a cosine similarity search, optionally restricted by an
// equality metadata filter (JSONB containment keeps the conjunction
// server-side). Ordering by distance is the database's job; rows are
// returned exactly as received.
func (p *PgIndex) Query(ctx context.Context, namespace string, req QueryRequest) ([]Match, error) {
	vec := pgvector.NewVector(req.Vector)

	var rows pgx.Rows
	var err error
	if req.Filter.IsZero() {
		rows, err = p.pool.Query(ctx, `
			SELECT id, 1 - (embedding <=> $1) AS similarity, metadata
			FROM question_vectors
			WHERE namespace = $2
			ORDER BY embedding <=> $1
			LIMIT $3`,
			vec, namespace, req.TopK)
	} else {
		filterJSON, marshalErr := json.Marshal(req.Filter.Metadata())
		if marshalErr != nil {
			return nil, fmt.Errorf("marshaling filter: %w", marshalErr)
		}
		rows, err = p.pool.Query(ctx, `
			SELECT id, 1 - (embedding <=> $1) AS similarity, metadata
			FROM question_vectors
			WHERE namespace = $2 AND metadata @> $3
			ORDER BY embedding <=> $1
			LIMIT $4`,
			vec, namespace, filterJSON, req.TopK)
	}
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var (
			id       string
			score    float64
			metaJSON []byte
		)
		if err := rows.Scan(&id, &score, &metaJSON); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}

		metadata := map[string]any{}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &metadata); err != nil {
				metadata = map[string]any{}
			}
		}

		matches = append(matches, Match{ID: id, Score: clampScore(score), Metadata: metadata})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading matches: %w", err)
	}

	return matches, nil
}

// clampScore maps cosine similarity into the provider-facing [0,1] range.
// Opposed vectors would otherwise report negative similarity.
func clampScore(score float64) float32 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return float32(score)
}

// Fetch retrieves stored records by id. Unknown ids are simply absent.
func (p *PgIndex) Fetch(ctx context.Context, namespace string, ids []string) ([]models.VectorRecord, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, embedding, metadata
		FROM question_vectors
		WHERE namespace = $1 AND id = ANY($2)`,
		namespace, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching vectors: %w", err)
	}
	defer rows.Close()

	var records []models.VectorRecord
	for rows.Next() {
		var (
			id       string
			vec      pgvector.Vector
			metaJSON []byte
		)
		if err := rows.Scan(&id, &vec, &metaJSON); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		metadata := map[string]any{}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &metadata); err != nil {
				metadata = map[string]any{}
			}
		}

		records = append(records, models.VectorRecord{ID: id, Embedding: vec.Slice(), Metadata: metadata})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	return records, nil
}

// Delete removes the given ids from a namespace.
func (p *PgIndex) Delete(ctx context.Context, namespace string, ids []string) error {
	_, err := p.pool.Exec(ctx,
		`DELETE FROM question_vectors WHERE namespace = $1 AND id = ANY($2)`,
		namespace, ids)
	if err != nil {
		return fmt.Errorf("deleting vectors: %w", err)
	}
	return nil
}

// DeleteAll clears an entire namespace.
func (p *PgIndex) DeleteAll(ctx context.Context, namespace string) error {
	_, err := p.pool.Exec(ctx,
		`DELETE FROM question_vectors WHERE namespace = $1`, namespace)
	if err != nil {
		return fmt.Errorf("deleting namespace: %w", err)
	}
	return nil
}

// ListPaginated returns one page of ids in id order. The continuation token
// is the last id of the page; an empty next token means the walk is done.
func (p *PgIndex) ListPaginated(ctx context.Context, namespace string, limit int, token string) ([]string, string, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id FROM question_vectors
		WHERE namespace = $1 AND id > $2
		ORDER BY id
		LIMIT $3`,
		namespace, token, limit)
	if err != nil {
		return nil, "", fmt.Errorf("listing ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, "", fmt.Errorf("scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("reading ids: %w", err)
	}

	next := ""
	if len(ids) == limit {
		next = ids[len(ids)-1]
	}
	return ids, next, nil
}

// Stats counts records per namespace.
func (p *PgIndex) Stats(ctx context.Context) (*IndexStats, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT namespace, count(*) FROM question_vectors GROUP BY namespace`)
	if err != nil {
		return nil, fmt.Errorf("counting vectors: %w", err)
	}
	defer rows.Close()

	stats := &IndexStats{PerNamespaceCounts: map[string]int{}}
	for rows.Next() {
		var (
			namespace string
			count     int64
		)
		if err := rows.Scan(&namespace, &count); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		stats.PerNamespaceCounts[namespace] = int(count)
		stats.TotalRecords += int(count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading counts: %w", err)
	}

	return stats, nil
}
