// ABOUTME: Vector record and search result models for the question index
// ABOUTME: Converts between Question fields and store metadata with defaults
package models

import (
	"fmt"
	"strconv"
)

// VectorRecord is the unit stored in the vector index: one embedded question.
// Every record in a namespace must carry an embedding of the same dimension;
// the store client rejects mixed dimensions before they reach the index.
type VectorRecord struct {
	ID        string         `json:"id"`
	Embedding []float32      `json:"embedding"`
	Metadata  map[string]any `json:"metadata"`
}

// ValidateDimension checks the record's embedding against the dimension
// configured for its namespace.
func (r *VectorRecord) ValidateDimension(expectedDim int) error {
	if len(r.Embedding) == 0 {
		return fmt.Errorf("record %s: embedding cannot be empty", r.ID)
	}
	if len(r.Embedding) != expectedDim {
		return fmt.Errorf("record %s: embedding dimension mismatch: expected %d, got %d",
			r.ID, expectedDim, len(r.Embedding))
	}
	return nil
}

// SearchResult pairs a stored question with its similarity score for one
// query. Results are produced at query time and never persisted.
type SearchResult struct {
	ID       string   `json:"id"`
	Score    float32  `json:"score"`
	Question Question `json:"question"`
}

// RetrievalContext is the bounded, formatted block handed to the chat layer.
// FormattedText is empty exactly when Count is zero.
type RetrievalContext struct {
	Examples      []Question `json:"examples"`
	FormattedText string     `json:"formatted_text"`
	Count         int        `json:"count"`
}

// EmptyRetrievalContext returns the degraded "no retrieval happened" value.
func EmptyRetrievalContext() RetrievalContext {
	return RetrievalContext{Examples: []Question{}, FormattedText: "", Count: 0}
}

// Metadata field names shared by ingestion and retrieval.
const (
	MetaText       = "text"
	MetaGradeLevel = "gradeLevel"
	MetaTopic      = "topic"
	MetaSubtopic   = "subtopic"
	MetaDifficulty = "difficulty"
	MetaAnswer     = "answer"
	MetaWorking    = "workingSolution"
	MetaVisualHint = "visualHint"
	MetaSource     = "source"
	MetaSkills     = "skillsTested"
)

// QuestionMetadata flattens a question into the store's metadata map.
// Optional fields are only written when present so filters stay small.
func QuestionMetadata(q Question) map[string]any {
	meta := map[string]any{
		MetaText:       q.Text,
		MetaGradeLevel: string(q.GradeLevel),
		MetaTopic:      q.Topic,
		MetaSubtopic:   q.Subtopic,
		MetaDifficulty: string(q.Difficulty),
		MetaAnswer:     q.Answer,
		MetaSource:     q.Source,
	}
	if q.WorkingSolution != "" {
		meta[MetaWorking] = q.WorkingSolution
	}
	if q.VisualHint != "" {
		meta[MetaVisualHint] = q.VisualHint
	}
	if len(q.SkillsTested) > 0 {
		meta[MetaSkills] = append([]string{}, q.SkillsTested...)
	}
	return meta
}

// QuestionFromMetadata rebuilds a Question from a store metadata map.
// Missing or malformed fields degrade to the model defaults; this never
// fails, because a single odd record must not drop a whole result set.
func QuestionFromMetadata(id string, meta map[string]any) Question {
	q := Question{
		ID:           id,
		Text:         metaString(meta, MetaText),
		Topic:        metaString(meta, MetaTopic),
		Subtopic:     metaString(meta, MetaSubtopic),
		Answer:       metaString(meta, MetaAnswer),
		Source:       metaString(meta, MetaSource),
		SkillsTested: metaStrings(meta, MetaSkills),
	}
	if q.Subtopic == "" {
		q.Subtopic = DefaultSubtopic
	}

	if grade, ok := ParseGradeLevel(metaString(meta, MetaGradeLevel)); ok {
		q.GradeLevel = grade
	} else {
		q.GradeLevel = DefaultGradeLevel
	}
	q.Difficulty = ParseDifficulty(metaString(meta, MetaDifficulty))
	q.WorkingSolution = metaString(meta, MetaWorking)
	q.VisualHint = NormalizeVisualHint(metaString(meta, MetaVisualHint))

	return q
}

// metaString extracts a string field, tolerating non-string scalar values.
func metaString(meta map[string]any, key string) string {
	v, ok := meta[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// metaStrings extracts a string-slice field, tolerating []any payloads as
// returned by JSON decoding.
func metaStrings(meta map[string]any, key string) []string {
	out := []string{}
	switch val := meta[key].(type) {
	case []string:
		out = append(out, val...)
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
