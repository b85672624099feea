// ABOUTME: Question model for parsed practice items with grade/topic/difficulty
// ABOUTME: Enforces required fields and supplies defaults for optional metadata
package models

import (
	"fmt"
	"strings"
)

// GradeLevel identifies a primary school level (P1 through P6).
type GradeLevel string

const (
	GradeP1 GradeLevel = "P1"
	GradeP2 GradeLevel = "P2"
	GradeP3 GradeLevel = "P3"
	GradeP4 GradeLevel = "P4"
	GradeP5 GradeLevel = "P5"
	GradeP6 GradeLevel = "P6"
)

// DefaultGradeLevel is used when a filename or metadata carries no grade.
const DefaultGradeLevel = GradeP1

// ParseGradeLevel parses strings like "P3" or "p3" into a GradeLevel.
// Returns false if the input is not a recognized grade.
func ParseGradeLevel(s string) (GradeLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "P1":
		return GradeP1, true
	case "P2":
		return GradeP2, true
	case "P3":
		return GradeP3, true
	case "P4":
		return GradeP4, true
	case "P5":
		return GradeP5, true
	case "P6":
		return GradeP6, true
	}
	return "", false
}

// Difficulty classifies how hard a question is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty parses a free-text difficulty field case-insensitively.
// Unrecognized input defaults to Easy rather than failing, since question
// banks are hand-authored and the field is advisory.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "medium", "med", "moderate":
		return DifficultyMedium
	case "hard", "difficult", "challenging":
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

// DefaultSubtopic is assigned when a question block has no Subtopic field.
const DefaultSubtopic = "General"

// Question is a single practice item parsed from a question bank.
// Questions are immutable once created; re-ingestion under the same ID
// supersedes the stored record rather than mutating it.
type Question struct {
	ID              string     `json:"id"`
	Text            string     `json:"text"`
	GradeLevel      GradeLevel `json:"grade_level"`
	Topic           string     `json:"topic"`
	Subtopic        string     `json:"subtopic"`
	Difficulty      Difficulty `json:"difficulty"`
	Answer          string     `json:"answer"`
	WorkingSolution string     `json:"working_solution,omitempty"`
	VisualHint      string     `json:"visual_hint,omitempty"`
	Source          string     `json:"source"`
	SkillsTested    []string   `json:"skills_tested"`
}

// Validate checks the required fields of a question.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question %s: text is required", q.ID)
	}
	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("question %s: answer is required", q.ID)
	}
	return nil
}

// NormalizeVisualHint maps "no hint" placeholder values to the empty string.
// Question authors write "None needed", "none" or "N/A" interchangeably.
func NormalizeVisualHint(hint string) string {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "", "none needed", "none", "n/a", "na":
		return ""
	}
	return strings.TrimSpace(hint)
}

// ParseSkills splits a comma-separated skills field into a clean slice.
// An empty field yields an empty (non-nil) slice.
func ParseSkills(s string) []string {
	skills := []string{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
