// ABOUTME: Tests for retrieval context formatting
// ABOUTME: Verifies the example template, optional lines and determinism
package retrieval

import (
	"strings"
	"testing"

	"github.com/harper/mathbank/internal/models"
)

func TestFormatContextEmpty(t *testing.T) {
	if got := FormatContext(nil); got != "" {
		t.Errorf("FormatContext(nil) = %q, want empty", got)
	}
	if got := FormatContext([]models.Question{}); got != "" {
		t.Errorf("FormatContext(empty) = %q, want empty", got)
	}
}

func TestFormatContext(t *testing.T) {
	examples := []models.Question{
		{
			ID:              "P2-NP-001",
			Text:            "What is 2+2?",
			GradeLevel:      models.GradeP2,
			Topic:           "Addition",
			Subtopic:        "General",
			Difficulty:      models.DifficultyEasy,
			Answer:          "4",
			WorkingSolution: "2+2 = 4",
		},
		{
			ID:         "P2-NP-002",
			Text:       "Draw 3 groups of 2 apples. How many apples?",
			GradeLevel: models.GradeP2,
			Topic:      "Multiplication",
			Subtopic:   "General",
			Difficulty: models.DifficultyMedium,
			Answer:     "6",
			VisualHint: "🍎🍎 🍎🍎 🍎🍎",
		},
	}

	got := FormatContext(examples)

	if !strings.HasPrefix(got, "Here are real example questions from past school papers:\n") {
		t.Errorf("missing preamble:\n%s", got)
	}
	for _, want := range []string{
		"Example 1 (P2 Addition / General, Easy):",
		"Question: What is 2+2?",
		"Answer: 4",
		"Working: 2+2 = 4",
		"Example 2 (P2 Multiplication / General, Medium):",
		"Visual hint: 🍎🍎 🍎🍎 🍎🍎",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	// Optional lines only appear for questions that carry them.
	if strings.Count(got, "Working:") != 1 {
		t.Errorf("Working line count = %d, want 1", strings.Count(got, "Working:"))
	}
	if strings.Count(got, "Visual hint:") != 1 {
		t.Errorf("Visual hint line count = %d, want 1", strings.Count(got, "Visual hint:"))
	}

	// The trailing instruction block is fixed.
	if !strings.HasSuffix(got, styleInstructions) {
		t.Errorf("output does not end with the style instructions:\n%s", got)
	}
}

func TestFormatContextIsDeterministic(t *testing.T) {
	examples := []models.Question{
		{ID: "a", Text: "q", GradeLevel: models.GradeP1, Topic: "Addition", Subtopic: "General", Difficulty: models.DifficultyEasy, Answer: "1"},
	}
	first := FormatContext(examples)
	for i := 0; i < 3; i++ {
		if FormatContext(examples) != first {
			t.Fatal("FormatContext() not deterministic for identical input")
		}
	}
}
