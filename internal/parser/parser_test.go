// ABOUTME: Tests for the markdown question bank parser
// ABOUTME: Covers block splitting, malformed block skipping and id synthesis
package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/harper/mathbank/internal/models"
)

const sampleDoc = `# P3 Nanyang Primary 2023

## Question 1
- **Topic:** Addition
- **Subtopic:** Carrying
- **Difficulty:** Easy
- **Question:** What is 47 + 38?
- **Answer:** 85
- **Working:** 47 + 38 = 85
- **Skills:** addition, carrying

## Question 2
- **Topic:** Money
- **Difficulty:** Medium
- **Question:** Meili buys a pen for $1.20 and a ruler for $0.85. How much does she spend?
- **Visual_Hint:** None needed
- **Answer:** $2.05
`

func defaultMeta() FileMeta {
	return FileMeta{
		GradeLevel: models.GradeP3,
		Source:     "Nanyang Primary",
		Year:       "2023",
	}
}

func TestParseDocument(t *testing.T) {
	questions := ParseDocument(sampleDoc, defaultMeta())

	if len(questions) != 2 {
		t.Fatalf("ParseDocument() returned %d questions, want 2", len(questions))
	}

	first := questions[0]
	if first.ID != "P3-NP-001" {
		t.Errorf("ID = %q, want P3-NP-001", first.ID)
	}
	if first.Text != "What is 47 + 38?" {
		t.Errorf("Text = %q", first.Text)
	}
	if first.Topic != "Addition" || first.Subtopic != "Carrying" {
		t.Errorf("Topic/Subtopic = %q/%q", first.Topic, first.Subtopic)
	}
	if first.Difficulty != models.DifficultyEasy {
		t.Errorf("Difficulty = %q, want Easy", first.Difficulty)
	}
	if first.Source != "Nanyang Primary 2023" {
		t.Errorf("Source = %q, want Nanyang Primary 2023", first.Source)
	}
	if !reflect.DeepEqual(first.SkillsTested, []string{"addition", "carrying"}) {
		t.Errorf("SkillsTested = %v", first.SkillsTested)
	}

	second := questions[1]
	if second.ID != "P3-NP-002" {
		t.Errorf("ID = %q, want P3-NP-002", second.ID)
	}
	if second.Subtopic != models.DefaultSubtopic {
		t.Errorf("Subtopic = %q, want default %q", second.Subtopic, models.DefaultSubtopic)
	}
	if second.Difficulty != models.DifficultyMedium {
		t.Errorf("Difficulty = %q, want Medium", second.Difficulty)
	}
	if second.VisualHint != "" {
		t.Errorf("VisualHint = %q, want empty after normalization", second.VisualHint)
	}
}

func TestParseDocumentIsDeterministic(t *testing.T) {
	a := ParseDocument(sampleDoc, defaultMeta())
	b := ParseDocument(sampleDoc, defaultMeta())
	if !reflect.DeepEqual(a, b) {
		t.Error("ParseDocument() is not deterministic for identical input")
	}
}

func TestParseDocumentSkipsMalformedBlocks(t *testing.T) {
	doc := `## Question 1
- **Question:** What is 5 - 2?
- **Answer:** 3

## Question 2
- **Topic:** Subtraction
- **Question:** This block has no answer.

## Question 3
- **Topic:** Subtraction
- **Answer:** 4

## Question 4
- **Question:** What is 9 - 5?
- **Answer:** 4
`

	questions := ParseDocument(doc, defaultMeta())
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2 (malformed blocks skipped)", len(questions))
	}
	if questions[0].ID != "P3-NP-001" || questions[1].ID != "P3-NP-004" {
		t.Errorf("ids = %q, %q; want P3-NP-001, P3-NP-004", questions[0].ID, questions[1].ID)
	}
}

func TestParseDocumentHeaderStyles(t *testing.T) {
	doc := `### 1.
- **Question:** What is 2 x 3?
- **Answer:** 6

### Question
- **Question:** What is 3 x 3?
- **Answer:** 9

## Question 7: harder one
- **Question:** What is 7 x 8?
- **Answer:** 56
`

	questions := ParseDocument(doc, defaultMeta())
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}

	// Bare "### 1." header carries its number; an unnumbered header falls
	// back to its position; "Question 7" keeps the explicit sequence.
	wantIDs := []string{"P3-NP-001", "P3-NP-002", "P3-NP-007"}
	for i, want := range wantIDs {
		if questions[i].ID != want {
			t.Errorf("questions[%d].ID = %q, want %q", i, questions[i].ID, want)
		}
	}
}

func TestParseDocumentAppendsOptions(t *testing.T) {
	doc := `## Question 1
- **Question:** Which number is largest?
- **Options:** (a) 12 (b) 21 (c) 102
- **Answer:** (c) 102
`

	questions := ParseDocument(doc, defaultMeta())
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	want := "Which number is largest?\nOptions: (a) 12 (b) 21 (c) 102"
	if questions[0].Text != want {
		t.Errorf("Text = %q, want %q", questions[0].Text, want)
	}
}

func TestParseDocumentEmpty(t *testing.T) {
	questions := ParseDocument("no headers here at all", defaultMeta())
	if len(questions) != 0 {
		t.Errorf("got %d questions from headerless document, want 0", len(questions))
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "P4_Rosyth_School_2022.md")
	if err := os.WriteFile(path, []byte(sampleDoc), 0644); err != nil {
		t.Fatal(err)
	}

	questions, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	// Grade and source come from the filename, not the document body.
	if questions[0].ID != "P4-RS-001" {
		t.Errorf("ID = %q, want P4-RS-001", questions[0].ID)
	}
	if questions[0].Source != "Rosyth School 2022" {
		t.Errorf("Source = %q, want Rosyth School 2022", questions[0].Source)
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.md")); err == nil {
		t.Error("ParseFile() on missing file: want error, got nil")
	}
}

func TestParseDirectory(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"P1_Alpha_2020.md": "## Question 1\n- **Question:** 1+1?\n- **Answer:** 2\n",
		"P2_Beta_2021.md":  "## Question 1\n- **Question:** 2+2?\n- **Answer:** 4\n",
		"notes.txt":        "not a question bank",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	questions, err := ParseDirectory(dir)
	if err != nil {
		t.Fatalf("ParseDirectory() error = %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("got %d questions, want 2 (.txt file ignored)", len(questions))
	}
}
