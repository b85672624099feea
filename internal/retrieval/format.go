// ABOUTME: Deterministic formatting of retrieved questions for prompt injection
// ABOUTME: Fixed example template plus a trailing style instruction block
package retrieval

import (
	"fmt"
	"strings"

	"github.com/harper/mathbank/internal/models"
)

// styleInstructions is appended after the examples. It tells the generative
// model how to use them; the wording is fixed so prompt behavior stays
// reproducible across requests.
const styleInstructions = `Use the examples above as style references when writing new questions.
Match their difficulty, phrasing and number ranges for the grade level.
Always include the answer, and a short worked solution when one helps.
Do not copy an example verbatim; write a fresh question in the same style.`

// FormatContext renders retrieved examples into the text block injected
// into the generative model's prompt. Returns "" for no examples; the chat
// layer only injects non-empty blocks.
func FormatContext(examples []models.Question) string {
	if len(examples) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Here are real example questions from past school papers:\n")

	for i, q := range examples {
		fmt.Fprintf(&b, "\nExample %d (%s %s / %s, %s):\n", i+1, q.GradeLevel, q.Topic, q.Subtopic, q.Difficulty)
		fmt.Fprintf(&b, "Question: %s\n", q.Text)
		fmt.Fprintf(&b, "Answer: %s\n", q.Answer)
		if q.WorkingSolution != "" {
			fmt.Fprintf(&b, "Working: %s\n", q.WorkingSolution)
		}
		if q.VisualHint != "" {
			fmt.Fprintf(&b, "Visual hint: %s\n", q.VisualHint)
		}
	}

	b.WriteString("\n")
	b.WriteString(styleInstructions)
	return b.String()
}
