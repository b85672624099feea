// ABOUTME: Pure intent classifier mapping free text to structured UserIntent
// ABOUTME: Keyword matching only, no I/O; identical input yields identical output
package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/harper/mathbank/internal/models"
)

// UserIntent is the structured reading of one user message. A zero
// GradeLevel or Topic means "not detected". UserIntent is recomputed per
// request and never persisted.
type UserIntent struct {
	WantsQuestions   bool
	GradeLevel       models.GradeLevel
	Topic            string
	WantsVisualHints bool
	RawQuery         string
}

// Detect classifies a raw query. It is total: any input, including the
// empty string, yields a well-formed UserIntent.
func Detect(query string) UserIntent {
	lower := strings.ToLower(query)

	result := UserIntent{RawQuery: query}

	for _, syn := range GradeSynonyms {
		if containsWord(lower, syn.Phrase) {
			result.GradeLevel = syn.Grade
			break
		}
	}

	for _, entry := range TopicKeywords {
		for _, kw := range entry.Keywords {
			if containsWord(lower, kw) {
				result.Topic = entry.Topic
				break
			}
		}
		if result.Topic != "" {
			break
		}
	}

	for _, phrase := range RequestPhrases {
		if strings.Contains(lower, phrase) {
			result.WantsQuestions = true
			break
		}
	}

	for _, phrase := range VisualPhrases {
		if strings.Contains(lower, phrase) {
			result.WantsVisualHints = true
			break
		}
	}

	return result
}

// containsWord reports whether needle occurs in haystack bounded by
// non-word characters on both sides. This keeps single-letter unit
// keywords like "m" or "g" from firing inside ordinary words.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}

	for start := 0; ; {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start

		// Decode full runes at the boundaries so a multibyte letter next
		// to the needle still counts as a word character.
		beforeRune, _ := utf8.DecodeLastRuneInString(haystack[:idx])
		before := idx == 0 || !isWordChar(beforeRune)
		afterIdx := idx + len(needle)
		afterRune, _ := utf8.DecodeRuneInString(haystack[afterIdx:])
		after := afterIdx >= len(haystack) || !isWordChar(afterRune)
		if before && after {
			return true
		}

		start = idx + 1
	}
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
