// ABOUTME: Markdown question bank parser producing validated Question records
// ABOUTME: Splits documents into numbered blocks and extracts **Field:** lines
package parser

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/harper/mathbank/internal/models"
)

// blockHeader marks the start of a question block: "## Question 3",
// "### Question", or "### 3." all qualify. The captured number, when
// present, is the question's sequence.
var blockHeader = regexp.MustCompile(`(?m)^#{2,4}[ \t]*(?:[Qq]uestion[ \t]*(\d+)?|(\d+)[.)]?)[^\n]*$`)

// fieldPatterns match one "- **<Field>:** <value>" line each. Extractions
// are independent; a missing field leaves its zero value.
var fieldPatterns = map[string]*regexp.Regexp{
	"Topic":       fieldPattern("Topic"),
	"Subtopic":    fieldPattern("Subtopic"),
	"Difficulty":  fieldPattern("Difficulty"),
	"Question":    fieldPattern("Question"),
	"Visual_Hint": fieldPattern("Visual_Hint"),
	"Answer":      fieldPattern("Answer"),
	"Working":     fieldPattern("Working"),
	"Skills":      fieldPattern("Skills"),
	"Options":     fieldPattern("Options"),
}

func fieldPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\s*-\s*\*\*` + name + `:\*\*\s*(.*)\s*$`)
}

// extractField returns the first match for the named field in a block.
func extractField(block, name string) string {
	m := fieldPatterns[name].FindStringSubmatch(block)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ParseDocument parses one question bank document into Question records.
// Malformed blocks (missing Question or Answer) are logged and skipped so a
// bad block never aborts the rest of the file. Returned questions preserve
// document order.
func ParseDocument(content string, meta FileMeta) []models.Question {
	blocks, sequences := splitBlocks(content)
	code := SourceCode(meta.Source)
	source := meta.Source
	if meta.Year != "" {
		source = meta.Source + " " + meta.Year
	}

	questions := make([]models.Question, 0, len(blocks))
	seen := make(map[string]bool, len(blocks))

	for i, block := range blocks {
		text := extractField(block, "Question")
		answer := extractField(block, "Answer")
		if text == "" || answer == "" {
			log.Printf("[Parser] skipping block %d in %q: missing question or answer", i+1, meta.Source)
			continue
		}

		if options := extractField(block, "Options"); options != "" {
			text = text + "\nOptions: " + options
		}

		subtopic := extractField(block, "Subtopic")
		if subtopic == "" {
			subtopic = models.DefaultSubtopic
		}

		seq := sequences[i]
		if seq == 0 {
			seq = i + 1
		}
		id := fmt.Sprintf("%s-%s-%03d", meta.GradeLevel, code, seq)
		if seen[id] {
			// Source files occasionally repeat a question number; the last
			// record wins at the store, so surface it to the operator here.
			log.Printf("[Parser] duplicate question id %s in %q: later block supersedes earlier one", id, meta.Source)
		}
		seen[id] = true

		questions = append(questions, models.Question{
			ID:              id,
			Text:            text,
			GradeLevel:      meta.GradeLevel,
			Topic:           extractField(block, "Topic"),
			Subtopic:        subtopic,
			Difficulty:      models.ParseDifficulty(extractField(block, "Difficulty")),
			Answer:          answer,
			WorkingSolution: extractField(block, "Working"),
			VisualHint:      models.NormalizeVisualHint(extractField(block, "Visual_Hint")),
			Source:          source,
			SkillsTested:    models.ParseSkills(extractField(block, "Skills")),
		})
	}

	return questions
}

// splitBlocks cuts a document at question headers. It returns the block
// bodies and, aligned by index, the explicit sequence number from each
// header (0 when the header carried none).
func splitBlocks(content string) ([]string, []int) {
	headers := blockHeader.FindAllStringSubmatchIndex(content, -1)
	if len(headers) == 0 {
		return nil, nil
	}

	blocks := make([]string, 0, len(headers))
	sequences := make([]int, 0, len(headers))

	for i, h := range headers {
		start := h[1]
		end := len(content)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		blocks = append(blocks, content[start:end])

		// Group 1 is "Question N", group 2 is a bare "N" header.
		seq := 0
		for _, g := range []int{2, 4} {
			if h[g] >= 0 {
				if n, err := strconv.Atoi(content[h[g]:h[g+1]]); err == nil {
					seq = n
					break
				}
			}
		}
		sequences = append(sequences, seq)
	}

	return blocks, sequences
}

// ParseFile reads and parses a single question bank file, deriving grade,
// source and year from its name.
func ParseFile(path string) ([]models.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseDocument(string(data), ParseFilename(path)), nil
}

// ParseDirectory parses every .md file in a directory tree and concatenates
// the results. A corrupt file is logged and skipped; sibling files still
// parse, since ingestion is a supervised offline process.
func ParseDirectory(dir string) ([]models.Question, error) {
	var questions []models.Question

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		parsed, err := ParseFile(path)
		if err != nil {
			log.Printf("[Parser] failed to parse %s: %v", path, err)
			return nil
		}
		questions = append(questions, parsed...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	return questions, nil
}
