// ABOUTME: Filename metadata extraction for question bank files
// ABOUTME: Parses P<grade>_<Source_Words>_<Year>.md into grade, source and year
package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/harper/mathbank/internal/models"
)

// FileMeta is the metadata derived from a question bank filename.
// Year is empty when the filename carries no trailing 4-digit year.
type FileMeta struct {
	GradeLevel models.GradeLevel
	Source     string
	Year       string
}

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// ParseFilename extracts grade, source and year from names like
// "P3_Nanyang_Primary_2023.md". Missing parts fall back to defaults:
// grade P1, source = the filename stem with underscores as spaces.
func ParseFilename(name string) FileMeta {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	parts := strings.Split(stem, "_")

	meta := FileMeta{
		GradeLevel: models.DefaultGradeLevel,
		Source:     strings.Join(parts, " "),
	}
	if len(parts) == 0 {
		return meta
	}

	sourceParts := parts
	if grade, ok := models.ParseGradeLevel(parts[0]); ok {
		meta.GradeLevel = grade
		sourceParts = parts[1:]
	}
	if n := len(sourceParts); n > 0 && yearPattern.MatchString(sourceParts[n-1]) {
		meta.Year = sourceParts[n-1]
		sourceParts = sourceParts[:n-1]
	}
	if len(sourceParts) > 0 {
		meta.Source = strings.Join(sourceParts, " ")
	}

	return meta
}

// SourceCode derives the short code used in question IDs: the upper-cased
// initials of the source's words, truncated to 6 characters.
func SourceCode(source string) string {
	var initials strings.Builder
	for _, word := range strings.Fields(source) {
		r := []rune(word)
		if len(r) == 0 {
			continue
		}
		initials.WriteString(strings.ToUpper(string(r[0])))
	}
	code := initials.String()
	if r := []rune(code); len(r) > 6 {
		code = string(r[:6])
	}
	if code == "" {
		code = "UNK"
	}
	return code
}
