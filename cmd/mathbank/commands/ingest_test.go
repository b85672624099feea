// ABOUTME: Tests for the ingest command's parse-only path
// ABOUTME: Verifies dry-run output and missing path handling without network
package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIngestCmd_DryRun(t *testing.T) {
	dir := t.TempDir()
	doc := `## Question 1
- **Topic:** Addition
- **Question:** What is 12 + 9?
- **Answer:** 21
`
	if err := os.WriteFile(filepath.Join(dir, "P2_Tao_Nan_2023.md"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"ingest", "--dry-run", dir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(output.String(), "Parsed 1 question(s)") {
		t.Errorf("output = %q, want parse summary", output.String())
	}
}

func TestIngestCmd_MissingPath(t *testing.T) {
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"ingest", "--dry-run", filepath.Join(t.TempDir(), "absent")})

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() on missing path: want error, got nil")
	}
}

func TestIngestCmd_RequiresPathArg(t *testing.T) {
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"ingest"})

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() without path: want error, got nil")
	}
}
