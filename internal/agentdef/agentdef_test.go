package agentdef

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validAgent = `---
name: code-quality-reviewer
description: Reviews changes for test coverage and lint violations.
tools: Read, Grep
---

You are a meticulous reviewer.
`

func TestParseValid(t *testing.T) {
	def, issues := Parse("code-quality-reviewer.md", validAgent)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if def.Name != "code-quality-reviewer" {
		t.Errorf("Name = %q", def.Name)
	}
	if def.Tools != "Read, Grep" {
		t.Errorf("Tools = %q", def.Tools)
	}
	if !strings.Contains(def.Body, "meticulous reviewer") {
		t.Errorf("Body = %q", def.Body)
	}
}

func TestParseIssues(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		content  string
		severity string
		fragment string
	}{
		{
			name:     "no frontmatter",
			path:     "a.md",
			content:  "just markdown",
			severity: SeverityError,
			fragment: "missing YAML frontmatter",
		},
		{
			name:     "unterminated frontmatter",
			path:     "a.md",
			content:  "---\nname: a\n",
			severity: SeverityError,
			fragment: "missing YAML frontmatter",
		},
		{
			name:     "invalid yaml",
			path:     "a.md",
			content:  "---\nname: [unclosed\n---\nbody",
			severity: SeverityError,
			fragment: "invalid frontmatter",
		},
		{
			name:     "missing name",
			path:     "a.md",
			content:  "---\ndescription: does things\n---\nbody",
			severity: SeverityError,
			fragment: "missing 'name'",
		},
		{
			name:     "missing description",
			path:     "a.md",
			content:  "---\nname: a\n---\nbody",
			severity: SeverityError,
			fragment: "missing 'description'",
		},
		{
			name:     "name filename mismatch",
			path:     "b.md",
			content:  "---\nname: a\ndescription: does things\n---\nbody",
			severity: SeverityWarning,
			fragment: "does not match filename",
		},
		{
			name:     "empty body",
			path:     "a.md",
			content:  "---\nname: a\ndescription: does things\n---\n",
			severity: SeverityWarning,
			fragment: "body is empty",
		},
		{
			name:     "oversized description",
			path:     "a.md",
			content:  "---\nname: a\ndescription: " + strings.Repeat("x", 1100) + "\n---\nbody",
			severity: SeverityWarning,
			fragment: "keep it under",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, issues := Parse(tt.path, tt.content)
			found := false
			for _, issue := range issues {
				if issue.Severity == tt.severity && strings.Contains(issue.Message, tt.fragment) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %s issue containing %q, got %v", tt.severity, tt.fragment, issues)
			}
		})
	}
}

func TestLintDir(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "code-quality-reviewer.md"), []byte(validAgent), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.md"), []byte("no frontmatter here"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("not markdown"), 0644); err != nil {
		t.Fatal(err)
	}

	defs, issues, err := LintDir(dir)
	if err != nil {
		t.Fatalf("LintDir() error: %v", err)
	}
	if len(defs) != 2 {
		t.Errorf("parsed %d definitions, want 2", len(defs))
	}
	if len(issues) != 1 {
		t.Errorf("issues = %v, want exactly the broken file's", issues)
	}
}

func TestLintDirMissing(t *testing.T) {
	defs, issues, err := LintDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil || defs != nil || issues != nil {
		t.Errorf("missing dir should be a silent no-op: %v %v %v", defs, issues, err)
	}
}
