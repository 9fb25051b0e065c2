// Package agentdef parses and lints agent definition files: Markdown
// documents with a YAML frontmatter block naming the agent and describing
// when the host should invoke it.
package agentdef

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity levels for lint issues.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// maxDescriptionLen flags descriptions long enough to bloat the host's
// agent-selection prompt.
const maxDescriptionLen = 1024

// Definition is the parsed frontmatter of one agent file.
type Definition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Tools       string `yaml:"tools"`
	Model       string `yaml:"model"`

	Path string `yaml:"-"`
	Body string `yaml:"-"`
}

// Issue is one lint finding against an agent file.
type Issue struct {
	Path     string
	Severity string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Path, i.Severity, i.Message)
}

// splitFrontmatter separates the YAML frontmatter from the Markdown body.
// Returns ok=false when the file has no leading frontmatter block.
func splitFrontmatter(content string) (front, body string, ok bool) {
	if !strings.HasPrefix(content, "---\n") && content != "---" {
		return "", "", false
	}
	rest := strings.TrimPrefix(content, "---\n")
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", "", false
	}
	front = rest[:end]
	body = rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return front, body, true
}

// Parse parses one agent file's content and lints it. Parse always returns
// whatever definition it could extract alongside the issues.
func Parse(path string, content string) (Definition, []Issue) {
	def := Definition{Path: path}
	var issues []Issue

	front, body, ok := splitFrontmatter(content)
	if !ok {
		issues = append(issues, Issue{path, SeverityError, "missing YAML frontmatter block"})
		def.Body = content
		return def, issues
	}
	def.Body = body

	if err := yaml.Unmarshal([]byte(front), &def); err != nil {
		issues = append(issues, Issue{path, SeverityError, fmt.Sprintf("invalid frontmatter: %v", err)})
		return def, issues
	}

	if def.Name == "" {
		issues = append(issues, Issue{path, SeverityError, "frontmatter is missing 'name'"})
	} else if base := strings.TrimSuffix(filepath.Base(path), ".md"); def.Name != base {
		issues = append(issues, Issue{path, SeverityWarning,
			fmt.Sprintf("name %q does not match filename %q", def.Name, base)})
	}

	if strings.TrimSpace(def.Description) == "" {
		issues = append(issues, Issue{path, SeverityError, "frontmatter is missing 'description'"})
	} else if len(def.Description) > maxDescriptionLen {
		issues = append(issues, Issue{path, SeverityWarning,
			fmt.Sprintf("description is %d chars; keep it under %d", len(def.Description), maxDescriptionLen)})
	}

	if strings.TrimSpace(body) == "" {
		issues = append(issues, Issue{path, SeverityWarning, "agent body is empty"})
	}

	return def, issues
}

// LintDir parses every .md file directly under dir. A missing directory is
// not an error; it yields no definitions.
func LintDir(dir string) ([]Definition, []Issue, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var defs []Definition
	var issues []Issue
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			issues = append(issues, Issue{path, SeverityError, fmt.Sprintf("unreadable: %v", err)})
			continue
		}
		def, defIssues := Parse(path, string(data))
		defs = append(defs, def)
		issues = append(issues, defIssues...)
	}
	return defs, issues, nil
}
