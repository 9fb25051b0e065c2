// Package snapshot builds a bounded, human-readable digest of a project
// directory for injection into an agent's context. Every section is optional
// and independently capped; a section whose source is missing or unreadable
// is omitted, never reported as an error.
package snapshot

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chaperonehq/chaperone/internal/config"
	"github.com/chaperonehq/chaperone/internal/gitinfo"
)

// maxDocsDepth limits how deep the docs listing descends below the docs dir.
const maxDocsDepth = 3

// Build assembles the digest for dir. The result may be empty if no section
// could be built; Build itself never fails.
func Build(dir string, cfg config.ContextConfig) string {
	var sections []string

	add := func(s string) {
		if s != "" {
			sections = append(sections, truncate(s, cfg.SectionLimit))
		}
	}

	add(treeSection(dir, cfg.TreeDepth, cfg.SkipDirs))
	add(branchSection(dir))

	docs := docsSection(dir, cfg.DocsDir)
	add(docs)
	if docs != "" && cfg.Tip != "" {
		sections = append(sections, cfg.Tip)
	}

	for _, name := range cfg.ExcerptFiles {
		add(excerptSection(dir, name, cfg.ExcerptLimit))
	}

	return strings.Join(sections, "\n\n")
}

// treeSection renders a depth-limited listing of subdirectories. Hidden
// directories and entries in skip are excluded.
func treeSection(dir string, depth int, skip []string) string {
	var b strings.Builder
	writeTree(&b, dir, "", depth, skip)
	if b.Len() == 0 {
		return ""
	}
	return "**Directory structure:**\n" + b.String()
}

func writeTree(b *strings.Builder, dir, indent string, depth int, skip []string) {
	if depth <= 0 {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") || skipped(name, skip) {
			continue
		}
		fmt.Fprintf(b, "%s%s/\n", indent, name)
		writeTree(b, filepath.Join(dir, name), indent+"  ", depth-1, skip)
	}
}

func skipped(name string, skip []string) bool {
	for _, s := range skip {
		if name == s {
			return true
		}
	}
	return false
}

// branchSection reports the current git branch, if dir is a repository.
func branchSection(dir string) string {
	if !gitinfo.IsRepo(dir) {
		return ""
	}
	branch, ok := gitinfo.Branch(dir)
	if !ok || branch == "" {
		return ""
	}
	return "**Current branch:** " + branch
}

// docsSection lists markdown files under the docs directory, relative paths
// sorted, depth-limited.
func docsSection(dir, docsDir string) string {
	root := filepath.Join(dir, docsDir)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return ""
	}

	var docs []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fs.SkipDir
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && rel != "." {
				return fs.SkipDir
			}
			if strings.Count(rel, string(filepath.Separator)) >= maxDocsDepth {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") && !strings.HasPrefix(d.Name(), ".") {
			docs = append(docs, rel)
		}
		return nil
	})

	if len(docs) == 0 {
		return ""
	}
	sort.Strings(docs)

	var b strings.Builder
	fmt.Fprintf(&b, "**Available documentation (%s/):**\n", docsDir)
	for _, doc := range docs {
		fmt.Fprintf(&b, "- %s\n", doc)
	}
	return strings.TrimRight(b.String(), "\n")
}

// excerptSection returns the head of a named file in dir, if present.
func excerptSection(dir, name string, limit int) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil || len(data) == 0 {
		return ""
	}
	return fmt.Sprintf("**%s (excerpt):**\n%s", name, truncate(string(data), limit))
}

// truncate caps s at limit bytes, cutting at the last newline inside the
// window when there is one.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := s[:limit]
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		cut = cut[:i]
	}
	return cut + "\n[truncated]"
}
