// Package statusline formats the single-line status summary shown by the
// Claude Code status bar. Fields that cannot be determined are omitted from
// the line entirely; there are no placeholders.
package statusline

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chaperonehq/chaperone/internal/config"
	"github.com/chaperonehq/chaperone/internal/gitinfo"
)

// Input is the JSON payload Claude Code pipes to the status line command.
type Input struct {
	Model struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"model"`
	Workspace struct {
		CurrentDir string `json:"current_dir"`
		ProjectDir string `json:"project_dir"`
	} `json:"workspace"`
	Cwd string `json:"cwd"`
}

// Decode reads one payload from r. Malformed or empty input yields a zero
// Input rather than an error.
func Decode(r io.Reader) Input {
	var in Input
	data, err := io.ReadAll(r)
	if err != nil {
		return Input{}
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return Input{}
	}
	return in
}

// Dir returns the working directory named by the payload, preferring the
// workspace's current directory.
func (in Input) Dir() string {
	if in.Workspace.CurrentDir != "" {
		return in.Workspace.CurrentDir
	}
	return in.Cwd
}

// Format assembles the status line from the payload and git facts. Absent
// fields are dropped from the join.
func Format(in Input, cfg config.StatuslineConfig) string {
	var parts []string

	if name := in.Model.DisplayName; name != "" {
		parts = append(parts, name)
	}

	dir := in.Dir()
	if dir != "" {
		parts = append(parts, filepath.Base(dir))
	}

	if dir != "" && gitinfo.IsRepo(dir) {
		if branch, ok := gitinfo.Branch(dir); ok && branch != "" {
			if dirty, ok := gitinfo.DirtyCount(dir); ok && dirty > 0 {
				branch = fmt.Sprintf("%s +%d", branch, dirty)
			}
			parts = append(parts, branch)
		}
		if n, ok := gitinfo.WorktreeCount(dir); ok && n > 1 {
			parts = append(parts, fmt.Sprintf("%d worktrees", n))
		}
	}

	return strings.Join(parts, cfg.Separator)
}
