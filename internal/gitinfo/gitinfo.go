// Package gitinfo queries read-only facts about a git working directory by
// shelling out to git. Every function degrades to a zero value when git is
// missing, fails, or the directory is not a repository; callers are expected
// to omit the corresponding output rather than report an error.
package gitinfo

import (
	"bytes"
	"os/exec"
	"strings"
)

// run executes git with args in dir and returns trimmed stdout.
func run(dir string, args ...string) (string, bool) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", false
	}
	return strings.TrimSpace(stdout.String()), true
}

// IsRepo reports whether dir is inside a git work tree.
func IsRepo(dir string) bool {
	out, ok := run(dir, "rev-parse", "--is-inside-work-tree")
	return ok && out == "true"
}

// Branch returns the current branch name. Detached HEAD yields an empty
// branch with ok=true, matching `git branch --show-current`.
func Branch(dir string) (string, bool) {
	return run(dir, "branch", "--show-current")
}

// DirtyCount returns the number of changed paths reported by
// `git status --porcelain`.
func DirtyCount(dir string) (int, bool) {
	out, ok := run(dir, "status", "--porcelain")
	if !ok {
		return 0, false
	}
	if out == "" {
		return 0, true
	}
	return len(strings.Split(out, "\n")), true
}

// WorktreeCount returns the number of worktrees attached to the repository,
// including the main one.
func WorktreeCount(dir string) (int, bool) {
	out, ok := run(dir, "worktree", "list", "--porcelain")
	if !ok {
		return 0, false
	}

	count := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "worktree ") {
			count++
		}
	}
	return count, true
}
