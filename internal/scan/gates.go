package scan

import (
	"fmt"
	"strings"
)

// Gate holds the quality criteria applied to one agent's output.
type Gate struct {
	Agent     string // canonical subagent type name
	Required  []Rule // each must match somewhere in the output
	Forbidden []Rule // scanned per line in addition to the universal rules
	MinLines  int
}

// MinOutputChars is the floor below which any agent output is flagged as
// too short to evaluate.
const MinOutputChars = 10

// Check evaluates the structural criteria (length, required content) and
// returns human-readable failure notes. Forbidden-pattern findings are
// produced separately via Scan so they carry line attribution.
func (g Gate) Check(text string) []string {
	var notes []string

	lines := strings.Split(text, "\n")
	if g.MinLines > 0 && len(lines) < g.MinLines {
		notes = append(notes, fmt.Sprintf("output too short: %d lines, need %d", len(lines), g.MinLines))
	}

	for _, rule := range g.Required {
		if !rule.Matches(text) {
			notes = append(notes, fmt.Sprintf("missing required content: %s", rule.Label))
		}
	}
	return notes
}
