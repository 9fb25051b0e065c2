package hook

import (
	"fmt"
	"os"
	"strings"

	"github.com/chaperonehq/chaperone/internal/config"
	"github.com/chaperonehq/chaperone/internal/logger"
	"github.com/chaperonehq/chaperone/internal/scan"
	"github.com/chaperonehq/chaperone/internal/snapshot"
)

// Report is the outcome of one hook invocation. Relevant is false when the
// event's tool is outside the hook's scope, in which case the hook stays
// silent. Context, when set, is forwarded to stdout for the host to inject.
type Report struct {
	Relevant bool
	Subject  string // file path or agent name
	Result   scan.Result
	Notes    []string // quality-gate failures and similar advisories
	Context  string
}

// RunFile validates the content of a just-modified file against the file
// rule set. Non-code paths are skipped without reading content.
func RunFile(in Input, cfg *config.Config) Report {
	if !KindOf(in.ToolName).ModifiesFile() {
		logger.Debug("file validator skipping tool", "tool", in.ToolName)
		return Report{}
	}

	path := in.ToolInput.FilePath
	if !scan.IsCodeFile(path, cfg.FileExtensions) {
		logger.Debug("skipping non-code file", "path", path)
		return Report{}
	}

	rep := Report{Relevant: true, Subject: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// The tool may not have created the file yet.
			logger.Debug("file not found, nothing to validate", "path", path)
			return rep
		}
		rep.Result = scan.Degrade(fmt.Sprintf("cannot read %s: %v", path, err))
		return rep
	}

	rep.Result.Findings = scan.ScanFile(path, string(data), cfg.FileRules)
	return rep
}

// RunResult validates an agent's result text against the universal rules and
// the agent's quality gate, if one is configured.
func RunResult(in Input, cfg *config.Config) Report {
	if KindOf(in.ToolName) != KindTask {
		logger.Debug("result validator skipping tool", "tool", in.ToolName)
		return Report{}
	}

	agent := in.Agent()
	rep := Report{Relevant: true, Subject: agent}

	text := string(in.ToolResponse)
	if len(strings.TrimSpace(text)) < scan.MinOutputChars {
		rep.Notes = append(rep.Notes, "output too short or empty")
		return rep
	}

	rules := cfg.ResultRules
	if gate, ok := cfg.GateFor(agent); ok {
		rep.Notes = append(rep.Notes, gate.Check(text)...)
		if len(gate.Forbidden) > 0 {
			combined := make([]scan.Rule, 0, len(rules)+len(gate.Forbidden))
			combined = append(combined, rules...)
			combined = append(combined, gate.Forbidden...)
			rules = combined
		}
	}

	rep.Result.Findings = scan.Scan(text, rules)
	return rep
}

// RunContext builds the project context digest injected ahead of a Task
// invocation. The digest goes to stdout via Report.Context; an empty digest
// means nothing is forwarded.
func RunContext(in Input, cfg *config.Config) Report {
	if KindOf(in.ToolName) != KindTask {
		logger.Debug("context builder skipping tool", "tool", in.ToolName)
		return Report{}
	}

	agent := in.Agent()
	rep := Report{Relevant: true, Subject: agent}

	dir := in.Cwd
	if dir == "" {
		dir = "."
	}

	body := snapshot.Build(dir, cfg.Context)
	if body == "" {
		return rep
	}

	rep.Context = fmt.Sprintf(`## %s Context

**Focus:** %s

%s

---
*Project context auto-injected by chaperone.*
`, titleOf(agent), cfg.FocusFor(agent), body)
	return rep
}

// titleOf renders a hyphenated subagent type as a display title,
// e.g. "backend-database-engineer" -> "Backend Database Engineer".
func titleOf(agent string) string {
	words := strings.Split(agent, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
