package main

import (
	"strings"
	"testing"

	"github.com/chaperonehq/chaperone/internal/agentdef"
	"github.com/chaperonehq/chaperone/internal/config"
	"github.com/chaperonehq/chaperone/internal/hook"
	"github.com/chaperonehq/chaperone/internal/scan"
	"github.com/chaperonehq/chaperone/internal/statusline"
)

// getTestConfig returns the embedded default configuration
func getTestConfig(t testing.TB) *config.Config {
	cfg, err := config.LoadConfig(config.GetDefaultConfig())
	if err != nil {
		t.Fatalf("failed to load default config: %v", err)
	}
	return cfg
}

// FuzzScan tests pattern scanning for crashes
func FuzzScan(f *testing.F) {
	// Add seed corpus
	f.Add("// TODO: fix this later")
	f.Add("console.log('debug');")
	f.Add("line one\nline two\nline three")
	f.Add("for backwards compatibility we keep this")
	f.Add("")
	f.Add("\n\n\n")
	f.Add("no match here")
	f.Add(strings.Repeat("x", 10000))
	f.Add("mixed\tTODO: tabs\tand spaces")
	f.Add("débugger; unicode café")

	cfg := getTestConfig(f)

	f.Fuzz(func(t *testing.T, text string) {
		// Just ensure no panics
		_ = scan.Scan(text, cfg.FileRules)
	})
}

// FuzzScanFile tests file scanning, including the shell heredoc path
func FuzzScanFile(f *testing.F) {
	f.Add("deploy.sh", "cat <<'EOF'\nTODO: not real\nEOF\n")
	f.Add("deploy.sh", "cat <<EOF\nTODO: real\nEOF\n")
	f.Add("deploy.bash", "if then fi TODO: broken")
	f.Add("app.js", "console.log('x');\n// TODO: later")
	f.Add("empty.sh", "")
	f.Add("weird.sh", "<<")

	cfg := getTestConfig(f)

	f.Fuzz(func(t *testing.T, path, content string) {
		_ = scan.ScanFile(path, content, cfg.FileRules)
	})
}

// FuzzDecode tests hook input decoding for crashes
func FuzzDecode(f *testing.F) {
	// Add seed corpus with valid and invalid payloads
	f.Add(`{"tool_name":"Edit","tool_input":{"file_path":"/tmp/app.js"}}`)
	f.Add(`{"tool_name":"Task","tool_input":{"subagent_type":"code-quality-reviewer"},"tool_response":"done"}`)
	f.Add(`{"tool_response":{"content":[{"type":"text","text":"hello"}]}}`)
	f.Add(`{"tool_response":null}`)
	f.Add(`{"tool_response":42}`)
	f.Add(`{}`)
	f.Add(`not json`)
	f.Add(``)
	f.Add(`{"tool_name":123}`)

	f.Fuzz(func(t *testing.T, input string) {
		// Just ensure no panics
		in := hook.Decode(strings.NewReader(input))
		_ = in.Agent()
	})
}

// FuzzRunResult tests the full result validation pipeline for crashes
func FuzzRunResult(f *testing.F) {
	f.Add(`{"tool_name":"Task","tool_input":{"subagent_type":"backend-database-engineer"},"tool_response":"CREATE TABLE users (id SERIAL);"}`)
	f.Add(`{"tool_name":"Task","tool_input":{"subagent_type":"unknown-agent"},"tool_response":"TODO: finish"}`)
	f.Add(`{"tool_name":"Task","tool_response":""}`)
	f.Add(`{"tool_name":"Read"}`)
	f.Add(`{}`)
	f.Add(`garbage`)

	cfg := getTestConfig(f)

	f.Fuzz(func(t *testing.T, input string) {
		in := hook.Decode(strings.NewReader(input))
		_ = hook.RunResult(in, cfg)
	})
}

// FuzzParseAgent tests agent definition parsing for crashes
func FuzzParseAgent(f *testing.F) {
	f.Add("reviewer.md", "---\nname: reviewer\ndescription: reviews code\n---\n\nBody.\n")
	f.Add("reviewer.md", "---\nname: [unclosed\n---\nbody")
	f.Add("reviewer.md", "no frontmatter at all")
	f.Add("reviewer.md", "---\n")
	f.Add("reviewer.md", "")
	f.Add("a.md", "---\n---\n")

	f.Fuzz(func(t *testing.T, path, content string) {
		_, _ = agentdef.Parse(path, content)
	})
}

// FuzzStatuslineDecode tests status line input decoding for crashes
func FuzzStatuslineDecode(f *testing.F) {
	f.Add(`{"model":{"display_name":"Opus"},"workspace":{"current_dir":"/tmp/proj"}}`)
	f.Add(`{"cwd":"/tmp"}`)
	f.Add(`{}`)
	f.Add(`nonsense`)
	f.Add(``)

	f.Fuzz(func(t *testing.T, input string) {
		_ = statusline.Decode(strings.NewReader(input))
	})
}
