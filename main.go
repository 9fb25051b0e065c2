// chaperone - advisory hooks for Claude Code agent workflows
//
// One binary, one subcommand per hook lifecycle point:
//
//	result     - validate agent output quality (PostToolUse Task)
//	file       - validate modified file content (PostToolUse Edit|Write|MultiEdit)
//	context    - inject project context (PreToolUse Task)
//	monitor    - record agent usage metrics (PostToolUse Task)
//	statusline - format the status bar line
//
// Hooks read one JSON event from stdin, print advisory feedback to stderr,
// and always exit 0: chaperone comments on the workflow, it never blocks it.
//
// Usage in ~/.claude/settings.json:
//
//	"hooks": {
//	  "PostToolUse": [{
//	    "matcher": "Edit|Write|MultiEdit",
//	    "hooks": [{"type": "command", "command": "chaperone file"}]
//	  }]
//	}
//
// Test:
//
//	echo '{"tool_name": "Edit", "tool_input": {"file_path": "app.js"}}' | chaperone file
package main

import (
	"os"

	"github.com/chaperonehq/chaperone/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
