// Package cmd implements the CLI commands for chaperone.
package cmd

import (
	"time"

	"github.com/chaperonehq/chaperone/internal/audit"
	"github.com/chaperonehq/chaperone/internal/config"
	"github.com/chaperonehq/chaperone/internal/hook"
	"github.com/chaperonehq/chaperone/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	noAuditLog bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chaperone",
	Short: "Advisory hooks for Claude Code agent workflows",
	Long: `Chaperone supplies the hook commands for an agent-driven Claude Code
workflow: result and file-content validators, project context injection,
a status line, and usage metrics.

Every hook subcommand reads one JSON event payload from stdin, prints
advisory feedback to stderr, and exits 0. Hooks never block the workflow.

Usage in ~/.claude/settings.json:
  "hooks": {
    "PreToolUse": [{
      "matcher": "Task",
      "hooks": [{"type": "command", "command": "chaperone context"}]
    }],
    "PostToolUse": [{
      "matcher": "Task",
      "hooks": [{"type": "command", "command": "chaperone result"}]
    }, {
      "matcher": "Edit|Write|MultiEdit",
      "hooks": [{"type": "command", "command": "chaperone file"}]
    }]
  },
  "statusLine": {"type": "command", "command": "chaperone statusline"}`,
	// Silence usage on errors
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Initialize before running any command
	cobra.OnInitialize(initApp)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVar(&noAuditLog, "no-audit-log", false, "Disable audit logging")
}

// initApp initializes the application (logger, config, audit)
func initApp() {
	logger.Init(logger.Options{Verbose: verbose})
	config.Init()
	audit.Init("", noAuditLog)
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return verbose
}

// logInvocation writes one audit entry for a completed hook run.
func logInvocation(hookName string, in hook.Input, rep hook.Report, start time.Time) {
	audit.Log(audit.Entry{
		SessionID:  in.SessionID,
		ToolUseID:  in.ToolUseID,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
		Hook:       hookName,
		Tool:       in.ToolName,
		Agent:      in.ToolInput.SubagentType,
		Subject:    rep.Subject,
		Findings:   len(rep.Result.Findings),
		Degraded:   rep.Result.Degraded,
		Diagnostic: rep.Result.Diagnostic,
		Cwd:        in.Cwd,
	})
}
