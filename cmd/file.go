package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chaperonehq/chaperone/internal/config"
	"github.com/chaperonehq/chaperone/internal/hook"
	"github.com/spf13/cobra"
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Validate modified file content (PostToolUse Edit|Write|MultiEdit hook)",
	Long: `File scans a just-modified file for forbidden patterns: debug remnants,
TODO/FIXME markers, and compatibility-bloat phrases.

Feedback is advisory and goes to stderr; the command always exits 0 so the
workflow is never blocked. Files without a recognized code extension are
skipped without being read.`,
	Run: runFile,
}

func init() {
	rootCmd.AddCommand(fileCmd)
}

func runFile(cmd *cobra.Command, args []string) {
	start := time.Now()
	in := hook.Decode(os.Stdin)
	rep := hook.RunFile(in, config.Get())
	if !rep.Relevant {
		return
	}

	fmt.Fprintf(os.Stderr, "🔍 Validating code quality in %s...\n", filepath.Base(rep.Subject))
	switch {
	case rep.Result.Degraded:
		fmt.Fprintf(os.Stderr, "⚠️ Validation skipped: %s\n", rep.Result.Diagnostic)
	case rep.Result.Clean():
		fmt.Fprintln(os.Stderr, "✅ Code quality check passed")
	default:
		fmt.Fprintln(os.Stderr, "⚠️ Code quality issues found:")
		for _, f := range rep.Result.Findings {
			fmt.Fprintf(os.Stderr, "  Line %d: '%s' (%s)\n", f.Line, f.Text, f.Label)
		}
		fmt.Fprintln(os.Stderr, "Consider removing compatibility bloat and debugging remnants")
	}

	logInvocation("file", in, rep, start)
}
