package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/chaperonehq/chaperone/internal/config"
	"github.com/chaperonehq/chaperone/internal/hook"
	"github.com/spf13/cobra"
)

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Validate an agent result (PostToolUse Task hook)",
	Long: `Result checks a finished agent's output against the universal forbidden
patterns and, when one is configured, the agent's quality gate (required
content, minimum length, extra forbidden patterns).

Feedback is advisory and goes to stderr; the command always exits 0 so the
workflow is never blocked.`,
	Run: runResult,
}

func init() {
	rootCmd.AddCommand(resultCmd)
}

func runResult(cmd *cobra.Command, args []string) {
	start := time.Now()
	in := hook.Decode(os.Stdin)
	rep := hook.RunResult(in, config.Get())
	if !rep.Relevant {
		return
	}

	fmt.Fprintf(os.Stderr, "🔍 Validating %s result...\n", rep.Subject)
	switch {
	case rep.Result.Degraded:
		fmt.Fprintf(os.Stderr, "⚠️ Validation skipped: %s\n", rep.Result.Diagnostic)
	case rep.Result.Clean() && len(rep.Notes) == 0:
		fmt.Fprintln(os.Stderr, "✅ Quality gates passed")
	default:
		fmt.Fprintln(os.Stderr, "⚠️ Quality gate failed:")
		for _, note := range rep.Notes {
			fmt.Fprintf(os.Stderr, "  %s\n", note)
		}
		for _, f := range rep.Result.Findings {
			fmt.Fprintf(os.Stderr, "  Line %d: '%s' (%s)\n", f.Line, f.Text, f.Label)
		}
		fmt.Fprintln(os.Stderr, "Consider refining the task prompt or agent instructions")
	}

	logInvocation("result", in, rep, start)
}
