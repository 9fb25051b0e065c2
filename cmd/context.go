package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/chaperonehq/chaperone/internal/config"
	"github.com/chaperonehq/chaperone/internal/hook"
	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Inject project context before an agent runs (PreToolUse Task hook)",
	Long: `Context assembles a bounded digest of the current project (directory
structure, git branch, available documentation, key file excerpts) and
writes it to stdout, where the host forwards it to the agent as additional
context.

Every section is optional; whatever can be built is emitted and the command
always exits 0.`,
	Run: runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) {
	start := time.Now()
	in := hook.Decode(os.Stdin)
	rep := hook.RunContext(in, config.Get())
	if !rep.Relevant {
		return
	}

	fmt.Fprintf(os.Stderr, "🧠 Injecting context for %s...\n", rep.Subject)
	if rep.Context != "" {
		fmt.Print(rep.Context)
	}
	fmt.Fprintf(os.Stderr, "✅ Context injected for %s\n", rep.Subject)

	logInvocation("context", in, rep, start)
}
