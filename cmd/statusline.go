package cmd

import (
	"fmt"
	"os"

	"github.com/chaperonehq/chaperone/internal/config"
	"github.com/chaperonehq/chaperone/internal/statusline"
	"github.com/spf13/cobra"
)

var statuslineCmd = &cobra.Command{
	Use:   "statusline",
	Short: "Format the status line shown by the Claude Code status bar",
	Long: `Statusline reads the status payload from stdin and prints one line:
model name, directory, git branch with change count, and worktree count.
Fields that cannot be determined (no git, no model) are omitted.

Usage in ~/.claude/settings.json:
  "statusLine": {"type": "command", "command": "chaperone statusline"}`,
	Run: runStatusline,
}

func init() {
	rootCmd.AddCommand(statuslineCmd)
}

func runStatusline(cmd *cobra.Command, args []string) {
	in := statusline.Decode(os.Stdin)
	fmt.Println(statusline.Format(in, config.Get().Statusline))
}
