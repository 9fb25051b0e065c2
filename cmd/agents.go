package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/chaperonehq/chaperone/internal/agentdef"
	"github.com/chaperonehq/chaperone/internal/constants"
	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents [dir]",
	Short: "Lint agent definition files",
	Long: `Agents parses the Markdown agent definitions in a directory (default
.claude/agents) and reports frontmatter problems: missing name or
description, name/filename mismatches, and oversized descriptions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAgents,
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}

func runAgents(cmd *cobra.Command, args []string) error {
	dir := filepath.Join(constants.ClaudeConfigDir, constants.AgentsSubdir)
	if len(args) > 0 {
		dir = args[0]
	}

	defs, issues, err := agentdef.LintDir(dir)
	if err != nil {
		return err
	}

	if len(defs) == 0 {
		fmt.Printf("No agent definitions found in %s\n", dir)
		return nil
	}

	fmt.Printf("Checked %d agent definition(s) in %s\n", len(defs), dir)
	for _, def := range defs {
		name := def.Name
		if name == "" {
			name = filepath.Base(def.Path)
		}
		fmt.Printf("  - %s\n", name)
	}

	if len(issues) == 0 {
		fmt.Println("No issues found.")
		return nil
	}

	fmt.Printf("\n%d issue(s):\n", len(issues))
	for _, issue := range issues {
		fmt.Printf("  %s\n", issue)
	}
	return nil
}
