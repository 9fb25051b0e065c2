package cmd

import (
	"fmt"
	"sort"

	"github.com/chaperonehq/chaperone/internal/config"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Validate configuration and show compiled rule sets",
	Long: `Rules validates the chaperone configuration file and displays all
compiled rules and quality gates.

This is useful for:
- Checking that your config.toml syntax is correct
- Seeing which patterns will actually be applied
- Debugging unexpected findings`,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("failed to load configuration")
	}
	if err := config.InitError(); err != nil {
		fmt.Printf("Config error (using embedded defaults): %v\n\n", err)
	} else {
		fmt.Println("Configuration valid!")
		fmt.Println()
	}

	fmt.Printf("File rules: %d\n", len(cfg.FileRules))
	for _, r := range cfg.FileRules {
		fmt.Printf("  - %s: %s\n", r.Label, r.Pattern())
	}
	fmt.Println()

	fmt.Printf("Result rules: %d\n", len(cfg.ResultRules))
	for _, r := range cfg.ResultRules {
		fmt.Printf("  - %s: %s\n", r.Label, r.Pattern())
	}
	fmt.Println()

	fmt.Printf("Quality gates: %d\n", len(cfg.Gates))
	agents := make([]string, 0, len(cfg.Gates))
	for agent := range cfg.Gates {
		agents = append(agents, agent)
	}
	sort.Strings(agents)
	for _, agent := range agents {
		gate := cfg.Gates[agent]
		fmt.Printf("  - %s: %d required, %d forbidden, min %d lines\n",
			agent, len(gate.Required), len(gate.Forbidden), gate.MinLines)
	}

	return nil
}
