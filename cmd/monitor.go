package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/chaperonehq/chaperone/internal/hook"
	"github.com/chaperonehq/chaperone/internal/logger"
	"github.com/chaperonehq/chaperone/internal/metrics"
	"github.com/spf13/cobra"
)

var metricsFile string

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Record agent usage metrics (PostToolUse Task hook)",
	Long: `Monitor records each agent invocation in a local metrics store and
prints usage statistics and optimization suggestions to stderr.

The store lives at ~/.local/share/chaperone/metrics.json by default. Store
failures are reported and ignored; the command always exits 0.`,
	Run: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Path of the metrics store (default ~/.local/share/chaperone/metrics.json)")
}

func runMonitor(cmd *cobra.Command, args []string) {
	in := hook.Decode(os.Stdin)
	if hook.KindOf(in.ToolName) != hook.KindTask {
		logger.Debug("monitor skipping tool", "tool", in.ToolName)
		return
	}

	agent := in.Agent()
	fmt.Fprintf(os.Stderr, "📊 Recording %s invocation...\n", agent)

	path := metricsFile
	if path == "" {
		var err error
		path, err = metrics.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "metrics unavailable: %v\n", err)
			return
		}
	}

	store := metrics.Load(path)
	stats := store.Record(agent, in.ToolInput.Prompt, time.Now())

	fmt.Fprintln(os.Stderr, metrics.Summary(stats))
	for _, s := range metrics.Suggestions(stats) {
		fmt.Fprintf(os.Stderr, "💡 %s\n", s)
	}

	if err := metrics.Save(path, store); err != nil {
		fmt.Fprintf(os.Stderr, "failed to save metrics: %v\n", err)
	}
}
