// ABOUTME: inspect command: analyses a JSON snapshot dump offline
// ABOUTME: Uses the same report as explain

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prateek/tracegc/heapdump"
)

var (
	inspectTop   int
	inspectPaths int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <dump.json>",
	Short: "Analyse a snapshot written by explain --dump",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectTop, "top", 5, "number of retainers to show")
	inspectCmd.Flags().IntVar(&inspectPaths, "paths", 3, "paths to roots shown per retainer")
}

func runInspect(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open dump: %w", err)
	}
	defer func() { _ = f.Close() }()

	g, err := heapdump.Read(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	printAnalysis(cmd.OutOrStdout(), analyze(g, inspectTop, inspectPaths))
	return nil
}
