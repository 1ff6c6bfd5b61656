// ABOUTME: explain command: runs the workload and analyses the live heap
// ABOUTME: Optionally writes the snapshot as a JSON dump

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prateek/tracegc/graph"
	"github.com/prateek/tracegc/heapdump"
	"github.com/prateek/tracegc/internal/workload"
)

var (
	explainTop   int
	explainPaths int
	explainDump  string
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Run the workload and explain what keeps the heap alive",
	Long: `Run the interpreter workload, stop before teardown and analyse the
live heap: which objects retain the most, who dominates them and the
reference chains that lead back to a root.

Examples:
  # Show the five largest retainers
  gcbench explain --steps 2000

  # Save the snapshot for later inspection
  gcbench explain --dump heap.json`,
	RunE: runExplain,
}

func init() {
	addWorkloadFlags(explainCmd)
	explainCmd.Flags().IntVar(&explainTop, "top", 5, "number of retainers to show")
	explainCmd.Flags().IntVar(&explainPaths, "paths", 3, "paths to roots shown per retainer")
	explainCmd.Flags().StringVar(&explainDump, "dump", "", "write the snapshot as JSON to this file")
}

func runExplain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := InitLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	in, err := newInterp(cfg, log)
	if err != nil {
		return err
	}

	runner := workload.NewRunner(in, cfg.Workload, log)
	if _, err := runner.Run(cmd.Context()); err != nil {
		return err
	}

	snap := in.Heap().Snapshot()
	if explainDump != "" {
		if err := writeDump(explainDump, snap); err != nil {
			return err
		}
		log.Info("snapshot written", "path", explainDump, "objects", snap.NumObjects())
	}

	printAnalysis(cmd.OutOrStdout(), analyze(snap, explainTop, explainPaths))
	return nil
}

func writeDump(path string, snap graph.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dump file: %w", err)
	}
	if err := heapdump.Write(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
