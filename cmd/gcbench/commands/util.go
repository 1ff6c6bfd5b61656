// ABOUTME: Shared command helpers for config loading, logging and heap setup
// ABOUTME: Applies workload flag overrides on top of the loaded config

package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/prateek/tracegc/gc"
	"github.com/prateek/tracegc/internal/config"
	"github.com/prateek/tracegc/internal/logger"
	"github.com/prateek/tracegc/internal/workload"
)

// loadConfig reads the configuration and applies the workload flags the
// user set explicitly on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Lookup("steps") != nil && flags.Changed("steps") {
		cfg.Workload.Steps, _ = flags.GetInt("steps")
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		cfg.Workload.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Lookup("threshold") != nil && flags.Changed("threshold") {
		cfg.Heap.Threshold, _ = flags.GetInt("threshold")
	}
	if flags.Lookup("no-prepass") != nil && flags.Changed("no-prepass") {
		off, _ := flags.GetBool("no-prepass")
		cfg.Heap.Prepass = !off
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// addWorkloadFlags registers the overrides understood by loadConfig.
func addWorkloadFlags(cmd *cobra.Command) {
	cmd.Flags().Int("steps", 0, "number of mutator steps (overrides workload.steps)")
	cmd.Flags().Int64("seed", 0, "random seed (overrides workload.seed)")
	cmd.Flags().Int("threshold", 0, "allocations between automatic collections (overrides heap.threshold)")
	cmd.Flags().Bool("no-prepass", false, "disable the pruning pre-pass")
}

// InitLogger builds the logger described by cfg.
func InitLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	l, closeFn, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, closeFn, nil
}

// newInterp creates a heap and interpreter from cfg.
func newInterp(cfg *config.Config, log *slog.Logger, extra ...gc.Option) (*workload.Interp, error) {
	opts := append([]gc.Option{
		gc.WithLogger(log),
		gc.WithPrepass(cfg.Heap.Prepass),
	}, extra...)

	heap, err := gc.New[*workload.Cell](cfg.Heap.Threshold, opts...)
	if err != nil {
		return nil, err
	}
	return workload.NewInterp(heap), nil
}
