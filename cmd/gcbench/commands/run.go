// ABOUTME: run command: drives the workload, tears it down and reports statistics
// ABOUTME: Serves Prometheus metrics while running when enabled

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/prateek/tracegc/gc"
	"github.com/prateek/tracegc/internal/workload"
	gcprom "github.com/prateek/tracegc/metrics/prometheus"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the synthetic workload and report collector statistics",
	Long: `Run the interpreter workload against a fresh heap, then release every
root and collect once more to confirm the heap empties.

Examples:
  # Run with defaults
  gcbench run

  # Collect on every 8th allocation with a fixed seed
  gcbench run --threshold 8 --seed 42

  # Serve Prometheus metrics while running
  GCBENCH_METRICS_ENABLED=true gcbench run --steps 1000000`,
	RunE: runRun,
}

func init() {
	addWorkloadFlags(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := InitLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var extra []gc.Option
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		extra = append(extra, gc.WithMetrics(gcprom.New(reg, "tracegc")))

		shutdown := serveMetrics(cfg.Metrics.Addr, reg, log)
		defer shutdown()
	}

	in, err := newInterp(cfg, log, extra...)
	if err != nil {
		return err
	}
	heap := in.Heap()

	log.Info("workload starting",
		"steps", cfg.Workload.Steps,
		"seed", cfg.Workload.Seed,
		"heap", heap)

	runner := workload.NewRunner(in, cfg.Workload, log)
	rep, runErr := runner.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		log.Warn("workload interrupted", "steps", rep.Steps)
	}

	runner.Release()
	in.Close()
	final, err := heap.CollectChecked()
	if err != nil {
		return fmt.Errorf("final collection: %w", err)
	}
	log.Info("workload finished", "heap", heap)

	printReport(cmd.OutOrStdout(), rep, final, heap.Stats())
	if n := heap.ObjectCount(); n != 0 {
		return fmt.Errorf("heap not empty after releasing every root: %d objects remain", n)
	}
	return nil
}

// serveMetrics exposes reg on addr/metrics until the returned function is
// called.
func serveMetrics(addr string, reg *prometheus.Registry, log *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("metrics endpoint listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("metrics server shutdown", "error", err)
		}
	}
}

func printReport(w io.Writer, rep workload.Report, final int, s gc.Stats) {
	rate := 0.0
	if rep.Elapsed > 0 {
		rate = float64(rep.FinalStats.Allocations) / rep.Elapsed.Seconds()
	}

	printPairs(w, [][2]string{
		{"Steps", humanize.Comma(int64(rep.Steps))},
		{"Lists built", humanize.Comma(int64(rep.Lists))},
		{"Cycles closed", humanize.Comma(int64(rep.Cycles))},
		{"Definitions", humanize.Comma(int64(rep.Defines))},
		{"Frames popped", humanize.Comma(int64(rep.FramePops))},
		{"Peak live objects", humanize.Comma(int64(rep.MaxLive))},
		{"Elapsed", rep.Elapsed.Round(time.Microsecond).String()},
		{"Allocation rate", humanize.SIWithDigits(rate, 1, "allocs/s")},
	})
	fmt.Fprintln(w)

	printTable(w, []string{"Counter", "Value"}, [][]string{
		{"allocations", humanize.Comma(int64(s.Allocations))},
		{"collections", humanize.Comma(int64(s.Collections))},
		{"automatic", humanize.Comma(int64(s.AutoCollections))},
		{"reclaimed", humanize.Comma(int64(s.Reclaimed))},
		{"reclaimed by pre-pass", humanize.Comma(int64(s.PrepassReclaimed))},
		{"reclaimed at teardown", humanize.Comma(int64(final))},
		{"violations", humanize.Comma(int64(s.Violations))},
		{"live after teardown", humanize.Comma(int64(s.Live))},
	})
}
