// ABOUTME: Randomised mutator that drives an Interp through a workload
// ABOUTME: Builds lists and cycles, binds variables, pops scopes and drops roots

package workload

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/prateek/tracegc/gc"
	"github.com/prateek/tracegc/internal/config"
)

// Report summarises a finished run.
type Report struct {
	Steps      int
	Lists      int
	Cycles     int
	Defines    int
	FramePops  int
	MaxLive    int
	Elapsed    time.Duration
	FinalStats gc.Stats
}

// Runner executes a WorkloadConfig against an Interp.
type Runner struct {
	in     *Interp
	cfg    config.WorkloadConfig
	rnd    *rand.Rand
	logger *slog.Logger
	pool   []*gc.Root[*Cell]
	report Report
}

// NewRunner prepares a run. A nil logger discards output.
func NewRunner(in *Interp, cfg config.WorkloadConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		in:     in,
		cfg:    cfg,
		rnd:    rand.New(rand.NewSource(cfg.Seed)),
		logger: logger,
	}
}

// Run performs cfg.Steps mutator steps, checking ctx between steps. An
// explicit collection that reports a contract violation stops the run.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	heap := r.in.Heap()

	for step := 1; step <= r.cfg.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return r.finish(start), err
		}

		switch op := r.rnd.Intn(10); {
		case op < 4:
			r.buildList()
		case op < 6:
			r.define()
		case op < 7:
			r.in.PushFrame()
		case op < 8:
			if r.in.Depth() > 0 {
				if err := r.in.PopFrame(); err != nil {
					return r.finish(start), fmt.Errorf("step %d: %w", step, err)
				}
				r.report.FramePops++
			}
		default:
			r.drop()
		}

		if r.cfg.CollectEvery > 0 && step%r.cfg.CollectEvery == 0 {
			n, err := heap.CollectChecked()
			if err != nil {
				return r.finish(start), fmt.Errorf("step %d: %w", step, err)
			}
			r.logger.Debug("explicit collection", "step", step, "reclaimed", n, "live", heap.ObjectCount())
		}

		if live := heap.ObjectCount(); live > r.report.MaxLive {
			r.report.MaxLive = live
		}
		r.report.Steps = step
	}

	return r.finish(start), nil
}

// Release drops every value the runner still holds.
func (r *Runner) Release() {
	for _, root := range r.pool {
		root.Release()
	}
	r.pool = nil
}

// Pool returns the values currently rooted by the runner.
func (r *Runner) Pool() []*gc.Root[*Cell] {
	return r.pool
}

func (r *Runner) finish(start time.Time) Report {
	r.report.Elapsed = time.Since(start)
	r.report.FinalStats = r.in.Heap().Stats()
	return r.report
}

func (r *Runner) buildList() {
	n := 1 + r.rnd.Intn(r.cfg.ListLength)
	values := make([]int64, n)
	for i := range values {
		values[i] = r.rnd.Int63n(1000)
	}
	head := r.in.List(values...)
	r.report.Lists++

	if r.rnd.Float64() < r.cfg.CycleRatio {
		last := head.Value()
		for {
			next, err := last.Cdr.Get()
			if err != nil || next.Kind != KindPair {
				break
			}
			last = next
		}
		last.Cdr = head.AsGc()
		r.report.Cycles++
	}

	r.keep(head)
}

func (r *Runner) define() {
	if len(r.pool) == 0 {
		return
	}
	name := fmt.Sprintf("v%d", r.rnd.Intn(16))
	r.in.Intern(name)
	r.in.Define(name, r.pool[r.rnd.Intn(len(r.pool))].AsGc())
	r.report.Defines++
}

func (r *Runner) drop() {
	if len(r.pool) == 0 {
		return
	}
	i := r.rnd.Intn(len(r.pool))
	r.pool[i].Release()
	r.pool = append(r.pool[:i], r.pool[i+1:]...)
}

func (r *Runner) keep(root *gc.Root[*Cell]) {
	r.pool = append(r.pool, root)
	for len(r.pool) > r.cfg.MaxRoots {
		r.drop()
	}
}
