package montecarlo

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// progressInterval is how many completed trials pass between progress logs.
const progressInterval = 100

// Runner executes Monte Carlo position-sizing simulations.
type Runner struct {
	params Params
	logger *zap.Logger
}

// NewRunner creates a runner for the given parameters. A zero seed is
// replaced with a time-based one; the seed actually used is echoed in the
// run result so any run can be reproduced. A nil logger disables logging.
func NewRunner(params Params, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if params.Seed == 0 {
		params.Seed = time.Now().UnixNano()
	}
	if params.Workers <= 0 {
		params.Workers = runtime.NumCPU()
	}
	return &Runner{params: params, logger: logger}
}

// Run performs Params.Trials independent trials. Within a trial every
// candidate size replays the identical outcome sequence; that sharing is
// what makes the cross-size comparison fair. Trial i draws from its own
// rand source seeded with Seed+i, so results are identical for any worker
// count and do not depend on completion order.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	p := r.params
	start := time.Now()

	r.logger.Info("starting Monte Carlo run",
		zap.Int("trials", p.Trials),
		zap.Int("trades", p.Trades),
		zap.Int("sizes", len(p.Sizes)),
		zap.Float64("win_probability", p.WinProbability),
		zap.Int("workers", p.Workers),
		zap.Int64("seed", p.Seed),
	)

	// results[trial][size]; each worker writes disjoint rows, no locks.
	results := make([][]TrialResult, p.Trials)

	jobs := make(chan int)
	var wg sync.WaitGroup
	var completed atomic.Int64
	for w := 0; w < p.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for trial := range jobs {
				results[trial] = r.runTrial(trial)
				if n := completed.Add(1); n%progressInterval == 0 {
					r.logger.Debug("trials completed",
						zap.Int64("done", n),
						zap.Int("total", p.Trials))
				}
			}
		}()
	}

	var runErr error
dispatch:
	for trial := 0; trial < p.Trials; trial++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break dispatch
		case jobs <- trial:
		}
	}
	close(jobs)
	wg.Wait()

	if runErr != nil {
		return nil, runErr
	}

	res := &RunResult{
		RunID:   uuid.NewString(),
		Params:  p,
		Sizes:   r.collectSizes(results),
		Elapsed: time.Since(start),
	}
	res.Optimal = SelectOptimal(res.Sizes)

	r.logger.Info("Monte Carlo run complete",
		zap.String("run_id", res.RunID),
		zap.Duration("elapsed", res.Elapsed),
		zap.Float64("optimal_size_pct", res.Optimal.BestGeometric),
	)

	return res, nil
}

// runTrial generates one shared outcome sequence and replays it at every
// candidate size.
func (r *Runner) runTrial(trial int) []TrialResult {
	p := r.params
	rng := rand.New(rand.NewSource(p.Seed + int64(trial)))
	outcomes := GenerateOutcomes(rng, p.Trades, p.WinProbability)

	row := make([]TrialResult, len(p.Sizes))
	for si, size := range p.Sizes {
		curve, maxDD := SimulatePortfolio(size, outcomes, p.InitialCapital, p.RiskReward)
		tr := TrialResult{FinalCapital: curve[len(curve)-1], MaxDrawdown: maxDD}
		if p.KeepCurves {
			tr.Curve = curve
		}
		row[si] = tr
	}
	return row
}

// collectSizes regroups the [trial][size] matrix per size and computes
// the per-size metrics and representative curve.
func (r *Runner) collectSizes(results [][]TrialResult) []SizeResult {
	p := r.params
	sizes := make([]SizeResult, len(p.Sizes))
	for si, size := range p.Sizes {
		trials := make([]TrialResult, len(results))
		for ti := range results {
			trials[ti] = results[ti][si]
		}
		sizes[si] = SizeResult{
			Size:        size,
			Trials:      trials,
			Metrics:     CalculateSizeMetrics(trials, p.InitialCapital),
			MedianCurve: r.medianCurve(size, trials),
		}
	}
	return sizes
}

// medianCurve returns the equity curve of the trial whose final capital
// is the median for the size, re-simulating that trial from its seed when
// curves were not retained.
func (r *Runner) medianCurve(sizePct float64, trials []TrialResult) []float64 {
	if len(trials) == 0 {
		return nil
	}

	idx := make([]int, len(trials))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return trials[idx[a]].FinalCapital < trials[idx[b]].FinalCapital
	})
	mid := idx[len(idx)/2]

	if trials[mid].Curve != nil {
		return trials[mid].Curve
	}

	p := r.params
	rng := rand.New(rand.NewSource(p.Seed + int64(mid)))
	outcomes := GenerateOutcomes(rng, p.Trades, p.WinProbability)
	curve, _ := SimulatePortfolio(sizePct, outcomes, p.InitialCapital, p.RiskReward)
	return curve
}
