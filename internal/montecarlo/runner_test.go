package montecarlo_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/GeorgeHategan/position-sizing-calculator/internal/montecarlo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() montecarlo.Params {
	return montecarlo.Params{
		WinProbability: 0.57,
		Trades:         200,
		Trials:         50,
		InitialCapital: 10000,
		RiskReward:     1.0,
		Sizes:          []float64{1, 5, 10},
		Seed:           42,
		Workers:        4,
	}
}

func TestRunner_Reproducible(t *testing.T) {
	a, err := montecarlo.NewRunner(testParams(), nil).Run(context.Background())
	require.NoError(t, err)
	b, err := montecarlo.NewRunner(testParams(), nil).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, b.Sizes, len(a.Sizes))
	for si := range a.Sizes {
		assert.Equal(t, a.Sizes[si].Metrics, b.Sizes[si].Metrics, "metrics differ for size %g", a.Sizes[si].Size)
		for ti := range a.Sizes[si].Trials {
			assert.Equal(t, a.Sizes[si].Trials[ti].FinalCapital, b.Sizes[si].Trials[ti].FinalCapital)
		}
	}
	assert.Equal(t, a.Optimal, b.Optimal)
}

func TestRunner_WorkerCountIndependent(t *testing.T) {
	serial := testParams()
	serial.Workers = 1
	parallel := testParams()
	parallel.Workers = 8

	a, err := montecarlo.NewRunner(serial, nil).Run(context.Background())
	require.NoError(t, err)
	b, err := montecarlo.NewRunner(parallel, nil).Run(context.Background())
	require.NoError(t, err)

	for si := range a.Sizes {
		assert.Equal(t, a.Sizes[si].Metrics, b.Sizes[si].Metrics, "worker count changed results for size %g", a.Sizes[si].Size)
	}
}

// With 1:1 risk/reward and no ruin, the win/loss pattern can be read back
// off an equity curve. Every size within a trial must show the identical
// pattern, and it must match the trial's seeded generator stream.
func TestRunner_CrossSizeFairness(t *testing.T) {
	params := testParams()
	params.KeepCurves = true
	params.Sizes = []float64{1, 10}

	res, err := montecarlo.NewRunner(params, nil).Run(context.Background())
	require.NoError(t, err)

	outcomesFromCurve := func(curve []float64) []bool {
		wins := make([]bool, len(curve)-1)
		for i := 1; i < len(curve); i++ {
			wins[i-1] = curve[i] > curve[i-1]
		}
		return wins
	}

	for trial := 0; trial < params.Trials; trial++ {
		small := outcomesFromCurve(res.Sizes[0].Trials[trial].Curve)
		large := outcomesFromCurve(res.Sizes[1].Trials[trial].Curve)
		require.Equal(t, small, large, "trial %d saw different outcomes at different sizes", trial)

		rng := rand.New(rand.NewSource(params.Seed + int64(trial)))
		expected := montecarlo.GenerateOutcomes(rng, params.Trades, params.WinProbability)
		require.Equal(t, expected, small, "trial %d pattern does not match its seed stream", trial)
	}
}

func TestRunner_CurveRetention(t *testing.T) {
	res, err := montecarlo.NewRunner(testParams(), nil).Run(context.Background())
	require.NoError(t, err)

	for _, sr := range res.Sizes {
		for _, tr := range sr.Trials {
			assert.Nil(t, tr.Curve, "curves should be dropped by default")
		}
		require.Len(t, sr.MedianCurve, testParams().Trades+1)
		assert.Equal(t, 10000.0, sr.MedianCurve[0])
	}
}

func TestRunner_ResultEnvelope(t *testing.T) {
	params := testParams()
	params.Seed = 0 // ask for a time-based seed

	res, err := montecarlo.NewRunner(params, nil).Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.NotZero(t, res.Params.Seed, "actual seed must be echoed for reproducibility")
	assert.Greater(t, res.Params.Workers, 0)
	require.Len(t, res.Sizes, len(params.Sizes))
	for i, sr := range res.Sizes {
		assert.Equal(t, params.Sizes[i], sr.Size)
	}
}

func TestRunner_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	params := testParams()
	params.Trials = 10000

	_, err := montecarlo.NewRunner(params, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// Full-scale scenario: 57% win rate at 1:1, sizes 1%..40% in half-percent
// steps. Compounded growth peaks at a moderate size and collapses for
// aggressive ones, while ruin frequency never decreases as size grows.
func TestRunner_ScenarioShape(t *testing.T) {
	sizes := make([]float64, 0, 79)
	for i := 2; i <= 80; i++ {
		sizes = append(sizes, float64(i)/2)
	}
	params := montecarlo.Params{
		WinProbability: 0.57,
		Trades:         500,
		Trials:         500,
		InitialCapital: 10000,
		RiskReward:     1.0,
		Sizes:          sizes,
		Seed:           42,
		Workers:        8,
	}

	res, err := montecarlo.NewRunner(params, nil).Run(context.Background())
	require.NoError(t, err)

	for i := 1; i < len(res.Sizes); i++ {
		assert.GreaterOrEqual(t, res.Sizes[i].Metrics.BankruptPct, res.Sizes[i-1].Metrics.BankruptPct,
			"bankrupt%% decreased from size %g to %g", res.Sizes[i-1].Size, res.Sizes[i].Size)
	}

	best := res.Optimal.BestGeometric
	assert.GreaterOrEqual(t, best, 5.0, "optimal size implausibly small")
	assert.LessOrEqual(t, best, 25.0, "optimal size implausibly large")

	bestGeo, ok := geoFor(res, best)
	require.True(t, ok)
	lastGeo := res.Sizes[len(res.Sizes)-1].Metrics.GeoMeanReturnPct
	assert.Less(t, lastGeo, bestGeo, "growth should decline past the optimum")
	assert.Negative(t, lastGeo, "risking 40%% per trade should destroy compounded growth")
}

func geoFor(res *montecarlo.RunResult, size float64) (float64, bool) {
	for _, sr := range res.Sizes {
		if sr.Size == size {
			return sr.Metrics.GeoMeanReturnPct, true
		}
	}
	return 0, false
}
