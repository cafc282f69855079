package montecarlo

import "time"

// Params configures a simulation run. Sizes are percentages of current
// capital risked per trade (5 means 5%).
type Params struct {
	WinProbability float64   // chance a single trade wins, in (0, 1)
	Trades         int       // trades per trial
	Trials         int       // Monte Carlo trials
	InitialCapital float64   // starting capital per trial
	RiskReward     float64   // payout per unit risked on a win (1.0 = 1:1)
	Sizes          []float64 // candidate position sizes, percent
	Seed           int64     // random seed; 0 picks a time-based seed
	Workers        int       // parallel workers; 0 uses all CPUs
	KeepCurves     bool      // retain every trial's full equity curve
}

// TrialResult is the outcome of replaying one trade sequence at one size.
type TrialResult struct {
	FinalCapital float64
	MaxDrawdown  float64   // largest peak-to-trough decline, 0..1
	Curve        []float64 // equity curve; nil unless curves are retained
}

// SizeMetrics aggregates all trial results for one candidate size.
// Pct fields are on a 0-100 scale.
type SizeMetrics struct {
	MeanFinal         float64
	MedianFinal       float64
	StdFinal          float64
	MinFinal          float64
	MaxFinal          float64
	GeoMeanReturnPct  float64 // compounded growth proxy, the headline metric
	MeanReturnPct     float64
	MedianReturnPct   float64
	AvgMaxDrawdownPct float64
	WorstDrawdownPct  float64
	ProfitablePct     float64
	BankruptPct       float64
	RiskAdjusted      float64 // (mean - initial) / std, 0 when std is 0
}

// SizeResult holds everything computed for one candidate size.
type SizeResult struct {
	Size        float64 // percent of capital risked per trade
	Trials      []TrialResult
	Metrics     SizeMetrics
	MedianCurve []float64 // equity curve of the median-final-capital trial
}

// Selection names the best size under each criterion. The two
// drawdown-constrained criteria may have no eligible size.
type Selection struct {
	BestGeometric    float64
	BestMedian       float64
	BestMean         float64
	BestRiskAdjusted float64
	BestSafeGrowth   float64
	HasSafeGrowth    bool
	BestVerySafe     float64
	HasVerySafe      bool
}

// RunResult is the complete output of one Monte Carlo run.
type RunResult struct {
	RunID   string
	Params  Params // echoes the parameters used, including the actual seed
	Sizes   []SizeResult
	Optimal Selection
	Elapsed time.Duration
}
