package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/GeorgeHategan/position-sizing-calculator/internal/montecarlo"
)

const rule = "======================================================================"

// Render writes the console report for a completed run. tableStep controls
// which sizes appear in the detail table (0 shows every candidate); the
// optimal size row is always included.
func Render(w io.Writer, res *montecarlo.RunResult, tableStep float64) {
	p := res.Params

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "OPTIMAL POSITION SIZE FINDER")
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "\nParameters:")
	fmt.Fprintf(w, "  Win probability:    %.1f%%\n", p.WinProbability*100)
	fmt.Fprintf(w, "  Risk/reward ratio:  1:%g\n", p.RiskReward)
	fmt.Fprintf(w, "  Trades per trial:   %d\n", p.Trades)
	fmt.Fprintf(w, "  Monte Carlo trials: %d\n", p.Trials)
	fmt.Fprintf(w, "  Initial capital:    $%.2f\n", p.InitialCapital)
	if len(p.Sizes) > 0 {
		fmt.Fprintf(w, "  Candidate sizes:    %g%% to %g%%\n", p.Sizes[0], p.Sizes[len(p.Sizes)-1])
	}
	fmt.Fprintf(w, "  Seed:               %d\n", p.Seed)
	fmt.Fprintf(w, "  Run ID:             %s\n", res.RunID)

	opt := res.Optimal
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "OPTIMAL POSITION SIZES")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\n  Best geometric growth:  %g%%\n", opt.BestGeometric)
	fmt.Fprintln(w, "\n  Other criteria:")
	fmt.Fprintf(w, "  - Best median final:    %g%%\n", opt.BestMedian)
	fmt.Fprintf(w, "  - Best mean final:      %g%%\n", opt.BestMean)
	fmt.Fprintf(w, "  - Best risk-adjusted:   %g%%\n", opt.BestRiskAdjusted)
	if opt.HasSafeGrowth {
		fmt.Fprintf(w, "  - Best safe growth (avg max DD < 30%%):  %g%%\n", opt.BestSafeGrowth)
	} else {
		fmt.Fprintln(w, "  - Best safe growth (avg max DD < 30%):  none eligible")
	}
	if opt.HasVerySafe {
		fmt.Fprintf(w, "  - Best very safe (avg max DD < 20%%):    %g%%\n", opt.BestVerySafe)
	} else {
		fmt.Fprintln(w, "  - Best very safe (avg max DD < 20%):    none eligible")
	}

	if m, ok := metricsFor(res, opt.BestGeometric); ok {
		fmt.Fprintf(w, "\n  Metrics at the optimal %g%% size:\n", opt.BestGeometric)
		fmt.Fprintf(w, "    Geometric return:  %.1f%%\n", m.GeoMeanReturnPct)
		fmt.Fprintf(w, "    Median return:     %.1f%%\n", m.MedianReturnPct)
		fmt.Fprintf(w, "    Avg max drawdown:  %.1f%%\n", m.AvgMaxDrawdownPct)
		fmt.Fprintf(w, "    Profitable:        %.1f%%\n", m.ProfitablePct)
		fmt.Fprintf(w, "    Bankrupt:          %.1f%%\n", m.BankruptPct)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "METRICS BY POSITION SIZE")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\n%-7s %-11s %-11s %-10s %-11s %-9s\n", "Size", "GeoReturn", "MedianRet", "AvgMaxDD", "Profitable", "Bankrupt")
	fmt.Fprintf(w, "%-7s %-11s %-11s %-10s %-11s %-9s\n", "(%)", "(%)", "(%)", "(%)", "(%)", "(%)")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, sr := range res.Sizes {
		if !tableRow(sr.Size, tableStep, opt.BestGeometric) {
			continue
		}
		marker := ""
		if sr.Size == opt.BestGeometric {
			marker = " <-- optimal"
		}
		m := sr.Metrics
		fmt.Fprintf(w, "%-7g %10.1f  %10.1f  %9.1f  %10.1f  %8.1f%s\n",
			sr.Size, m.GeoMeanReturnPct, m.MedianReturnPct,
			m.AvgMaxDrawdownPct, m.ProfitablePct, m.BankruptPct, marker)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Simulated %d trials of %d trades across %d candidate sizes in %s.\n",
		p.Trials, p.Trades, len(p.Sizes), res.Elapsed.Round(time.Millisecond))
}

// tableRow reports whether a size belongs in the detail table: sizes on
// the step grid, plus the optimal size itself.
func tableRow(size, step, optimal float64) bool {
	if size == optimal || step <= 0 {
		return true
	}
	q := size / step
	return math.Abs(q-math.Round(q)) < 1e-9
}

func metricsFor(res *montecarlo.RunResult, size float64) (montecarlo.SizeMetrics, bool) {
	for _, sr := range res.Sizes {
		if sr.Size == size {
			return sr.Metrics, true
		}
	}
	return montecarlo.SizeMetrics{}, false
}
