package report

import (
	"fmt"
	"strings"

	"github.com/GeorgeHategan/position-sizing-calculator/internal/montecarlo"
)

// RenderMarkdown renders a completed run as a Markdown string.
func RenderMarkdown(res *montecarlo.RunResult, tableStep float64) string {
	var sb strings.Builder
	p := res.Params

	sb.WriteString("# Position Sizing Report\n\n")
	sb.WriteString(fmt.Sprintf("Run: `%s` | Elapsed: %s\n\n", res.RunID, res.Elapsed))

	sb.WriteString("## Parameters\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Win probability | %.1f%% |\n", p.WinProbability*100))
	sb.WriteString(fmt.Sprintf("| Risk/reward | 1:%g |\n", p.RiskReward))
	sb.WriteString(fmt.Sprintf("| Trades per trial | %d |\n", p.Trades))
	sb.WriteString(fmt.Sprintf("| Trials | %d |\n", p.Trials))
	sb.WriteString(fmt.Sprintf("| Initial capital | %.2f |\n", p.InitialCapital))
	sb.WriteString(fmt.Sprintf("| Candidate sizes | %d |\n", len(p.Sizes)))
	sb.WriteString(fmt.Sprintf("| Seed | %d |\n", p.Seed))
	sb.WriteString("\n")

	opt := res.Optimal
	sb.WriteString("## Optimal Sizes\n\n")
	sb.WriteString("| Criterion | Size |\n")
	sb.WriteString("|-----------|------|\n")
	sb.WriteString(fmt.Sprintf("| Best geometric growth | %g%% |\n", opt.BestGeometric))
	sb.WriteString(fmt.Sprintf("| Best median final | %g%% |\n", opt.BestMedian))
	sb.WriteString(fmt.Sprintf("| Best mean final | %g%% |\n", opt.BestMean))
	sb.WriteString(fmt.Sprintf("| Best risk-adjusted | %g%% |\n", opt.BestRiskAdjusted))
	sb.WriteString(fmt.Sprintf("| Best safe growth (avg max DD < 30%%) | %s |\n", constrained(opt.BestSafeGrowth, opt.HasSafeGrowth)))
	sb.WriteString(fmt.Sprintf("| Best very safe (avg max DD < 20%%) | %s |\n", constrained(opt.BestVerySafe, opt.HasVerySafe)))
	sb.WriteString("\n")

	sb.WriteString("## Metrics by Size\n\n")
	sb.WriteString("| Size | GeoReturn | MedianRet | MeanRet | AvgMaxDD | WorstDD | Profitable | Bankrupt | RiskAdj |\n")
	sb.WriteString("|------|-----------|-----------|---------|----------|---------|------------|----------|--------|\n")
	for _, sr := range res.Sizes {
		if !tableRow(sr.Size, tableStep, opt.BestGeometric) {
			continue
		}
		m := sr.Metrics
		sb.WriteString(fmt.Sprintf("| %g%% | %.1f%% | %.1f%% | %.1f%% | %.1f%% | %.1f%% | %.1f%% | %.1f%% | %.2f |\n",
			sr.Size, m.GeoMeanReturnPct, m.MedianReturnPct, m.MeanReturnPct,
			m.AvgMaxDrawdownPct, m.WorstDrawdownPct, m.ProfitablePct, m.BankruptPct, m.RiskAdjusted))
	}

	return sb.String()
}

func constrained(size float64, ok bool) string {
	if !ok {
		return "none eligible"
	}
	return fmt.Sprintf("%g%%", size)
}
