package montecarlo

import "sort"

// Drawdown thresholds for the constrained growth criteria, percent.
const (
	safeDrawdownPct     = 30
	verySafeDrawdownPct = 20
)

// SelectOptimal picks the best candidate size under each criterion.
// Ties resolve to the smallest size: candidates are scanned in ascending
// size order and only a strictly better metric replaces the leader.
func SelectOptimal(results []SizeResult) Selection {
	var sel Selection
	if len(results) == 0 {
		return sel
	}

	ordered := make([]SizeResult, len(results))
	copy(ordered, results)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Size < ordered[j].Size })

	sel.BestGeometric = bestBy(ordered, func(m SizeMetrics) float64 { return m.GeoMeanReturnPct })
	sel.BestMedian = bestBy(ordered, func(m SizeMetrics) float64 { return m.MedianFinal })
	sel.BestMean = bestBy(ordered, func(m SizeMetrics) float64 { return m.MeanFinal })
	sel.BestRiskAdjusted = bestBy(ordered, func(m SizeMetrics) float64 { return m.RiskAdjusted })

	sel.BestSafeGrowth, sel.HasSafeGrowth = bestGrowthUnder(ordered, safeDrawdownPct)
	sel.BestVerySafe, sel.HasVerySafe = bestGrowthUnder(ordered, verySafeDrawdownPct)

	return sel
}

func bestBy(ordered []SizeResult, metric func(SizeMetrics) float64) float64 {
	best := ordered[0]
	for _, r := range ordered[1:] {
		if metric(r.Metrics) > metric(best.Metrics) {
			best = r
		}
	}
	return best.Size
}

// bestGrowthUnder finds the size with the best geometric mean return among
// sizes whose average max drawdown stays below the threshold. The second
// return is false when no size qualifies.
func bestGrowthUnder(ordered []SizeResult, maxAvgDrawdownPct float64) (float64, bool) {
	var best *SizeResult
	for i := range ordered {
		r := &ordered[i]
		if r.Metrics.AvgMaxDrawdownPct >= maxAvgDrawdownPct {
			continue
		}
		if best == nil || r.Metrics.GeoMeanReturnPct > best.Metrics.GeoMeanReturnPct {
			best = r
		}
	}
	if best == nil {
		return 0, false
	}
	return best.Size, true
}
