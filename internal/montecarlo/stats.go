package montecarlo

import (
	"math"
	"sort"
)

// logFloor keeps the geometric mean finite when a trial ends at or near
// zero capital: the final/initial ratio is floored here before the log.
const logFloor = 1e-4

// ruinEpsilon is the capital below which a trial counts as bankrupt.
// Fixed-fractional sizing never reaches exactly zero, so anything under
// a cent is treated as ruin.
const ruinEpsilon = 1e-2

// CalculateSizeMetrics reduces one size's trial results into summary
// statistics. Percentages are on a 0-100 scale.
func CalculateSizeMetrics(trials []TrialResult, initialCapital float64) SizeMetrics {
	if len(trials) == 0 {
		return SizeMetrics{}
	}

	finals := make([]float64, len(trials))
	var profitable, bankrupt int
	var logSum, ddSum, worstDD float64
	for i, tr := range trials {
		finals[i] = tr.FinalCapital
		if tr.FinalCapital > initialCapital {
			profitable++
		}
		if tr.FinalCapital <= ruinEpsilon {
			bankrupt++
		}
		logSum += math.Log(math.Max(tr.FinalCapital/initialCapital, logFloor))
		ddSum += tr.MaxDrawdown
		if tr.MaxDrawdown > worstDD {
			worstDD = tr.MaxDrawdown
		}
	}

	n := float64(len(trials))
	mean := meanOf(finals)
	median := medianOf(finals)
	std := stddevOf(finals, mean)
	geo := math.Exp(logSum/n) - 1

	m := SizeMetrics{
		MeanFinal:         mean,
		MedianFinal:       median,
		StdFinal:          std,
		MinFinal:          minOf(finals),
		MaxFinal:          maxOf(finals),
		GeoMeanReturnPct:  geo * 100,
		MeanReturnPct:     (mean/initialCapital - 1) * 100,
		MedianReturnPct:   (median/initialCapital - 1) * 100,
		AvgMaxDrawdownPct: ddSum / n * 100,
		WorstDrawdownPct:  worstDD * 100,
		ProfitablePct:     float64(profitable) / n * 100,
		BankruptPct:       float64(bankrupt) / n * 100,
	}
	if std > 0 {
		m.RiskAdjusted = (mean - initialCapital) / std
	}
	return m
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func medianOf(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// stddevOf is the population standard deviation, matching the definition
// the risk-adjusted score was calibrated against.
func stddevOf(values []float64, mean float64) float64 {
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)))
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
