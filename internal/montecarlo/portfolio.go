package montecarlo

// SimulatePortfolio replays one trade sequence at a fixed fractional
// position size. It returns the equity curve (len(outcomes)+1 values,
// starting at initialCapital) and the max drawdown as a fraction of the
// running peak. Ruin is absorbing: once capital reaches zero every later
// curve value stays zero.
func SimulatePortfolio(sizePct float64, outcomes []bool, initialCapital, riskReward float64) ([]float64, float64) {
	capital := initialCapital
	curve := make([]float64, 0, len(outcomes)+1)
	curve = append(curve, capital)

	peak := capital
	maxDrawdown := 0.0

	for _, win := range outcomes {
		if capital <= 0 {
			curve = append(curve, 0)
			continue
		}

		risk := capital * (sizePct / 100)
		if win {
			capital += risk * riskReward
		} else {
			capital -= risk
		}
		if capital < 0 {
			capital = 0
		}
		curve = append(curve, capital)

		if capital > peak {
			peak = capital
		}
		if peak > 0 {
			if dd := (peak - capital) / peak; dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}

	return curve, maxDrawdown
}
