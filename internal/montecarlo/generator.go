package montecarlo

import "math/rand"

// GenerateOutcomes draws n independent trade outcomes, each a win with
// probability p. The same rng state always produces the same sequence.
func GenerateOutcomes(rng *rand.Rand, n int, p float64) []bool {
	outcomes := make([]bool, n)
	for i := range outcomes {
		outcomes[i] = rng.Float64() < p
	}
	return outcomes
}
