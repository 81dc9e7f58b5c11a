package oddsmath

// CombinedImplied sums the implied probabilities of a set of decimal odds.
// A sum below 1.0 means the prices jointly guarantee profit.
func CombinedImplied(decimalOdds ...float64) float64 {
	sum := 0.0
	for _, decimal := range decimalOdds {
		if decimal <= 0 {
			return 0
		}
		sum += 1.0 / decimal
	}
	return sum
}

// ArbPercent is the guaranteed return of an arbitrage with the given
// combined implied probability:
//
//	arb% = (1/combined - 1) * 100
//
// Returns 0 when combined >= 1.0 (no opportunity).
func ArbPercent(combinedImplied float64) float64 {
	if combinedImplied <= 0 || combinedImplied >= 1.0 {
		return 0
	}
	return (1.0/combinedImplied - 1.0) * 100.0
}

// StakeSplit distributes a unit bankroll across both sides of an
// arbitrage so each side pays out exactly 1/combined per unit staked.
// The fractions sum to 1.0.
func StakeSplit(decimalOver, decimalUnder float64) (stakeOver, stakeUnder float64) {
	qOver := 1.0 / decimalOver
	qUnder := 1.0 / decimalUnder
	combined := qOver + qUnder

	return qOver / combined, qUnder / combined
}
