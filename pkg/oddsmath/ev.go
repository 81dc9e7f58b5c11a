package oddsmath

// EVPercent is the percentage expected value of taking decimal odds when
// the true win probability is fairProbability:
//
//	EV% = (decimal * fair - 1) * 100
//
// Zero means the price exactly matches the fair line; negative values are
// valid output (a bad bet), not an error.
func EVPercent(decimalOdds, fairProbability float64) float64 {
	return (decimalOdds*fairProbability - 1.0) * 100.0
}

// EVDollar is the expected profit on a stake at the given price.
// EV$ = (P(win) × profit) - (P(lose) × stake)
func EVDollar(stake float64, decimalOdds, fairProbability float64) float64 {
	profitIfWin := (decimalOdds - 1.0) * stake
	return fairProbability*profitIfWin - (1.0-fairProbability)*stake
}
