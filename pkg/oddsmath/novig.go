package oddsmath

import "fmt"

// NoVig removes the bookmaker margin from a two-sided market using the
// standard multiplicative method. Inputs are the best available decimal
// odds for each side; outputs are fair probabilities that sum to 1.0.
//
//  1. q_over = 1/decimal_over, q_under = 1/decimal_under
//  2. The raw implied probabilities sum to more than 1.0 because of vig.
//  3. Normalize: p = q / (q_over + q_under).
func NoVig(decimalOver, decimalUnder float64) (pOver, pUnder float64, err error) {
	if decimalOver <= 1.0 || decimalUnder <= 1.0 {
		return 0, 0, fmt.Errorf("invalid decimal odds (%f, %f): both must be > 1.0", decimalOver, decimalUnder)
	}

	qOver := 1.0 / decimalOver
	qUnder := 1.0 / decimalUnder
	sum := qOver + qUnder

	return qOver / sum, qUnder / sum, nil
}

// NoVigFromAmerican is NoVig over American prices. Either price being
// invalid yields an error; callers treat that as a missing side and
// leave the fair probabilities null.
func NoVigFromAmerican(overPrice, underPrice int) (pOver, pUnder float64, err error) {
	decOver, err := AmericanToDecimal(overPrice)
	if err != nil {
		return 0, 0, err
	}

	decUnder, err := AmericanToDecimal(underPrice)
	if err != nil {
		return 0, 0, err
	}

	return NoVig(decOver, decUnder)
}

// VigPercentage is the overround of a market: how far beyond 100% the
// implied probabilities sum. Returns 0 when there is no vig.
func VigPercentage(probabilities []float64) (float64, error) {
	if len(probabilities) == 0 {
		return 0, fmt.Errorf("no probabilities provided")
	}

	total := 0.0
	for _, prob := range probabilities {
		if prob <= 0 || prob >= 1 {
			return 0, fmt.Errorf("all probabilities must be between 0 and 1")
		}
		total += prob
	}

	if total <= 1.0 {
		return 0, nil
	}

	return (total - 1.0) * 100.0, nil
}
