package oddsmath

import (
	"math"
	"testing"
)

const tolerance = 0.0001

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		american int
		expected float64
		wantErr  bool
	}{
		{"positive +150", 150, 2.50, false},
		{"positive +100", 100, 2.00, false},
		{"positive +250", 250, 3.50, false},
		{"negative -150", -150, 1.6667, false},
		{"negative -100", -100, 2.00, false},
		{"negative -200", -200, 1.50, false},
		{"large favorite -10000", -10000, 1.01, false},
		{"invalid zero", 0, 0, true},
		{"invalid +50", 50, 0, true},
		{"invalid -50", -50, 0, true},
		{"invalid +99", 99, 0, true},
		{"invalid -99", -99, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AmericanToDecimal(tt.american)
			if tt.wantErr {
				if err == nil {
					t.Errorf("AmericanToDecimal(%d) expected error, got %f", tt.american, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("AmericanToDecimal(%d) unexpected error: %v", tt.american, err)
			}
			if math.Abs(got-tt.expected) > tolerance {
				t.Errorf("AmericanToDecimal(%d) = %f, want %f", tt.american, got, tt.expected)
			}
		})
	}
}

func TestAmericanToImpliedProbability(t *testing.T) {
	tests := []struct {
		name     string
		american int
		expected float64
	}{
		{"even money +100", 100, 0.5000},
		{"even money -100", -100, 0.5000},
		{"underdog +150", 150, 0.4000},
		{"favorite -200", -200, 0.6667},
		{"favorite -150", -150, 0.6000},
		{"longshot +400", 400, 0.2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AmericanToImpliedProbability(tt.american)
			if err != nil {
				t.Fatalf("AmericanToImpliedProbability(%d) unexpected error: %v", tt.american, err)
			}
			if math.Abs(got-tt.expected) > tolerance {
				t.Errorf("AmericanToImpliedProbability(%d) = %f, want %f", tt.american, got, tt.expected)
			}
			if got <= 0 || got >= 1 {
				t.Errorf("AmericanToImpliedProbability(%d) = %f, outside (0, 1)", tt.american, got)
			}
		})
	}

	if _, err := AmericanToImpliedProbability(50); err == nil {
		t.Error("AmericanToImpliedProbability(50) expected error")
	}
}

func TestDecimalToAmerican(t *testing.T) {
	tests := []struct {
		name     string
		decimal  float64
		expected int
		wantErr  bool
	}{
		{"decimal 2.50", 2.50, 150, false},
		{"decimal 2.00", 2.00, 100, false},
		{"decimal 1.50", 1.50, -200, false},
		{"decimal 3.00", 3.00, 200, false},
		{"invalid 1.0", 1.0, 0, true},
		{"invalid 0.5", 0.5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecimalToAmerican(tt.decimal)
			if tt.wantErr {
				if err == nil {
					t.Errorf("DecimalToAmerican(%f) expected error, got %d", tt.decimal, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecimalToAmerican(%f) unexpected error: %v", tt.decimal, err)
			}
			if got != tt.expected {
				t.Errorf("DecimalToAmerican(%f) = %d, want %d", tt.decimal, got, tt.expected)
			}
		})
	}
}

func TestRoundTripConversion(t *testing.T) {
	// American → decimal → American should return the original price.
	for _, american := range []int{100, 150, 200, 500, -110, -150, -200, -500} {
		decimal, err := AmericanToDecimal(american)
		if err != nil {
			t.Fatalf("AmericanToDecimal(%d) error: %v", american, err)
		}
		back, err := DecimalToAmerican(decimal)
		if err != nil {
			t.Fatalf("DecimalToAmerican(%f) error: %v", decimal, err)
		}
		if back != american {
			t.Errorf("round trip %d → %f → %d", american, decimal, back)
		}
	}
}

func TestProbabilityToAmerican(t *testing.T) {
	got, err := ProbabilityToAmerican(0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 100 {
		t.Errorf("ProbabilityToAmerican(0.5) = %d, want 100", got)
	}

	if _, err := ProbabilityToAmerican(0); err == nil {
		t.Error("ProbabilityToAmerican(0) expected error")
	}
	if _, err := ProbabilityToAmerican(1); err == nil {
		t.Error("ProbabilityToAmerican(1) expected error")
	}
}
