package oddsmath

import (
	"math"
	"testing"
)

func TestEVPercent(t *testing.T) {
	tests := []struct {
		name     string
		decimal  float64
		fair     float64
		expected float64
	}{
		{"exactly fair", 2.0, 0.5, 0},
		{"positive edge", 2.2, 0.5, 10.0},
		{"negative edge", 1.9091, 0.5, -4.545},
		{"big favorite priced right", 1.25, 0.8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EVPercent(tt.decimal, tt.fair)
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("EVPercent(%f, %f) = %f, want %f", tt.decimal, tt.fair, got, tt.expected)
			}
		})
	}
}

func TestEVDollar(t *testing.T) {
	// $100 at 2.2 with a 50% fair probability: 0.5*120 - 0.5*100 = $10
	got := EVDollar(100, 2.2, 0.5)
	if math.Abs(got-10.0) > tolerance {
		t.Errorf("EVDollar(100, 2.2, 0.5) = %f, want 10.0", got)
	}

	// Fair price nets zero
	if got := EVDollar(100, 2.0, 0.5); math.Abs(got) > tolerance {
		t.Errorf("EVDollar(100, 2.0, 0.5) = %f, want 0", got)
	}
}
