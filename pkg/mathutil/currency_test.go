package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Nearly two cents", 0.019, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		places   int
		expected float64
	}{
		{"Four places", 66.666666, 4, 66.6667},
		{"Two places", 20.0098, 2, 20.01},
		{"Zero places", 1499.5, 0, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundTo(tt.input, tt.places)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("RoundTo(%v, %d) = %v, expected %v", tt.input, tt.places, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Large positive", 100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsZero(tt.input); result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNonNegative(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Positive passes through", 12.5, 12.5},
		{"Negative becomes zero", -3, 0},
		{"NaN becomes zero", math.NaN(), 0},
		{"Infinity becomes zero", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := NonNegative(tt.input); result != tt.expected {
				t.Errorf("NonNegative(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		a, b      float64
		tolerance float64
		expected  bool
	}{
		{"Equal", 100, 100, 0, true},
		{"Inside tolerance", 100.004, 100, 0.005, true},
		{"On the boundary", 101, 100, 1, true},
		{"Outside tolerance", 100.02, 100, 0.01, false},
		{"NaN never matches", math.NaN(), 100, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := WithinTolerance(tt.a, tt.b, tt.tolerance); result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	if got := CalculatePercentage(250000, 500000); got != 50 {
		t.Errorf("CalculatePercentage() = %v, expected 50", got)
	}
	if got := CalculatePercentage(400000, 500000); got != 80 {
		t.Errorf("CalculatePercentage() = %v, expected exactly 80", got)
	}
	if got := CalculatePercentage(10, 0); got != 0 {
		t.Errorf("CalculatePercentage() with zero total = %v, expected 0", got)
	}
	if got := ApplyPercentage(500000, 20); got != 100000 {
		t.Errorf("ApplyPercentage() = %v, expected 100000", got)
	}
}

func TestParseLoose(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"Plain number", "500000", 500000},
		{"Currency formatted", "$1,250.50", 1250.50},
		{"Percent with spaces", " 6.5% ", 6.5},
		{"Empty", "", 0},
		{"Garbage", "abc", 0},
		{"NaN literal", "NaN", 0},
		{"Negative kept", "-5", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ParseLoose(tt.input); result != tt.expected {
				t.Errorf("ParseLoose(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}
