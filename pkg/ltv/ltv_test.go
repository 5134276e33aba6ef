package ltv

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		ltv      float64
		expected Tier
		class    string
	}{
		{"Half equity", 50, TierLow, "ltv-state-low"},
		{"Sixty percent", 60, TierLow, "ltv-state-low"},
		{"Seventy percent", 70, TierMedium, "ltv-state-medium"},
		{"Eighty five percent", 85, TierMedium, "ltv-state-medium"},
		{"Ninety two percent", 92, TierHigh, "ltv-state-high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := Classify(tt.ltv)
			if tier != tt.expected {
				t.Errorf("Classify(%v) = %s, expected %s", tt.ltv, tier, tt.expected)
			}
			if tier.Class() != tt.class {
				t.Errorf("Class() = %s, expected %s", tier.Class(), tt.class)
			}
		})
	}
}

func TestCombined(t *testing.T) {
	if got := Combined(200000, 50000, 500000); got != 50 {
		t.Errorf("Combined() = %v, expected 50", got)
	}
	if got := Combined(200000, 50000, 0); got != 0 {
		t.Errorf("Combined() without property value = %v, expected 0", got)
	}
}

func TestAvailableEquity(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		owed     float64
		heloc    float64
		maxLTV   float64
		expected float64
	}{
		{"Room left", 500000, 200000, 50000, 85, 175000},
		{"Default max LTV", 500000, 200000, 50000, 0, 175000},
		{"Fully leveraged", 300000, 280000, 20000, 85, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableEquity(tt.value, tt.owed, tt.heloc, tt.maxLTV)
			if math.Abs(got-tt.expected) > 0.01 {
				t.Errorf("AvailableEquity() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
