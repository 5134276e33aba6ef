// Package ltv computes loan-to-value ratios across stacked liens and tiers
// them by risk.
package ltv

import (
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// Tier is the risk tier of a combined LTV.
type Tier string

// Risk tiers.
const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Class returns the CSS-style state class for the tier, e.g. "ltv-state-low".
func (t Tier) Class() string {
	return "ltv-state-" + string(t)
}

// Ratio returns loan/propertyValue as a percent, or 0 without a property value.
func Ratio(loan, propertyValue float64) float64 {
	return mathutil.CalculatePercentage(mathutil.NonNegative(loan), mathutil.NonNegative(propertyValue))
}

// Combined returns the combined LTV of an outstanding first lien plus a HELOC.
func Combined(outstanding, helocAmount, propertyValue float64) float64 {
	return Ratio(mathutil.NonNegative(outstanding)+mathutil.NonNegative(helocAmount), propertyValue)
}

// Classify tiers a combined LTV percent.
func Classify(ltv float64) Tier {
	switch {
	case ltv < constants.MediumLTVFloor:
		return TierLow
	case ltv <= constants.HighLTVFloor:
		return TierMedium
	default:
		return TierHigh
	}
}

// AvailableEquity is how much more could be borrowed against the property
// before the combined LTV reaches maxCombinedLTV.
func AvailableEquity(propertyValue, outstanding, helocAmount, maxCombinedLTV float64) float64 {
	if maxCombinedLTV <= 0 {
		maxCombinedLTV = constants.DefaultMaxCombinedLTV
	}
	available := mathutil.ApplyPercentage(mathutil.NonNegative(propertyValue), maxCombinedLTV) -
		mathutil.NonNegative(outstanding) - mathutil.NonNegative(helocAmount)
	if available < 0 {
		return 0
	}
	return available
}
