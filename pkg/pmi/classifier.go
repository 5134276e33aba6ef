// Package pmi classifies a purchase loan's private mortgage insurance state
// from its loan-to-value ratio.
package pmi

import (
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// State is the resolved PMI state of a purchase.
type State string

// PMI states.
const (
	StatePending  State = "pending"
	StateNone     State = "none"
	StateActive   State = "active"
	StateIgnored  State = "ignored"
	StatePossible State = "possible"
)

// Badge classes used to tier the LTV independently of the PMI state.
const (
	BadgePending    = "pending"
	BadgeCash       = "cash"
	BadgeGood       = "good"
	BadgeBorderline = "borderline"
	BadgeHigh       = "high"
)

// Status texts shown next to each state.
const (
	StatusAwaitingValue = "Awaiting Value"
	StatusCashPurchase  = "No Loan (Cash Purchase)"
	StatusActive        = "PMI Active"
	StatusIgnored       = "PMI Entered (Not Charged)"
	StatusPossible      = "PMI Possible (Rate Blank)"
	StatusNoPMI         = "No PMI"
	StatusNotRequired   = "No PMI Required"
)

// Classification is the derived PMI/LTV view of a purchase.
type Classification struct {
	State          State   `json:"state"`
	StatusText     string  `json:"statusText"`
	BadgeClass     string  `json:"badgeClass"`
	LTV            float64 `json:"ltv"`
	MeetsThreshold bool    `json:"meetsThreshold"`
}

// Classify maps raw purchase numbers to a Classification. Inputs that are
// negative or not finite are treated as 0 and a threshold of 0 falls back to
// constants.DefaultPMIThreshold.
func Classify(propertyValue, downPaymentAmount, pmiRate, threshold float64) Classification {
	propertyValue = mathutil.NonNegative(propertyValue)
	downPaymentAmount = mathutil.NonNegative(downPaymentAmount)
	return ClassifyLoan(propertyValue, propertyValue-downPaymentAmount, pmiRate, threshold)
}

// ClassifyLoan is Classify for a known loan amount. A loan larger than the
// property value is classified as is, so its LTV exceeds 100.
func ClassifyLoan(propertyValue, loanAmount, pmiRate, threshold float64) Classification {
	propertyValue = mathutil.NonNegative(propertyValue)
	loanAmount = mathutil.NonNegative(loanAmount)
	pmiRate = mathutil.NonNegative(pmiRate)
	threshold = mathutil.NonNegative(threshold)
	if threshold == 0 {
		threshold = constants.DefaultPMIThreshold
	}

	var ltv float64
	if propertyValue > 0 {
		ltv = loanAmount * constants.PercentageMultiplier / propertyValue
	}
	meets := propertyValue > 0 && loanAmount > 0 && ltv <= threshold

	c := Classification{
		BadgeClass:     badge(propertyValue, loanAmount, ltv, threshold),
		LTV:            mathutil.RoundTo(ltv, constants.LTVDecimalPlaces),
		MeetsThreshold: meets,
	}

	switch {
	case propertyValue <= 0:
		c.State, c.StatusText = StatePending, StatusAwaitingValue
	case loanAmount == 0:
		c.State, c.StatusText = StateNone, StatusCashPurchase
	case pmiRate > 0 && ltv > threshold:
		c.State, c.StatusText = StateActive, StatusActive
	case pmiRate > 0 && ltv <= threshold:
		c.State, c.StatusText = StateIgnored, StatusIgnored
	case pmiRate == 0 && ltv > threshold:
		c.State, c.StatusText = StatePossible, StatusPossible
	default:
		c.State, c.StatusText = StateNone, StatusNoPMI
	}

	if meets && pmiRate == 0 && loanAmount > 0 {
		c.State, c.StatusText = StateNone, StatusNotRequired
	}
	return c
}

// ClassifyRaw is Classify over free-form user input. Values that cannot be
// parsed count as 0.
func ClassifyRaw(propertyValue, downPaymentAmount, pmiRate, threshold string) Classification {
	return Classify(
		mathutil.ParseLoose(propertyValue),
		mathutil.ParseLoose(downPaymentAmount),
		mathutil.ParseLoose(pmiRate),
		mathutil.ParseLoose(threshold),
	)
}

func badge(propertyValue, loanAmount, ltv, threshold float64) string {
	switch {
	case propertyValue <= 0:
		return BadgePending
	case loanAmount == 0:
		return BadgeCash
	case ltv <= threshold:
		return BadgeGood
	case ltv <= threshold+constants.BorderlineLTVMargin:
		return BadgeBorderline
	default:
		return BadgeHigh
	}
}
