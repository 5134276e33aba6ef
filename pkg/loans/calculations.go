// Package loans provides loan payment math and amortization schedule
// generation for fixed-rate loans and HELOCs.
package loans

import (
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, downPayment, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 || principal-downPayment <= 0 {
		return 0
	}
	annualInterestRate = mathutil.NonNegative(annualInterestRate)
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return (principal - downPayment) / float64(termMonths)
	}

	periodicInterestRate := annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	// The negative exponent tends to 0 for long terms instead of overflowing.
	discountFactor := 1.00 - math.Pow(1.00+periodicInterestRate, -float64(termMonths))
	return (principal - downPayment) * periodicInterestRate / discountFactor
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CapExtraPrincipal limits an extra principal payment so that, together with
// the scheduled principal, it never pays more than the outstanding balance.
func CapExtraPrincipal(extra, scheduledPrincipal, balance float64) float64 {
	if extra <= 0 {
		return 0
	}
	room := balance - scheduledPrincipal
	if room <= 0 {
		return 0
	}
	if extra > room {
		return room
	}
	return extra
}
