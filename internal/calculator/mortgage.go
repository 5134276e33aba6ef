package calculator

import (
	"time"

	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/downpayment"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/ltv"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"github.com/iwvelando/loan-calculator/pkg/pmi"
)

func (c *Calculator) calculateMortgage(s config.Scenario, start time.Time) (LoanResult, error) {
	propertyValue := mathutil.NonNegative(s.PropertyValue)
	loanAmount := mathutil.NonNegative(s.LoanAmount)
	if loanAmount == 0 {
		loanAmount = propertyValue - downPaymentAmount(s)
		if loanAmount < 0 {
			loanAmount = 0
		}
	}

	terms := loans.FixedTerms{
		Name:       s.Name,
		Principal:  loanAmount,
		AnnualRate: s.InterestRate,
		TermMonths: s.Term,
		StartDate:  start,
	}
	base, err := c.builder.BuildFixed(terms)
	if err != nil {
		return LoanResult{}, err
	}
	schedule := base
	var deltas *ExtraDeltas
	if s.ExtraPayment > 0 {
		terms.ExtraMonthlyPrincipal = s.ExtraPayment
		if schedule, err = c.builder.BuildFixed(terms); err != nil {
			return LoanResult{}, err
		}
		deltas = extraDeltas(base, schedule)
	}

	threshold := s.PMIThreshold
	if threshold <= 0 {
		threshold = constants.DefaultPMIThreshold
	}
	cutoff := s.PMICutoff
	if cutoff <= 0 {
		cutoff = constants.DefaultPMICutoff
	}
	pmiMonthly := mathutil.NonNegative(s.PMIMonthly)
	if pmiMonthly == 0 {
		pmiMonthly = mathutil.ApplyPercentage(loanAmount, mathutil.NonNegative(s.PMIRate)) / constants.MonthsPerYear
	}
	pmiRate := mathutil.NonNegative(s.PMIRate)
	if pmiRate == 0 && pmiMonthly > 0 && loanAmount > 0 {
		pmiRate = pmiMonthly * constants.MonthsPerYear * constants.PercentageMultiplier / loanAmount
	}

	meta := &PMIMeta{
		PMIMonthlyInput: pmiMonthly,
		Classification:  pmi.ClassifyLoan(propertyValue, loanAmount, pmiRate, threshold),
	}
	result := LoanResult{
		Payments:     Payments{Monthly: loans.CalculateMonthlyPayment(loanAmount, 0, s.InterestRate, s.Term)},
		Equity:       Equity{Available: mathutil.NonNegative(propertyValue - loanAmount)},
		Schedule:     schedule.Entries,
		PhaseTotals:  schedule.PhaseTotals,
		PMIMeta:      meta,
		ExtraPayment: mathutil.NonNegative(s.ExtraPayment),
		ExtraDeltas:  deltas,
	}

	if propertyValue > 0 {
		starting := mathutil.RoundTo(ltv.Ratio(loanAmount, propertyValue), constants.LTVDecimalPlaces)
		result.LTV.Starting = &starting
		result.LTV.Combined = starting
		tier := ltv.Classify(starting)
		result.LTV.Tier, result.LTV.Class = string(tier), tier.Class()
		meta.PMIEndsMonth = pmiEndsMonth(schedule, loanAmount, propertyValue, threshold, cutoff)
	}

	charged := pmiPaymentsCharged(len(schedule.Entries), meta.PMIEndsMonth)
	if charged > 0 {
		result.Payments.MonthlyWithPMI = result.Payments.Monthly + pmiMonthly
	} else {
		result.Payments.MonthlyWithPMI = result.Payments.Monthly
	}
	result.Totals = Totals{
		TotalInterest: schedule.TotalInterest(),
		TotalPMI:      pmiMonthly * float64(charged),
	}
	result.Totals.TotalPaid = schedule.TotalPrincipal() + result.Totals.TotalInterest + result.Totals.TotalPMI
	return result, nil
}

// downPaymentAmount resolves the down payment through the sync engine so an
// amount-only or percent-only configuration lands on the same coupled state
// the input form would show.
func downPaymentAmount(s config.Scenario) float64 {
	state := downpayment.NewState(s.PropertyValue)
	if s.DownPayment > 0 || s.DownPaymentPercent <= 0 {
		state = downpayment.ProcessEdit(state, downpayment.Edit{Field: downpayment.FieldAmount, Value: s.DownPayment})
	} else {
		state = downpayment.ProcessEdit(state, downpayment.Edit{Field: downpayment.FieldPercent, Value: s.DownPaymentPercent})
	}
	return state.Amount
}

// pmiEndsMonth returns 1 when the starting LTV never requires PMI, the first
// payment after the balance falls to cutoff percent of the property value, or
// nil when that never happens within the schedule.
func pmiEndsMonth(schedule loans.Schedule, loanAmount, propertyValue, threshold, cutoff float64) *int {
	never := 1
	if loanAmount == 0 || ltv.Ratio(loanAmount, propertyValue) <= threshold {
		return &never
	}
	for _, entry := range schedule.Entries {
		if ltv.Ratio(entry.Balance, propertyValue) <= cutoff {
			month := entry.PaymentNumber + 1
			return &month
		}
	}
	return nil
}

// pmiPaymentsCharged counts the payments that carry a PMI charge.
func pmiPaymentsCharged(payments int, endsMonth *int) int {
	if endsMonth == nil {
		return payments
	}
	charged := *endsMonth - 1
	if charged > payments {
		return payments
	}
	return charged
}
