package calculator

import (
	"time"

	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/ltv"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

func (c *Calculator) calculateHELOC(s config.Scenario, start time.Time) (LoanResult, error) {
	propertyValue := mathutil.NonNegative(s.PropertyValue)
	outstanding := mathutil.NonNegative(s.OutstandingBalance)
	amount := mathutil.NonNegative(s.HELOCAmount)
	if limit := mathutil.NonNegative(s.CreditLimit); limit > 0 && amount > limit {
		amount = limit
	}

	terms := loans.HELOCTerms{
		Name:        s.Name,
		CreditLimit: s.CreditLimit,
		InitialDraw: amount,
		AnnualRate:  s.InterestRate,
		DrawMonths:  s.DrawMonths,
		RepayMonths: s.RepayMonths,
		StartDate:   start,
	}
	for _, d := range s.Draws {
		terms.AdditionalDraws = append(terms.AdditionalDraws, loans.Draw{Month: d.Month, Amount: d.Amount})
	}

	base, err := c.builder.BuildHELOC(terms)
	if err != nil {
		return LoanResult{}, err
	}
	schedule := base
	var deltas *ExtraDeltas
	if s.ExtraPayment > 0 {
		terms.ExtraMonthlyPrincipal = s.ExtraPayment
		if schedule, err = c.builder.BuildHELOC(terms); err != nil {
			return LoanResult{}, err
		}
		deltas = extraDeltas(base, schedule)
	}

	result := LoanResult{
		Payments:     helocPayments(schedule),
		Schedule:     schedule.Entries,
		PhaseTotals:  schedule.PhaseTotals,
		ExtraPayment: mathutil.NonNegative(s.ExtraPayment),
		ExtraDeltas:  deltas,
		Equity:       Equity{Available: ltv.AvailableEquity(propertyValue, outstanding, amount, s.MaxCombinedLTV)},
		Totals: Totals{
			TotalInterest: schedule.TotalInterest(),
			TotalPaid:     schedule.TotalPrincipal() + schedule.TotalInterest(),
		},
	}

	combined := mathutil.RoundTo(ltv.Combined(outstanding, amount, propertyValue), constants.LTVDecimalPlaces)
	tier := ltv.Classify(combined)
	result.LTV = LTV{Combined: combined, Tier: string(tier), Class: tier.Class()}
	if propertyValue > 0 {
		starting := mathutil.RoundTo(ltv.Ratio(outstanding, propertyValue), constants.LTVDecimalPlaces)
		result.LTV.Starting = &starting
	}
	return result, nil
}

// helocPayments reports the first payment of each phase.
func helocPayments(schedule loans.Schedule) Payments {
	var p Payments
	for _, entry := range schedule.Entries {
		switch entry.Phase {
		case loans.PhaseDraw:
			if p.InterestOnly == 0 {
				p.InterestOnly = entry.Payment
			}
		case loans.PhaseRepay:
			p.Repayment = entry.Payment
			return p
		}
	}
	return p
}
