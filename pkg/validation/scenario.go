package validation

import (
	"fmt"

	"github.com/iwvelando/loan-calculator/pkg/constants"
)

// ScenarioConfig is the subset of a scenario that is sanity-checked before a run.
type ScenarioConfig struct {
	Label              string
	Kind               string
	PropertyValue      float64
	DownPayment        float64
	LoanAmount         float64
	InterestRate       float64
	Term               int
	PMIMonthly         float64
	PMIRate            float64
	OutstandingBalance float64
	CreditLimit        float64
	HELOCAmount        float64
	DrawMonths         int
	RepayMonths        int
}

// ValidateScenario returns non-fatal warnings about suspicious inputs. The
// calculation still runs; inputs are coerced the same way the engine does.
func ValidateScenario(s ScenarioConfig) []string {
	var warnings []string
	prefix := "Scenario " + s.Label

	if s.PropertyValue <= 0 {
		warnings = append(warnings, fmt.Sprintf("%s: property value missing - LTV cannot be evaluated", prefix))
	}
	if s.InterestRate < 0 {
		warnings = append(warnings, fmt.Sprintf("%s: negative interest rate %.3f treated as 0", prefix, s.InterestRate))
	}

	switch s.Kind {
	case constants.LoanKindHELOC:
		if s.DrawMonths+s.RepayMonths <= 0 {
			warnings = append(warnings, fmt.Sprintf("%s: HELOC has no draw or repayment period", prefix))
		}
		if s.CreditLimit > 0 && s.HELOCAmount > s.CreditLimit {
			warnings = append(warnings, fmt.Sprintf("%s: HELOC amount %.2f exceeds credit limit %.2f and will be capped",
				prefix, s.HELOCAmount, s.CreditLimit))
		}
		if s.PropertyValue > 0 && s.OutstandingBalance > s.PropertyValue {
			warnings = append(warnings, fmt.Sprintf("%s: outstanding balance exceeds property value", prefix))
		}
	default:
		if s.Term <= 0 {
			warnings = append(warnings, fmt.Sprintf("%s: loan term missing - no payments will be scheduled", prefix))
		}
		if s.LoanAmount == 0 && s.PropertyValue > 0 && s.DownPayment > s.PropertyValue {
			warnings = append(warnings, fmt.Sprintf("%s: down payment exceeds property value - treated as a cash purchase", prefix))
		}
		if s.PMIMonthly > 0 && s.PMIRate > 0 {
			warnings = append(warnings, fmt.Sprintf("%s: both pmiMonthly and pmiRate set - pmiMonthly takes precedence", prefix))
		}
	}
	return warnings
}
