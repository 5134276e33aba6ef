// Package calculator assembles per-scenario loan results from configured
// scenarios and derives the advisory warnings of a comparison run.
package calculator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/datetime"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/pmi"
	"github.com/iwvelando/loan-calculator/pkg/warnings"
	"go.uber.org/zap"
)

// Payments holds the headline payment amounts of a loan. Mortgages fill
// Monthly; HELOCs fill InterestOnly and Repayment.
type Payments struct {
	Monthly        float64 `json:"monthly,omitempty"`
	MonthlyWithPMI float64 `json:"monthlyWithPmi,omitempty"`
	InterestOnly   float64 `json:"interestOnly,omitempty"`
	Repayment      float64 `json:"repayment,omitempty"`
}

// Totals aggregates what the schedule costs.
type Totals struct {
	TotalInterest float64 `json:"totalInterest"`
	TotalPMI      float64 `json:"totalPmi,omitempty"`
	TotalPaid     float64 `json:"totalPaid"`
}

// LTV holds the loan-to-value ratios of a scenario, in percent. Starting is
// nil when the property value is unknown.
type LTV struct {
	Combined float64  `json:"combined"`
	Starting *float64 `json:"starting"`
	Tier     string   `json:"tier,omitempty"`
	Class    string   `json:"class,omitempty"`
}

// Equity holds the equity figures of a scenario.
type Equity struct {
	Available float64 `json:"available"`
}

// PMIMeta describes PMI over the schedule. PMIEndsMonth is nil when PMI
// never ends and 1 when it is never charged.
type PMIMeta struct {
	PMIMonthlyInput float64            `json:"pmiMonthlyInput"`
	PMIEndsMonth    *int               `json:"pmiEndsMonth"`
	Classification  pmi.Classification `json:"classification"`
}

// ExtraDeltas compares the schedule against the same loan without the extra payment.
type ExtraDeltas struct {
	InterestSaved float64 `json:"interestSaved"`
	MonthsSaved   int     `json:"monthsSaved"`
}

// LoanResult is the computed outcome of one scenario. It is not modified
// after Calculate returns.
type LoanResult struct {
	Label        string                `json:"label"`
	Name         string                `json:"name"`
	Inputs       config.Scenario       `json:"inputs"`
	Payments     Payments              `json:"payments"`
	Totals       Totals                `json:"totals"`
	LTV          LTV                   `json:"ltv"`
	Equity       Equity                `json:"equity"`
	Schedule     []loans.ScheduleEntry `json:"schedule"`
	PhaseTotals  loans.PhaseTotals     `json:"phaseTotals"`
	PMIMeta      *PMIMeta              `json:"pmiMeta,omitempty"`
	ExtraPayment float64               `json:"extraPayment"`
	ExtraDeltas  *ExtraDeltas          `json:"extraDeltas,omitempty"`
}

// WarningScenario exposes the fields the warning rules inspect.
func (r LoanResult) WarningScenario() *warnings.Scenario {
	s := &warnings.Scenario{
		Name:         r.Name,
		StartingLTV:  r.LTV.Starting,
		ExtraPayment: r.ExtraPayment,
	}
	if r.PMIMeta != nil {
		s.PMI = &warnings.PMIMeta{MonthlyInput: r.PMIMeta.PMIMonthlyInput, EndsMonth: r.PMIMeta.PMIEndsMonth}
	}
	if r.ExtraDeltas != nil {
		s.Extra = &warnings.ExtraDeltas{InterestSaved: r.ExtraDeltas.InterestSaved}
	}
	return s
}

// Comparison is the outcome of one calculation run over up to three scenarios.
type Comparison struct {
	RunID    string       `json:"runId"`
	Results  []LoanResult `json:"results"`
	Warnings []string     `json:"warnings"`
}

// Result returns the result with the given label.
func (c Comparison) Result(label string) (LoanResult, bool) {
	for _, r := range c.Results {
		if r.Label == label {
			return r, true
		}
	}
	return LoanResult{}, false
}

// Calculator computes loan results. Scenarios without a start date are
// anchored at the first of the current month, read from now.
type Calculator struct {
	logger  *zap.Logger
	builder *loans.ScheduleBuilder
	now     func() time.Time
}

// New creates a Calculator.
func New(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger, builder: loans.NewScheduleBuilder(logger), now: time.Now}
}

// Compare normalizes the configuration, calculates each scenario in label
// order and derives the warnings for the run.
func (c *Calculator) Compare(conf config.Configuration) (Comparison, error) {
	scenarios := make([]config.Scenario, len(conf.Scenarios))
	copy(scenarios, conf.Scenarios)
	conf.Scenarios = scenarios
	if err := conf.Normalize(); err != nil {
		return Comparison{}, err
	}

	comparison := Comparison{RunID: uuid.NewString()}
	var views warnings.Results
	for _, label := range []string{constants.LabelA, constants.LabelB, constants.LabelC} {
		for _, scenario := range conf.Scenarios {
			if scenario.Label != label {
				continue
			}
			result, err := c.Calculate(scenario)
			if err != nil {
				return Comparison{}, fmt.Errorf("scenario %s: %w", label, err)
			}
			comparison.Results = append(comparison.Results, result)
			switch label {
			case constants.LabelA:
				views.A = result.WarningScenario()
			case constants.LabelB:
				views.B = result.WarningScenario()
			case constants.LabelC:
				views.C = result.WarningScenario()
			}
		}
	}
	comparison.Warnings = warnings.Build(views)

	c.logger.Info("comparison complete",
		zap.String("op", "calculator.Compare"),
		zap.String("run_id", comparison.RunID),
		zap.Int("scenarios", len(comparison.Results)),
		zap.Int("warnings", len(comparison.Warnings)),
	)
	return comparison, nil
}

// Calculate computes the result of a single scenario.
func (c *Calculator) Calculate(s config.Scenario) (LoanResult, error) {
	start, err := datetime.ParseStartDate(s.StartDate)
	if err != nil {
		return LoanResult{}, fmt.Errorf("invalid start date %q: %w", s.StartDate, err)
	}
	if start.IsZero() {
		start = datetime.FirstOfMonth(c.now())
	}

	var result LoanResult
	switch s.Kind {
	case constants.LoanKindHELOC:
		result, err = c.calculateHELOC(s, start)
	case constants.LoanKindMortgage, "":
		result, err = c.calculateMortgage(s, start)
	default:
		return LoanResult{}, fmt.Errorf("unknown loan kind %q", s.Kind)
	}
	if err != nil {
		return LoanResult{}, err
	}

	result.Label = s.Label
	result.Name = s.Name
	result.Inputs = s
	c.logger.Debug(fmt.Sprintf("calculated %s scenario %s", s.Kind, s.Label),
		zap.String("op", "calculator.Calculate"),
		zap.Int("payments", len(result.Schedule)),
		zap.Float64("total_interest", result.Totals.TotalInterest),
	)
	return result, nil
}

// extraDeltas compares withExtra to the same loan built without extra payments.
func extraDeltas(base, withExtra loans.Schedule) *ExtraDeltas {
	return &ExtraDeltas{
		InterestSaved: base.TotalInterest() - withExtra.TotalInterest(),
		MonthsSaved:   len(base.Entries) - len(withExtra.Entries),
	}
}
