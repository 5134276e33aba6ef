package loans

import (
	"fmt"
	"time"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/datetime"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// Phase labels a schedule entry. Fixed-rate loans use the single implicit
// PhaseAmortizing phase.
type Phase string

// Schedule phases.
const (
	PhaseAmortizing Phase = ""
	PhaseDraw       Phase = "Draw"
	PhaseRepay      Phase = "Repay"
)

// ScheduleEntry holds the values for a given payment. Amounts are not
// rounded; rounding happens when the schedule is rendered.
type ScheduleEntry struct {
	PaymentNumber       int       `json:"paymentNumber"`
	PaymentDate         time.Time `json:"paymentDate"`
	Phase               Phase     `json:"phase,omitempty"`
	Payment             float64   `json:"payment"`
	PrincipalPayment    float64   `json:"principalPayment"`
	InterestPayment     float64   `json:"interestPayment"`
	Balance             float64   `json:"balance"`
	CumulativePrincipal float64   `json:"cumulativePrincipal"`
	CumulativeInterest  float64   `json:"cumulativeInterest"`
}

// PhaseTotal aggregates the entries of one phase.
type PhaseTotal struct {
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Payments  float64 `json:"payments"`
}

// PhaseTotals splits a schedule into its interest-only and repayment parts.
// Fixed-rate loans report everything under Repayment.
type PhaseTotals struct {
	InterestOnly PhaseTotal `json:"interestOnly"`
	Repayment    PhaseTotal `json:"repayment"`
}

// Schedule is an ordered amortization schedule.
type Schedule struct {
	Entries     []ScheduleEntry `json:"entries"`
	PhaseTotals PhaseTotals     `json:"phaseTotals"`
}

// TotalInterest is the interest paid over the whole schedule.
func (s Schedule) TotalInterest() float64 {
	return s.PhaseTotals.InterestOnly.Interest + s.PhaseTotals.Repayment.Interest
}

// TotalPrincipal is the principal repaid over the whole schedule.
func (s Schedule) TotalPrincipal() float64 {
	return s.PhaseTotals.InterestOnly.Principal + s.PhaseTotals.Repayment.Principal
}

// Last returns the final entry, if any.
func (s Schedule) Last() (ScheduleEntry, bool) {
	if len(s.Entries) == 0 {
		return ScheduleEntry{}, false
	}
	return s.Entries[len(s.Entries)-1], true
}

// FixedTerms describes a fully amortizing fixed-rate loan.
type FixedTerms struct {
	Name                  string
	Principal             float64
	AnnualRate            float64 // percent, e.g. 6.5
	TermMonths            int
	ExtraMonthlyPrincipal float64
	StartDate             time.Time // required; first payment is one month later
}

// Draw is an additional HELOC draw taken at the start of the given draw
// phase month (1-based).
type Draw struct {
	Month  int
	Amount float64
}

// HELOCTerms describes a home equity line of credit with an interest-only
// draw phase followed by an amortizing repayment phase.
type HELOCTerms struct {
	Name                  string
	CreditLimit           float64 // 0 means unlimited
	InitialDraw           float64
	AnnualRate            float64
	DrawMonths            int
	RepayMonths           int
	AdditionalDraws       []Draw
	ExtraMonthlyPrincipal float64 // applied during the repayment phase only
	StartDate             time.Time // required
}

// ScheduleBuilder generates amortization schedules.
type ScheduleBuilder struct {
	logger *zap.Logger
}

// NewScheduleBuilder creates a new builder instance.
func NewScheduleBuilder(logger *zap.Logger) *ScheduleBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleBuilder{logger: logger}
}

type builderState int

const (
	stateDraw builderState = iota
	stateRepay
	stateDone
)

// ledger appends entries while carrying the cumulative totals.
type ledger struct {
	schedule Schedule
	start    time.Time
}

func newLedger(start time.Time) *ledger {
	return &ledger{start: start}
}

// checkTerms rejects inputs the schedule cannot be built from. The length
// and rate bounds keep the payment math finite and the schedule small.
func checkTerms(kind, name string, start time.Time, months int, annualRate float64) error {
	if start.IsZero() {
		return fmt.Errorf("%s %s: start date is required", kind, name)
	}
	if months > constants.MaxTermMonths {
		return fmt.Errorf("%s %s: term of %d months exceeds %d months", kind, name, months, constants.MaxTermMonths)
	}
	if annualRate > constants.MaxInterestRate {
		return fmt.Errorf("%s %s: interest rate %.3f%% exceeds %.0f%%", kind, name, annualRate, constants.MaxInterestRate)
	}
	return nil
}

func (l *ledger) record(phase Phase, principal, interest, balance float64) {
	entry := ScheduleEntry{
		PaymentNumber:    len(l.schedule.Entries) + 1,
		Phase:            phase,
		Payment:          principal + interest,
		PrincipalPayment: principal,
		InterestPayment:  interest,
		Balance:          balance,
	}
	entry.PaymentDate = datetime.AddMonths(l.start, entry.PaymentNumber)
	if prev, ok := l.schedule.Last(); ok {
		entry.CumulativePrincipal = prev.CumulativePrincipal
		entry.CumulativeInterest = prev.CumulativeInterest
	}
	entry.CumulativePrincipal += principal
	entry.CumulativeInterest += interest

	total := &l.schedule.PhaseTotals.Repayment
	if phase == PhaseDraw {
		total = &l.schedule.PhaseTotals.InterestOnly
	}
	total.Principal += principal
	total.Interest += interest
	total.Payments += entry.Payment

	l.schedule.Entries = append(l.schedule.Entries, entry)
}

// amortize runs up to months amortizing payments against balance and returns
// the balance left afterwards.
func (b *ScheduleBuilder) amortize(l *ledger, phase Phase, name string, balance, annualRate float64, months int, extra float64) float64 {
	monthlyPayment := CalculateMonthlyPayment(balance, 0, annualRate, months)
	extra = mathutil.NonNegative(extra)

	for month := 1; month <= months && !mathutil.IsZero(balance); month++ {
		interest := CalculateInterestPayment(balance, annualRate)
		principal := monthlyPayment - interest
		capped := CapExtraPrincipal(extra, principal, balance)
		if capped < extra {
			b.logger.Debug("Capping extra principal payment to prevent overpayment",
				zap.String("op", "loans.amortize"),
				zap.String("loan", name),
				zap.Int("month", month),
				zap.Float64("requested", extra),
				zap.Float64("capped_to", capped),
			)
		}
		principal += capped

		// Absorb machine error on the final payment so the balance lands on 0.
		if month == months || principal >= balance || mathutil.Round(balance-principal) == 0 {
			principal = balance
		}
		balance -= principal
		l.record(phase, principal, interest, balance)
	}
	return balance
}

// BuildFixed creates the complete schedule for a fixed-rate loan.
func (b *ScheduleBuilder) BuildFixed(terms FixedTerms) (Schedule, error) {
	if terms.TermMonths < 0 {
		return Schedule{}, fmt.Errorf("loan %s: negative term of %d months", terms.Name, terms.TermMonths)
	}
	if err := checkTerms("loan", terms.Name, terms.StartDate, terms.TermMonths, terms.AnnualRate); err != nil {
		return Schedule{}, err
	}
	l := newLedger(terms.StartDate)
	principal := mathutil.NonNegative(terms.Principal)
	if principal == 0 || terms.TermMonths == 0 {
		b.logger.Debug(fmt.Sprintf("loan %s has nothing to amortize", terms.Name),
			zap.String("op", "loans.BuildFixed"),
		)
		return l.schedule, nil
	}

	b.amortize(l, PhaseAmortizing, terms.Name, principal, mathutil.NonNegative(terms.AnnualRate),
		terms.TermMonths, terms.ExtraMonthlyPrincipal)

	b.logger.Debug(fmt.Sprintf("built %d payments for loan %s", len(l.schedule.Entries), terms.Name),
		zap.String("op", "loans.BuildFixed"),
	)
	return l.schedule, nil
}

// BuildHELOC creates the complete two-phase schedule for a HELOC. The
// builder moves Draw -> Repay -> Done at the phase boundaries; cumulative
// totals carry across the boundary.
func (b *ScheduleBuilder) BuildHELOC(terms HELOCTerms) (Schedule, error) {
	if terms.DrawMonths < 0 || terms.RepayMonths < 0 {
		return Schedule{}, fmt.Errorf("heloc %s: negative phase length (draw %d, repay %d)",
			terms.Name, terms.DrawMonths, terms.RepayMonths)
	}
	if err := checkTerms("heloc", terms.Name, terms.StartDate, terms.DrawMonths+terms.RepayMonths, terms.AnnualRate); err != nil {
		return Schedule{}, err
	}
	l := newLedger(terms.StartDate)
	rate := mathutil.NonNegative(terms.AnnualRate)
	balance := b.draw(terms, 0, mathutil.NonNegative(terms.InitialDraw))

	state := stateDraw
	month := 0
	for state != stateDone {
		switch state {
		case stateDraw:
			if month >= terms.DrawMonths {
				b.logger.Debug(fmt.Sprintf("heloc %s entering repayment with balance %.2f", terms.Name, balance),
					zap.String("op", "loans.BuildHELOC"),
				)
				state = stateRepay
				continue
			}
			month++
			for _, d := range terms.AdditionalDraws {
				if d.Month == month {
					balance = b.draw(terms, balance, d.Amount)
				}
			}
			l.record(PhaseDraw, 0, CalculateInterestPayment(balance, rate), balance)
		case stateRepay:
			balance = b.amortize(l, PhaseRepay, terms.Name, balance, rate, terms.RepayMonths, terms.ExtraMonthlyPrincipal)
			state = stateDone
		}
	}

	b.logger.Debug(fmt.Sprintf("built %d payments for heloc %s", len(l.schedule.Entries), terms.Name),
		zap.String("op", "loans.BuildHELOC"),
		zap.Float64("remaining_balance", balance),
	)
	return l.schedule, nil
}

// draw adds amount to balance without exceeding the credit limit.
func (b *ScheduleBuilder) draw(terms HELOCTerms, balance, amount float64) float64 {
	amount = mathutil.NonNegative(amount)
	limit := mathutil.NonNegative(terms.CreditLimit)
	if limit > 0 && balance+amount > limit {
		b.logger.Debug("Capping draw at credit limit",
			zap.String("op", "loans.draw"),
			zap.String("loan", terms.Name),
			zap.Float64("requested", amount),
			zap.Float64("capped_to", limit-balance),
		)
		amount = limit - balance
		if amount < 0 {
			amount = 0
		}
	}
	return balance + amount
}
