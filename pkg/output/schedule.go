package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// ScheduleHeader is the column header of an exported schedule.
var ScheduleHeader = []string{
	"Payment #",
	"Payment Date",
	"Phase",
	"Payment Amount",
	"Principal",
	"Interest",
	"Balance",
	"Cumulative Principal",
	"Cumulative Interest",
}

// Money formats an amount with exactly two decimals and no separators.
// Halves round away from zero on the shortest decimal form of amount, so
// 0.005 renders as 0.01.
func Money(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// ScheduleRows renders schedule entries as export rows, header excluded.
func ScheduleRows(entries []loans.ScheduleEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(e.PaymentNumber),
			e.PaymentDate.Format(constants.PaymentDateLayout),
			string(e.Phase),
			Money(e.Payment),
			Money(e.PrincipalPayment),
			Money(e.InterestPayment),
			Money(e.Balance),
			Money(e.CumulativePrincipal),
			Money(e.CumulativeInterest),
		})
	}
	return rows
}

// WriteScheduleCSV writes the header and every entry as CSV.
func WriteScheduleCSV(w io.Writer, entries []loans.ScheduleEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ScheduleHeader); err != nil {
		return fmt.Errorf("failed to write schedule header: %w", err)
	}
	if err := writer.WriteAll(ScheduleRows(entries)); err != nil {
		return fmt.Errorf("failed to write schedule rows: %w", err)
	}
	return nil
}

// PhaseBreakdown summarizes how interest splits between the draw and
// repayment phases. The two shares always sum to 100 unless there is no
// interest at all, in which case both are 0.
type PhaseBreakdown struct {
	DrawInterest       float64 `json:"drawInterest"`
	RepayInterest      float64 `json:"repayInterest"`
	TotalInterest      float64 `json:"totalInterest"`
	RepayPrincipal     float64 `json:"repayPrincipal"`
	DrawInterestShare  float64 `json:"drawInterestShare"`
	RepayInterestShare float64 `json:"repayInterestShare"`
}

// NewPhaseBreakdown rounds the phase totals to cents and derives the shares.
func NewPhaseBreakdown(totals loans.PhaseTotals) PhaseBreakdown {
	b := PhaseBreakdown{
		DrawInterest:   mathutil.Round(totals.InterestOnly.Interest),
		RepayInterest:  mathutil.Round(totals.Repayment.Interest),
		RepayPrincipal: mathutil.Round(totals.Repayment.Principal),
	}
	draw := decimal.NewFromFloat(b.DrawInterest)
	total := draw.Add(decimal.NewFromFloat(b.RepayInterest))
	b.TotalInterest = total.InexactFloat64()
	if total.IsPositive() {
		hundred := decimal.NewFromFloat(constants.PercentageMultiplier)
		drawShare := draw.Mul(hundred).Div(total).Round(2)
		b.DrawInterestShare = drawShare.InexactFloat64()
		b.RepayInterestShare = hundred.Sub(drawShare).InexactFloat64()
	}
	return b
}

// Lines renders the breakdown as a "Phase Breakdown" report section.
func (b PhaseBreakdown) Lines() []string {
	return []string{
		"Phase Breakdown",
		fmt.Sprintf("Draw Phase Interest: %s (%.2f%%)", Money(b.DrawInterest), b.DrawInterestShare),
		fmt.Sprintf("Repay Phase Interest: %s (%.2f%%)", Money(b.RepayInterest), b.RepayInterestShare),
		fmt.Sprintf("Total Interest: %s", Money(b.TotalInterest)),
		fmt.Sprintf("Repay Phase Principal: %s", Money(b.RepayPrincipal)),
	}
}
