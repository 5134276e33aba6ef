// Package output provides utilities for formatting and displaying
// comparison results.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/loan-calculator/internal/calculator"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(w io.Writer, comparison calculator.Comparison) {
	p := message.NewPrinter(language.English)
	for _, result := range comparison.Results {
		_, _ = fmt.Fprintf(w, "--- Results for option %s (%s) ---\n", result.Label, displayName(result))
		if result.Payments.Monthly > 0 {
			_, _ = p.Fprintf(w, "Monthly payment     | $%.2f\n", result.Payments.Monthly)
		}
		if result.Payments.MonthlyWithPMI > result.Payments.Monthly {
			_, _ = p.Fprintf(w, "Monthly with PMI    | $%.2f\n", result.Payments.MonthlyWithPMI)
		}
		if result.Payments.InterestOnly > 0 {
			_, _ = p.Fprintf(w, "Interest-only       | $%.2f\n", result.Payments.InterestOnly)
		}
		if result.Payments.Repayment > 0 {
			_, _ = p.Fprintf(w, "Repayment           | $%.2f\n", result.Payments.Repayment)
		}
		_, _ = p.Fprintf(w, "Total interest      | $%.2f\n", result.Totals.TotalInterest)
		_, _ = p.Fprintf(w, "Total paid          | $%.2f\n", result.Totals.TotalPaid)
		if result.LTV.Starting != nil {
			_, _ = fmt.Fprintf(w, "LTV                 | %.2f%% (%s)\n", result.LTV.Combined, result.LTV.Tier)
		}
		if result.PMIMeta != nil {
			_, _ = fmt.Fprintf(w, "PMI                 | %s\n", result.PMIMeta.Classification.StatusText)
		}
		if result.ExtraDeltas != nil {
			_, _ = p.Fprintf(w, "Extra payment saves | $%.2f over %d months\n",
				result.ExtraDeltas.InterestSaved, result.ExtraDeltas.MonthsSaved)
		}
		if result.PhaseTotals.InterestOnly.Payments > 0 {
			for _, line := range NewPhaseBreakdown(result.PhaseTotals).Lines() {
				_, _ = fmt.Fprintf(w, "  %s\n", line)
			}
		}
		_, _ = fmt.Fprintf(w, "\n")
	}
	if len(comparison.Warnings) > 0 {
		_, _ = fmt.Fprintf(w, "--- Warnings ---\n")
		for _, warning := range comparison.Warnings {
			_, _ = fmt.Fprintf(w, "%s\n", warning)
		}
	}
}

// CsvFormat outputs every schedule in comma-separated value format, one
// block per option.
func CsvFormat(w io.Writer, comparison calculator.Comparison) error {
	for i, result := range comparison.Results {
		if i > 0 {
			_, _ = fmt.Fprintf(w, "\n")
		}
		_, _ = fmt.Fprintf(w, "%q\n", "Option "+result.Label+": "+strings.ReplaceAll(displayName(result), `"`, `'`))
		if err := WriteScheduleCSV(w, result.Schedule); err != nil {
			return err
		}
	}
	return nil
}

func displayName(result calculator.LoanResult) string {
	if result.Name != "" {
		return result.Name
	}
	return "Option " + result.Label
}
