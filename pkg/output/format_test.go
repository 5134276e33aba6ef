package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/testutil"
	"go.uber.org/zap"
)

func testComparison(t *testing.T) calculator.Comparison {
	t.Helper()
	comparison, err := calculator.New(zap.NewNop()).Compare(config.Configuration{Scenarios: []config.Scenario{
		{Name: "Thirty year", StartDate: "2025-01", PropertyValue: 500000, DownPayment: 50000,
			InterestRate: 6, Term: 360, PMIMonthly: 150},
		{Kind: constants.LoanKindHELOC, StartDate: "2025-01", PropertyValue: 500000, OutstandingBalance: 200000,
			HELOCAmount: 50000, InterestRate: 6, DrawMonths: 12, RepayMonths: 24},
		{Name: "No appraisal", StartDate: "2025-01", LoanAmount: 100000, InterestRate: 5, Term: 120, PMIMonthly: 40},
	}})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	return comparison
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, testComparison(t))
	out := buf.String()

	for _, fragment := range []string{
		"--- Results for option A (Thirty year) ---",
		"--- Results for option B (Option B) ---",
		"Monthly payment     | $2,697.98",
		"PMI                 | PMI Active",
		"Interest-only       | $250.00",
		"Phase Breakdown",
		"--- Warnings ---",
		"No appraisal: Appraised value missing",
	} {
		if !strings.Contains(out, fragment) {
			t.Errorf("PrettyFormat output missing %q\n%s", fragment, out)
		}
	}
}

func TestComparisonOrder(t *testing.T) {
	comparison := testComparison(t)

	heloc := testutil.FindResult(comparison.Results, constants.LabelB)
	if heloc == nil {
		t.Fatal("expected option B in results")
	}
	testutil.AssertClose(t, "interest-only payment", heloc.Payments.InterestOnly, 250, 1e-9)
	if testutil.FindResult(comparison.Results, constants.LabelC).Name != "No appraisal" {
		t.Error("expected option C to be the third configured scenario")
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, testComparison(t)); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	blocks := strings.Split(buf.String(), "\n\n")
	if len(blocks) != 3 {
		t.Fatalf("expected 3 CSV blocks, got %d", len(blocks))
	}
	reader := csv.NewReader(strings.NewReader(blocks[1]))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV block: %v", err)
	}
	if records[0][0] != "Option B: Option B" {
		t.Errorf("block title = %q", records[0][0])
	}
	if len(records) != 2+36 {
		t.Errorf("expected %d records, got %d", 2+36, len(records))
	}
}
