// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// FindResult finds a result by label in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []calculator.LoanResult, label string) *calculator.LoanResult {
	for i := range results {
		if results[i].Label == label {
			return &results[i]
		}
	}
	return nil
}

// AssertClose fails the test when got differs from want by more than tolerance.
func AssertClose(t testing.TB, name string, got, want, tolerance float64) {
	t.Helper()
	if math.IsNaN(got) || !mathutil.WithinTolerance(got, want, tolerance) {
		t.Errorf("%s = %.6f, expected %.6f (tolerance %g)", name, got, want, tolerance)
	}
}
