package datetime

import (
	"testing"
	"time"

	"github.com/iwvelando/loan-calculator/pkg/constants"
)

func TestMustParseTime(t *testing.T) {
	result := MustParseTime(DateTimeLayout, "2030-12")
	if result.Format(DateTimeLayout) != "2030-12" {
		t.Errorf("MustParseTime() = %s, expected 2030-12", result.Format(DateTimeLayout))
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateTimeLayout, "invalid-date")
}

func TestParseStartDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		zero     bool
		wantErr  bool
	}{
		{name: "Month layout", input: "2025-03", expected: "2025-03-01"},
		{name: "Day layout", input: "2025-03-15", expected: "2025-03-15"},
		{name: "Empty", input: "", zero: true},
		{name: "Invalid", input: "March 2025", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStartDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStartDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.zero {
				if !got.IsZero() {
					t.Errorf("ParseStartDate() = %v, expected zero time", got)
				}
				return
			}
			if got.Format(constants.PaymentDateLayout) != tt.expected {
				t.Errorf("ParseStartDate() = %s, expected %s", got.Format(constants.PaymentDateLayout), tt.expected)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		months   int
		expected string
	}{
		{"Simple", "2025-01-15", 1, "2025-02-15"},
		{"Month end clamps", "2025-01-31", 1, "2025-02-28"},
		{"Leap year clamps", "2024-01-31", 1, "2024-02-29"},
		{"Crosses year", "2025-11-30", 3, "2026-02-28"},
		{"Backwards", "2025-03-31", -1, "2025-02-28"},
		{"Many months", "2025-01-01", 360, "2055-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := MustParseTime(constants.PaymentDateLayout, tt.start)
			got := AddMonths(start, tt.months).Format(constants.PaymentDateLayout)
			if got != tt.expected {
				t.Errorf("AddMonths(%s, %d) = %s, expected %s", tt.start, tt.months, got, tt.expected)
			}
		})
	}
}

func TestFirstOfMonth(t *testing.T) {
	got := FirstOfMonth(time.Date(2025, time.July, 19, 13, 4, 0, 0, time.UTC))
	if got.Format(constants.PaymentDateLayout) != "2025-07-01" || got.Hour() != 0 {
		t.Errorf("FirstOfMonth() = %v, expected 2025-07-01 00:00", got)
	}
}
