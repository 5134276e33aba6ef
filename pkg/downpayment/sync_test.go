package downpayment

import (
	"testing"
)

func seeded() State {
	return Apply(NewState(500000), Edit{Field: FieldAmount, Value: 100000})
}

func TestProcessEditAmount(t *testing.T) {
	tests := []struct {
		name            string
		state           State
		value           float64
		expectedAmount  float64
		expectedPercent float64
	}{
		{
			name:            "Amount derives percent",
			state:           NewState(500000),
			value:           100000,
			expectedAmount:  100000,
			expectedPercent: 20,
		},
		{
			name:            "Sub-unit amount change keeps percent",
			state:           seeded(),
			value:           100000.6,
			expectedAmount:  100000.6,
			expectedPercent: 20,
		},
		{
			name:            "Amount change below percent drift keeps percent",
			state:           seeded(),
			value:           100020,
			expectedAmount:  100020,
			expectedPercent: 20,
		},
		{
			name:            "Amount change at percent drift updates percent",
			state:           seeded(),
			value:           100050,
			expectedAmount:  100050,
			expectedPercent: 20.01,
		},
		{
			name:            "Missing property value zeroes percent",
			state:           State{Percent: 15, LastSource: FieldPercent},
			value:           30000,
			expectedAmount:  30000,
			expectedPercent: 0,
		},
		{
			name:            "Amount above property value clamps percent",
			state:           NewState(500000),
			value:           600000,
			expectedAmount:  600000,
			expectedPercent: 99.99,
		},
		{
			name:            "Negative amount is coerced",
			state:           seeded(),
			value:           -10,
			expectedAmount:  0,
			expectedPercent: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := ProcessEdit(tt.state, Edit{Field: FieldAmount, Value: tt.value})
			if next.Amount != tt.expectedAmount {
				t.Errorf("Amount = %v, expected %v", next.Amount, tt.expectedAmount)
			}
			if next.Percent != tt.expectedPercent {
				t.Errorf("Percent = %v, expected %v", next.Percent, tt.expectedPercent)
			}
			if next.LastSource != FieldAmount {
				t.Errorf("LastSource = %s, expected %s", next.LastSource, FieldAmount)
			}
		})
	}
}

func TestProcessEditPercent(t *testing.T) {
	tests := []struct {
		name            string
		state           State
		value           float64
		expectedAmount  float64
		expectedPercent float64
	}{
		{
			name:            "Percent derives amount",
			state:           NewState(500000),
			value:           20,
			expectedAmount:  100000,
			expectedPercent: 20,
		},
		{
			name:            "Sub-drift percent change keeps amount",
			state:           seeded(),
			value:           20.004,
			expectedAmount:  100000,
			expectedPercent: 20,
		},
		{
			name:            "Percent of 100 is clamped",
			state:           NewState(500000),
			value:           100,
			expectedAmount:  499950,
			expectedPercent: 99.99,
		},
		{
			name:            "Negative percent zeroes both",
			state:           seeded(),
			value:           -5,
			expectedAmount:  0,
			expectedPercent: 0,
		},
		{
			name:            "Missing property value zeroes both",
			state:           State{Amount: 5000, Percent: 5, LastSource: FieldAmount},
			value:           10,
			expectedAmount:  0,
			expectedPercent: 0,
		},
		{
			name:            "Derived amount is rounded to whole units",
			state:           NewState(333333),
			value:           12.5,
			expectedAmount:  41667,
			expectedPercent: 12.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := ProcessEdit(tt.state, Edit{Field: FieldPercent, Value: tt.value})
			if next.Amount != tt.expectedAmount {
				t.Errorf("Amount = %v, expected %v", next.Amount, tt.expectedAmount)
			}
			if next.Percent != tt.expectedPercent {
				t.Errorf("Percent = %v, expected %v", next.Percent, tt.expectedPercent)
			}
			if next.LastSource != FieldPercent {
				t.Errorf("LastSource = %s, expected %s", next.LastSource, FieldPercent)
			}
		})
	}
}

func TestProcessEditPropertyPreservesDirection(t *testing.T) {
	t.Run("Amount source recomputes percent", func(t *testing.T) {
		state := seeded()
		next := ProcessEdit(state, Edit{Field: FieldProperty, Value: 400000})
		if next.Amount != 100000 {
			t.Errorf("Amount = %v, expected 100000", next.Amount)
		}
		if next.Percent != 25 {
			t.Errorf("Percent = %v, expected 25", next.Percent)
		}
		if next.LastSource != FieldAmount {
			t.Errorf("LastSource = %s, expected %s", next.LastSource, FieldAmount)
		}
	})

	t.Run("Percent source recomputes amount", func(t *testing.T) {
		state := Apply(NewState(500000), Edit{Field: FieldPercent, Value: 20})
		next := ProcessEdit(state, Edit{Field: FieldProperty, Value: 400000})
		if next.Percent != 20 {
			t.Errorf("Percent = %v, expected 20", next.Percent)
		}
		if next.Amount != 80000 {
			t.Errorf("Amount = %v, expected 80000", next.Amount)
		}
	})

	t.Run("No source recomputes amount", func(t *testing.T) {
		state := State{Percent: 10, LastSource: SourceNone}
		next := ProcessEdit(state, Edit{Field: FieldProperty, Value: 250000})
		if next.Amount != 25000 {
			t.Errorf("Amount = %v, expected 25000", next.Amount)
		}
	})

	t.Run("Zero property with amount source keeps amount", func(t *testing.T) {
		next := ProcessEdit(seeded(), Edit{Field: FieldProperty, Value: 0})
		if next.Amount != 100000 || next.Percent != 0 {
			t.Errorf("got amount=%v percent=%v, expected 100000/0", next.Amount, next.Percent)
		}
	})

	t.Run("Zero property with percent source zeroes amount", func(t *testing.T) {
		state := Apply(NewState(500000), Edit{Field: FieldPercent, Value: 20})
		next := ProcessEdit(state, Edit{Field: FieldProperty, Value: 0})
		if next.Amount != 0 || next.Percent != 20 {
			t.Errorf("got amount=%v percent=%v, expected 0/20", next.Amount, next.Percent)
		}
	})

	t.Run("Small property change below amount drift", func(t *testing.T) {
		state := Apply(NewState(500000), Edit{Field: FieldPercent, Value: 20})
		next := ProcessEdit(state, Edit{Field: FieldProperty, Value: 500002})
		if next.Amount != 100000 {
			t.Errorf("Amount = %v, expected 100000", next.Amount)
		}
	})
}

func TestApplyRapidAlternatingEdits(t *testing.T) {
	state := Apply(NewState(500000),
		Edit{Field: FieldAmount, Value: 50000},
		Edit{Field: FieldPercent, Value: 15},
		Edit{Field: FieldAmount, Value: 120000},
		Edit{Field: FieldPercent, Value: 30},
		Edit{Field: FieldProperty, Value: 600000},
	)
	if state.LastSource != FieldPercent {
		t.Fatalf("LastSource = %s, expected %s", state.LastSource, FieldPercent)
	}
	if state.Percent != 30 || state.Amount != 180000 {
		t.Errorf("got amount=%v percent=%v, expected 180000/30", state.Amount, state.Percent)
	}

	reversed := Apply(NewState(500000),
		Edit{Field: FieldPercent, Value: 30},
		Edit{Field: FieldAmount, Value: 120000},
		Edit{Field: FieldProperty, Value: 600000},
	)
	if reversed.LastSource != FieldAmount {
		t.Fatalf("LastSource = %s, expected %s", reversed.LastSource, FieldAmount)
	}
	if reversed.Amount != 120000 || reversed.Percent != 20 {
		t.Errorf("got amount=%v percent=%v, expected 120000/20", reversed.Amount, reversed.Percent)
	}
}

func TestProcessEditDoesNotMutateInput(t *testing.T) {
	state := seeded()
	_ = ProcessEdit(state, Edit{Field: FieldPercent, Value: 50})
	if state.Amount != 100000 || state.Percent != 20 || state.LastSource != FieldAmount {
		t.Errorf("input state mutated: %+v", state)
	}
}

func TestProcessEditUnknownField(t *testing.T) {
	state := seeded()
	next := ProcessEdit(state, Edit{Field: "rate", Value: 7})
	if next != state {
		t.Errorf("unknown field changed state: %+v -> %+v", state, next)
	}
}

func TestClampPercent(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-1, 0},
		{0, 0},
		{45.5, 45.5},
		{99.99, 99.99},
		{100, 99.99},
		{250, 99.99},
	}
	for _, tt := range tests {
		if got := ClampPercent(tt.input); got != tt.expected {
			t.Errorf("ClampPercent(%v) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
