// Package downpayment keeps a purchase's down payment amount, down payment
// percent and property value consistent while any one of them is edited.
//
// ProcessEdit is a pure reducer: callers serialize the edits of one input
// group and feed them in order. The only history kept is State.LastSource,
// which decides whether a property value change moves the amount or the
// percent.
package downpayment

import (
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// Field identifies one of the coupled inputs.
type Field string

// Coupled input fields. SourceNone is only valid as a LastSource.
const (
	FieldAmount   Field = "amount"
	FieldPercent  Field = "percent"
	FieldProperty Field = "property"
	SourceNone    Field = "none"
)

// Drift thresholds below which a recomputed counterpart value is ignored.
const (
	DriftAmount  = constants.DriftAmount
	DriftPercent = constants.DriftPercent
)

// driftEpsilon absorbs float error when a delta sits exactly on a drift threshold.
const driftEpsilon = 1e-9

// State is the coupled down payment input group.
type State struct {
	PropertyValue float64 `json:"propertyValue"`
	Amount        float64 `json:"amount"`
	Percent       float64 `json:"percent"`
	LastSource    Field   `json:"lastSource"`
}

// Edit is a single user change to one field.
type Edit struct {
	Field Field   `json:"field"`
	Value float64 `json:"value"`
}

// NewState returns an empty input group for the given property value.
func NewState(propertyValue float64) State {
	return State{PropertyValue: mathutil.NonNegative(propertyValue), LastSource: SourceNone}
}

// ClampPercent keeps a percent inside [0, 99.99].
func ClampPercent(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p >= constants.PercentageMultiplier {
		return constants.MaxDownPaymentPercent
	}
	return p
}

// ProcessEdit applies one edit and returns the next state.
func ProcessEdit(state State, edit Edit) State {
	next := state
	if next.LastSource == "" {
		next.LastSource = SourceNone
	}

	switch edit.Field {
	case FieldAmount:
		next.Amount = mathutil.NonNegative(edit.Value)
		next.LastSource = FieldAmount
		next.syncPercent()
	case FieldPercent:
		prevPercent := next.Percent
		next.Percent = ClampPercent(edit.Value)
		next.LastSource = FieldPercent
		if next.PropertyValue <= 0 {
			next.Amount = 0
			next.Percent = 0
		} else if math.Abs(next.Percent-prevPercent) >= DriftPercent-driftEpsilon {
			next.syncAmount()
		}
	case FieldProperty:
		next.PropertyValue = mathutil.NonNegative(edit.Value)
		if next.LastSource == FieldAmount {
			next.syncPercent()
		} else {
			next.syncAmount()
		}
	}

	next.Percent = mathutil.Round(next.Percent)
	return next
}

// Apply folds a serialized stream of edits into state.
func Apply(state State, edits ...Edit) State {
	for _, edit := range edits {
		state = ProcessEdit(state, edit)
	}
	return state
}

// syncPercent derives the percent from the amount.
func (s *State) syncPercent() {
	if s.PropertyValue <= 0 {
		s.Percent = 0
		return
	}
	candidate := mathutil.Round(ClampPercent(s.Amount / s.PropertyValue * constants.PercentageMultiplier))
	if math.Abs(candidate-s.Percent) >= DriftPercent-driftEpsilon {
		s.Percent = candidate
	}
}

// syncAmount derives the amount from the percent.
func (s *State) syncAmount() {
	if s.PropertyValue <= 0 {
		s.Amount = 0
		return
	}
	candidate := math.Round(s.PropertyValue * s.Percent / constants.PercentageMultiplier)
	if math.Abs(candidate-s.Amount) >= DriftAmount-driftEpsilon {
		s.Amount = candidate
	}
}
