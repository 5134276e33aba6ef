// Package warnings derives advisory messages from up to three computed loan
// scenarios labelled A, B and C.
package warnings

import (
	"fmt"
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
)

// PMIMeta describes how PMI behaves over a loan's schedule.
type PMIMeta struct {
	MonthlyInput float64
	// EndsMonth is the payment number at which PMI stops. nil means it never
	// stops; 1 means it is never charged.
	EndsMonth *int
}

// ExtraDeltas compares a schedule with extra payments to the same loan without them.
type ExtraDeltas struct {
	InterestSaved float64
}

// Scenario is the part of a computed loan result the rules inspect. Every
// nested field is optional.
type Scenario struct {
	Name         string
	PMI          *PMIMeta
	StartingLTV  *float64
	ExtraPayment float64
	Extra        *ExtraDeltas
}

// Results holds the scenarios of one comparison run; nil means absent.
type Results struct {
	A *Scenario
	B *Scenario
	C *Scenario
}

// Build evaluates every rule for each present scenario, in label order.
func Build(results Results) []string {
	var messages []string
	labelled := []struct {
		label    string
		scenario *Scenario
	}{
		{constants.LabelA, results.A},
		{constants.LabelB, results.B},
		{constants.LabelC, results.C},
	}
	for _, entry := range labelled {
		if entry.scenario == nil {
			continue
		}
		messages = append(messages, evaluate(entry.label, *entry.scenario)...)
	}
	return messages
}

func evaluate(label string, s Scenario) []string {
	name := s.Name
	if name == "" {
		name = "Option " + label
	}

	var messages []string
	var pmiMonthly float64
	var endsMonth *int
	if s.PMI != nil {
		pmiMonthly = s.PMI.MonthlyInput
		endsMonth = s.PMI.EndsMonth
	}

	if pmiMonthly > 0 && endsMonth == nil {
		messages = append(messages, fmt.Sprintf("%s: PMI never drops off over the life of the loan; it is charged on every payment.", name))
	}
	if pmiMonthly > 0 && !positive(s.StartingLTV) {
		messages = append(messages, fmt.Sprintf("%s: Appraised value missing — cannot evaluate PMI termination; treated as persistent.", name))
	}
	if pmiMonthly > 0 && endsMonth != nil && *endsMonth == 1 {
		messages = append(messages, fmt.Sprintf("%s: PMI provided but starting LTV below threshold; charge ignored.", name))
	}
	if s.ExtraPayment > 0 && s.Extra != nil && s.Extra.InterestSaved <= 0 {
		messages = append(messages, fmt.Sprintf("%s: Extra payment yields no measurable interest savings; check the amount and term.", name))
	}
	return messages
}

func positive(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v > 0
}
