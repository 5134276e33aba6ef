// Package config defines the data structures related to configuration and
// includes functions for loading, normalizing and validating it.
package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for loan-calculator.
type Configuration struct {
	Scenarios []Scenario    `json:"scenarios"`
	Logging   LoggingConfig `yaml:"logging,omitempty" json:"-"`
	Output    OutputConfig  `yaml:"output,omitempty" json:"-"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Scenario is one loan option in a comparison run. Mortgage fields and HELOC
// fields share the struct; Kind selects which are used.
type Scenario struct {
	Label     string `json:"label,omitempty"`
	Name      string `json:"name,omitempty"`
	Kind      string `json:"kind,omitempty"` // mortgage, heloc
	StartDate string `json:"startDate,omitempty"`

	PropertyValue float64 `json:"propertyValue"`
	InterestRate  float64 `json:"interestRate"`
	ExtraPayment  float64 `json:"extraPayment,omitempty"`

	// Mortgage
	DownPayment        float64 `json:"downPayment,omitempty"`
	DownPaymentPercent float64 `json:"downPaymentPercent,omitempty"`
	LoanAmount         float64 `json:"loanAmount,omitempty"`
	Term               int     `json:"term,omitempty"` // months
	PMIMonthly         float64 `json:"pmiMonthly,omitempty"`
	PMIRate            float64 `json:"pmiRate,omitempty"` // annual percent of the loan
	PMIThreshold       float64 `json:"pmiThreshold,omitempty"`
	PMICutoff          float64 `json:"pmiCutoff,omitempty"`

	// HELOC
	OutstandingBalance float64 `json:"outstandingBalance,omitempty"`
	CreditLimit        float64 `json:"creditLimit,omitempty"`
	HELOCAmount        float64 `json:"helocAmount,omitempty"`
	DrawMonths         int     `json:"drawMonths,omitempty"`
	RepayMonths        int     `json:"repayMonths,omitempty"`
	Draws              []Draw  `json:"draws,omitempty"`
	MaxCombinedLTV     float64 `json:"maxCombinedLtv,omitempty"`
}

// Draw is an additional HELOC draw during the draw phase.
type Draw struct {
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
}

var labels = []string{constants.LabelA, constants.LabelB, constants.LabelC}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Normalize assigns missing labels in A, B, C order, defaults the loan kind
// and rejects configurations that cannot be compared.
func (conf *Configuration) Normalize() error {
	if len(conf.Scenarios) == 0 {
		return fmt.Errorf("no scenarios configured")
	}
	if len(conf.Scenarios) > len(labels) {
		return fmt.Errorf("at most %d scenarios can be compared, got %d", len(labels), len(conf.Scenarios))
	}

	used := make(map[string]bool)
	for i := range conf.Scenarios {
		s := &conf.Scenarios[i]
		s.Label = strings.ToUpper(strings.TrimSpace(s.Label))
		if s.Label == "" {
			continue
		}
		if !isLabel(s.Label) {
			return fmt.Errorf("scenario %d: invalid label %q, expected one of %s", i+1, s.Label, strings.Join(labels, ", "))
		}
		if used[s.Label] {
			return fmt.Errorf("scenario %d: duplicate label %q", i+1, s.Label)
		}
		used[s.Label] = true
	}

	for i := range conf.Scenarios {
		s := &conf.Scenarios[i]
		if s.Label == "" {
			for _, label := range labels {
				if !used[label] {
					s.Label = label
					used[label] = true
					break
				}
			}
		}
		s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
		if s.Kind == "" {
			s.Kind = constants.LoanKindMortgage
		}
		if s.Kind != constants.LoanKindMortgage && s.Kind != constants.LoanKindHELOC {
			return fmt.Errorf("scenario %s: unknown loan kind %q", s.Label, s.Kind)
		}
		if err := s.checkBounds(); err != nil {
			return fmt.Errorf("scenario %s: %w", s.Label, err)
		}
	}
	return nil
}

// checkBounds rejects term lengths and rates outside what a schedule can be
// built for.
func (s *Scenario) checkBounds() error {
	if s.Term > constants.MaxTermMonths {
		return fmt.Errorf("term of %d months exceeds %d months", s.Term, constants.MaxTermMonths)
	}
	if s.DrawMonths > constants.MaxTermMonths || s.RepayMonths > constants.MaxTermMonths ||
		s.DrawMonths+s.RepayMonths > constants.MaxTermMonths {
		return fmt.Errorf("HELOC term of %d+%d months exceeds %d months",
			s.DrawMonths, s.RepayMonths, constants.MaxTermMonths)
	}
	if s.InterestRate > constants.MaxInterestRate {
		return fmt.Errorf("interest rate %.3f%% exceeds %.0f%%", s.InterestRate, constants.MaxInterestRate)
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string
	for _, s := range conf.Scenarios {
		warnings = append(warnings, validation.ValidateScenario(validation.ScenarioConfig{
			Label:              s.Label,
			Kind:               s.Kind,
			PropertyValue:      s.PropertyValue,
			DownPayment:        s.DownPayment,
			LoanAmount:         s.LoanAmount,
			InterestRate:       s.InterestRate,
			Term:               s.Term,
			PMIMonthly:         s.PMIMonthly,
			PMIRate:            s.PMIRate,
			OutstandingBalance: s.OutstandingBalance,
			CreditLimit:        s.CreditLimit,
			HELOCAmount:        s.HELOCAmount,
			DrawMonths:         s.DrawMonths,
			RepayMonths:        s.RepayMonths,
		})...)
	}
	return warnings
}

func isLabel(label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
