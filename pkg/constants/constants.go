// Package constants provides shared constants for the loan-calculator application.
package constants

// DateTimeLayout is the format expected in config files for loan start dates.
const DateTimeLayout = "2006-01"

// PaymentDateLayout is the format used when rendering payment dates.
const PaymentDateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// LTVDecimalPlaces is the number of decimal places LTV percentages are reported with
	LTVDecimalPlaces = 4

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// PMI constants
const (
	// DefaultPMIThreshold is the LTV at or below which PMI is not charged
	DefaultPMIThreshold = 80.0

	// DefaultPMICutoff is the LTV at which an active PMI charge drops off
	DefaultPMICutoff = 78.0

	// BorderlineLTVMargin is how far above the threshold an LTV is still borderline
	BorderlineLTVMargin = 5.0
)

// Down payment sync constants
const (
	// DriftAmount is the smallest amount change (currency units) that updates the counterpart field
	DriftAmount = 1.0

	// DriftPercent is the smallest percent change (percentage points) that updates the counterpart field
	DriftPercent = 0.01

	// MaxDownPaymentPercent is the soft ceiling for a down payment percentage
	MaxDownPaymentPercent = 99.99
)

// Combined LTV constants
const (
	// MediumLTVFloor is the combined LTV at which a HELOC becomes medium risk
	MediumLTVFloor = 70.0

	// HighLTVFloor is the combined LTV above which a HELOC is high risk
	HighLTVFloor = 85.0

	// DefaultMaxCombinedLTV is the combined LTV lenders typically allow when sizing available equity
	DefaultMaxCombinedLTV = 85.0
)

// Scenario labels in comparison mode
const (
	LabelA = "A"
	LabelB = "B"
	LabelC = "C"
)

// Loan kinds
const (
	LoanKindMortgage = "mortgage"
	LoanKindHELOC    = "heloc"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// MaxTermMonths bounds loan terms and combined HELOC phase lengths
	MaxTermMonths = 600

	// MaxInterestRate bounds the annual interest rate, in percent
	MaxInterestRate = 100.0
)
