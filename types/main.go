package types

import "github.com/shopspring/decimal"

type CalculationMode = string

var (
	ModeDaily     CalculationMode = "DAILY"
	ModeMonthly   CalculationMode = "MONTHLY"
	ModeQuarterly CalculationMode = "QUARTERLY"
	ModeYearly    CalculationMode = "YEARLY"
)

// PeriodsPerYear maps a calculation mode to the divisor applied to an
// account's annual rate. Unknown modes fall back to monthly.
func PeriodsPerYear(mode CalculationMode) int64 {
	switch mode {
	case ModeDaily:
		return 365
	case ModeQuarterly:
		return 4
	case ModeYearly:
		return 1
	default:
		return 12
	}
}

// StandingOrderSummary is the outcome of one standing-order tick.
type StandingOrderSummary struct {
	Due       int `json:"due"`
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
	Completed int `json:"completed"`
}

// InterestSummary is the outcome of one interest tick.
type InterestSummary struct {
	AccountsProcessed int             `json:"accounts_processed"`
	TotalInterestPaid decimal.Decimal `json:"total_interest_paid"`
}
