package budget

import (
	"strings"

	"github.com/shopspring/decimal"
)

// IncomeFrequency is how often a configured income source pays out.
type IncomeFrequency string

const (
	IncomeWeekly   IncomeFrequency = "weekly"
	IncomeBiweekly IncomeFrequency = "biweekly"
	IncomeMonthly  IncomeFrequency = "monthly"
	IncomeYearly   IncomeFrequency = "yearly"
)

var (
	weeksPerMonth      = decimal.RequireFromString("4.33")
	fortnightsPerMonth = decimal.RequireFromString("2.165")
	monthsPerYear      = decimal.NewFromInt(12)
)

// ParseIncomeFrequency maps common spellings to an IncomeFrequency.
// Unknown values are returned lower cased and fail Valid.
func ParseIncomeFrequency(s string) IncomeFrequency {
	f := strings.ToLower(strings.TrimSpace(s))
	switch f {
	case "bi-weekly", "fortnightly":
		return IncomeBiweekly
	case "annually", "annual":
		return IncomeYearly
	}
	return IncomeFrequency(f)
}

// Valid reports if the frequency is a known one.
func (f IncomeFrequency) Valid() bool {
	switch f {
	case IncomeWeekly, IncomeBiweekly, IncomeMonthly, IncomeYearly:
		return true
	}
	return false
}

// Monthly converts an amount paid at frequency f to its monthly equivalent.
// Unknown frequencies are treated as monthly.
func (f IncomeFrequency) Monthly(amount decimal.Decimal) decimal.Decimal {
	switch f {
	case IncomeWeekly:
		return amount.Mul(weeksPerMonth)
	case IncomeBiweekly:
		return amount.Mul(fortnightsPerMonth)
	case IncomeYearly:
		return amount.Div(monthsPerYear)
	}
	return amount
}
