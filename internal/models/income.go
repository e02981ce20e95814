package models

import (
	"strings"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income is a configured, recurring income source.
type Income struct {
	DefaultModel
	SourceName string                 `json:"sourceName" example:"Main Salary"`                                     // Name of the income source
	Type       string                 `json:"type" example:"salary" default:""`                                     // Free form kind of income, e.g. salary or freelance
	Amount     decimal.Decimal        `json:"amount" gorm:"type:DECIMAL(20,8)" example:"3000" swaggertype:"number"` // Amount paid out per frequency
	Frequency  budget.IncomeFrequency `json:"frequency" example:"monthly" default:"monthly"`                        // weekly, biweekly, monthly or yearly
	IsBonus    bool                   `json:"isBonus" example:"false" default:"false"`                              // One-off or bonus income
}

// BeforeSave trims whitespace, normalizes the frequency and validates the income.
func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.SourceName = strings.TrimSpace(i.SourceName)
	i.Type = strings.TrimSpace(i.Type)

	if i.SourceName == "" {
		return ErrIncomeSourceEmpty
	}

	if i.Frequency == "" {
		i.Frequency = budget.IncomeMonthly
	}
	i.Frequency = budget.ParseIncomeFrequency(string(i.Frequency))

	if !i.Frequency.Valid() {
		return ErrIncomeFrequency
	}

	if !i.Amount.IsPositive() {
		return ErrIncomeAmount
	}

	return nil
}

// Monthly returns the monthly equivalent of the income.
func (i Income) Monthly() decimal.Decimal {
	return i.Frequency.Monthly(i.Amount)
}
