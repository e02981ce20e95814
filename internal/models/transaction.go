package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/envelope-zero/budget-analytics/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a booking on a category.
//
// Amounts are stored signed: income is positive, expenses are negative.
// The sign and the type are always derived from the category.
type Transaction struct {
	DefaultModel
	Date        time.Time           `json:"date" example:"2024-03-15T00:00:00Z"`                                             // Day of the transaction, stored at midnight UTC
	Amount      decimal.Decimal     `json:"amount" gorm:"type:DECIMAL(20,8)" example:"-14.99" swaggertype:"number"`         // Signed amount
	CategoryID  uuid.UUID           `json:"categoryId" gorm:"index" example:"0f4e8b0a-6fbc-4d5c-9f6a-3e2f18e4d1c7"`         // ID of the category
	Category    Category            `json:"-"`                                                                               // The category the transaction is booked on
	Description string              `json:"description" example:"Weekly groceries" default:""`                              // Description of the transaction
	Type        budget.CategoryType `json:"type" example:"expense"`                                                          // income or expense, copied from the category
}

// AfterFind enforces UTC for all timestamps.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - trims whitespace from the description
//   - normalizes the date to midnight UTC, defaulting to today
//   - copies the type from the category and signs the amount accordingly
func (t *Transaction) BeforeSave(tx *gorm.DB) (err error) {
	t.Description = strings.TrimSpace(t.Description)

	if t.Amount.IsZero() {
		return ErrTransactionAmountZero
	}

	if t.Date.IsZero() {
		t.Date = types.Today().Time()
	} else {
		t.Date = types.DateOf(t.Date.In(time.UTC)).Time()
	}

	var category Category
	err = tx.Session(&gorm.Session{NewDB: true}).First(&category, t.CategoryID).Error
	if err != nil {
		return fmt.Errorf("no existing category with specified CategoryID: %w", err)
	}

	t.Type = category.Type
	if t.Type == budget.CategoryTypeExpense {
		t.Amount = t.Amount.Abs().Neg()
	} else {
		t.Amount = t.Amount.Abs()
	}

	return nil
}

// Snapshot returns the transaction as input for the budget engine.
func (t Transaction) Snapshot() budget.Transaction {
	return budget.Transaction{
		ID:         t.ID,
		Date:       types.DateOf(t.Date),
		Amount:     t.Amount,
		CategoryID: t.CategoryID,
		Type:       t.Type,
	}
}
