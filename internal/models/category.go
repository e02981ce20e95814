package models

import (
	"strings"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultCategoryColor        = "#007bff"
	defaultBudgetRollingMonths  = 3
	maxBudgetRollingMonths      = 12
	defaultCategoryBudgetPeriod = budget.BudgetPeriodMonthly
)

// Category is a category transactions are booked on. Expense categories
// can carry a budget.
type Category struct {
	DefaultModel
	Name                string              `json:"name" gorm:"uniqueIndex" example:"Groceries"`                                      // Name of the category
	Type                budget.CategoryType `json:"type" example:"expense"`                                                           // income or expense
	Color               string              `json:"color" example:"#007bff" default:"#007bff"`                                        // Display color
	Note                string              `json:"note" example:"Food and household supplies" default:""`                            // Notes about the category
	BudgetLimit         *decimal.Decimal    `json:"budgetLimit" gorm:"type:DECIMAL(20,8)" example:"400" swaggertype:"number"`         // Budget per period. null for no budget
	BudgetPeriod        budget.BudgetPeriod `json:"budgetPeriod" example:"monthly" default:"monthly"`                                 // daily, weekly, monthly or yearly
	BudgetType          budget.BudgetType   `json:"budgetType" example:"fixed" default:"fixed"`                                       // fixed, percentage or rolling_average
	BudgetPriority      budget.Priority     `json:"budgetPriority" example:"essential" default:"essential"`                           // critical, essential, important or discretionary
	BudgetPercentage    *decimal.Decimal    `json:"budgetPercentage" gorm:"type:DECIMAL(20,8)" example:"15" swaggertype:"number"`     // Percentage of income for percentage budgets
	BudgetRollingMonths int                 `json:"budgetRollingMonths" example:"3" default:"3"`                                      // Months for rolling average budgets
}

// BeforeSave trims whitespace, sets defaults and validates the budget fields.
// The type of a category can only change while no transactions are booked on it.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)
	c.Color = strings.TrimSpace(c.Color)

	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	if c.Type == "" {
		c.Type = budget.CategoryTypeExpense
	}
	if c.Color == "" {
		c.Color = defaultCategoryColor
	}
	if c.BudgetPeriod == "" {
		c.BudgetPeriod = defaultCategoryBudgetPeriod
	}
	if c.BudgetType == "" {
		c.BudgetType = budget.BudgetTypeFixed
	}
	if c.BudgetPriority == "" {
		c.BudgetPriority = budget.PriorityEssential
	}
	if c.BudgetRollingMonths == 0 {
		c.BudgetRollingMonths = defaultBudgetRollingMonths
	}

	err := c.validate()
	if err != nil {
		return err
	}

	if c.ID == uuid.Nil {
		return nil
	}

	var count int64
	err = tx.Session(&gorm.Session{NewDB: true}).Model(&Transaction{}).Where("category_id = ? AND type <> ?", c.ID, c.Type).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrCategoryTypeHasTransactions
	}

	return nil
}

func (c Category) validate() error {
	if !c.Type.Valid() {
		return ErrCategoryType
	}

	if !c.BudgetPeriod.Valid() {
		return ErrBudgetPeriod
	}

	if !c.BudgetType.Valid() {
		return ErrBudgetType
	}

	if !c.BudgetPriority.Valid() {
		return ErrBudgetPriority
	}

	if c.BudgetRollingMonths < 1 || c.BudgetRollingMonths > maxBudgetRollingMonths {
		return ErrRollingMonthsRange
	}

	if c.Type == budget.CategoryTypeIncome && c.hasBudget() {
		return ErrBudgetOnIncomeCategory
	}

	if c.BudgetLimit != nil && c.BudgetLimit.IsNegative() {
		return ErrBudgetLimitNegative
	}

	if c.BudgetPercentage != nil && (c.BudgetPercentage.IsNegative() || c.BudgetPercentage.GreaterThan(decimal.NewFromInt(100))) {
		return ErrBudgetPercentageRange
	}

	if c.BudgetType == budget.BudgetTypePercentage && c.BudgetPercentage == nil {
		return ErrBudgetPercentageRequired
	}

	return nil
}

// hasBudget reports if any budget field deviates from its default.
func (c Category) hasBudget() bool {
	return c.BudgetLimit != nil ||
		c.BudgetPercentage != nil ||
		c.BudgetType != budget.BudgetTypeFixed ||
		c.BudgetPriority != budget.PriorityEssential ||
		c.BudgetPeriod != defaultCategoryBudgetPeriod ||
		c.BudgetRollingMonths != defaultBudgetRollingMonths
}

// BeforeDelete refuses to delete categories that still have transactions.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Session(&gorm.Session{NewDB: true}).Model(&Transaction{}).Where("category_id = ?", c.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrCategoryHasTransactions
	}

	return nil
}

// Snapshot returns the category as input for the budget engine.
func (c Category) Snapshot() budget.Category {
	return budget.Category{
		ID:                  c.ID,
		Name:                c.Name,
		Type:                c.Type,
		BudgetLimit:         c.BudgetLimit,
		BudgetPeriod:        c.BudgetPeriod,
		BudgetType:          c.BudgetType,
		BudgetPriority:      c.BudgetPriority,
		BudgetPercentage:    c.BudgetPercentage,
		BudgetRollingMonths: c.BudgetRollingMonths,
	}
}
