// Package budget implements the budget methodology and analytics engine.
//
// Everything in this package works on snapshots passed in by the caller.
// Nothing here reads from or writes to a database, with the exception of
// the Registry, which delegates all persistence to a MethodologyStore.
package budget

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryType is the kind of a category.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports if the category type is a known one.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// BudgetPeriod is the recurrence of a category budget.
type BudgetPeriod string

const (
	BudgetPeriodDaily   BudgetPeriod = "daily"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports if the budget period is a known one.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case BudgetPeriodDaily, BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

// Days returns the approximate length of the period in days.
//
// Unknown periods are treated as monthly.
func (p BudgetPeriod) Days() int {
	switch p {
	case BudgetPeriodDaily:
		return 1
	case BudgetPeriodWeekly:
		return 7
	case BudgetPeriodYearly:
		return 365
	}
	return 30
}

// BudgetType determines how the effective budget of a category is computed.
type BudgetType string

const (
	BudgetTypeFixed          BudgetType = "fixed"
	BudgetTypePercentage     BudgetType = "percentage"
	BudgetTypeRollingAverage BudgetType = "rolling_average"
)

// Valid reports if the budget type is a known one.
func (t BudgetType) Valid() bool {
	switch t {
	case BudgetTypeFixed, BudgetTypePercentage, BudgetTypeRollingAverage:
		return true
	}
	return false
}

// Priority is the budget priority of a category. It drives the order and
// size of allocations in all methodologies.
type Priority string

const (
	PriorityCritical      Priority = "critical"
	PriorityEssential     Priority = "essential"
	PriorityImportant     Priority = "important"
	PriorityDiscretionary Priority = "discretionary"
)

// Valid reports if the priority is a known one.
func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Rank returns the sort position of the priority, critical first.
// Unknown priorities sort last.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

var priorityRank = map[Priority]int{
	PriorityCritical:      0,
	PriorityEssential:     1,
	PriorityImportant:     2,
	PriorityDiscretionary: 3,
}

// Category is a snapshot of a budgetable category.
type Category struct {
	ID                  uuid.UUID        `json:"id"`
	Name                string           `json:"name"`
	Type                CategoryType     `json:"type"`
	BudgetLimit         *decimal.Decimal `json:"budgetLimit"` // nil when no budget is set
	BudgetPeriod        BudgetPeriod     `json:"budgetPeriod"`
	BudgetType          BudgetType       `json:"budgetType"`
	BudgetPriority      Priority         `json:"budgetPriority"`
	BudgetPercentage    *decimal.Decimal `json:"budgetPercentage"`
	BudgetRollingMonths int              `json:"budgetRollingMonths"`
}

// Limit returns the budget limit, or zero when none is set.
func (c Category) Limit() decimal.Decimal {
	if c.BudgetLimit == nil {
		return decimal.Zero
	}
	return *c.BudgetLimit
}

// HasBudget reports if the category has a positive budget limit.
func (c Category) HasBudget() bool {
	return c.BudgetLimit != nil && c.BudgetLimit.IsPositive()
}

// EffectiveBudget calculates the budget amount for the category based on its budget type.
//
// Percentage budgets need the total income to be resolved, without it they fall back
// to the fixed limit. Rolling averages are not computed and use the fixed limit.
func (c Category) EffectiveBudget(totalIncome *decimal.Decimal) decimal.Decimal {
	if !c.HasBudget() {
		return decimal.Zero
	}

	switch c.BudgetType {
	case BudgetTypePercentage:
		if totalIncome != nil && !totalIncome.IsZero() && c.BudgetPercentage != nil {
			return totalIncome.Mul(*c.BudgetPercentage).Div(hundred)
		}
	case BudgetTypeRollingAverage:
		// TODO: average the spending of the last BudgetRollingMonths months once the
		// analyzer receives per-month history for single categories.
	}

	return *c.BudgetLimit
}

// PeriodDays returns the length of the category's budget period in days.
func (c Category) PeriodDays() int {
	return c.BudgetPeriod.Days()
}
