package models

import (
	"errors"
	"fmt"

	"github.com/envelope-zero/budget-analytics/internal/budget"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors. All of them wrap budget.ErrValidation.
var (
	ErrCategoryNameEmpty        = fmt.Errorf("%w: the category name must not be empty", budget.ErrValidation)
	ErrCategoryNameNotUnique    = fmt.Errorf("%w: the category name must be unique", budget.ErrValidation)
	ErrCategoryType             = fmt.Errorf("%w: the category type must be one of income, expense", budget.ErrValidation)
	ErrBudgetPeriod             = fmt.Errorf("%w: the budget period must be one of daily, weekly, monthly, yearly", budget.ErrValidation)
	ErrBudgetType               = fmt.Errorf("%w: the budget type must be one of fixed, percentage, rolling_average", budget.ErrValidation)
	ErrBudgetPriority           = fmt.Errorf("%w: the budget priority must be one of critical, essential, important, discretionary", budget.ErrValidation)
	ErrBudgetLimitNegative      = fmt.Errorf("%w: the budget limit must not be negative", budget.ErrValidation)
	ErrBudgetPercentageRequired = fmt.Errorf("%w: percentage budgets need a budget percentage", budget.ErrValidation)
	ErrBudgetPercentageRange    = fmt.Errorf("%w: the budget percentage must be between 0 and 100", budget.ErrValidation)
	ErrRollingMonthsRange       = fmt.Errorf("%w: the rolling average must span between 1 and 12 months", budget.ErrValidation)
	ErrBudgetOnIncomeCategory   = fmt.Errorf("%w: budgets can only be set for expense categories", budget.ErrValidation)
	ErrTransactionAmountZero    = fmt.Errorf("%w: the transaction amount must not be zero", budget.ErrValidation)
	ErrMethodologyNameEmpty     = fmt.Errorf("%w: the methodology name must not be empty", budget.ErrValidation)
	ErrMethodologyNameNotUnique = fmt.Errorf("%w: the methodology name must be unique", budget.ErrValidation)
	ErrIncomeSourceEmpty        = fmt.Errorf("%w: the income source name must not be empty", budget.ErrValidation)
	ErrIncomeFrequency          = fmt.Errorf("%w: the income frequency must be one of weekly, biweekly, monthly, yearly", budget.ErrValidation)
	ErrIncomeAmount             = fmt.Errorf("%w: the income amount must be positive", budget.ErrValidation)
)

// ErrCategoryHasTransactions is returned when deleting a category that still has transactions.
var ErrCategoryHasTransactions = fmt.Errorf("%w: the category has transactions and cannot be deleted", budget.ErrInvariant)

// ErrCategoryTypeHasTransactions is returned when changing the type of a category that has transactions.
var ErrCategoryTypeHasTransactions = fmt.Errorf("%w: the type of a category with transactions cannot be changed", budget.ErrInvariant)
