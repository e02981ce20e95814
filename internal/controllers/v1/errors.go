package v1

import (
	"errors"
	"net/http"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/envelope-zero/budget-analytics/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, budget.ErrInvariant) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

var (
	errPeriodInvalid    = errors.New("the start date must not be after the end date")
	errIncomeNegative   = errors.New("the income must not be negative")
	errExpensesNegative = errors.New("the expenses must not be negative")
)

var errImpactIncome = errors.New("the budget impact is only available for expense transactions")
