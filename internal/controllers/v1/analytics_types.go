package v1

import (
	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/shopspring/decimal"
)

type Progress struct {
	Period     budget.Period           `json:"period"`     // The analyzed period
	Categories []budget.ProgressRecord `json:"categories"` // Progress of every budgeted expense category
	Summary    budget.ProgressSummary  `json:"summary"`    // Totals over all categories
}

type ProgressResponse struct {
	Data  *Progress `json:"data"`                                                               // Budget progress
	Error *string   `json:"error" example:"the start date must not be after the end date"` // The error, if any occurred
}

type TrendsResponse struct {
	Data  []budget.MonthlySnapshot `json:"data"`                                                                          // One snapshot per month, oldest first
	Error *string                  `json:"error" example:"validation failed: the number of months must be between 1 and 24"` // The error, if any occurred
}

type AlertsResponse struct {
	Data  []budget.Alert `json:"data"`                                                 // Alerts, most severe first
	Error *string        `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

type Performance struct {
	Score   decimal.Decimal        `json:"score" example:"87.5"` // Average health score of all budgeted categories, 0 to 100
	Period  budget.Period          `json:"period"`               // The analyzed period
	Summary budget.ProgressSummary `json:"summary"`              // Totals over all categories
}

type PerformanceResponse struct {
	Data  *Performance `json:"data"`                                                 // Budget performance
	Error *string      `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

type ImpactResponse struct {
	Data  *budget.Impact `json:"data"`                                                                        // Impact of the transaction on its category budget
	Error *string        `json:"error" example:"the budget impact is only available for expense transactions"` // The error, if any occurred
}
