package v1

import (
	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/envelope-zero/budget-analytics/internal/types"
	ez_uuid "github.com/envelope-zero/budget-analytics/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// QueryPeriod is a date range in the query string. Both ends are optional.
type QueryPeriod struct {
	Start types.Date `form:"start" example:"2024-03-01"` // First day of the period in YYYY-MM-DD format. Defaults to the first day of the current month
	End   types.Date `form:"end" example:"2024-03-31"`   // Last day of the period in YYYY-MM-DD format. Defaults to the last day of the current month
}

// period returns the period, filling unset ends from the month of today.
func (q QueryPeriod) period(today types.Date) (budget.Period, error) {
	p := budget.MonthPeriod(today.Month())

	if !q.Start.IsZero() {
		p.Start = q.Start
	}

	if !q.End.IsZero() {
		p.End = q.End
	}

	if p.Start.After(p.End) {
		return budget.Period{}, errPeriodInvalid
	}

	return p, nil
}
