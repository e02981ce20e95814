package v1

import (
	"fmt"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/envelope-zero/budget-analytics/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// IncomeEditable represents all user configurable parameters
type IncomeEditable struct {
	SourceName string                 `json:"sourceName" example:"Main Salary"`              // Name of the income source
	Type       string                 `json:"type" example:"salary" default:""`              // Free form kind of income, e.g. salary or freelance
	Amount     decimal.Decimal        `json:"amount" example:"3000" swaggertype:"number"`    // Amount paid out per frequency
	Frequency  budget.IncomeFrequency `json:"frequency" example:"monthly" default:"monthly"` // weekly, biweekly, monthly or yearly
	IsBonus    bool                   `json:"isBonus" example:"false" default:"false"`       // One-off or bonus income
}

func (editable IncomeEditable) model() models.Income {
	return models.Income{
		SourceName: editable.SourceName,
		Type:       editable.Type,
		Amount:     editable.Amount,
		Frequency:  editable.Frequency,
		IsBonus:    editable.IsBonus,
	}
}

// apply copies the editable fields onto an existing income.
func (editable IncomeEditable) apply(income *models.Income) {
	id, timestamps := income.ID, income.Timestamps
	*income = editable.model()
	income.ID = id
	income.Timestamps = timestamps
}

func incomeEditable(model models.Income) IncomeEditable {
	return IncomeEditable{
		SourceName: model.SourceName,
		Type:       model.Type,
		Amount:     model.Amount,
		Frequency:  model.Frequency,
		IsBonus:    model.IsBonus,
	}
}

type IncomeLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/incomes/5e0d6c0b-86c8-4b2f-8a52-3f8d6bbf1d2c"` // The income itself
}

type Income struct {
	models.DefaultModel
	IncomeEditable
	MonthlyAmount decimal.Decimal `json:"monthlyAmount" example:"4330" swaggertype:"number"` // Monthly equivalent of the amount
	Links         IncomeLinks     `json:"links"`
}

func newIncome(c *gin.Context, model models.Income) Income {
	url := c.GetString(string(models.DBContextURL))

	return Income{
		DefaultModel:   model.DefaultModel,
		IncomeEditable: incomeEditable(model),
		MonthlyAmount:  model.Monthly().Round(2),
		Links: IncomeLinks{
			Self: fmt.Sprintf("%s/v1/incomes/%s", url, model.ID),
		},
	}
}

// IncomeSummary is the total of all configured incomes.
type IncomeSummary struct {
	MonthlyTotal decimal.Decimal `json:"monthlyTotal" example:"7328" swaggertype:"number"` // Sum of the monthly equivalents of all incomes
	Count        int             `json:"count" example:"2"`                                // Number of configured incomes
}

type IncomeListResponse struct {
	Data    []Income       `json:"data"`                                                          // List of incomes
	Summary *IncomeSummary `json:"summary"`                                                       // Totals over all incomes
	Error   *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type IncomeCreateResponse struct {
	Data  []IncomeResponse `json:"data"`                                                          // List of the created incomes or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (i *IncomeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	i.Data = append(i.Data, IncomeResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type IncomeResponse struct {
	Data  *Income `json:"data"`                                                          // Data for the income
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
