package v1

import (
	"fmt"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/envelope-zero/budget-analytics/internal/models"
	"github.com/envelope-zero/budget-analytics/internal/types"
	ez_uuid "github.com/envelope-zero/budget-analytics/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Date        types.Date      `json:"date" example:"2024-03-15" swaggertype:"string"`                         // Day of the transaction in YYYY-MM-DD format. Defaults to today
	Amount      decimal.Decimal `json:"amount" example:"14.99" swaggertype:"number"`                            // Amount. The sign is set from the type of the category
	CategoryID  uuid.UUID       `json:"categoryId" example:"0f4e8b0a-6fbc-4d5c-9f6a-3e2f18e4d1c7"`             // ID of the category
	Description string          `json:"description" example:"Weekly groceries" default:""`                      // Description of the transaction
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:        editable.Date.Time(),
		Amount:      editable.Amount,
		CategoryID:  editable.CategoryID,
		Description: editable.Description,
	}
}

// apply copies the editable fields onto an existing transaction.
func (editable TransactionEditable) apply(transaction *models.Transaction) {
	id, timestamps := transaction.ID, transaction.Timestamps
	*transaction = editable.model()
	transaction.ID = id
	transaction.Timestamps = timestamps
}

func transactionEditable(model models.Transaction) TransactionEditable {
	return TransactionEditable{
		Date:        types.DateOf(model.Date),
		Amount:      model.Amount,
		CategoryID:  model.CategoryID,
		Description: model.Description,
	}
}

type TransactionLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"`            // The transaction itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/0f4e8b0a-6fbc-4d5c-9f6a-3e2f18e4d1c7"`         // The category of the transaction
	Impact   string `json:"impact" example:"https://example.com/api/v1/analytics/impact/d430d7c3-d14c-4712-9336-ee56965a6673"`       // Budget impact of the transaction
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Type  budget.CategoryType `json:"type" example:"expense"` // income or expense, taken from the category
	Links TransactionLinks    `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: transactionEditable(model),
		Type: model.Type,
		Links: TransactionLinks{
			Self:     fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
			Impact:   fmt.Sprintf("%s/v1/analytics/impact/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of created transactions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	CategoryID ez_uuid.UUID        `form:"category"`                   // By ID of the category
	Type       budget.CategoryType `form:"type"`                       // By type
	Start      types.Date          `form:"start" filterField:"false"`  // Transactions at and after this date
	End        types.Date          `form:"end" filterField:"false"`    // Transactions at and before this date
	Offset     uint                `form:"offset" filterField:"false"` // The offset of the first transaction returned. Defaults to 0.
	Limit      int                 `form:"limit" filterField:"false"`  // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	return models.Transaction{
		CategoryID: f.CategoryID.UUID,
		Type:       f.Type,
	}
}
