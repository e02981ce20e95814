package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	v1 "github.com/envelope-zero/budget-analytics/internal/controllers/v1"
	"github.com/envelope-zero/budget-analytics/internal/models"
	"github.com/envelope-zero/budget-analytics/internal/types"
	"github.com/envelope-zero/budget-analytics/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTransactionsCreate verifies that the sign of the amount follows the category.
func (suite *TestSuiteStandard) TestTransactionsCreate() {
	expense := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	income := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: budget.CategoryTypeIncome})

	tests := []struct {
		name     string
		category uuid.UUID
		amount   string
		expected string
		typ      budget.CategoryType
	}{
		{"Expense positive", expense.Data.ID, "14.99", "-14.99", budget.CategoryTypeExpense},
		{"Expense negative", expense.Data.ID, "-20", "-20", budget.CategoryTypeExpense},
		{"Income", income.Data.ID, "3000", "3000", budget.CategoryTypeIncome},
		{"Income negative", income.Data.ID, "-50", "50", budget.CategoryTypeIncome},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := createTestTransaction(t, v1.TransactionEditable{
				CategoryID: tt.category,
				Amount:     amount(tt.amount),
				Date:       types.NewDate(2024, time.March, 15),
			})

			assert.True(t, r.Data.Amount.Equal(amount(tt.expected)), "expected %s, got %s", tt.expected, r.Data.Amount)
			assert.Equal(t, tt.typ, r.Data.Type)
			assert.Equal(t, "2024-03-15", r.Data.Date.String())
			assert.Equal(t, fmt.Sprintf("%s/%s", categoriesURL, tt.category), r.Data.Links.Category)
			assert.Equal(t, fmt.Sprintf("%s/impact/%s", analyticsURL, r.Data.ID), r.Data.Links.Impact)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreateDefaultDate() {
	r := createTestTransaction(suite.T(), v1.TransactionEditable{Amount: amount("3")})
	assert.Equal(suite.T(), types.Today().String(), r.Data.Date.String())
}

func (suite *TestSuiteStandard) TestTransactionsCreateFails() {
	c := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name        string
		transaction v1.TransactionEditable
		status      int
		err         error
	}{
		{"Zero amount", v1.TransactionEditable{CategoryID: c.Data.ID}, http.StatusBadRequest, models.ErrTransactionAmountZero},
		{"Unknown category", v1.TransactionEditable{CategoryID: uuid.New(), Amount: amount("5")}, http.StatusNotFound, models.ErrResourceNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := createTestTransaction(t, tt.transaction, tt.status)
			require.NotNil(t, r.Error)
			assert.Contains(t, *r.Error, tt.err.Error())
		})
	}
}

// TestTransactionsGetFilter verifies the query filters of the list endpoint.
func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	salary := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: budget.CategoryTypeIncome})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{CategoryID: groceries.Data.ID, Amount: amount("10"), Date: types.NewDate(2024, time.January, 31)})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{CategoryID: groceries.Data.ID, Amount: amount("20"), Date: types.NewDate(2024, time.February, 1)})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{CategoryID: groceries.Data.ID, Amount: amount("30"), Date: types.NewDate(2024, time.February, 29)})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{CategoryID: salary.Data.ID, Amount: amount("3000"), Date: types.NewDate(2024, time.February, 1)})

	tests := []struct {
		name    string
		query   string
		amounts []string
		total   int64
	}{
		{"All, newest first", "", []string{"-30", "3000", "-20", "-10"}, 4},
		{"Category", fmt.Sprintf("category=%s", groceries.Data.ID), []string{"-30", "-20", "-10"}, 3},
		{"Type", "type=income", []string{"3000"}, 1},
		{"Start and end inclusive", "start=2024-02-01&end=2024-02-29", []string{"-30", "3000", "-20"}, 3},
		{"End only", "end=2024-01-31", []string{"-10"}, 1},
		{"Limit", "limit=1", []string{"-30"}, 4},
		{"Offset", "offset=3", []string{"-10"}, 4},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("%s?%s", transactionsURL, tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)

			amounts := make([]string, 0, len(response.Data))
			for _, tr := range response.Data {
				amounts = append(amounts, tr.Amount.String())
			}

			assert.Equal(t, tt.amounts, amounts)
			assert.Equal(t, tt.total, response.Pagination.Total)
		})
	}

	for _, query := range []string{"start=yesterday", "category=not-a-uuid", "limit=many"} {
		r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s?%s", transactionsURL, query), "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetSingleAndDelete() {
	tr := createTestTransaction(suite.T(), v1.TransactionEditable{Amount: amount("7.5")})
	path := fmt.Sprintf("%s/%s", transactionsURL, tr.Data.ID)

	r := test.Request(suite.T(), http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Amount.Equal(amount("-7.5")))

	r = test.Request(suite.T(), http.MethodOptions, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestTransactionsUpdate verifies that omitted fields are kept and the amount
// follows the sign of the new category.
func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries"})
	refunds := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Refunds", Type: budget.CategoryTypeIncome})

	tr := createTestTransaction(suite.T(), v1.TransactionEditable{
		CategoryID:  groceries.Data.ID,
		Amount:      amount("40"),
		Date:        types.NewDate(2024, time.March, 15),
		Description: "Market",
	})
	path := fmt.Sprintf("%s/%s", transactionsURL, tr.Data.ID)

	tests := []struct {
		name        string
		body        string
		amount      string
		typ         budget.CategoryType
		category    uuid.UUID
		date        string
		description string
	}{
		{"Amount", `{"amount": 55.5}`, "-55.5", budget.CategoryTypeExpense, groceries.Data.ID, "2024-03-15", "Market"},
		{"Date and description", `{"date": "2024-03-20", "description": "Bakery"}`, "-55.5", budget.CategoryTypeExpense, groceries.Data.ID, "2024-03-20", "Bakery"},
		{"Income category", fmt.Sprintf(`{"categoryId": "%s"}`, refunds.Data.ID), "55.5", budget.CategoryTypeIncome, refunds.Data.ID, "2024-03-20", "Bakery"},
		{"Back to expense", fmt.Sprintf(`{"categoryId": "%s", "amount": 12}`, groceries.Data.ID), "-12", budget.CategoryTypeExpense, groceries.Data.ID, "2024-03-20", "Bakery"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, path, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionResponse
			test.DecodeResponse(t, &r, &response)
			assert.True(t, response.Data.Amount.Equal(amount(tt.amount)), "expected %s, got %s", tt.amount, response.Data.Amount)
			assert.Equal(t, tt.typ, response.Data.Type)
			assert.Equal(t, tt.category, response.Data.CategoryID)
			assert.Equal(t, tt.date, response.Data.Date.String())
			assert.Equal(t, tt.description, response.Data.Description)
			assert.Equal(t, tr.Data.ID, response.Data.ID)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsUpdateFails() {
	tr := createTestTransaction(suite.T(), v1.TransactionEditable{Amount: amount("10")})
	path := fmt.Sprintf("%s/%s", transactionsURL, tr.Data.ID)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"Zero amount", path, `{"amount": 0}`, http.StatusBadRequest},
		{"Unknown category", path, fmt.Sprintf(`{"categoryId": "%s"}`, uuid.New()), http.StatusNotFound},
		{"Broken body", path, `{"amount": "ten"`, http.StatusBadRequest},
		{"Unknown transaction", fmt.Sprintf("%s/%s", transactionsURL, uuid.New()), `{"amount": 3}`, http.StatusNotFound},
		{"Invalid UUID", fmt.Sprintf("%s/Not-A-UUID", transactionsURL), `{"amount": 3}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	// Failed updates do not change the transaction
	r := test.Request(suite.T(), http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Amount.Equal(amount("-10")))
	assert.Equal(suite.T(), tr.Data.CategoryID, response.Data.CategoryID)
}

func (suite *TestSuiteStandard) TestTransactionsDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, transactionsURL, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrGeneral.Error(), *response.Error)
}
