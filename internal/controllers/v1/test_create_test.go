package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/envelope-zero/budget-analytics/internal/controllers/v1"
	"github.com/envelope-zero/budget-analytics/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	categoriesURL    = "http://example.com/v1/categories"
	transactionsURL  = "http://example.com/v1/transactions"
	methodologiesURL = "http://example.com/v1/methodologies"
	incomesURL       = "http://example.com/v1/incomes"
	analyticsURL     = "http://example.com/v1/analytics"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func limit(s string) *decimal.Decimal {
	d := amount(s)
	return &d
}

func createTestCategory(t *testing.T, c v1.CategoryEditable, expectedStatus ...int) v1.CategoryResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, categoriesURL, []v1.CategoryEditable{c})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.CategoryCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	if len(response.Data) > 0 {
		return response.Data[0]
	}

	return v1.CategoryResponse{Error: response.Error}
}

func createTestTransaction(t *testing.T, tr v1.TransactionEditable, expectedStatus ...int) v1.TransactionResponse {
	if tr.CategoryID == uuid.Nil {
		tr.CategoryID = createTestCategory(t, v1.CategoryEditable{}).Data.ID
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, transactionsURL, []v1.TransactionEditable{tr})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(t, &r, &response)

	if len(response.Data) > 0 {
		return response.Data[0]
	}

	return v1.TransactionResponse{Error: response.Error}
}

func createTestIncome(t *testing.T, i v1.IncomeEditable, expectedStatus ...int) v1.IncomeResponse {
	if i.SourceName == "" {
		i.SourceName = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, incomesURL, []v1.IncomeEditable{i})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.IncomeCreateResponse
	test.DecodeResponse(t, &r, &response)

	if len(response.Data) > 0 {
		return response.Data[0]
	}

	return v1.IncomeResponse{Error: response.Error}
}

func createTestMethodology(t *testing.T, m v1.MethodologyEditable, expectedStatus ...int) v1.MethodologyResponse {
	if m.Name == "" {
		m.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, methodologiesURL, []v1.MethodologyEditable{m})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.MethodologyCreateResponse
	test.DecodeResponse(t, &r, &response)

	if len(response.Data) > 0 {
		return response.Data[0]
	}

	return v1.MethodologyResponse{Error: response.Error}
}

// methodologyByName returns the seeded methodology with the name.
func methodologyByName(t *testing.T, name string) v1.Methodology {
	r := test.Request(t, http.MethodGet, methodologiesURL, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.MethodologyListResponse
	test.DecodeResponse(t, &r, &response)

	for _, m := range response.Data {
		if m.Name == name {
			return m
		}
	}

	t.Fatalf("methodology %s does not exist", name)
	return v1.Methodology{}
}
