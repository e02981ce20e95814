package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	v1 "github.com/envelope-zero/budget-analytics/internal/controllers/v1"
	"github.com/envelope-zero/budget-analytics/internal/models"
	"github.com/envelope-zero/budget-analytics/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestIncomesOptions() {
	i := createTestIncome(suite.T(), v1.IncomeEditable{Amount: amount("100")})

	tests := []struct {
		path   string
		status int
		allow  string
	}{
		{incomesURL, http.StatusNoContent, "OPTIONS, GET, POST"},
		{i.Data.Links.Self, http.StatusNoContent, "OPTIONS, GET, PATCH, DELETE"},
		{fmt.Sprintf("%s/%s", incomesURL, uuid.New()), http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}

// TestIncomesCreateAndList verifies the monthly normalization of all frequencies.
func (suite *TestSuiteStandard) TestIncomesCreateAndList() {
	tests := []struct {
		income  v1.IncomeEditable
		monthly string
	}{
		{v1.IncomeEditable{SourceName: "Main Salary", Type: "salary", Amount: amount("3000"), Frequency: budget.IncomeMonthly}, "3000"},
		{v1.IncomeEditable{SourceName: "Side Gig", Type: "freelance", Amount: amount("1000"), Frequency: budget.IncomeWeekly}, "4330"},
		{v1.IncomeEditable{SourceName: "Part-time", Amount: amount("500"), Frequency: "bi-weekly"}, "1082.5"},
		{v1.IncomeEditable{SourceName: "Bonus", Amount: amount("2400"), Frequency: "annually", IsBonus: true}, "200"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.income.SourceName, func(t *testing.T) {
			r := createTestIncome(t, tt.income)
			require.NotNil(t, r.Data)
			assert.True(t, r.Data.MonthlyAmount.Equal(amount(tt.monthly)), "expected %s, got %s", tt.monthly, r.Data.MonthlyAmount)
			assert.True(t, r.Data.Frequency.Valid())
			assert.Equal(t, fmt.Sprintf("%s/%s", incomesURL, r.Data.ID), r.Data.Links.Self)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, incomesURL, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 4)
	assert.Equal(suite.T(), "Bonus", response.Data[0].SourceName)
	assert.Equal(suite.T(), 4, response.Summary.Count)
	assert.True(suite.T(), response.Summary.MonthlyTotal.Equal(amount("8612.5")), response.Summary.MonthlyTotal.String())
}

func (suite *TestSuiteStandard) TestIncomesCreateFails() {
	tests := []struct {
		name   string
		income v1.IncomeEditable
		err    error
	}{
		{"Zero amount", v1.IncomeEditable{SourceName: "A"}, models.ErrIncomeAmount},
		{"Unknown frequency", v1.IncomeEditable{SourceName: "A", Amount: amount("5"), Frequency: "hourly"}, models.ErrIncomeFrequency},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := createTestIncome(t, tt.income, http.StatusBadRequest)
			require.NotNil(t, r.Error)
			assert.Contains(t, *r.Error, tt.err.Error())
		})
	}
}

func (suite *TestSuiteStandard) TestIncomesUpdateAndDelete() {
	i := createTestIncome(suite.T(), v1.IncomeEditable{SourceName: "Side Gig", Amount: amount("1000"), Frequency: budget.IncomeWeekly})

	r := test.Request(suite.T(), http.MethodPatch, i.Data.Links.Self, `{"amount": 1200, "frequency": "bi-weekly"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.IncomeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Side Gig", response.Data.SourceName)
	assert.Equal(suite.T(), budget.IncomeBiweekly, response.Data.Frequency)
	assert.True(suite.T(), response.Data.MonthlyAmount.Equal(amount("2598")), response.Data.MonthlyAmount.String())

	r = test.Request(suite.T(), http.MethodPatch, i.Data.Links.Self, `{"amount": -3}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodGet, i.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodDelete, i.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, i.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("%s/%s", incomesURL, uuid.New()), `{"amount": 3}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestIncomesUsedForRecommendations verifies that configured incomes stand in
// for a month without income transactions.
func (suite *TestSuiteStandard) TestIncomesUsedForRecommendations() {
	_ = createTestIncome(suite.T(), v1.IncomeEditable{SourceName: "Main Salary", Amount: amount("4000")})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{Amount: amount("1000")})

	r := test.Request(suite.T(), http.MethodGet, methodologiesURL+"/recommendations", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RecommendationsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.UserProfile.TotalIncome.Equal(amount("4000")), response.Data.UserProfile.TotalIncome.String())
	assert.True(suite.T(), response.Data.UserProfile.SavingsRate.Equal(amount("75")), response.Data.UserProfile.SavingsRate.String())

	zero := methodologyByName(suite.T(), "Zero-Based Budgeting")
	r = test.Request(suite.T(), http.MethodGet, zero.Links.Allocation, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var allocation v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &allocation)
	assert.True(suite.T(), allocation.Data.TotalIncome.Equal(amount("4000")), allocation.Data.TotalIncome.String())
}

func (suite *TestSuiteStandard) TestIncomesDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, incomesURL, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrGeneral.Error(), *response.Error)
}
