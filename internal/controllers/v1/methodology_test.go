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

func (suite *TestSuiteStandard) TestMethodologiesOptions() {
	m := methodologyByName(suite.T(), "Envelope Budgeting")

	tests := []struct {
		path  string
		allow string
	}{
		{methodologiesURL, "OPTIONS, GET, POST"},
		{methodologiesURL + "/active", "OPTIONS, GET"},
		{methodologiesURL + "/compare", "OPTIONS, POST"},
		{methodologiesURL + "/recommendations", "OPTIONS, GET"},
		{m.Links.Self, "OPTIONS, GET, DELETE"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}

	r := test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("%s/%s", methodologiesURL, uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodOptions, methodologiesURL+"/NotParseableAsUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestMethodologiesDefaults verifies the seeded methodologies.
func (suite *TestSuiteStandard) TestMethodologiesDefaults() {
	r := test.Request(suite.T(), http.MethodGet, methodologiesURL, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MethodologyListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 6)

	active, defaults := 0, 0
	for _, m := range response.Data {
		if m.IsActive {
			active++
			assert.Equal(suite.T(), "Zero-Based Budgeting", m.Name)
		}

		if m.IsDefault {
			defaults++
			assert.Equal(suite.T(), "Zero-Based Budgeting", m.Name)
		}
	}
	assert.Equal(suite.T(), 1, active)
	assert.Equal(suite.T(), 1, defaults)

	// Sorted by name
	assert.Equal(suite.T(), "50/30/20 Rule", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestMethodologiesCreate() {
	r := createTestMethodology(suite.T(), v1.MethodologyEditable{
		Name:          "40/40/20 Custom",
		Type:          budget.MethodologyPercentageBased,
		Configuration: budget.Configuration{"needs_percentage": 40, "wants_percentage": 40, "savings_percentage": 20},
	})

	assert.False(suite.T(), r.Data.IsActive)
	assert.Equal(suite.T(), budget.MethodologyPercentageBased, r.Data.Type)
	assert.Equal(suite.T(), fmt.Sprintf("%s/%s/allocation", methodologiesURL, r.Data.ID), r.Data.Links.Allocation)
	assert.InDelta(suite.T(), 40.0, r.Data.Configuration["needs_percentage"], 0.001)
}

func (suite *TestSuiteStandard) TestMethodologiesCreateFails() {
	tests := []struct {
		name        string
		methodology v1.MethodologyEditable
		err         error
	}{
		{"Name not unique", v1.MethodologyEditable{Name: "50/30/20 Rule", Type: budget.MethodologyZeroBased}, models.ErrMethodologyNameNotUnique},
		{"Unknown type", v1.MethodologyEditable{Type: "lottery"}, budget.ErrUnknownMethodologyType},
		{"Percentages do not sum up", v1.MethodologyEditable{
			Type:          budget.MethodologyPercentageBased,
			Configuration: budget.Configuration{"needs_percentage": 50, "wants_percentage": 50, "savings_percentage": 50},
		}, budget.ErrPercentagesSum},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := createTestMethodology(t, tt.methodology, http.StatusBadRequest)
			require.NotNil(t, r.Error)
			assert.Contains(t, *r.Error, tt.err.Error())
		})
	}
}

func (suite *TestSuiteStandard) TestMethodologiesGetSingle() {
	m := methodologyByName(suite.T(), "Flexible Envelope System")

	r := test.Request(suite.T(), http.MethodGet, m.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MethodologyResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), budget.MethodologyEnvelope, response.Data.Type)
	assert.Equal(suite.T(), true, response.Data.Configuration["allow_envelope_transfer"])

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s/%s", methodologiesURL, uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestMethodologiesActivate verifies that exactly one methodology is active after activation.
func (suite *TestSuiteStandard) TestMethodologiesActivate() {
	m := methodologyByName(suite.T(), "50/30/20 Rule")

	r := test.Request(suite.T(), http.MethodPost, m.Links.Activate, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MethodologyResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.IsActive)

	r = test.Request(suite.T(), http.MethodGet, methodologiesURL+"/active", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), m.ID, response.Data.ID)

	assert.False(suite.T(), methodologyByName(suite.T(), "Zero-Based Budgeting").IsActive)

	r = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/%s/activate", methodologiesURL, uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMethodologiesDelete() {
	active := methodologyByName(suite.T(), "Zero-Based Budgeting")

	r := test.Request(suite.T(), http.MethodDelete, active.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	inactive := methodologyByName(suite.T(), "70/20/10 Relaxed Rule")
	r = test.Request(suite.T(), http.MethodDelete, inactive.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, inactive.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodDelete, methodologiesURL+"/NotParseableAsUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestMethodologiesAllocation verifies zero-based allocation by priority.
func (suite *TestSuiteStandard) TestMethodologiesAllocation() {
	rent := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Rent", BudgetLimit: limit("200"), BudgetPriority: budget.PriorityCritical})
	fun := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Fun", BudgetPriority: budget.PriorityDiscretionary})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: budget.CategoryTypeIncome})

	m := methodologyByName(suite.T(), "Zero-Based Budgeting")

	r := test.Request(suite.T(), http.MethodGet, m.Links.Allocation+"?income=1000", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data.Allocations, 2)
	assert.Equal(suite.T(), rent.Data.ID, response.Data.Allocations[0].CategoryID)
	assert.True(suite.T(), response.Data.Allocations[0].Amount.Equal(amount("200")), response.Data.Allocations[0].Amount.String())
	assert.Equal(suite.T(), fun.Data.ID, response.Data.Allocations[1].CategoryID)
	assert.True(suite.T(), response.Data.Allocations[1].Amount.Equal(amount("80")), response.Data.Allocations[1].Amount.String())
	assert.True(suite.T(), response.Data.TotalAllocated.Equal(amount("280")))
	assert.True(suite.T(), response.Data.Unallocated.Equal(amount("720")))

	for _, query := range []string{"?income=-5", "?income=lots"} {
		r = test.Request(suite.T(), http.MethodGet, m.Links.Allocation+query, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s/%s/allocation", methodologiesURL, uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMethodologiesApply() {
	fun := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Fun", BudgetPriority: budget.PriorityDiscretionary})
	m := methodologyByName(suite.T(), "Zero-Based Budgeting")

	// Dry run does not touch the categories
	r := test.Request(suite.T(), http.MethodPost, m.Links.Apply, v1.ApplyRequest{Income: limit("1000"), Mode: budget.ApplyDryRun})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ApplyResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.False(suite.T(), response.Data.AutoUpdated)
	assert.Equal(suite.T(), 0, response.Data.Updated)

	var category v1.CategoryResponse
	r = test.Request(suite.T(), http.MethodGet, fun.Data.Links.Self, "")
	test.DecodeResponse(suite.T(), &r, &category)
	assert.Nil(suite.T(), category.Data.BudgetLimit)

	// Auto update stores the allocation as budget limit
	r = test.Request(suite.T(), http.MethodPost, m.Links.Apply, v1.ApplyRequest{Income: limit("1000"), Mode: budget.ApplyAutoUpdate})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.AutoUpdated)
	assert.Equal(suite.T(), 1, response.Data.Updated)

	r = test.Request(suite.T(), http.MethodGet, fun.Data.Links.Self, "")
	test.DecodeResponse(suite.T(), &r, &category)
	require.NotNil(suite.T(), category.Data.BudgetLimit)
	assert.True(suite.T(), category.Data.BudgetLimit.Equal(amount("100")), category.Data.BudgetLimit.String())

	r = test.Request(suite.T(), http.MethodPost, m.Links.Apply, v1.ApplyRequest{Income: limit("1000"), Mode: "sometimes"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Contains(suite.T(), *response.Error, budget.ErrApplyMode.Error())

	r = test.Request(suite.T(), http.MethodPost, m.Links.Apply, v1.ApplyRequest{Income: limit("-1"), Mode: budget.ApplyDryRun})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPost, m.Links.Apply, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestMethodologiesValidate() {
	m := methodologyByName(suite.T(), "60/20/20 Conservative Rule")

	r := test.Request(suite.T(), http.MethodGet, m.Links.Validate, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ValidationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Valid)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s/%s/validate", methodologiesURL, uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMethodologiesCompare() {
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Rent", BudgetPriority: budget.PriorityCritical})

	zero := methodologyByName(suite.T(), "Zero-Based Budgeting")
	split := methodologyByName(suite.T(), "50/30/20 Rule")

	r := test.Request(suite.T(), http.MethodPost, methodologiesURL+"/compare", v1.CompareRequest{
		IDs:    []uuid.UUID{split.ID, zero.ID},
		Income: limit("2000"),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CompareResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), split.ID, response.Data[0].MethodologyID)
	assert.Len(suite.T(), response.Data[0].Result.Buckets, 3)
	assert.Equal(suite.T(), zero.ID, response.Data[1].MethodologyID)
	assert.Equal(suite.T(), budget.MethodologyZeroBased, response.Data[1].Result.MethodologyType)

	tests := []struct {
		name    string
		request v1.CompareRequest
		status  int
		err     string
	}{
		{"Income missing", v1.CompareRequest{IDs: []uuid.UUID{zero.ID}}, http.StatusBadRequest, "Income is required"},
		{"No methodologies", v1.CompareRequest{Income: limit("1")}, http.StatusBadRequest, budget.ErrComparisonCount.Error()},
		{"Too many methodologies", v1.CompareRequest{IDs: []uuid.UUID{zero.ID, zero.ID, zero.ID, zero.ID, zero.ID, zero.ID}, Income: limit("1")}, http.StatusBadRequest, budget.ErrComparisonCount.Error()},
		{"Unknown methodology", v1.CompareRequest{IDs: []uuid.UUID{zero.ID, uuid.New()}, Income: limit("1")}, http.StatusNotFound, models.ErrResourceNotFound.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, methodologiesURL+"/compare", tt.request)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.CompareResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Error)
			assert.Contains(t, *response.Error, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestMethodologiesRecommendations() {
	tests := []struct {
		query string
		types []budget.MethodologyType
	}{
		{"income=4000&expenses=3900", []budget.MethodologyType{budget.MethodologyZeroBased}},
		{"income=4000&expenses=3200", []budget.MethodologyType{budget.MethodologyPercentageBased}},
		{"income=4000&expenses=1000", []budget.MethodologyType{}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("%s/recommendations?%s", methodologiesURL, tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.RecommendationsResponse
			test.DecodeResponse(t, &r, &response)

			types := make([]budget.MethodologyType, 0, len(response.Data.Recommendations))
			for _, rec := range response.Data.Recommendations {
				types = append(types, rec.MethodologyType)
			}
			assert.Equal(t, tt.types, types)
			assert.True(t, response.Data.UserProfile.TotalIncome.Equal(amount("4000")))
		})
	}

	for _, query := range []string{"income=-1", "expenses=-1", "income=much"} {
		r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s/recommendations?%s", methodologiesURL, query), "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}
}

// TestMethodologiesRecommendationsDefaults verifies the fallback to the current month.
func (suite *TestSuiteStandard) TestMethodologiesRecommendationsDefaults() {
	salary := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: budget.CategoryTypeIncome})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{CategoryID: salary.Data.ID, Amount: amount("2000")})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{Amount: amount("500")})

	r := test.Request(suite.T(), http.MethodGet, methodologiesURL+"/recommendations", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RecommendationsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.UserProfile.TotalIncome.Equal(amount("2000")), response.Data.UserProfile.TotalIncome.String())
	assert.True(suite.T(), response.Data.UserProfile.TotalExpenses.Equal(amount("500")), response.Data.UserProfile.TotalExpenses.String())
	assert.True(suite.T(), response.Data.UserProfile.SavingsRate.Equal(amount("75")))
}

func (suite *TestSuiteStandard) TestMethodologiesDBClosed() {
	m := methodologyByName(suite.T(), "Zero-Based Budgeting")
	suite.CloseDB()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, methodologiesURL},
		{http.MethodGet, methodologiesURL + "/active"},
		{http.MethodGet, m.Links.Allocation + "?income=100"},
		{http.MethodGet, m.Links.Validate},
		{http.MethodGet, methodologiesURL + "/recommendations"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(t, tt.method, tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
		})
	}
}
