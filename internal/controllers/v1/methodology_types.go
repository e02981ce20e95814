package v1

import (
	"fmt"
	"time"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/envelope-zero/budget-analytics/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MethodologyEditable represents all user configurable parameters
type MethodologyEditable struct {
	Name          string                 `json:"name" example:"60/20/20 Rule"`                                                                  // Name of the methodology
	Description   string                 `json:"description" example:"Allocate 60% for needs, 20% for wants, and 20% for savings." default:""` // Description
	Type          budget.MethodologyType `json:"methodologyType" example:"percentage_based"`                                                    // zero_based, percentage_based or envelope
	IsDefault     bool                   `json:"isDefault" example:"false" default:"false"`                                                     // Is this a default methodology?
	Configuration budget.Configuration   `json:"configuration" swaggertype:"object"`                                                            // Methodology specific configuration
}

func (editable MethodologyEditable) model() models.Methodology {
	return models.Methodology{
		Name:          editable.Name,
		Description:   editable.Description,
		Type:          editable.Type,
		IsDefault:     editable.IsDefault,
		Configuration: models.Configuration(editable.Configuration),
	}
}

type MethodologyLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/methodologies/4e743e94-6a4b-44d6-aba5-d77c87103ff7"`            // The methodology itself
	Activate   string `json:"activate" example:"https://example.com/api/v1/methodologies/4e743e94-6a4b-44d6-aba5-d77c87103ff7/activate"`   // Activates the methodology
	Allocation string `json:"allocation" example:"https://example.com/api/v1/methodologies/4e743e94-6a4b-44d6-aba5-d77c87103ff7/allocation"` // Allocation of the income with this methodology
	Apply      string `json:"apply" example:"https://example.com/api/v1/methodologies/4e743e94-6a4b-44d6-aba5-d77c87103ff7/apply"`         // Applies the allocation to the categories
	Validate   string `json:"validate" example:"https://example.com/api/v1/methodologies/4e743e94-6a4b-44d6-aba5-d77c87103ff7/validate"`   // Validates the configuration
}

type Methodology struct {
	models.DefaultModel
	MethodologyEditable
	IsActive bool             `json:"isActive" example:"false"` // Is this the active methodology?
	Links    MethodologyLinks `json:"links"`
}

func newMethodology(c *gin.Context, model models.Methodology) Methodology {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/methodologies/%s", url, model.ID)

	configuration := budget.Configuration(model.Configuration)
	if configuration == nil {
		configuration = budget.Configuration{}
	}

	return Methodology{
		DefaultModel: model.DefaultModel,
		MethodologyEditable: MethodologyEditable{
			Name:          model.Name,
			Description:   model.Description,
			Type:          model.Type,
			IsDefault:     model.IsDefault,
			Configuration: configuration,
		},
		IsActive: model.IsActive,
		Links: MethodologyLinks{
			Self:       self,
			Activate:   self + "/activate",
			Allocation: self + "/allocation",
			Apply:      self + "/apply",
			Validate:   self + "/validate",
		},
	}
}

type MethodologyListResponse struct {
	Data  []Methodology `json:"data"`                                                          // List of methodologies
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MethodologyCreateResponse struct {
	Data  []MethodologyResponse `json:"data"`                                                          // List of the created methodologies or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MethodologyCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MethodologyResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MethodologyResponse struct {
	Data  *Methodology `json:"data"`                                                          // Data for the methodology
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AllocationResponse struct {
	Data  *budget.AllocationResult `json:"data"`                                                // The allocation of the income
	Error *string                  `json:"error" example:"there is no methodology matching..."` // The error, if any occurred
}

// ApplyRequest is the body for applying a methodology.
type ApplyRequest struct {
	Income *decimal.Decimal `json:"income" example:"5000" swaggertype:"number"` // Income to allocate. Defaults to the actual income of the current month
	Mode   budget.ApplyMode `json:"mode" example:"dry_run"`                     // dry_run or auto_update
}

type ApplyResponse struct {
	Data  *budget.ApplyResult `json:"data"`                                                          // The result of applying the methodology
	Error *string             `json:"error" example:"apply mode must be one of dry_run, auto_update"` // The error, if any occurred
}

type ValidationResponse struct {
	Data  *budget.ValidationResult `json:"data"`                                                // The validation result
	Error *string                  `json:"error" example:"there is no methodology matching..."` // The error, if any occurred
}

// CompareRequest is the body for comparing methodologies.
type CompareRequest struct {
	IDs    []uuid.UUID      `json:"ids"`                                                      // IDs of the methodologies to compare, at most 5
	Income *decimal.Decimal `json:"income" binding:"required" example:"5000" swaggertype:"number"` // Income to allocate
}

type CompareResponse struct {
	Data  []budget.Comparison `json:"data"`                                                // One allocation per methodology, in request order
	Error *string             `json:"error" example:"Income is required"` // The error, if any occurred
}

type Recommendations struct {
	Recommendations []budget.Recommendation `json:"recommendations"` // Fitting methodologies, highest confidence first
	UserProfile     budget.FinancialProfile `json:"userProfile"`     // The profile the recommendations are based on
	GeneratedAt     time.Time               `json:"generatedAt"`     // Time of generation
}

type RecommendationsResponse struct {
	Data  *Recommendations `json:"data"`                                                // Recommendations
	Error *string          `json:"error" example:"the income must not be negative"` // The error, if any occurred
}
