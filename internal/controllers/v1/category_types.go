package v1

import (
	"fmt"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/envelope-zero/budget-analytics/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name                string              `json:"name" example:"Groceries"`                                           // Name of the category
	Type                budget.CategoryType `json:"type" example:"expense" default:"expense"`                           // income or expense
	Color               string              `json:"color" example:"#007bff" default:"#007bff"`                          // Display color
	Note                string              `json:"note" example:"Food and household supplies" default:""`              // Notes about the category
	BudgetLimit         *decimal.Decimal    `json:"budgetLimit" example:"400" swaggertype:"number"`                     // Budget per period. null for no budget
	BudgetPeriod        budget.BudgetPeriod `json:"budgetPeriod" example:"monthly" default:"monthly"`                   // daily, weekly, monthly or yearly
	BudgetType          budget.BudgetType   `json:"budgetType" example:"fixed" default:"fixed"`                         // fixed, percentage or rolling_average
	BudgetPriority      budget.Priority     `json:"budgetPriority" example:"essential" default:"essential"`             // critical, essential, important or discretionary
	BudgetPercentage    *decimal.Decimal    `json:"budgetPercentage" example:"15" swaggertype:"number"`                 // Percentage of income for percentage budgets
	BudgetRollingMonths int                 `json:"budgetRollingMonths" example:"3" default:"3"`                        // Months for rolling average budgets
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:                editable.Name,
		Type:                editable.Type,
		Color:               editable.Color,
		Note:                editable.Note,
		BudgetLimit:         editable.BudgetLimit,
		BudgetPeriod:        editable.BudgetPeriod,
		BudgetType:          editable.BudgetType,
		BudgetPriority:      editable.BudgetPriority,
		BudgetPercentage:    editable.BudgetPercentage,
		BudgetRollingMonths: editable.BudgetRollingMonths,
	}
}

// apply copies the editable fields onto an existing category.
func (editable CategoryEditable) apply(category *models.Category) {
	id, timestamps := category.ID, category.Timestamps
	*category = editable.model()
	category.ID = id
	category.Timestamps = timestamps
}

func categoryEditable(model models.Category) CategoryEditable {
	return CategoryEditable{
		Name:                model.Name,
		Type:                model.Type,
		Color:               model.Color,
		Note:                model.Note,
		BudgetLimit:         model.BudgetLimit,
		BudgetPeriod:        model.BudgetPeriod,
		BudgetType:          model.BudgetType,
		BudgetPriority:      model.BudgetPriority,
		BudgetPercentage:    model.BudgetPercentage,
		BudgetRollingMonths: model.BudgetRollingMonths,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                 // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Transactions on this category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel:     model.DefaultModel,
		CategoryEditable: categoryEditable(model),
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name           string              `form:"name" filterField:"false"`   // By name, supports * as wildcard
	Type           budget.CategoryType `form:"type"`                       // By type
	BudgetPriority budget.Priority     `form:"budgetPriority"`             // By budget priority
	Offset         uint                `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit          int                 `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		Type:           f.Type,
		BudgetPriority: f.BudgetPriority,
	}
}
