package models_test

import (
	"testing"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/envelope-zero/budget-analytics/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoryDefaults() {
	category := suite.createTestCategory(models.Category{Name: "  Groceries  "})

	suite.Assert().Equal("Groceries", category.Name)
	suite.Assert().Equal(budget.CategoryTypeExpense, category.Type)
	suite.Assert().Equal("#007bff", category.Color)
	suite.Assert().Equal(budget.BudgetPeriodMonthly, category.BudgetPeriod)
	suite.Assert().Equal(budget.BudgetTypeFixed, category.BudgetType)
	suite.Assert().Equal(budget.PriorityEssential, category.BudgetPriority)
	suite.Assert().Equal(3, category.BudgetRollingMonths)
	suite.Assert().Nil(category.BudgetLimit)
}

func (suite *TestSuiteStandard) TestCategoryValidation() {
	percentage := decimal.NewFromInt(120)
	share := decimal.NewFromInt(10)

	tests := []struct {
		name     string
		category models.Category
		err      error
	}{
		{"Empty name", models.Category{Name: "   "}, models.ErrCategoryNameEmpty},
		{"Unknown type", models.Category{Name: "A", Type: "transfer"}, models.ErrCategoryType},
		{"Unknown period", models.Category{Name: "A", BudgetPeriod: "hourly"}, models.ErrBudgetPeriod},
		{"Unknown budget type", models.Category{Name: "A", BudgetType: "magic"}, models.ErrBudgetType},
		{"Unknown priority", models.Category{Name: "A", BudgetPriority: "urgent"}, models.ErrBudgetPriority},
		{"Negative limit", models.Category{Name: "A", BudgetLimit: limit("-1")}, models.ErrBudgetLimitNegative},
		{"Budget on income", models.Category{Name: "A", Type: budget.CategoryTypeIncome, BudgetLimit: limit("100")}, models.ErrBudgetOnIncomeCategory},
		{"Percentage on income", models.Category{Name: "A", Type: budget.CategoryTypeIncome, BudgetPercentage: &share}, models.ErrBudgetOnIncomeCategory},
		{"Budget type on income", models.Category{Name: "A", Type: budget.CategoryTypeIncome, BudgetType: budget.BudgetTypeRollingAverage}, models.ErrBudgetOnIncomeCategory},
		{"Priority on income", models.Category{Name: "A", Type: budget.CategoryTypeIncome, BudgetPriority: budget.PriorityDiscretionary}, models.ErrBudgetOnIncomeCategory},
		{"Period on income", models.Category{Name: "A", Type: budget.CategoryTypeIncome, BudgetPeriod: budget.BudgetPeriodYearly}, models.ErrBudgetOnIncomeCategory},
		{"Rolling months on income", models.Category{Name: "A", Type: budget.CategoryTypeIncome, BudgetRollingMonths: 6}, models.ErrBudgetOnIncomeCategory},
		{"Percentage without value", models.Category{Name: "A", BudgetType: budget.BudgetTypePercentage, BudgetLimit: limit("100")}, models.ErrBudgetPercentageRequired},
		{"Percentage out of range", models.Category{Name: "A", BudgetType: budget.BudgetTypePercentage, BudgetPercentage: &percentage}, models.ErrBudgetPercentageRange},
		{"Rolling months", models.Category{Name: "A", BudgetRollingMonths: 13}, models.ErrRollingMonthsRange},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.category).Error
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, budget.ErrValidation)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoryNameUnique() {
	_ = suite.createTestCategory(models.Category{Name: "Rent"})

	err := models.DB.Create(&models.Category{Name: "Rent"}).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryDeleteWithTransactions() {
	category := suite.createTestCategory(models.Category{Name: "Food"})
	_ = suite.createTestTransaction(models.Transaction{CategoryID: category.ID, Amount: decimal.NewFromInt(10)})

	err := models.DB.Delete(&category).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryHasTransactions)
	suite.Assert().ErrorIs(err, budget.ErrInvariant)

	empty := suite.createTestCategory(models.Category{Name: "Empty"})
	suite.Assert().Nil(models.DB.Delete(&empty).Error)
}

func (suite *TestSuiteStandard) TestCategoryTypeChangeWithTransactions() {
	category := suite.createTestCategory(models.Category{Name: "Food"})
	_ = suite.createTestTransaction(models.Transaction{CategoryID: category.ID, Amount: decimal.NewFromInt(10)})

	category.Type = budget.CategoryTypeIncome
	err := models.DB.Save(&category).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryTypeHasTransactions)
	suite.Assert().ErrorIs(err, budget.ErrInvariant)

	var stored models.Category
	suite.Require().Nil(models.DB.First(&stored, category.ID).Error)
	suite.Assert().Equal(budget.CategoryTypeExpense, stored.Type)

	// Other fields can still be changed
	stored.Note = "Supermarket"
	suite.Assert().Nil(models.DB.Save(&stored).Error)

	empty := suite.createTestCategory(models.Category{Name: "Bonus"})
	empty.Type = budget.CategoryTypeIncome
	suite.Assert().Nil(models.DB.Save(&empty).Error)
}

func (suite *TestSuiteStandard) TestCategoryNotFound() {
	err := models.DB.First(&models.Category{}, uuid.New()).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "there is no category matching your query")
}

func (suite *TestSuiteStandard) TestCategoryClosedDatabase() {
	suite.CloseDB()

	err := models.DB.Find(&[]models.Category{}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestCategorySnapshot() {
	category := suite.createTestCategory(expenseCategory("Rent", budget.PriorityCritical, "900"))

	snapshot := category.Snapshot()
	suite.Assert().Equal(category.ID, snapshot.ID)
	suite.Assert().Equal(budget.PriorityCritical, snapshot.BudgetPriority)
	suite.Assert().True(snapshot.HasBudget())
	suite.Assert().True(decimal.NewFromInt(900).Equal(snapshot.Limit()))
}
