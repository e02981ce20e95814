package models_test

import (
	"time"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/envelope-zero/budget-analytics/internal/models"
	"github.com/envelope-zero/budget-analytics/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionSignFollowsCategory() {
	salary := suite.createTestCategory(models.Category{Name: "Salary", Type: budget.CategoryTypeIncome})
	food := suite.createTestCategory(models.Category{Name: "Food"})

	income := suite.createTestTransaction(models.Transaction{CategoryID: salary.ID, Amount: decimal.NewFromInt(-2500)})
	suite.Assert().True(decimal.NewFromInt(2500).Equal(income.Amount), income.Amount.String())
	suite.Assert().Equal(budget.CategoryTypeIncome, income.Type)

	expense := suite.createTestTransaction(models.Transaction{CategoryID: food.ID, Amount: decimal.NewFromInt(40), Type: budget.CategoryTypeIncome})
	suite.Assert().True(decimal.NewFromInt(-40).Equal(expense.Amount), expense.Amount.String())
	suite.Assert().Equal(budget.CategoryTypeExpense, expense.Type, "the type is always taken from the category")
}

func (suite *TestSuiteStandard) TestTransactionDate() {
	category := suite.createTestCategory(models.Category{Name: "Food"})

	transaction := suite.createTestTransaction(models.Transaction{
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(5),
		Date:       time.Date(2024, time.March, 15, 18, 30, 0, 0, time.FixedZone("UTC+1", 3600)),
	})
	suite.Assert().Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), transaction.Date)

	var stored models.Transaction
	suite.Require().Nil(models.DB.First(&stored, transaction.ID).Error)
	suite.Assert().Equal(types.NewDate(2024, time.March, 15), types.DateOf(stored.Date))
	suite.Assert().Equal(time.UTC, stored.Date.Location())

	today := suite.createTestTransaction(models.Transaction{CategoryID: category.ID, Amount: decimal.NewFromInt(5)})
	suite.Assert().Equal(types.Today().Time(), today.Date)
}

func (suite *TestSuiteStandard) TestTransactionValidation() {
	category := suite.createTestCategory(models.Category{Name: "Food"})

	err := models.DB.Create(&models.Transaction{CategoryID: category.ID}).Error
	suite.Assert().ErrorIs(err, models.ErrTransactionAmountZero)

	err = models.DB.Create(&models.Transaction{CategoryID: uuid.New(), Amount: decimal.NewFromInt(1)}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionSnapshot() {
	category := suite.createTestCategory(models.Category{Name: "Food"})
	transaction := suite.createTestTransaction(models.Transaction{
		CategoryID:  category.ID,
		Amount:      decimal.NewFromInt(12),
		Date:        time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
		Description: " Lunch ",
	})

	suite.Assert().Equal("Lunch", transaction.Description)

	snapshot := transaction.Snapshot()
	suite.Assert().Equal(types.NewDate(2024, time.May, 2), snapshot.Date)
	suite.Assert().Equal(category.ID, snapshot.CategoryID)
	suite.Assert().Equal(budget.CategoryTypeExpense, snapshot.Type)
	suite.Assert().True(decimal.NewFromInt(-12).Equal(snapshot.Amount))
}
