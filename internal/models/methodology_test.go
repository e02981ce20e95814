package models_test

import (
	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/envelope-zero/budget-analytics/internal/models"
)

func (suite *TestSuiteStandard) TestMethodologySeed() {
	var methodologies []models.Methodology
	suite.Require().Nil(models.DB.Order("name ASC").Find(&methodologies).Error)
	suite.Require().Len(methodologies, 6)

	active := 0
	for _, m := range methodologies {
		if m.IsActive {
			active++
			suite.Assert().Equal("Zero-Based Budgeting", m.Name)
			suite.Assert().True(m.IsDefault)
		}

		_, err := budget.EngineFor(m.Snapshot())
		suite.Assert().Nil(err, "seeded methodology %s must be valid", m.Name)
	}
	suite.Assert().Equal(1, active)
}

func (suite *TestSuiteStandard) TestMethodologyConfigurationStored() {
	created := suite.createTestMethodology(models.Methodology{
		Name:          "Balanced",
		Type:          budget.MethodologyPercentageBased,
		Configuration: models.Configuration{"needs_percentage": 40.0, "wants_percentage": 40.0, "savings_percentage": 20.0},
	})

	var stored models.Methodology
	suite.Require().Nil(models.DB.First(&stored, created.ID).Error)
	suite.Assert().Equal(40.0, stored.Configuration["needs_percentage"])
	suite.Assert().Equal(budget.MethodologyPercentageBased, stored.Type)
	suite.Assert().False(stored.IsActive)

	empty := suite.createTestMethodology(models.Methodology{Name: "Plain", Type: budget.MethodologyZeroBased})
	var plain models.Methodology
	suite.Require().Nil(models.DB.First(&plain, empty.ID).Error)
	suite.Assert().Equal(empty.ID, plain.ID)
	suite.Assert().NotNil(plain.Configuration)
	suite.Assert().Empty(plain.Configuration)
}

func (suite *TestSuiteStandard) TestMethodologyValidation() {
	err := models.DB.Create(&models.Methodology{Name: "  ", Type: budget.MethodologyZeroBased}).Error
	suite.Assert().ErrorIs(err, models.ErrMethodologyNameEmpty)

	err = models.DB.Create(&models.Methodology{Name: "Unknown", Type: "magic"}).Error
	suite.Assert().ErrorIs(err, budget.ErrUnknownMethodologyType)

	err = models.DB.Create(&models.Methodology{
		Name:          "Too much",
		Type:          budget.MethodologyPercentageBased,
		Configuration: models.Configuration{"needs_percentage": 90.0},
	}).Error
	suite.Assert().ErrorIs(err, budget.ErrPercentagesSum)

	err = models.DB.Create(&models.Methodology{Name: "50/30/20 Rule", Type: budget.MethodologyZeroBased}).Error
	suite.Assert().ErrorIs(err, models.ErrMethodologyNameNotUnique)
}
