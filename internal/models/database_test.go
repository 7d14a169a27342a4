package models_test

import (
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestSeed() {
	var base models.Currency
	err := models.DB.Where(&models.Currency{Code: models.BaseCurrencyCode}).First(&base).Error
	suite.Require().Nil(err)

	suite.Assert().True(base.Base)
	suite.Assert().True(decimal.New(1, 0).Equal(base.Rate))

	var count int64
	err = models.DB.Model(&models.Category{}).Count(&count).Error
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(5), count)
}

func (suite *TestSuiteStandard) TestResourceNotFoundMessage() {
	var transaction models.Transaction
	err := models.DB.Where("description = ?", "does not exist").First(&transaction).Error

	suite.Require().NotNil(err)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no transaction matching your query", err.Error())

	var category models.Category
	err = models.DB.Where("name = ?", "does not exist").First(&category).Error

	suite.Require().NotNil(err)
	suite.Assert().Equal("there is no category matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestGeneralErrorOnClosedDB() {
	suite.CloseDB()

	var transactions []models.Transaction
	err := models.DB.Find(&transactions).Error

	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestRegistryExport() {
	for name, model := range models.Registry {
		raw, err := model.Export()
		suite.Require().Nil(err, "export failed for %s", name)
		suite.Assert().NotEmpty(raw)
	}
}
