package v4_test

import (
	"net/http"

	v4 "github.com/esp046-cyber/budget-tracker/internal/controllers/v4"
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/esp046-cyber/budget-tracker/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestDebtsCreate() {
	debt := createTestDebt(suite.T(), v4.DebtEditable{
		Name:    "Car loan",
		Initial: decimal.New(10000, 0),
		Paid:    decimal.New(2500, 0),
	})

	require.NotNil(suite.T(), debt.Data)
	assert.Equal(suite.T(), "Car loan", debt.Data.Name)
	assert.True(suite.T(), decimal.New(7500, 0).Equal(debt.Data.Remaining))
}

func (suite *TestSuiteStandard) TestDebtsCreateErrors() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/debts", []v4.DebtEditable{{Name: "Car loan"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v4.DebtCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data[0].Error)
	assert.Equal(suite.T(), models.ErrAmountNotPositive.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestDebtsUpdate() {
	debt := createTestDebt(suite.T(), v4.DebtEditable{
		Name:    "Car loan",
		Initial: decimal.New(10000, 0),
	})

	r := test.Request(suite.T(), http.MethodPatch, debt.Data.Links.Self, map[string]any{
		"paid": "5000",
	})
	test.AssertHTTPStatus(suite.T(), &r)

	r = test.Request(suite.T(), http.MethodGet, debt.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r)

	var updated v4.DebtResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.True(suite.T(), decimal.New(5000, 0).Equal(updated.Data.Remaining))
	assert.Equal(suite.T(), "Car loan", updated.Data.Name)
}

func (suite *TestSuiteStandard) TestDebtsFilterAndDelete() {
	debt := createTestDebt(suite.T(), v4.DebtEditable{Name: "Car loan", Initial: decimal.New(10000, 0)})
	_ = createTestDebt(suite.T(), v4.DebtEditable{Name: "Mortgage", Initial: decimal.New(250000, 0)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/debts?name=car", "")
	test.AssertHTTPStatus(suite.T(), &r)

	var response v4.DebtListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)

	r = test.Request(suite.T(), http.MethodDelete, debt.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v4/debts", "")
	test.AssertHTTPStatus(suite.T(), &r)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
}
