package v4_test

import (
	"net/http"
	"testing"

	v4 "github.com/esp046-cyber/budget-tracker/internal/controllers/v4"
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/esp046-cyber/budget-tracker/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCurrenciesCreate() {
	currency := createTestCurrency(suite.T(), v4.CurrencyEditable{
		Code: "usd",
		Rate: decimal.RequireFromString("56.50"),
	})

	require.NotNil(suite.T(), currency.Data)
	assert.Equal(suite.T(), "USD", currency.Data.Code)
	assert.False(suite.T(), currency.Data.Base)
	assert.NotEmpty(suite.T(), currency.Data.Symbol)
}

func (suite *TestSuiteStandard) TestCurrenciesCreateErrors() {
	tests := []struct {
		name     string
		currency v4.CurrencyEditable
		err      error
	}{
		{"Duplicate code", v4.CurrencyEditable{Code: models.BaseCurrencyCode, Rate: decimal.New(1, 0)}, models.ErrDuplicateCurrencyCode},
		{"Rate zero", v4.CurrencyEditable{Code: "USD", Rate: decimal.Zero}, models.ErrRateNotPositive},
		{"Rate negative", v4.CurrencyEditable{Code: "USD", Rate: decimal.New(-1, 0)}, models.ErrRateNotPositive},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v4/currencies", []v4.CurrencyEditable{tt.currency})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v4.CurrencyCreateResponse
			test.DecodeResponse(t, &r, &response)

			require.Len(t, response.Data, 1)
			require.NotNil(t, response.Data[0].Error)
			assert.Equal(t, tt.err.Error(), *response.Data[0].Error)
		})
	}
}

// TestCurrenciesList verifies that the seeded base currency is always present.
func (suite *TestSuiteStandard) TestCurrenciesList() {
	_ = createTestCurrency(suite.T(), v4.CurrencyEditable{Code: "USD", Rate: decimal.RequireFromString("56.50")})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/currencies", "")
	test.AssertHTTPStatus(suite.T(), &r)

	var response v4.CurrencyListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), models.BaseCurrencyCode, response.Data[0].Code)
	assert.True(suite.T(), response.Data[0].Base)
	assert.Equal(suite.T(), "USD", response.Data[1].Code)
}

func (suite *TestSuiteStandard) TestCurrenciesUpdate() {
	currency := createTestCurrency(suite.T(), v4.CurrencyEditable{Code: "USD", Rate: decimal.New(56, 0)})

	r := test.Request(suite.T(), http.MethodPatch, currency.Data.Links.Self, map[string]any{
		"rate": "57.25",
	})
	test.AssertHTTPStatus(suite.T(), &r)

	var updated v4.CurrencyResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "USD", updated.Data.Code)
}

func (suite *TestSuiteStandard) TestCurrenciesDelete() {
	currency := createTestCurrency(suite.T(), v4.CurrencyEditable{Code: "USD", Rate: decimal.New(56, 0)})

	r := test.Request(suite.T(), http.MethodDelete, currency.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

// TestCurrenciesDeleteBase verifies that the base currency cannot be deleted.
func (suite *TestSuiteStandard) TestCurrenciesDeleteBase() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/currencies", "")
	test.AssertHTTPStatus(suite.T(), &r)

	var response v4.CurrencyListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)

	r = test.Request(suite.T(), http.MethodDelete, response.Data[0].Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var errResponse struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &r, &errResponse)
	assert.Equal(suite.T(), models.ErrProtectedBaseCurrency.Error(), errResponse.Error)
}
