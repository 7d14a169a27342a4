package v4_test

import (
	"net/http"
	"testing"
	"time"

	v4 "github.com/esp046-cyber/budget-tracker/internal/controllers/v4"
	"github.com/esp046-cyber/budget-tracker/internal/ledger"
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/esp046-cyber/budget-tracker/internal/types"
	"github.com/esp046-cyber/budget-tracker/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMonthErrors() {
	tests := []struct {
		name  string
		query string
	}{
		{"Month not set", ""},
		{"Invalid month", "month=not-a-month"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v4/months?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v4.MonthResponse
			test.DecodeResponse(t, &r, &response)
			assert.NotNil(t, response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestMonth() {
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:     time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.New(2500, 0),
		Kind:     models.KindIncome,
		Category: "Other",
	})
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:     time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.New(450, 0),
		Kind:     models.KindExpense,
		Category: "Food",
	})
	_ = createTestLimit(suite.T(), v4.LimitEditable{
		Category:  "Food",
		Threshold: decimal.New(500, 0),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/months?month=2024-05", "")
	test.AssertHTTPStatus(suite.T(), &r)

	var response v4.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	assert.True(suite.T(), types.NewMonth(2024, 5).Equal(response.Data.Month))
	assert.True(suite.T(), decimal.New(2500, 0).Equal(response.Data.Income))
	assert.True(suite.T(), decimal.New(450, 0).Equal(response.Data.Expense))
	assert.True(suite.T(), decimal.New(450, 0).Equal(response.Data.Categories["Food"]))

	require.Len(suite.T(), response.Data.Alerts, 1)
	assert.Equal(suite.T(), ledger.SeverityWarning, response.Data.Alerts[0].Severity)
	assert.True(suite.T(), decimal.New(90, 0).Equal(response.Data.Alerts[0].Percent))
}

// TestMonthEmpty verifies that a month without transactions aggregates to
// a zero summary instead of an error.
func (suite *TestSuiteStandard) TestMonthEmpty() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/months?month=2024-05", "")
	test.AssertHTTPStatus(suite.T(), &r)

	var response v4.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	assert.True(suite.T(), response.Data.Income.IsZero())
	assert.True(suite.T(), response.Data.Expense.IsZero())
	assert.Empty(suite.T(), response.Data.Alerts)
}

func (suite *TestSuiteStandard) TestMonthDatabaseError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/months?month=2024-05", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
