package v4_test

import (
	"net/http"

	v4 "github.com/esp046-cyber/budget-tracker/internal/controllers/v4"
	"github.com/esp046-cyber/budget-tracker/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestExport() {
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{Amount: decimal.New(10, 0)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/export", "")
	test.AssertHTTPStatus(suite.T(), &r)

	var response v4.ExportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "0.0.0", response.Version)
	assert.False(suite.T(), response.CreationTime.IsZero())

	for _, name := range []string{"Category", "Currency", "Transaction", "BudgetLimit", "Debt", "Goal"} {
		require.Contains(suite.T(), response.Data, name)
	}
}

func (suite *TestSuiteStandard) TestExportDatabaseError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
