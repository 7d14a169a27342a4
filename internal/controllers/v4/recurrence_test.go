package v4_test

import (
	"net/http"
	"time"

	v4 "github.com/esp046-cyber/budget-tracker/internal/controllers/v4"
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/esp046-cyber/budget-tracker/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestRecurrenceRun() {
	template := createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:       time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.New(50, 0),
		Kind:       models.KindExpense,
		Category:   "Bills",
		Recurrence: models.RecurrenceMonthly,
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/recurrences/run?asOf=2024-03-01", "")
	test.AssertHTTPStatus(suite.T(), &r)

	var response v4.RecurrenceRunResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	require.Len(suite.T(), response.Data.Created, 1)
	created := response.Data.Created[0]
	assert.True(suite.T(), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC).Equal(created.Date), "the instance must land on the last day of February")
	require.NotNil(suite.T(), created.OriginTemplateID)
	assert.Equal(suite.T(), template.Data.ID, *created.OriginTemplateID)
	assert.Equal(suite.T(), models.RecurrenceNone, created.Recurrence)
}

// TestRecurrenceRunIdempotent verifies that a second expansion pass with
// the same asOf creates nothing.
func (suite *TestSuiteStandard) TestRecurrenceRunIdempotent() {
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.New(50, 0),
		Kind:       models.KindExpense,
		Category:   "Bills",
		Recurrence: models.RecurrenceMonthly,
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/recurrences/run?asOf=2024-04-01", "")
	test.AssertHTTPStatus(suite.T(), &r)

	var first v4.RecurrenceRunResponse
	test.DecodeResponse(suite.T(), &r, &first)
	require.NotNil(suite.T(), first.Data)
	assert.Len(suite.T(), first.Data.Created, 3)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v4/recurrences/run?asOf=2024-04-01", "")
	test.AssertHTTPStatus(suite.T(), &r)

	var second v4.RecurrenceRunResponse
	test.DecodeResponse(suite.T(), &r, &second)
	require.NotNil(suite.T(), second.Data)
	assert.Empty(suite.T(), second.Data.Created)
}

func (suite *TestSuiteStandard) TestRecurrenceRunInvalidAsOf() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/recurrences/run?asOf=March", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRecurrenceRunDatabaseError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/recurrences/run?asOf=2024-03-01", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
