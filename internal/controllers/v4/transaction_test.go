package v4_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v4 "github.com/esp046-cyber/budget-tracker/internal/controllers/v4"
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/esp046-cyber/budget-tracker/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTransactionsOptions verifies that the HTTP OPTIONS response for /transactions/{id} is correct.
func (suite *TestSuiteStandard) TestTransactionsOptions() {
	tests := []struct {
		name     string        // Name for the test
		status   int           // Expected HTTP status
		id       string        // String to use as ID. Ignored when pathFunc is non-nil
		pathFunc func() string // Function returning the path
	}{
		{
			"Does not exist",
			http.StatusNotFound,
			uuid.New().String(),
			nil,
		},
		{
			"Invalid UUID",
			http.StatusBadRequest,
			"NotParseableAsUUID",
			nil,
		},
		{
			"Success",
			http.StatusNoContent,
			"",
			func() string {
				return createTestTransaction(suite.T(), v4.TransactionEditable{Amount: decimal.NewFromFloat(31)}).Data.Links.Self
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var p string
			if tt.pathFunc != nil {
				p = tt.pathFunc()
			} else {
				p = fmt.Sprintf("%s/%s", "http://example.com/v4/transactions", tt.id)
			}

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	transaction := createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:         time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.RequireFromString("13.37"),
		Kind:         models.KindExpense,
		Category:     "Food",
		CurrencyCode: "PHP",
		Description:  "Groceries",
	})

	require.NotNil(suite.T(), transaction.Data)
	assert.Equal(suite.T(), "Groceries", transaction.Data.Description)
	assert.Equal(suite.T(), models.RecurrenceNone, transaction.Data.Recurrence)
	assert.Contains(suite.T(), transaction.Data.Links.Self, "http://example.com/v4/transactions/")
}

func (suite *TestSuiteStandard) TestTransactionsCreateErrors() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{
			"Amount not positive",
			[]v4.TransactionEditable{{Kind: models.KindExpense, CurrencyCode: "PHP", Category: "Food"}},
			http.StatusBadRequest,
		},
		{
			"Unknown category",
			[]v4.TransactionEditable{{Amount: decimal.New(10, 0), Kind: models.KindExpense, CurrencyCode: "PHP", Category: "No such category"}},
			http.StatusBadRequest,
		},
		{
			"Unknown currency",
			[]v4.TransactionEditable{{Amount: decimal.New(10, 0), Kind: models.KindExpense, CurrencyCode: "XXX", Category: "Food"}},
			http.StatusBadRequest,
		},
		{
			"Invalid kind",
			[]v4.TransactionEditable{{Amount: decimal.New(10, 0), Kind: "teleport", CurrencyCode: "PHP", Category: "Food"}},
			http.StatusBadRequest,
		},
		{
			"Broken body",
			`{ "broken`,
			http.StatusBadRequest,
		},
		{
			"No body",
			"",
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v4/transactions", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestTransactionsCreateMixed verifies that the response status is the
// highest status of the individual transactions.
func (suite *TestSuiteStandard) TestTransactionsCreateMixed() {
	body := []v4.TransactionEditable{
		{Amount: decimal.New(10, 0), Kind: models.KindExpense, CurrencyCode: "PHP", Category: "Food"},
		{Amount: decimal.Zero, Kind: models.KindExpense, CurrencyCode: "PHP", Category: "Food"},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/transactions", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v4.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 2)
	assert.NotNil(suite.T(), response.Data[0].Data)
	require.NotNil(suite.T(), response.Data[1].Error)
	assert.Equal(suite.T(), models.ErrAmountNotPositive.Error(), *response.Data[1].Error)
}

func (suite *TestSuiteStandard) TestTransactionsGetSingle() {
	transaction := createTestTransaction(suite.T(), v4.TransactionEditable{Amount: decimal.New(42, 0)})

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Existing", transaction.Data.Links.Self, http.StatusOK},
		{"Not existing", fmt.Sprintf("http://example.com/v4/transactions/%s", uuid.New()), http.StatusNotFound},
		{"Invalid UUID", "http://example.com/v4/transactions/NotAUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, tt.path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.New(10, 0),
		Kind:        models.KindExpense,
		Category:    "Food",
		Description: "Lunch at the corner place",
	})
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:     time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.New(2500, 0),
		Kind:     models.KindIncome,
		Category: "Other",
	})
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.New(50, 0),
		Kind:       models.KindExpense,
		Category:   "Bills",
		Recurrence: models.RecurrenceMonthly,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Income only", "kind=income", 1},
		{"Expense only", "kind=expense", 2},
		{"By category", "category=Bills", 1},
		{"Templates only", "template=true", 1},
		{"Regular only", "template=false", 2},
		{"By description", "description=corner", 1},
		{"From date", "fromDate=2024-05-15T00:00:00Z", 2},
		{"Until date", "untilDate=2024-05-15T00:00:00Z", 2},
		{"Exact date", "date=2024-05-01T00:00:00Z", 1},
		{"Amount", "amount=10", 1},
		{"Amount at most", "amountLessOrEqual=50", 2},
		{"Amount at least", "amountMoreOrEqual=50", 2},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
		{"No match", "category=Shopping", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v4/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r)

			var response v4.TransactionListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.len)
			require.NotNil(t, response.Pagination)
			assert.Equal(t, tt.len, response.Pagination.Count)
		})
	}
}

// TestTransactionsSorting verifies that transactions are sorted by date,
// newest first.
func (suite *TestSuiteStandard) TestTransactionsSorting() {
	for _, day := range []int{3, 1, 2} {
		_ = createTestTransaction(suite.T(), v4.TransactionEditable{
			Date:   time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
			Amount: decimal.New(int64(day), 0),
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r)

	var response v4.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), 3, response.Data[0].Date.Day())
	assert.Equal(suite.T(), 2, response.Data[1].Date.Day())
	assert.Equal(suite.T(), 1, response.Data[2].Date.Day())
}

func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	transaction := createTestTransaction(suite.T(), v4.TransactionEditable{
		Amount:      decimal.New(100, 0),
		Description: "Before",
	})

	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{
		"description": "After",
	})
	test.AssertHTTPStatus(suite.T(), &r)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r)

	var updated v4.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "After", updated.Data.Description)
	assert.True(suite.T(), decimal.New(100, 0).Equal(updated.Data.Amount), "the amount must not change when it is not part of the update")
}

func (suite *TestSuiteStandard) TestTransactionsUpdateErrors() {
	transaction := createTestTransaction(suite.T(), v4.TransactionEditable{Amount: decimal.New(100, 0)})

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"Invalid UUID", "http://example.com/v4/transactions/NotAUUID", "", http.StatusBadRequest},
		{"Not existing", fmt.Sprintf("http://example.com/v4/transactions/%s", uuid.New()), "", http.StatusNotFound},
		{"Broken body", transaction.Data.Links.Self, `{ "broken`, http.StatusBadRequest},
		{"Unknown category", transaction.Data.Links.Self, map[string]any{"category": "No such category"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	transaction := createTestTransaction(suite.T(), v4.TransactionEditable{Amount: decimal.New(100, 0)})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestTransactionsDatabaseError verifies that the endpoints return the appropriate
// error when the database is disconnected.
func (suite *TestSuiteStandard) TestTransactionsDatabaseError() {
	tests := []struct {
		name   string // Name of the test
		path   string // Path to send request to
		method string // HTTP method to use
		body   string // The request body
	}{
		{"GET Collection", "", http.MethodGet, ""},
		{"OPTIONS Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodOptions, ""},
		{"GET Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodGet, ""},
		{"PATCH Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodPatch, ""},
		{"DELETE Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodDelete, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v4/transactions%s", tt.path), tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)
		})
	}
}
