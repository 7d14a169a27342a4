package v4_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	v4 "github.com/esp046-cyber/budget-tracker/internal/controllers/v4"
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/esp046-cyber/budget-tracker/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// csvUpload builds a multipart body with the content as a file upload.
func (suite *TestSuiteStandard) csvUpload(filename, content string) (*bytes.Buffer, map[string]string) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	suite.Require().Nil(err)

	_, err = part.Write([]byte(content))
	suite.Require().Nil(err)
	suite.Require().Nil(writer.Close())

	return &body, map[string]string{"Content-Type": writer.FormDataContentType()}
}

func (suite *TestSuiteStandard) TestCsvExport() {
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("13.37"),
		Description: "Groceries",
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/csv", "")
	test.AssertHTTPStatus(suite.T(), &r)

	assert.Equal(suite.T(), "text/csv", r.Header().Get("Content-Type"))
	assert.Contains(suite.T(), r.Header().Get("Content-Disposition"), "budget-export.csv")

	body := r.Body.String()
	assert.Contains(suite.T(), body, "Type,Date,Amount,Currency,Category,Description,Recurring")
	assert.Contains(suite.T(), body, "expense,2024-05-01,13.37,PHP,Food,Groceries,none")
	assert.Contains(suite.T(), body, "Currencies:")
}

func (suite *TestSuiteStandard) TestCsvImport() {
	file := strings.Join([]string{
		"Type,Date,Amount,Currency,Category,Description,Recurring",
		"expense,2024-05-01,13.37,PHP,Food,Groceries,none",
		"expense,2024-05-02,50,PHP,Utilities,Water,monthly",
		"expense,2024-05-03,not-a-number,PHP,Food,Broken,none",
		"Debts:",
		"Name,Initial,Paid",
		"Car loan,10000,2500",
		"Goals:",
		"Name,Target,Saved",
		"Vacation,3000,500",
		"Currencies:",
		"Code,Rate,Base",
		"USD,56.50,false",
		"Budget Limits:",
		"Category,Threshold",
		"Food,500",
	}, "\n")

	body, headers := suite.csvUpload("import.csv", file)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v4.CsvImportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	assert.Equal(suite.T(), 2, response.Data.Transactions)
	assert.Equal(suite.T(), 1, response.Data.Debts)
	assert.Equal(suite.T(), 1, response.Data.Goals)
	assert.Equal(suite.T(), 1, response.Data.Currencies)
	assert.Equal(suite.T(), 1, response.Data.Limits)
	assert.Equal(suite.T(), 1, response.Data.Skipped)

	// The category referenced by the import is created on the fly
	var count int64
	err := models.DB.Model(&models.Category{}).Where("name = ?", "Utilities").Count(&count).Error
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(1), count)

	err = models.DB.Model(&models.Transaction{}).Count(&count).Error
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(2), count)
}

// TestCsvImportRollback verifies that a database error during the import
// rolls back all imported resources.
func (suite *TestSuiteStandard) TestCsvImportRollback() {
	file := strings.Join([]string{
		"Type,Date,Amount,Currency,Category,Description,Recurring",
		"expense,2024-05-01,13.37,PHP,Food,Groceries,none",
		"expense,2024-05-02,50,XXX,Food,Unknown currency,none",
	}, "\n")

	body, headers := suite.csvUpload("import.csv", file)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var count int64
	err := models.DB.Model(&models.Transaction{}).Count(&count).Error
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(0), count, "a failed import must not persist anything")
}

func (suite *TestSuiteStandard) TestCsvImportErrors() {
	body, headers := suite.csvUpload("import.txt", "not a csv")

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v4/csv", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestCsvRoundTrip exports the dataset and imports it into a fresh
// database.
func (suite *TestSuiteStandard) TestCsvRoundTrip() {
	_ = createTestTransaction(suite.T(), v4.TransactionEditable{
		Date:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("13.37"),
	})
	_ = createTestDebt(suite.T(), v4.DebtEditable{Name: "Car loan", Initial: decimal.New(10000, 0)})
	_ = createTestLimit(suite.T(), v4.LimitEditable{Category: "Food", Threshold: decimal.New(500, 0)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/csv", "")
	test.AssertHTTPStatus(suite.T(), &r)
	exported := r.Body.String()

	// Fresh database
	suite.CloseDB()
	suite.SetupTest()

	body, headers := suite.csvUpload("export.csv", exported)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v4/csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v4.CsvImportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	assert.Equal(suite.T(), 1, response.Data.Transactions)
	assert.Equal(suite.T(), 1, response.Data.Debts)
	assert.Equal(suite.T(), 1, response.Data.Limits)
	assert.Equal(suite.T(), 0, response.Data.Skipped)
}
