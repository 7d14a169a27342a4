package v4_test

import (
	"net/http"
	"testing"

	"github.com/esp046-cyber/budget-tracker/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{"http://example.com/v4", "GET"},
		{"http://example.com/v4/categories", "GET, POST"},
		{"http://example.com/v4/csv", "GET, POST"},
		{"http://example.com/v4/currencies", "GET, POST"},
		{"http://example.com/v4/debts", "GET, POST"},
		{"http://example.com/v4/export", "GET"},
		{"http://example.com/v4/goals", "GET, POST"},
		{"http://example.com/v4/limits", "GET, POST"},
		{"http://example.com/v4/months", "GET"},
		{"http://example.com/v4/recurrences/run", "POST"},
		{"http://example.com/v4/transactions", "GET, POST"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, recorder.Header().Get("allow"), tt.response)
		})
	}
}
