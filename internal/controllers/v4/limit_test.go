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

func (suite *TestSuiteStandard) TestLimitsCreate() {
	limit := createTestLimit(suite.T(), v4.LimitEditable{
		Category:  "Food",
		Threshold: decimal.New(500, 0),
	})

	require.NotNil(suite.T(), limit.Data)
	assert.Equal(suite.T(), "Food", limit.Data.Category)
	assert.Equal(suite.T(), uint(1), limit.Data.Position)
}

func (suite *TestSuiteStandard) TestLimitsCreateErrors() {
	tests := []struct {
		name  string
		limit v4.LimitEditable
		err   error
	}{
		{"Unknown category", v4.LimitEditable{Category: "No such category", Threshold: decimal.New(100, 0)}, models.ErrUnknownCategory},
		{"Negative threshold", v4.LimitEditable{Category: "Food", Threshold: decimal.New(-1, 0)}, models.ErrThresholdNegative},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v4/limits", []v4.LimitEditable{tt.limit})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v4.LimitCreateResponse
			test.DecodeResponse(t, &r, &response)

			require.Len(t, response.Data, 1)
			require.NotNil(t, response.Data[0].Error)
			assert.Equal(t, tt.err.Error(), *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestLimitsCreateDuplicateCategory() {
	_ = createTestLimit(suite.T(), v4.LimitEditable{Category: "Food", Threshold: decimal.New(100, 0)})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v4/limits", []v4.LimitEditable{{Category: "Food", Threshold: decimal.New(200, 0)}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v4.LimitCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data[0].Error)
	assert.Equal(suite.T(), models.ErrLimitCategoryNotUnique.Error(), *response.Data[0].Error)
}

// TestLimitsOrder verifies that limits are returned in configuration order.
func (suite *TestSuiteStandard) TestLimitsOrder() {
	_ = createTestLimit(suite.T(), v4.LimitEditable{Category: "Transport", Threshold: decimal.New(100, 0)})
	_ = createTestLimit(suite.T(), v4.LimitEditable{Category: "Food", Threshold: decimal.New(500, 0)})
	_ = createTestLimit(suite.T(), v4.LimitEditable{Category: "Bills", Threshold: decimal.New(300, 0)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v4/limits", "")
	test.AssertHTTPStatus(suite.T(), &r)

	var response v4.LimitListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), "Transport", response.Data[0].Category)
	assert.Equal(suite.T(), "Food", response.Data[1].Category)
	assert.Equal(suite.T(), "Bills", response.Data[2].Category)
}

func (suite *TestSuiteStandard) TestLimitsUpdate() {
	limit := createTestLimit(suite.T(), v4.LimitEditable{Category: "Food", Threshold: decimal.New(500, 0)})

	r := test.Request(suite.T(), http.MethodPatch, limit.Data.Links.Self, map[string]any{
		"threshold": "750",
	})
	test.AssertHTTPStatus(suite.T(), &r)

	r = test.Request(suite.T(), http.MethodGet, limit.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r)

	var updated v4.LimitResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.True(suite.T(), decimal.New(750, 0).Equal(updated.Data.Threshold))
	assert.Equal(suite.T(), "Food", updated.Data.Category)
}

func (suite *TestSuiteStandard) TestLimitsDelete() {
	limit := createTestLimit(suite.T(), v4.LimitEditable{Category: "Food", Threshold: decimal.New(500, 0)})

	r := test.Request(suite.T(), http.MethodDelete, limit.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, limit.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
