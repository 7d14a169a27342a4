package v4

import (
	"fmt"

	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LimitEditable represents all user configurable parameters
type LimitEditable struct {
	Category  string          `json:"category" example:"Food"`                            // Name of the category the limit applies to
	Threshold decimal.Decimal `json:"threshold" example:"500" minimum:"0" multipleOf:"0.00000001"` // Monthly spending threshold in the base currency
}

func (editable LimitEditable) model() models.BudgetLimit {
	return models.BudgetLimit{
		Category:  editable.Category,
		Threshold: editable.Threshold,
	}
}

type LimitLinks struct {
	Self string `json:"self" example:"https://example.com/api/v4/limits/7e921bc4-4a08-4b33-9bb6-ae9a0033f2a8"` // The limit itself
}

type Limit struct {
	models.DefaultModel
	LimitEditable
	Position uint       `json:"position" example:"1"` // Evaluation order of the limit, starting at 1
	Links    LimitLinks `json:"links"`
}

func newLimit(c *gin.Context, model models.BudgetLimit) Limit {
	url := c.GetString(string(models.DBContextURL))

	return Limit{
		DefaultModel: model.DefaultModel,
		LimitEditable: LimitEditable{
			Category:  model.Category,
			Threshold: model.Threshold,
		},
		Position: model.Position,
		Links: LimitLinks{
			Self: fmt.Sprintf("%s/v4/limits/%s", url, model.ID),
		},
	}
}

type LimitListResponse struct {
	Data       []Limit     `json:"data"`                                                          // List of Limits
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type LimitCreateResponse struct {
	Data  []LimitResponse `json:"data"`                                                          // List of the created Limits or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (l *LimitCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	l.Data = append(l.Data, LimitResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type LimitResponse struct {
	Data  *Limit  `json:"data"`                                                          // Data for the Limit
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type LimitQueryFilter struct {
	Category string `form:"category"`                   // By category name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Limit returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Limits to return. Defaults to 50.
}

func (f LimitQueryFilter) model() models.BudgetLimit {
	return models.BudgetLimit{
		Category: f.Category,
	}
}
