package v4

import (
	"fmt"

	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DebtEditable represents all user configurable parameters
type DebtEditable struct {
	Name    string          `json:"name" example:"Car loan" default:""`                               // Name of the debt
	Initial decimal.Decimal `json:"initial" example:"10000" minimum:"0.00000001" multipleOf:"0.00000001"` // The initial amount owed
	Paid    decimal.Decimal `json:"paid" example:"2500" minimum:"0" multipleOf:"0.00000001"`          // The amount already paid off
}

func (editable DebtEditable) model() models.Debt {
	return models.Debt{
		Name:    editable.Name,
		Initial: editable.Initial,
		Paid:    editable.Paid,
	}
}

type DebtLinks struct {
	Self string `json:"self" example:"https://example.com/api/v4/debts/056c48e7-8e98-4d17-a723-0b30eeb75b5a"` // The debt itself
}

type Debt struct {
	models.DefaultModel
	DebtEditable
	Remaining decimal.Decimal `json:"remaining" example:"7500"` // The amount still owed
	Links     DebtLinks       `json:"links"`
}

func newDebt(c *gin.Context, model models.Debt) Debt {
	url := c.GetString(string(models.DBContextURL))

	return Debt{
		DefaultModel: model.DefaultModel,
		DebtEditable: DebtEditable{
			Name:    model.Name,
			Initial: model.Initial,
			Paid:    model.Paid,
		},
		Remaining: model.Remaining(),
		Links: DebtLinks{
			Self: fmt.Sprintf("%s/v4/debts/%s", url, model.ID),
		},
	}
}

type DebtListResponse struct {
	Data       []Debt      `json:"data"`                                                          // List of Debts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DebtCreateResponse struct {
	Data  []DebtResponse `json:"data"`                                                          // List of the created Debts or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (d *DebtCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	d.Data = append(d.Data, DebtResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type DebtResponse struct {
	Data  *Debt   `json:"data"`                                                          // Data for the Debt
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DebtQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Debt returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Debts to return. Defaults to 50.
}
