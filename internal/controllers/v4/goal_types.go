package v4

import (
	"fmt"

	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GoalEditable represents all user configurable parameters
type GoalEditable struct {
	Name   string          `json:"name" example:"Emergency fund" default:""`                            // Name of the goal
	Target decimal.Decimal `json:"target" example:"50000" minimum:"0.00000001" multipleOf:"0.00000001"` // The amount to save
	Saved  decimal.Decimal `json:"saved" example:"12000" minimum:"0" multipleOf:"0.00000001"`           // The amount saved so far
}

func (editable GoalEditable) model() models.Goal {
	return models.Goal{
		Name:   editable.Name,
		Target: editable.Target,
		Saved:  editable.Saved,
	}
}

type GoalLinks struct {
	Self string `json:"self" example:"https://example.com/api/v4/goals/f81566d9-af4d-4f13-9e22-c355789f8f98"` // The goal itself
}

type Goal struct {
	models.DefaultModel
	GoalEditable
	Links GoalLinks `json:"links"`
}

func newGoal(c *gin.Context, model models.Goal) Goal {
	url := c.GetString(string(models.DBContextURL))

	return Goal{
		DefaultModel: model.DefaultModel,
		GoalEditable: GoalEditable{
			Name:   model.Name,
			Target: model.Target,
			Saved:  model.Saved,
		},
		Links: GoalLinks{
			Self: fmt.Sprintf("%s/v4/goals/%s", url, model.ID),
		},
	}
}

type GoalListResponse struct {
	Data       []Goal      `json:"data"`                                                          // List of Goals
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GoalCreateResponse struct {
	Data  []GoalResponse `json:"data"`                                                          // List of the created Goals or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (g *GoalCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	g.Data = append(g.Data, GoalResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GoalResponse struct {
	Data  *Goal   `json:"data"`                                                          // Data for the Goal
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GoalQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Goal returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Goals to return. Defaults to 50.
}
