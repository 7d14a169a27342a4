package v4

import (
	"net/http"
	"sync"
	"time"

	"github.com/esp046-cyber/budget-tracker/internal/httputil"
	"github.com/esp046-cyber/budget-tracker/internal/ledger"
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/gin-gonic/gin"
)

// Only one expansion pass may run at a time. The pass reads the whole
// transaction set and writes new instances, concurrent passes could
// materialize duplicates before the unique index catches them.
var recurrenceMu sync.Mutex

type RecurrenceRunResponse struct {
	Data  *ledger.Result `json:"data"`  // The result of the expansion pass
	Error *string        `json:"error"` // The error, if any occurred
}

// RegisterRecurrenceRoutes registers the routes for recurrence expansion
// with the RouterGroup that is passed.
func RegisterRecurrenceRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/run", OptionsRecurrenceRun)
		r.POST("/run", RunRecurrences)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurrences
// @Success		204
// @Router			/v4/recurrences/run [options]
func OptionsRecurrenceRun(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Run recurrence expansion
// @Description	Expands all recurring templates up to the given date, materializing any instances that are due and not yet stored. Running the expansion twice never creates duplicates. The response contains the created instances and the recomputed monthly summaries and alerts.
// @Tags			Recurrences
// @Produce		json
// @Success		200		{object}	RecurrenceRunResponse
// @Failure		400		{object}	RecurrenceRunResponse
// @Failure		500		{object}	RecurrenceRunResponse
// @Param			asOf	query		string	false	"Expand up to this date in YYYY-MM-DD format. Defaults to the current date."
// @Router			/v4/recurrences/run [post]
func RunRecurrences(c *gin.Context) {
	asOf := time.Now().In(time.UTC)

	if v, ok := c.GetQuery("asOf"); ok {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			s := errInvalidAsOf.Error()
			c.JSON(http.StatusBadRequest, RecurrenceRunResponse{
				Error: &s,
			})
			return
		}
		asOf = parsed
	}

	recurrenceMu.Lock()
	result, err := ledger.NewPipeline(models.DB).Run(asOf)
	recurrenceMu.Unlock()

	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurrenceRunResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, RecurrenceRunResponse{Data: &result})
}
