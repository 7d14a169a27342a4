package v4

import (
	"net/http"

	"github.com/esp046-cyber/budget-tracker/internal/httputil"
	"github.com/esp046-cyber/budget-tracker/internal/ledger"
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/esp046-cyber/budget-tracker/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MonthResponse struct {
	Data  *Month  `json:"data"`  // Data for the month
	Error *string `json:"error"` // The error, if any occurred
}

// Month is the aggregation of one calendar month together with the
// evaluation of all budget limits against it.
type Month struct {
	ledger.PeriodSummary
	Alerts []ledger.Alert `json:"alerts"` // Budget limit evaluation for the month, in limit order
}

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMonth)
		r.GET("", GetMonth)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
// @Tags			Months
// @Success		204
// @Router			/v4/months [options]
func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get data about a month
// @Description	Returns the aggregated income, expenses and budget limit alerts for a specific month. Amounts are normalized to the base currency.
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthResponse
// @Failure		400		{object}	MonthResponse
// @Failure		500		{object}	MonthResponse
// @Param			month	query		string	true	"The month in YYYY-MM format"
// @Router			/v4/months [get]
func GetMonth(c *gin.Context) {
	var query QueryMonth
	if err := c.Bind(&query); err != nil {
		s := httputil.ErrInvalidMonth.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &s,
		})
		return
	}

	if query.Month.IsZero() {
		s := errMonthNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &s,
		})
		return
	}

	month := types.MonthOf(query.Month)

	var transactions []models.Transaction
	err := models.DB.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	var currencies []models.Currency
	err = models.DB.Find(&currencies).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	summaries, err := ledger.Aggregate(transactions, ledger.TableFromCurrencies(currencies))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	// Months without transactions aggregate to an empty summary
	summary, ok := summaries[month]
	if !ok {
		summary = ledger.PeriodSummary{
			Month:      month,
			Categories: make(map[string]decimal.Decimal),
		}
	}

	var limits []models.BudgetLimit
	err = models.DB.Order("position ASC").Find(&limits).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &s,
		})
		return
	}

	data := Month{
		PeriodSummary: summary,
		Alerts:        ledger.EvaluateAlerts(summary, limits),
	}

	c.JSON(http.StatusOK, MonthResponse{Data: &data})
}
