package v4

import (
	"net/http"

	"github.com/esp046-cyber/budget-tracker/internal/httputil"
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v4 API
}

type Links struct {
	Categories   string `json:"categories" example:"https://example.com/api/v4/categories"`     // URL of Category collection endpoint
	Csv          string `json:"csv" example:"https://example.com/api/v4/csv"`                    // URL of the CSV exchange endpoint
	Currencies   string `json:"currencies" example:"https://example.com/api/v4/currencies"`     // URL of Currency collection endpoint
	Debts        string `json:"debts" example:"https://example.com/api/v4/debts"`               // URL of Debt collection endpoint
	Export       string `json:"export" example:"https://example.com/api/v4/export"`             // URL of the export endpoint
	Goals        string `json:"goals" example:"https://example.com/api/v4/goals"`               // URL of Goal collection endpoint
	Limits       string `json:"limits" example:"https://example.com/api/v4/limits"`             // URL of Budget Limit collection endpoint
	Months       string `json:"months" example:"https://example.com/api/v4/months"`             // URL of the Month endpoint
	Recurrences  string `json:"recurrences" example:"https://example.com/api/v4/recurrences"`   // URL of the recurrence expansion endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/v4/transactions"` // URL of Transaction collection endpoint
}

// Get returns the link list for v4
//
//	@Summary		v4 API
//	@Description	Returns general information about the v4 API
//	@Tags			v4
//	@Success		200	{object}	Response
//	@Router			/v4 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Categories:   url + "/v4/categories",
			Csv:          url + "/v4/csv",
			Currencies:   url + "/v4/currencies",
			Debts:        url + "/v4/debts",
			Export:       url + "/v4/export",
			Goals:        url + "/v4/goals",
			Limits:       url + "/v4/limits",
			Months:       url + "/v4/months",
			Recurrences:  url + "/v4/recurrences",
			Transactions: url + "/v4/transactions",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v4
//	@Success		204
//	@Router			/v4 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
