package v4

import (
	"fmt"

	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyEditable represents all user configurable parameters
type CurrencyEditable struct {
	Code string          `json:"code" example:"USD"`                                                 // ISO 4217 style currency code
	Rate decimal.Decimal `json:"rate" example:"56.25" minimum:"0.00000001" multipleOf:"0.00000001"` // Conversion rate into the base currency
}

func (editable CurrencyEditable) model() models.Currency {
	return models.Currency{
		Code: editable.Code,
		Rate: editable.Rate,
	}
}

type CurrencyLinks struct {
	Self string `json:"self" example:"https://example.com/api/v4/currencies/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // The currency itself
}

type Currency struct {
	models.DefaultModel
	CurrencyEditable
	Base   bool          `json:"base" example:"false"` // Is this the base currency?
	Symbol string        `json:"symbol" example:"$"`   // Display symbol for the currency code
	Links  CurrencyLinks `json:"links"`
}

// currencySymbol returns the display symbol for an ISO 4217 currency
// code. Codes the CLDR does not know fall back to the code itself.
func currencySymbol(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code
	}

	return message.NewPrinter(language.English).Sprint(currency.Symbol(unit))
}

func newCurrency(c *gin.Context, model models.Currency) Currency {
	url := c.GetString(string(models.DBContextURL))

	return Currency{
		DefaultModel: model.DefaultModel,
		CurrencyEditable: CurrencyEditable{
			Code: model.Code,
			Rate: model.Rate,
		},
		Base:   model.Base,
		Symbol: currencySymbol(model.Code),
		Links: CurrencyLinks{
			Self: fmt.Sprintf("%s/v4/currencies/%s", url, model.ID),
		},
	}
}

type CurrencyListResponse struct {
	Data       []Currency  `json:"data"`                                                          // List of Currencies
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CurrencyCreateResponse struct {
	Data  []CurrencyResponse `json:"data"`                                                          // List of the created Currencies or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CurrencyCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CurrencyResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CurrencyResponse struct {
	Data  *Currency `json:"data"`                                                          // Data for the Currency
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CurrencyQueryFilter struct {
	Code   string `form:"code"`                       // By code
	Base   bool   `form:"base"`                       // Is this the base currency?
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Currency returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Currencies to return. Defaults to 50.
}

func (f CurrencyQueryFilter) model() models.Currency {
	return models.Currency{
		Code: f.Code,
		Base: f.Base,
	}
}
