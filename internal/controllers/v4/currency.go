package v4

import (
	"net/http"

	"github.com/esp046-cyber/budget-tracker/internal/httputil"
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterCurrencyRoutes registers the routes for currencies with
// the RouterGroup that is passed.
func RegisterCurrencyRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCurrencyList)
		r.GET("", GetCurrencies)
		r.POST("", CreateCurrencies)
	}

	// Currency with ID
	{
		r.OPTIONS("/:id", OptionsCurrencyDetail)
		r.GET("/:id", GetCurrency)
		r.PATCH("/:id", UpdateCurrency)
		r.DELETE("/:id", DeleteCurrency)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Currencies
// @Success		204
// @Router			/v4/currencies [options]
func OptionsCurrencyList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Currencies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v4/currencies/{id} [options]
func OptionsCurrencyDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Currency{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create currencies
// @Description	Creates new currencies with their conversion rate into the base currency
// @Tags			Currencies
// @Produce		json
// @Success		201			{object}	CurrencyCreateResponse
// @Failure		400			{object}	CurrencyCreateResponse
// @Failure		500			{object}	CurrencyCreateResponse
// @Param			currencies	body		[]CurrencyEditable	true	"Currencies"
// @Router			/v4/currencies [post]
func CreateCurrencies(c *gin.Context) {
	var editables []CurrencyEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyCreateResponse{
			Error: &s,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	currentStatus := http.StatusCreated
	r := CurrencyCreateResponse{}

	for _, editable := range editables {
		currency := editable.model()

		err = models.DB.Create(&currency).Error
		if err != nil {
			currentStatus = r.appendError(err, currentStatus)
			continue
		}

		data := newCurrency(c, currency)
		r.Data = append(r.Data, CurrencyResponse{Data: &data})
	}

	c.JSON(currentStatus, r)
}

// @Summary		Get currencies
// @Description	Returns a list of currencies
// @Tags			Currencies
// @Produce		json
// @Success		200	{object}	CurrencyListResponse
// @Failure		400	{object}	CurrencyListResponse
// @Failure		500	{object}	CurrencyListResponse
// @Router			/v4/currencies [get]
// @Param			code	query	string	false	"Filter by code"
// @Param			base	query	bool	false	"Is this the base currency?"
// @Param			offset	query	uint	false	"The offset of the first Currency returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Currencies to return. Defaults to 50."
func GetCurrencies(c *gin.Context) {
	var filter CurrencyQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("code ASC").
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Currencies and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var currencies []models.Currency
	err := q.Find(&currencies).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Currency, 0)
	for _, currency := range currencies {
		data = append(data, newCurrency(c, currency))
	}

	c.JSON(http.StatusOK, CurrencyListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get currency
// @Description	Returns a specific currency
// @Tags			Currencies
// @Produce		json
// @Success		200	{object}	CurrencyResponse
// @Failure		400	{object}	CurrencyResponse
// @Failure		404	{object}	CurrencyResponse
// @Failure		500	{object}	CurrencyResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v4/currencies/{id} [get]
func GetCurrency(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	var currency models.Currency
	err = models.DB.First(&currency, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	data := newCurrency(c, currency)
	c.JSON(http.StatusOK, CurrencyResponse{Data: &data})
}

// @Summary		Update currency
// @Description	Update an existing currency. Only values to be updated need to be specified.
// @Tags			Currencies
// @Accept			json
// @Produce		json
// @Success		200			{object}	CurrencyResponse
// @Failure		400			{object}	CurrencyResponse
// @Failure		404			{object}	CurrencyResponse
// @Failure		500			{object}	CurrencyResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			currency	body		CurrencyEditable	true	"Currency"
// @Router			/v4/currencies/{id} [patch]
func UpdateCurrency(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	var currency models.Currency
	err = models.DB.First(&currency, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CurrencyEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	var update CurrencyEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	// The code and rate are validated on save, so the old values need to
	// be kept when they are not part of the update
	if update.Code == "" {
		update.Code = currency.Code
	}

	if update.Rate.IsZero() {
		update.Rate = currency.Rate
	}

	err = models.DB.Model(&currency).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrencyResponse{
			Error: &s,
		})
		return
	}

	data := newCurrency(c, currency)
	c.JSON(http.StatusOK, CurrencyResponse{Data: &data})
}

// @Summary		Delete currency
// @Description	Deletes a currency. The base currency cannot be deleted.
// @Tags			Currencies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v4/currencies/{id} [delete]
func DeleteCurrency(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var currency models.Currency
	err = models.DB.First(&currency, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&currency).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
