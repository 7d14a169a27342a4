package v4

import (
	"net/http"

	"github.com/esp046-cyber/budget-tracker/internal/httputil"
	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterLimitRoutes registers the routes for budget limits with
// the RouterGroup that is passed.
func RegisterLimitRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsLimitList)
		r.GET("", GetLimits)
		r.POST("", CreateLimits)
	}

	// Limit with ID
	{
		r.OPTIONS("/:id", OptionsLimitDetail)
		r.GET("/:id", GetLimit)
		r.PATCH("/:id", UpdateLimit)
		r.DELETE("/:id", DeleteLimit)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Limits
// @Success		204
// @Router			/v4/limits [options]
func OptionsLimitList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Limits
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v4/limits/{id} [options]
func OptionsLimitDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.BudgetLimit{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create limits
// @Description	Creates new monthly spending limits. Limits are evaluated in the order they were created.
// @Tags			Limits
// @Produce		json
// @Success		201		{object}	LimitCreateResponse
// @Failure		400		{object}	LimitCreateResponse
// @Failure		500		{object}	LimitCreateResponse
// @Param			limits	body		[]LimitEditable	true	"Limits"
// @Router			/v4/limits [post]
func CreateLimits(c *gin.Context) {
	var editables []LimitEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LimitCreateResponse{
			Error: &s,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	currentStatus := http.StatusCreated
	r := LimitCreateResponse{}

	for _, editable := range editables {
		limit := editable.model()

		err = models.DB.Create(&limit).Error
		if err != nil {
			currentStatus = r.appendError(err, currentStatus)
			continue
		}

		data := newLimit(c, limit)
		r.Data = append(r.Data, LimitResponse{Data: &data})
	}

	c.JSON(currentStatus, r)
}

// @Summary		Get limits
// @Description	Returns a list of budget limits in evaluation order
// @Tags			Limits
// @Produce		json
// @Success		200	{object}	LimitListResponse
// @Failure		400	{object}	LimitListResponse
// @Failure		500	{object}	LimitListResponse
// @Router			/v4/limits [get]
// @Param			category	query	string	false	"Filter by category name"
// @Param			offset		query	uint	false	"The offset of the first Limit returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Limits to return. Defaults to 50."
func GetLimits(c *gin.Context) {
	var filter LimitQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("position ASC").
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Limits and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var limits []models.BudgetLimit
	err := q.Find(&limits).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LimitListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LimitListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Limit, 0)
	for _, l := range limits {
		data = append(data, newLimit(c, l))
	}

	c.JSON(http.StatusOK, LimitListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get limit
// @Description	Returns a specific budget limit
// @Tags			Limits
// @Produce		json
// @Success		200	{object}	LimitResponse
// @Failure		400	{object}	LimitResponse
// @Failure		404	{object}	LimitResponse
// @Failure		500	{object}	LimitResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v4/limits/{id} [get]
func GetLimit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LimitResponse{
			Error: &s,
		})
		return
	}

	var limit models.BudgetLimit
	err = models.DB.First(&limit, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LimitResponse{
			Error: &s,
		})
		return
	}

	data := newLimit(c, limit)
	c.JSON(http.StatusOK, LimitResponse{Data: &data})
}

// @Summary		Update limit
// @Description	Update an existing budget limit. Only values to be updated need to be specified.
// @Tags			Limits
// @Accept			json
// @Produce		json
// @Success		200		{object}	LimitResponse
// @Failure		400		{object}	LimitResponse
// @Failure		404		{object}	LimitResponse
// @Failure		500		{object}	LimitResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			limit	body		LimitEditable	true	"Limit"
// @Router			/v4/limits/{id} [patch]
func UpdateLimit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LimitResponse{
			Error: &s,
		})
		return
	}

	var limit models.BudgetLimit
	err = models.DB.First(&limit, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LimitResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, LimitEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LimitResponse{
			Error: &s,
		})
		return
	}

	var update LimitEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LimitResponse{
			Error: &s,
		})
		return
	}

	// The category is validated on save, so the old one needs to be kept
	// when it is not part of the update
	if update.Category == "" {
		update.Category = limit.Category
	}

	err = models.DB.Model(&limit).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LimitResponse{
			Error: &s,
		})
		return
	}

	data := newLimit(c, limit)
	c.JSON(http.StatusOK, LimitResponse{Data: &data})
}

// @Summary		Delete limit
// @Description	Deletes a budget limit
// @Tags			Limits
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v4/limits/{id} [delete]
func DeleteLimit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var limit models.BudgetLimit
	err = models.DB.First(&limit, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&limit).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
