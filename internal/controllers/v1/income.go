package v1

import (
	"net/http"

	"github.com/envelope-zero/budget-analytics/internal/httputil"
	"github.com/envelope-zero/budget-analytics/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterIncomeRoutes registers the routes for configured incomes with
// the RouterGroup that is passed.
func RegisterIncomeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsIncomeList)
		r.GET("", GetIncomes)
		r.POST("", CreateIncomes)
	}

	// Income with ID
	{
		r.OPTIONS("/:id", OptionsIncomeDetail)
		r.GET("/:id", GetIncome)
		r.PATCH("/:id", UpdateIncome)
		r.DELETE("/:id", DeleteIncome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Router			/v1/incomes [options]
func OptionsIncomeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [options]
func OptionsIncomeDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Income{}, httputil.OptionsGetPatchDelete)
}

// @Summary		Create incomes
// @Description	Creates configured income sources
// @Tags			Incomes
// @Produce		json
// @Success		201		{object}	IncomeCreateResponse
// @Failure		400		{object}	IncomeCreateResponse
// @Failure		500		{object}	IncomeCreateResponse
// @Param			incomes	body		[]IncomeEditable	true	"Incomes"
// @Router			/v1/incomes [post]
func CreateIncomes(c *gin.Context) {
	var editables []IncomeEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := IncomeCreateResponse{}

	for _, editable := range editables {
		income := editable.model()

		err = models.DB.WithContext(c).Create(&income).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newIncome(c, income)
		r.Data = append(r.Data, IncomeResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get incomes
// @Description	Returns all configured incomes, ordered by source name, with their monthly total
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeListResponse
// @Failure		500	{object}	IncomeListResponse
// @Router			/v1/incomes [get]
func GetIncomes(c *gin.Context) {
	var incomes []models.Income
	err := models.DB.WithContext(c).Order("source_name ASC").Find(&incomes).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeListResponse{
			Error: &s,
		})
		return
	}

	total := decimal.Zero
	data := make([]Income, 0, len(incomes))
	for _, income := range incomes {
		total = total.Add(income.Monthly())
		data = append(data, newIncome(c, income))
	}

	c.JSON(http.StatusOK, IncomeListResponse{
		Data: data,
		Summary: &IncomeSummary{
			MonthlyTotal: total.Round(2),
			Count:        len(data),
		},
	})
}

// @Summary		Get income
// @Description	Returns a specific income
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeResponse
// @Failure		400	{object}	IncomeResponse
// @Failure		404	{object}	IncomeResponse
// @Failure		500	{object}	IncomeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [get]
func GetIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	var income models.Income
	err = models.DB.WithContext(c).First(&income, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	data := newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &data})
}

// @Summary		Update income
// @Description	Update an existing income. Only values to be updated need to be specified.
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		200		{object}	IncomeResponse
// @Failure		400		{object}	IncomeResponse
// @Failure		404		{object}	IncomeResponse
// @Failure		500		{object}	IncomeResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			income	body		IncomeEditable	true	"Income"
// @Router			/v1/incomes/{id} [patch]
func UpdateIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	var income models.Income
	err = models.DB.WithContext(c).First(&income, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	data := incomeEditable(income)
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	data.apply(&income)
	err = models.DB.WithContext(c).Save(&income).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	r := newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &r})
}

// @Summary		Delete income
// @Description	Deletes a configured income
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [delete]
func DeleteIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var income models.Income
	err = models.DB.WithContext(c).First(&income, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.WithContext(c).Delete(&income).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
