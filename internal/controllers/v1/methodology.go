package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/envelope-zero/budget-analytics/internal/httputil"
	"github.com/envelope-zero/budget-analytics/internal/models"
	"github.com/envelope-zero/budget-analytics/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterMethodologyRoutes registers the routes for methodologies with
// the RouterGroup that is passed.
func RegisterMethodologyRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMethodologyList)
		r.GET("", GetMethodologies)
		r.POST("", CreateMethodologies)
	}

	// Collection level operations
	{
		r.OPTIONS("/active", OptionsMethodologyActive)
		r.GET("/active", GetActiveMethodology)
		r.OPTIONS("/compare", OptionsMethodologyCompare)
		r.POST("/compare", CompareMethodologies)
		r.OPTIONS("/recommendations", OptionsMethodologyRecommendations)
		r.GET("/recommendations", GetRecommendations)
	}

	// Methodology with ID
	{
		r.OPTIONS("/:id", OptionsMethodologyDetail)
		r.GET("/:id", GetMethodology)
		r.DELETE("/:id", DeleteMethodology)
		r.POST("/:id/activate", ActivateMethodology)
		r.GET("/:id/allocation", GetAllocation)
		r.POST("/:id/apply", ApplyMethodology)
		r.GET("/:id/validate", ValidateMethodology)
	}
}

// registry returns the methodology registry for the request.
func registry() budget.Registry {
	return budget.NewRegistry(models.NewStore(models.DB))
}

// queryDecimal parses an optional decimal query parameter.
func queryDecimal(c *gin.Context, key string) (*decimal.Decimal, error) {
	value, ok := c.GetQuery(key)
	if !ok || value == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s' is not a number", httputil.ErrInvalidQueryString, key)
	}

	return &d, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Methodologies
// @Success		204
// @Router			/v1/methodologies [options]
func OptionsMethodologyList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Methodologies
// @Success		204
// @Router			/v1/methodologies/active [options]
func OptionsMethodologyActive(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Methodologies
// @Success		204
// @Router			/v1/methodologies/compare [options]
func OptionsMethodologyCompare(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Methodologies
// @Success		204
// @Router			/v1/methodologies/recommendations [options]
func OptionsMethodologyRecommendations(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Methodologies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/methodologies/{id} [options]
func OptionsMethodologyDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Methodology{}, httputil.OptionsGetDelete)
}

// @Summary		Create methodologies
// @Description	Creates new methodologies. New methodologies are inactive.
// @Tags			Methodologies
// @Produce		json
// @Success		201				{object}	MethodologyCreateResponse
// @Failure		400				{object}	MethodologyCreateResponse
// @Failure		500				{object}	MethodologyCreateResponse
// @Param			methodologies	body		[]MethodologyEditable	true	"Methodologies"
// @Router			/v1/methodologies [post]
func CreateMethodologies(c *gin.Context) {
	var editables []MethodologyEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MethodologyCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := MethodologyCreateResponse{}

	for _, editable := range editables {
		methodology := editable.model()

		err = models.DB.WithContext(c).Create(&methodology).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newMethodology(c, methodology)
		r.Data = append(r.Data, MethodologyResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get methodologies
// @Description	Returns all methodologies, ordered by name
// @Tags			Methodologies
// @Produce		json
// @Success		200	{object}	MethodologyListResponse
// @Failure		500	{object}	MethodologyListResponse
// @Router			/v1/methodologies [get]
func GetMethodologies(c *gin.Context) {
	var methodologies []models.Methodology
	err := models.DB.WithContext(c).Order("name ASC").Find(&methodologies).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MethodologyListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Methodology, 0, len(methodologies))
	for _, methodology := range methodologies {
		data = append(data, newMethodology(c, methodology))
	}

	c.JSON(http.StatusOK, MethodologyListResponse{Data: data})
}

// @Summary		Get methodology
// @Description	Returns a specific methodology
// @Tags			Methodologies
// @Produce		json
// @Success		200	{object}	MethodologyResponse
// @Failure		400	{object}	MethodologyResponse
// @Failure		404	{object}	MethodologyResponse
// @Failure		500	{object}	MethodologyResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/methodologies/{id} [get]
func GetMethodology(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MethodologyResponse{
			Error: &s,
		})
		return
	}

	var methodology models.Methodology
	err = models.DB.WithContext(c).First(&methodology, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MethodologyResponse{
			Error: &s,
		})
		return
	}

	data := newMethodology(c, methodology)
	c.JSON(http.StatusOK, MethodologyResponse{Data: &data})
}

// @Summary		Get active methodology
// @Description	Returns the active methodology
// @Tags			Methodologies
// @Produce		json
// @Success		200	{object}	MethodologyResponse
// @Failure		404	{object}	MethodologyResponse
// @Failure		500	{object}	MethodologyResponse
// @Router			/v1/methodologies/active [get]
func GetActiveMethodology(c *gin.Context) {
	var methodology models.Methodology
	err := models.DB.WithContext(c).Where(&models.Methodology{IsActive: true}).First(&methodology).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MethodologyResponse{
			Error: &s,
		})
		return
	}

	data := newMethodology(c, methodology)
	c.JSON(http.StatusOK, MethodologyResponse{Data: &data})
}

// @Summary		Delete methodology
// @Description	Deletes a methodology. The active methodology cannot be deleted.
// @Tags			Methodologies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/methodologies/{id} [delete]
func DeleteMethodology(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = registry().Delete(c, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Activate methodology
// @Description	Makes the methodology the active one. All other methodologies are deactivated.
// @Tags			Methodologies
// @Produce		json
// @Success		200	{object}	MethodologyResponse
// @Failure		400	{object}	MethodologyResponse
// @Failure		404	{object}	MethodologyResponse
// @Failure		500	{object}	MethodologyResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/methodologies/{id}/activate [post]
func ActivateMethodology(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MethodologyResponse{
			Error: &s,
		})
		return
	}

	_, err = registry().Activate(c, uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MethodologyResponse{
			Error: &s,
		})
		return
	}

	var methodology models.Methodology
	err = models.DB.WithContext(c).First(&methodology, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MethodologyResponse{
			Error: &s,
		})
		return
	}

	data := newMethodology(c, methodology)
	c.JSON(http.StatusOK, MethodologyResponse{Data: &data})
}

// @Summary		Calculate allocation
// @Description	Allocates the income over all expense categories with the methodology. Nothing is stored.
// @Tags			Methodologies
// @Produce		json
// @Success		200		{object}	AllocationResponse
// @Failure		400		{object}	AllocationResponse
// @Failure		404		{object}	AllocationResponse
// @Failure		500		{object}	AllocationResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			income	query		number	false	"Income to allocate. Defaults to the actual income of the current month, or the configured monthly income if there is none"
// @Router			/v1/methodologies/{id}/allocation [get]
func GetAllocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &s,
		})
		return
	}

	income, err := queryDecimal(c, "income")
	if err == nil && income != nil && income.IsNegative() {
		err = errIncomeNegative
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &s,
		})
		return
	}

	result, err := registry().CalculateAllocation(c, uri.ID.UUID, income, types.Today())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AllocationResponse{Data: &result})
}

// @Summary		Apply methodology
// @Description	Calculates the allocation. In auto_update mode, every positive allocation is stored as the budget limit of its category.
// @Tags			Methodologies
// @Accept			json
// @Produce		json
// @Success		200		{object}	ApplyResponse
// @Failure		400		{object}	ApplyResponse
// @Failure		404		{object}	ApplyResponse
// @Failure		500		{object}	ApplyResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			request	body		ApplyRequest	true	"Income and mode"
// @Router			/v1/methodologies/{id}/apply [post]
func ApplyMethodology(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ApplyResponse{
			Error: &s,
		})
		return
	}

	var request ApplyRequest
	err = httputil.BindData(c, &request)
	if err == nil && request.Income != nil && request.Income.IsNegative() {
		err = errIncomeNegative
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ApplyResponse{
			Error: &s,
		})
		return
	}

	result, err := registry().Apply(c, uri.ID.UUID, request.Income, request.Mode, types.Today())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ApplyResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ApplyResponse{Data: &result})
}

// @Summary		Validate methodology
// @Description	Checks if the configuration of the methodology is usable
// @Tags			Methodologies
// @Produce		json
// @Success		200	{object}	ValidationResponse
// @Failure		400	{object}	ValidationResponse
// @Failure		404	{object}	ValidationResponse
// @Failure		500	{object}	ValidationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/methodologies/{id}/validate [get]
func ValidateMethodology(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ValidationResponse{
			Error: &s,
		})
		return
	}

	result, err := registry().Validate(c, uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ValidationResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ValidationResponse{Data: &result})
}

// @Summary		Compare methodologies
// @Description	Allocates the same income with up to 5 methodologies
// @Tags			Methodologies
// @Accept			json
// @Produce		json
// @Success		200		{object}	CompareResponse
// @Failure		400		{object}	CompareResponse
// @Failure		404		{object}	CompareResponse
// @Failure		500		{object}	CompareResponse
// @Param			request	body		CompareRequest	true	"Methodologies and income"
// @Router			/v1/methodologies/compare [post]
func CompareMethodologies(c *gin.Context) {
	var request CompareRequest
	err := httputil.BindData(c, &request)
	if err == nil && request.Income.IsNegative() {
		err = errIncomeNegative
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CompareResponse{
			Error: &s,
		})
		return
	}

	comparisons, err := registry().Compare(c, request.IDs, *request.Income)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CompareResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CompareResponse{Data: comparisons})
}

// @Summary		Get recommendations
// @Description	Recommends methodologies based on income, expenses and the budget progress of the current month
// @Tags			Methodologies
// @Produce		json
// @Success		200			{object}	RecommendationsResponse
// @Failure		400			{object}	RecommendationsResponse
// @Failure		500			{object}	RecommendationsResponse
// @Param			income		query		number	false	"Monthly income. Defaults to the actual income of the current month, or the configured monthly income if there is none"
// @Param			expenses	query		number	false	"Monthly expenses. Defaults to the actual expenses of the current month"
// @Router			/v1/methodologies/recommendations [get]
func GetRecommendations(c *gin.Context) {
	income, err := queryDecimal(c, "income")
	if err == nil && income != nil && income.IsNegative() {
		err = errIncomeNegative
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecommendationsResponse{
			Error: &s,
		})
		return
	}

	expenses, err := queryDecimal(c, "expenses")
	if err == nil && expenses != nil && expenses.IsNegative() {
		err = errExpensesNegative
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecommendationsResponse{
			Error: &s,
		})
		return
	}

	today := types.Today()
	month := budget.MonthPeriod(today.Month())
	store := models.NewStore(models.DB)

	if income == nil {
		total, err := budget.MonthlyIncome(c, store, today)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), RecommendationsResponse{
				Error: &s,
			})
			return
		}
		income = &total
	}

	if expenses == nil {
		total, err := store.TotalExpenses(c, &month.Start, &month.End)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), RecommendationsResponse{
				Error: &s,
			})
			return
		}
		expenses = &total
	}

	records, err := progress(c, store, month, today)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecommendationsResponse{
			Error: &s,
		})
		return
	}

	profile := budget.NewFinancialProfile(*income, *expenses, records)
	c.JSON(http.StatusOK, RecommendationsResponse{Data: &Recommendations{
		Recommendations: budget.RecommendMethodologies(profile),
		UserProfile:     profile,
		GeneratedAt:     time.Now().UTC(),
	}})
}
