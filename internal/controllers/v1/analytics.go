package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/envelope-zero/budget-analytics/internal/httputil"
	"github.com/envelope-zero/budget-analytics/internal/models"
	"github.com/envelope-zero/budget-analytics/internal/types"
	"github.com/gin-gonic/gin"
)

// RegisterAnalyticsRoutes registers the routes for budget analytics with
// the RouterGroup that is passed.
func RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/progress", OptionsAnalytics)
	r.GET("/progress", GetProgress)
	r.OPTIONS("/trends", OptionsAnalytics)
	r.GET("/trends", GetTrends)
	r.OPTIONS("/alerts", OptionsAnalytics)
	r.GET("/alerts", GetAlerts)
	r.OPTIONS("/performance", OptionsAnalytics)
	r.GET("/performance", GetPerformance)
	r.OPTIONS("/impact/:id", OptionsImpact)
	r.GET("/impact/:id", GetImpact)
}

// progress analyzes every expense category with a budget in the period.
func progress(ctx context.Context, store models.Store, period budget.Period, now types.Date) ([]budget.ProgressRecord, error) {
	categories, err := store.ListExpenseCategories(ctx, true)
	if err != nil {
		return nil, err
	}

	transactions, err := store.Transactions(ctx, &period.Start, &period.End)
	if err != nil {
		return nil, err
	}

	records := make([]budget.ProgressRecord, 0, len(categories))
	for _, category := range categories {
		records = append(records, budget.Analyze(category, transactions, period, now))
	}

	return records, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analytics
// @Success		204
// @Router			/v1/analytics/progress [options]
// @Router			/v1/analytics/trends [options]
// @Router			/v1/analytics/alerts [options]
// @Router			/v1/analytics/performance [options]
func OptionsAnalytics(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analytics
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/analytics/impact/{id} [options]
func OptionsImpact(c *gin.Context) {
	resourceOptionsDetail(c, models.Transaction{}, httputil.OptionsGet)
}

// @Summary		Get budget progress
// @Description	Returns the progress of all budgeted expense categories in the period
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	ProgressResponse
// @Failure		400		{object}	ProgressResponse
// @Failure		500		{object}	ProgressResponse
// @Param			start	query		string	false	"First day of the period, YYYY-MM-DD. Defaults to the first day of the current month"
// @Param			end		query		string	false	"Last day of the period, YYYY-MM-DD. Defaults to the last day of the current month"
// @Router			/v1/analytics/progress [get]
func GetProgress(c *gin.Context) {
	var query QueryPeriod
	err := c.ShouldBindQuery(&query)
	if err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, ProgressResponse{
			Error: &s,
		})
		return
	}

	today := types.Today()
	period, err := query.period(today)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProgressResponse{
			Error: &s,
		})
		return
	}

	records, err := progress(c, models.NewStore(models.DB), period, today)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProgressResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ProgressResponse{Data: &Progress{
		Period:     period,
		Categories: records,
		Summary:    budget.Summarize(records),
	}})
}

// @Summary		Get spending trends
// @Description	Returns the budget progress for each of the last months, oldest first. The current month is included.
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	TrendsResponse
// @Failure		400		{object}	TrendsResponse
// @Failure		500		{object}	TrendsResponse
// @Param			months	query		int	false	"Number of months, 1 to 24. Defaults to 6"
// @Router			/v1/analytics/trends [get]
func GetTrends(c *gin.Context) {
	months := budget.DefaultTrendMonths
	if value, ok := c.GetQuery("months"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			s := fmt.Errorf("%w: 'months' is not a number", httputil.ErrInvalidQueryString).Error()
			c.JSON(http.StatusBadRequest, TrendsResponse{
				Error: &s,
			})
			return
		}
		months = parsed
	}

	today := types.Today()
	store := models.NewStore(models.DB)

	categories, err := store.ListExpenseCategories(c, true)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TrendsResponse{
			Error: &s,
		})
		return
	}

	// Out of range values are rejected by Historical
	var transactions budget.Transactions
	if months >= 1 && months <= budget.MaxTrendMonths {
		start := today.Month().AddDate(0, -(months - 1)).FirstDay()
		end := today.Month().LastDay()

		transactions, err = store.Transactions(c, &start, &end)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), TrendsResponse{
				Error: &s,
			})
			return
		}
	}

	snapshots, err := budget.Historical(categories, transactions, months, today)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TrendsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, TrendsResponse{Data: snapshots})
}

// @Summary		Get predictive alerts
// @Description	Returns alerts for budgeted expense categories in the current month, most severe first
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	AlertsResponse
// @Failure		500	{object}	AlertsResponse
// @Router			/v1/analytics/alerts [get]
func GetAlerts(c *gin.Context) {
	today := types.Today()

	records, err := progress(c, models.NewStore(models.DB), budget.MonthPeriod(today.Month()), today)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AlertsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AlertsResponse{Data: budget.PredictiveAlerts(records)})
}

// @Summary		Get budget performance
// @Description	Returns the performance score and progress summary of the current month
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	PerformanceResponse
// @Failure		500	{object}	PerformanceResponse
// @Router			/v1/analytics/performance [get]
func GetPerformance(c *gin.Context) {
	today := types.Today()
	period := budget.MonthPeriod(today.Month())

	records, err := progress(c, models.NewStore(models.DB), period, today)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PerformanceResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, PerformanceResponse{Data: &Performance{
		Score:   budget.PerformanceScore(records),
		Period:  period,
		Summary: budget.Summarize(records),
	}})
}

// @Summary		Get transaction impact
// @Description	Returns the impact of an expense transaction on the budget of its category in the month of the transaction
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	ImpactResponse
// @Failure		400	{object}	ImpactResponse
// @Failure		404	{object}	ImpactResponse
// @Failure		500	{object}	ImpactResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/analytics/impact/{id} [get]
func GetImpact(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImpactResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.WithContext(c).Preload("Category").First(&transaction, uri.ID).Error
	if err == nil && transaction.Type != budget.CategoryTypeExpense {
		err = errImpactIncome
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImpactResponse{
			Error: &s,
		})
		return
	}

	snapshot := transaction.Snapshot()
	period := budget.MonthPeriod(snapshot.Date.Month())

	transactions, err := models.NewStore(models.DB).Transactions(c, &period.Start, &period.End)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImpactResponse{
			Error: &s,
		})
		return
	}

	impact := budget.TransactionImpact(
		transaction.Category.Snapshot(),
		snapshot,
		transactions.Spent(transaction.CategoryID, period),
	)
	c.JSON(http.StatusOK, ImpactResponse{Data: &impact})
}
