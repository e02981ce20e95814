package budget

import (
	"github.com/envelope-zero/budget-analytics/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the spending state of a category relative to its limit.
type Status string

const (
	StatusUnder   Status = "under"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
)

var (
	warningThreshold = decimal.NewFromInt(80)
	healthBase       = decimal.NewFromInt(80)
	healthBuffer     = decimal.NewFromInt(20)
	overspendPenalty = decimal.NewFromInt(50)
)

// Transaction is a snapshot of a booked transaction.
//
// Amounts are signed: income is positive, expenses are negative.
type Transaction struct {
	ID         uuid.UUID       `json:"id"`
	Date       types.Date      `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryID uuid.UUID       `json:"categoryId"`
	Type       CategoryType    `json:"type"`
}

// Period is an inclusive range of calendar days.
type Period struct {
	Start types.Date `json:"start"`
	End   types.Date `json:"end"`
}

// MonthPeriod returns the period from the first to the last day of a month.
func MonthPeriod(m types.Month) Period {
	return Period{Start: m.FirstDay(), End: m.LastDay()}
}

// Contains reports if the date is inside the period.
func (p Period) Contains(d types.Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// Days returns the number of days in the period, counting both ends.
func (p Period) Days() int {
	return p.Start.DaysUntil(p.End) + 1
}

// Elapsed returns the number of days of the period that have passed on date now,
// including now itself. It is never less than 1.
func (p Period) Elapsed(now types.Date) int {
	elapsed := p.Start.DaysUntil(types.Min(now, p.End)) + 1
	if elapsed < 1 {
		return 1
	}
	return elapsed
}

// PeriodInfo describes the period a progress record was computed for.
type PeriodInfo struct {
	Start         types.Date `json:"start"`
	End           types.Date `json:"end"`
	TotalDays     int        `json:"totalDays"`
	DaysElapsed   int        `json:"daysElapsed"`
	DaysRemaining int        `json:"daysRemaining"`
}

// Pace compares the actual spending rate with the rate that lands exactly on budget.
type Pace struct {
	DailyPace          decimal.Decimal `json:"dailyPace"`
	ExpectedDaily      decimal.Decimal `json:"expectedDaily"`
	PaceRatio          decimal.Decimal `json:"paceRatio"`
	PredictedOverspend decimal.Decimal `json:"predictedOverspend"` // linear extrapolation to the end of the period
}

// Variance is the difference between actual and time-prorated spending.
type Variance struct {
	ExpectedSpent      decimal.Decimal `json:"expectedSpent"`
	VarianceAmount     decimal.Decimal `json:"varianceAmount"`
	VariancePercentage decimal.Decimal `json:"variancePercentage"`
}

// ProgressRecord is the budget progress of one category in one period.
type ProgressRecord struct {
	CategoryID      uuid.UUID       `json:"categoryId"`
	CategoryName    string          `json:"categoryName"`
	BudgetLimit     decimal.Decimal `json:"budgetLimit"`
	Spent           decimal.Decimal `json:"spent"`
	Remaining       decimal.Decimal `json:"remaining"`
	SpentPercentage decimal.Decimal `json:"spentPercentage"`
	Status          Status          `json:"status"`
	HealthScore     decimal.Decimal `json:"healthScore"` // 0 to 100, higher is better
	Period          PeriodInfo      `json:"period"`
	Pace            Pace            `json:"pace"`
	Variance        Variance        `json:"variance"`
}

// SpentIn returns the absolute sum of all expense transactions for the category in the period.
func SpentIn(categoryID uuid.UUID, transactions []Transaction, period Period) decimal.Decimal {
	spent := decimal.Zero
	for _, t := range transactions {
		if t.CategoryID != categoryID || t.Type != CategoryTypeExpense || !period.Contains(t.Date) {
			continue
		}
		spent = spent.Add(t.Amount.Abs())
	}

	return spent
}

// Analyze computes the progress of a category in a period on date now.
//
// Only expense transactions of the category inside the period are taken into account,
// all others are ignored.
func Analyze(category Category, transactions []Transaction, period Period, now types.Date) ProgressRecord {
	spent := SpentIn(category.ID, transactions, period)
	return analyzeSpent(category, spent, period, now)
}

func analyzeSpent(category Category, spent decimal.Decimal, period Period, now types.Date) ProgressRecord {
	limit := category.Limit()
	totalDays := period.Days()
	if totalDays < 1 {
		totalDays = 1
	}
	elapsed := period.Elapsed(now)

	remainingDays := totalDays - elapsed
	if remainingDays < 0 {
		remainingDays = 0
	}

	r := ProgressRecord{
		CategoryID:      category.ID,
		CategoryName:    category.Name,
		BudgetLimit:     limit,
		Spent:           spent,
		Remaining:       limit.Sub(spent),
		SpentPercentage: decimal.Zero,
		HealthScore:     decimal.NewFromInt(100),
		Period: PeriodInfo{
			Start:         period.Start,
			End:           period.End,
			TotalDays:     totalDays,
			DaysElapsed:   elapsed,
			DaysRemaining: remainingDays,
		},
	}

	days := decimal.NewFromInt(int64(totalDays))
	daysElapsed := decimal.NewFromInt(int64(elapsed))

	if category.HasBudget() {
		r.SpentPercentage = spent.Div(limit).Mul(hundred)
		r.HealthScore = healthScore(limit, spent, days, daysElapsed)
	}

	switch {
	case r.SpentPercentage.GreaterThan(hundred):
		r.Status = StatusOver
	case r.SpentPercentage.GreaterThan(warningThreshold):
		r.Status = StatusWarning
	default:
		r.Status = StatusUnder
	}

	// Pace
	r.Pace.DailyPace = spent.Div(daysElapsed)
	r.Pace.ExpectedDaily = limit.Div(days)
	r.Pace.PaceRatio = decimal.NewFromInt(1)
	if !r.Pace.ExpectedDaily.IsZero() {
		r.Pace.PaceRatio = r.Pace.DailyPace.Div(r.Pace.ExpectedDaily)
	}

	r.Pace.PredictedOverspend = decimal.Zero
	if r.Pace.DailyPace.GreaterThan(r.Pace.ExpectedDaily) {
		r.Pace.PredictedOverspend = r.Pace.DailyPace.Sub(r.Pace.ExpectedDaily).Mul(decimal.NewFromInt(int64(remainingDays)))
	}

	// Variance
	r.Variance.ExpectedSpent = r.Pace.ExpectedDaily.Mul(daysElapsed)
	r.Variance.VarianceAmount = spent.Sub(r.Variance.ExpectedSpent)
	r.Variance.VariancePercentage = percentOf(r.Variance.VarianceAmount, r.Variance.ExpectedSpent)

	return r
}

// healthScore rates the spending of a category from 0 to 100.
//
// At or below the expected spending for the elapsed time, the score is 80 plus up
// to 20 points for the unspent part of the limit. Above it, 50 points are deducted
// from 80 per 100% of overspending.
func healthScore(limit, spent, totalDays, daysElapsed decimal.Decimal) decimal.Decimal {
	expected := limit.Div(totalDays).Mul(daysElapsed)

	if spent.LessThanOrEqual(expected) {
		buffer := limit.Sub(spent).Div(limit).Mul(healthBuffer)
		return decimal.Min(hundred, healthBase.Add(buffer))
	}

	overspendRatio := spent.Sub(expected).Div(expected)
	return decimal.Max(decimal.Zero, healthBase.Sub(overspendRatio.Mul(overspendPenalty)))
}

// ProgressSummary aggregates progress records.
type ProgressSummary struct {
	TotalBudgeted      decimal.Decimal `json:"totalBudgeted"`
	TotalSpent         decimal.Decimal `json:"totalSpent"`
	TotalRemaining     decimal.Decimal `json:"totalRemaining"`
	OverallProgress    decimal.Decimal `json:"overallProgress"` // percentage of the total budget spent
	AverageHealthScore decimal.Decimal `json:"averageHealthScore"`
	Categories         int             `json:"categories"`
	Under              int             `json:"under"`
	Warning            int             `json:"warning"`
	Over               int             `json:"over"`
}

// Summarize aggregates the records.
func Summarize(records []ProgressRecord) ProgressSummary {
	s := ProgressSummary{
		TotalBudgeted:      decimal.Zero,
		TotalSpent:         decimal.Zero,
		AverageHealthScore: decimal.NewFromInt(100),
		Categories:         len(records),
	}

	healthSum := decimal.Zero
	for _, r := range records {
		s.TotalBudgeted = s.TotalBudgeted.Add(r.BudgetLimit)
		s.TotalSpent = s.TotalSpent.Add(r.Spent)
		healthSum = healthSum.Add(r.HealthScore)

		switch r.Status {
		case StatusOver:
			s.Over++
		case StatusWarning:
			s.Warning++
		default:
			s.Under++
		}
	}

	s.TotalRemaining = s.TotalBudgeted.Sub(s.TotalSpent)
	s.OverallProgress = percentOf(s.TotalSpent, s.TotalBudgeted)
	if len(records) > 0 {
		s.AverageHealthScore = healthSum.Div(decimal.NewFromInt(int64(len(records))))
	}

	return s
}
