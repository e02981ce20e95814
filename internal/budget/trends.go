package budget

import (
	"fmt"

	"github.com/envelope-zero/budget-analytics/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxTrendMonths is the longest history Historical computes.
const MaxTrendMonths = 24

// DefaultTrendMonths is used when no number of months is requested.
const DefaultTrendMonths = 6

// SpendingSource provides the absolute expense sum of a category in a period.
type SpendingSource interface {
	Spent(categoryID uuid.UUID, period Period) decimal.Decimal
}

// Transactions is an in-memory transaction snapshot.
type Transactions []Transaction

// Spent implements SpendingSource.
func (t Transactions) Spent(categoryID uuid.UUID, period Period) decimal.Decimal {
	return SpentIn(categoryID, t, period)
}

// Between returns all transactions inside the period.
func (t Transactions) Between(period Period) Transactions {
	filtered := make(Transactions, 0, len(t))
	for _, transaction := range t {
		if period.Contains(transaction.Date) {
			filtered = append(filtered, transaction)
		}
	}
	return filtered
}

// ForCategory returns all transactions of a category.
func (t Transactions) ForCategory(id uuid.UUID) Transactions {
	filtered := make(Transactions, 0)
	for _, transaction := range t {
		if transaction.CategoryID == id {
			filtered = append(filtered, transaction)
		}
	}
	return filtered
}

// MonthlySnapshot is the aggregated budget progress of one calendar month.
type MonthlySnapshot struct {
	Month           types.Month      `json:"period"`
	PeriodStart     types.Date       `json:"periodStart"`
	PeriodEnd       types.Date       `json:"periodEnd"`
	Categories      []ProgressRecord `json:"categories"`
	TotalBudgeted   decimal.Decimal  `json:"totalBudgeted"`
	TotalSpent      decimal.Decimal  `json:"totalSpent"`
	TotalRemaining  decimal.Decimal  `json:"totalRemaining"`
	OverallProgress decimal.Decimal  `json:"overallProgress"`
}

// Historical returns one snapshot for each of the last months calendar months
// up to and including the month of now, oldest first.
func Historical(categories []Category, source SpendingSource, months int, now types.Date) ([]MonthlySnapshot, error) {
	if months < 1 || months > MaxTrendMonths {
		return nil, fmt.Errorf("%w, got %d", ErrTrendMonthsOutOfRange, months)
	}

	current := now.Month()
	snapshots := make([]MonthlySnapshot, 0, months)

	for i := months - 1; i >= 0; i-- {
		month := current.AddDate(0, -i)
		period := MonthPeriod(month)

		snapshot := MonthlySnapshot{
			Month:       month,
			PeriodStart: period.Start,
			PeriodEnd:   period.End,
			Categories:  make([]ProgressRecord, 0, len(categories)),
		}

		for _, category := range categories {
			spent := source.Spent(category.ID, period)
			snapshot.Categories = append(snapshot.Categories, analyzeSpent(category, spent, period, now))
		}

		summary := Summarize(snapshot.Categories)
		snapshot.TotalBudgeted = summary.TotalBudgeted
		snapshot.TotalSpent = summary.TotalSpent
		snapshot.TotalRemaining = summary.TotalRemaining
		snapshot.OverallProgress = summary.OverallProgress

		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}
