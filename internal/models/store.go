package models

import (
	"context"
	"fmt"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"github.com/envelope-zero/budget-analytics/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errMethodologyNotFound = fmt.Errorf("%w methodology matching your query", ErrResourceNotFound)

// Store reads and writes the budget engine's snapshots with gorm.
type Store struct {
	DB *gorm.DB
}

// NewStore returns a Store using db.
func NewStore(db *gorm.DB) Store {
	return Store{DB: db}
}

// GetMethodology returns the methodology with the given ID.
func (s Store) GetMethodology(ctx context.Context, id uuid.UUID) (budget.Methodology, error) {
	var m Methodology
	err := s.DB.WithContext(ctx).First(&m, id).Error
	if err != nil {
		return budget.Methodology{}, err
	}

	return m.Snapshot(), nil
}

// ActiveMethodology returns the active methodology.
func (s Store) ActiveMethodology(ctx context.Context) (budget.Methodology, error) {
	var m Methodology
	err := s.DB.WithContext(ctx).Where(&Methodology{IsActive: true}).First(&m).Error
	if err != nil {
		return budget.Methodology{}, err
	}

	return m.Snapshot(), nil
}

// ActivateMethodology activates the methodology and deactivates all others
// in one database transaction.
//
// UpdateColumn skips the hooks, the configuration is not touched.
func (s Store) ActivateMethodology(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Methodology{}).Where("id = ?", id).UpdateColumn("is_active", true)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return errMethodologyNotFound
		}

		return tx.Model(&Methodology{}).Where("id <> ? AND is_active = ?", id, true).UpdateColumn("is_active", false).Error
	})
}

// DeleteMethodology deletes an inactive methodology.
func (s Store) DeleteMethodology(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m Methodology
		err := tx.First(&m, id).Error
		if err != nil {
			return err
		}

		// Activation might have happened since the caller checked
		if m.IsActive {
			return budget.ErrDeleteActiveMethodology
		}

		return tx.Delete(&m).Error
	})
}

// ListExpenseCategories returns all expense categories ordered by name.
// With withBudgetOnly, categories without budget limit are left out.
func (s Store) ListExpenseCategories(ctx context.Context, withBudgetOnly bool) ([]budget.Category, error) {
	query := s.DB.WithContext(ctx).Where(&Category{Type: budget.CategoryTypeExpense}).Order("name ASC")
	if withBudgetOnly {
		query = query.Where("budget_limit IS NOT NULL")
	}

	var categories []Category
	err := query.Find(&categories).Error
	if err != nil {
		return nil, err
	}

	snapshots := make([]budget.Category, 0, len(categories))
	for _, c := range categories {
		snapshots = append(snapshots, c.Snapshot())
	}

	return snapshots, nil
}

// TotalIncome sums all income transactions between start and end, both inclusive.
// A nil bound is not applied.
//
// Without any bound, the monthly equivalent of the configured incomes is
// returned if at least one income is configured.
func (s Store) TotalIncome(ctx context.Context, start, end *types.Date) (decimal.Decimal, error) {
	if start == nil && end == nil {
		configured, ok, err := s.ConfiguredIncome(ctx)
		if err != nil {
			return decimal.Zero, err
		}

		if ok {
			return configured, nil
		}
	}

	return s.sum(ctx, "SUM(amount)", budget.CategoryTypeIncome, start, end)
}

// ConfiguredIncome returns the sum of all configured incomes, normalized to
// one month. ok is false when no income is configured.
func (s Store) ConfiguredIncome(ctx context.Context) (total decimal.Decimal, ok bool, err error) {
	var incomes []Income
	err = s.DB.WithContext(ctx).Find(&incomes).Error
	if err != nil {
		return decimal.Zero, false, err
	}

	total = decimal.Zero
	for _, i := range incomes {
		total = total.Add(i.Monthly())
	}

	return total, len(incomes) > 0, nil
}

// TotalExpenses sums the absolute amounts of all expense transactions between
// start and end, both inclusive. A nil bound is not applied.
func (s Store) TotalExpenses(ctx context.Context, start, end *types.Date) (decimal.Decimal, error) {
	return s.sum(ctx, "SUM(ABS(amount))", budget.CategoryTypeExpense, start, end)
}

func (s Store) sum(ctx context.Context, selection string, t budget.CategoryType, start, end *types.Date) (decimal.Decimal, error) {
	var total decimal.NullDecimal

	query := s.DB.WithContext(ctx).Select(selection).Table("transactions").Where("transactions.type = ?", t)
	query = DateRange(query, start, end)

	err := query.Find(&total).Error
	if err != nil {
		return decimal.Zero, err
	}

	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal, nil
}

// Transactions returns all transactions between start and end, both inclusive,
// as engine snapshots ordered by date.
func (s Store) Transactions(ctx context.Context, start, end *types.Date) (budget.Transactions, error) {
	var transactions []Transaction
	err := DateRange(s.DB.WithContext(ctx), start, end).Order("date ASC").Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	snapshots := make(budget.Transactions, 0, len(transactions))
	for _, t := range transactions {
		snapshots = append(snapshots, t.Snapshot())
	}

	return snapshots, nil
}

// PersistBudgetLimits sets the budget limits of expense categories in one
// database transaction. If any category is unknown or not an expense
// category, no limit is changed.
func (s Store) PersistBudgetLimits(ctx context.Context, limits map[uuid.UUID]decimal.Decimal) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range limits {
			var category Category
			err := tx.First(&category, id).Error
			if err != nil {
				return err
			}

			if category.Type != budget.CategoryTypeExpense {
				return ErrBudgetOnIncomeCategory
			}

			category.BudgetLimit = &amount
			err = tx.Save(&category).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// DateRange restricts a transaction query to dates between start and end,
// both inclusive. A nil bound is not applied.
func DateRange(query *gorm.DB, start, end *types.Date) *gorm.DB {
	if start != nil {
		query = query.Where("date(transactions.date) >= date(?)", start.String())
	}

	if end != nil {
		query = query.Where("date(transactions.date) <= date(?)", end.String())
	}

	return query
}
