package budget

import (
	"context"
	"fmt"

	"github.com/envelope-zero/budget-analytics/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MethodologyStore is the persistence the Registry works with.
//
// ActivateMethodology must deactivate all other methodologies and activate
// the given one in a single atomic step. PersistBudgetLimits must store all
// limits or none of them.
type MethodologyStore interface {
	GetMethodology(ctx context.Context, id uuid.UUID) (Methodology, error)
	ActiveMethodology(ctx context.Context) (Methodology, error)
	ActivateMethodology(ctx context.Context, id uuid.UUID) error
	DeleteMethodology(ctx context.Context, id uuid.UUID) error
	ListExpenseCategories(ctx context.Context, withBudgetOnly bool) ([]Category, error)
	TotalIncome(ctx context.Context, start, end *types.Date) (decimal.Decimal, error)
	ConfiguredIncome(ctx context.Context) (decimal.Decimal, bool, error)
	PersistBudgetLimits(ctx context.Context, limits map[uuid.UUID]decimal.Decimal) error
}

// IncomeSource provides actual and configured income.
type IncomeSource interface {
	TotalIncome(ctx context.Context, start, end *types.Date) (decimal.Decimal, error)
	ConfiguredIncome(ctx context.Context) (decimal.Decimal, bool, error)
}

// ApplyMode selects if Apply writes the allocations back to the categories.
type ApplyMode string

const (
	ApplyDryRun     ApplyMode = "dry_run"
	ApplyAutoUpdate ApplyMode = "auto_update"
)

// Valid reports if the mode is a known one.
func (m ApplyMode) Valid() bool {
	return m == ApplyDryRun || m == ApplyAutoUpdate
}

// ApplyResult is the outcome of applying a methodology.
type ApplyResult struct {
	Mode        ApplyMode        `json:"mode"`
	AutoUpdated bool             `json:"autoUpdated"`
	Updated     int              `json:"updatedCategories"`
	Result      AllocationResult `json:"calculationResult"`
}

// ValidationResult reports if a methodology's configuration is usable.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// Registry manages methodologies and runs them against the stored categories.
type Registry struct {
	Store MethodologyStore
}

// NewRegistry returns a Registry backed by store.
func NewRegistry(store MethodologyStore) Registry {
	return Registry{Store: store}
}

// Active returns the active methodology.
func (r Registry) Active(ctx context.Context) (Methodology, error) {
	return r.Store.ActiveMethodology(ctx)
}

// Activate makes the methodology the only active one.
func (r Registry) Activate(ctx context.Context, id uuid.UUID) (Methodology, error) {
	if _, err := r.Store.GetMethodology(ctx, id); err != nil {
		return Methodology{}, err
	}

	if err := r.Store.ActivateMethodology(ctx, id); err != nil {
		return Methodology{}, err
	}

	return r.Store.GetMethodology(ctx, id)
}

// Delete removes a methodology. The active methodology cannot be deleted.
func (r Registry) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := r.Store.GetMethodology(ctx, id)
	if err != nil {
		return err
	}

	if m.IsActive {
		return ErrDeleteActiveMethodology
	}

	return r.Store.DeleteMethodology(ctx, id)
}

// Validate checks the configuration of a stored methodology.
func (r Registry) Validate(ctx context.Context, id uuid.UUID) (ValidationResult, error) {
	m, err := r.Store.GetMethodology(ctx, id)
	if err != nil {
		return ValidationResult{}, err
	}

	if _, err := EngineFor(m); err != nil {
		return ValidationResult{Valid: false, Message: err.Error()}, nil
	}

	return ValidationResult{Valid: true, Message: "Configuration is valid"}, nil
}

// income returns the given income, or the actual income of the month of now.
// A month without income falls back to the configured monthly income.
func (r Registry) income(ctx context.Context, income *decimal.Decimal, now types.Date) (decimal.Decimal, error) {
	if income != nil {
		return *income, nil
	}

	return MonthlyIncome(ctx, r.Store, now)
}

// MonthlyIncome returns the actual income of the month of now. If there is
// none, the configured monthly income of store is returned instead.
func MonthlyIncome(ctx context.Context, store IncomeSource, now types.Date) (decimal.Decimal, error) {
	period := MonthPeriod(now.Month())
	actual, err := store.TotalIncome(ctx, &period.Start, &period.End)
	if err != nil || !actual.IsZero() {
		return actual, err
	}

	configured, ok, err := store.ConfiguredIncome(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	if ok {
		return configured, nil
	}
	return actual, nil
}

// CalculateAllocation allocates the income with the methodology over all expense categories.
//
// If income is nil, the actual income of the month of now is used.
func (r Registry) CalculateAllocation(ctx context.Context, id uuid.UUID, income *decimal.Decimal, now types.Date) (AllocationResult, error) {
	m, err := r.Store.GetMethodology(ctx, id)
	if err != nil {
		return AllocationResult{}, err
	}

	engine, err := EngineFor(m)
	if err != nil {
		return AllocationResult{}, err
	}

	total, err := r.income(ctx, income, now)
	if err != nil {
		return AllocationResult{}, err
	}

	categories, err := r.Store.ListExpenseCategories(ctx, false)
	if err != nil {
		return AllocationResult{}, err
	}

	return engine.Allocate(total, categories), nil
}

// Apply calculates the allocation and, in ApplyAutoUpdate mode, stores every
// positive allocation as the budget limit of its category.
func (r Registry) Apply(ctx context.Context, id uuid.UUID, income *decimal.Decimal, mode ApplyMode, now types.Date) (ApplyResult, error) {
	if !mode.Valid() {
		return ApplyResult{}, fmt.Errorf("%w, got '%s'", ErrApplyMode, mode)
	}

	result, err := r.CalculateAllocation(ctx, id, income, now)
	if err != nil {
		return ApplyResult{}, err
	}

	applied := ApplyResult{
		Mode:   mode,
		Result: result,
	}

	if mode == ApplyDryRun {
		return applied, nil
	}

	limits := make(map[uuid.UUID]decimal.Decimal, len(result.Allocations))
	for _, a := range result.Allocations {
		if a.Amount.IsPositive() {
			limits[a.CategoryID] = a.Amount.Round(2)
		}
	}

	if err := r.Store.PersistBudgetLimits(ctx, limits); err != nil {
		return ApplyResult{}, err
	}
	applied.Updated = len(limits)
	applied.AutoUpdated = true

	return applied, nil
}

// Compare resolves all ids and compares the methodologies. An unknown id fails the
// whole comparison.
func (r Registry) Compare(ctx context.Context, ids []uuid.UUID, income decimal.Decimal) ([]Comparison, error) {
	if len(ids) == 0 || len(ids) > MaxComparisons {
		return nil, fmt.Errorf("%w, got %d", ErrComparisonCount, len(ids))
	}

	methodologies := make([]Methodology, 0, len(ids))
	for _, id := range ids {
		m, err := r.Store.GetMethodology(ctx, id)
		if err != nil {
			return nil, err
		}
		methodologies = append(methodologies, m)
	}

	categories, err := r.Store.ListExpenseCategories(ctx, false)
	if err != nil {
		return nil, err
	}

	return Compare(methodologies, income, categories)
}
