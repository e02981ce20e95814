package budget

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Engine is an allocation strategy. It distributes a total income over
// a list of categories.
//
// Implementations are pure: the same input always yields the same result.
type Engine interface {
	Name() string
	Type() MethodologyType
	Validate() error
	Allocate(totalIncome decimal.Decimal, categories []Category) AllocationResult
}

// Allocation is the amount assigned to a single category.
type Allocation struct {
	CategoryID         uuid.UUID       `json:"categoryId"`
	CategoryName       string          `json:"categoryName"`
	Priority           Priority        `json:"priority"`
	Amount             decimal.Decimal `json:"amount"`
	PercentageOfIncome decimal.Decimal `json:"percentageOfIncome"`
	ExistingBudget     decimal.Decimal `json:"existingBudget"`
	Bucket             Bucket          `json:"bucket,omitempty"`         // percentage_based only
	EnvelopeStatus     string          `json:"envelopeStatus,omitempty"` // envelope only
}

// BucketSummary is the allocation state of one percentage bucket.
type BucketSummary struct {
	Bucket     Bucket          `json:"bucket"`
	Percentage decimal.Decimal `json:"percentage"`
	Budget     decimal.Decimal `json:"budget"`
	Allocated  decimal.Decimal `json:"allocated"`
	Remaining  decimal.Decimal `json:"remaining"`
	Categories int             `json:"categories"`
}

// EnvelopeSettings are the envelope options of a methodology.
type EnvelopeSettings struct {
	AllowTransfer         bool            `json:"allowTransfer"`
	RolloverUnused        bool            `json:"rolloverUnused"`
	MaxTransferPercentage decimal.Decimal `json:"maxTransferPercentage"`
}

// AllocationResult is the outcome of an allocation run.
type AllocationResult struct {
	Methodology     string            `json:"methodology"`
	MethodologyType MethodologyType   `json:"methodologyType"`
	TotalIncome     decimal.Decimal   `json:"totalIncome"`
	TotalAllocated  decimal.Decimal   `json:"totalAllocated"`
	Unallocated     decimal.Decimal   `json:"unallocated"`
	OverAllocated   bool              `json:"overAllocated"` // more was allocated than income is available
	Allocations     []Allocation      `json:"allocations"`
	Buckets         []BucketSummary   `json:"buckets,omitempty"`
	Envelope        *EnvelopeSettings `json:"envelope,omitempty"`
}

// finish sets the totals on the result.
func (r *AllocationResult) finish() {
	r.TotalAllocated = decimal.Zero
	for _, a := range r.Allocations {
		r.TotalAllocated = r.TotalAllocated.Add(a.Amount)
	}

	r.Unallocated = r.TotalIncome.Sub(r.TotalAllocated)
	r.OverAllocated = r.Unallocated.IsNegative()
}

// NewEngine returns the allocation engine for the methodology type.
//
// The configuration is not validated here, use Engine.Validate for that.
func NewEngine(t MethodologyType, name string, config Configuration) (Engine, error) {
	if name == "" {
		name = t.DisplayName()
	}

	switch t {
	case MethodologyZeroBased:
		return ZeroBasedEngine{name: name}, nil
	case MethodologyPercentageBased:
		return PercentageSplitEngine{name: name, config: config}, nil
	case MethodologyEnvelope:
		return EnvelopeEngine{name: name, config: config}, nil
	}

	return nil, fmt.Errorf("%w '%s'", ErrUnknownMethodologyType, t)
}

// EngineFor returns the validated engine for a methodology.
func EngineFor(m Methodology) (Engine, error) {
	engine, err := NewEngine(m.Type, m.Name, m.Configuration)
	if err != nil {
		return nil, err
	}

	if err := engine.Validate(); err != nil {
		return nil, fmt.Errorf("methodology '%s': %w", m.Name, err)
	}

	return engine, nil
}

// percentOf returns part as a percentage of total, 0 if total is 0.
func percentOf(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}

// byPriority returns a copy of the categories, stable sorted by priority.
func byPriority(categories []Category) []Category {
	sorted := make([]Category, len(categories))
	copy(sorted, categories)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BudgetPriority.Rank() < sorted[j].BudgetPriority.Rank()
	})

	return sorted
}

// newAllocation creates an allocation for a category.
func newAllocation(c Category, amount, totalIncome decimal.Decimal) Allocation {
	return Allocation{
		CategoryID:         c.ID,
		CategoryName:       c.Name,
		Priority:           c.BudgetPriority,
		Amount:             amount,
		PercentageOfIncome: percentOf(amount, totalIncome),
		ExistingBudget:     c.Limit(),
	}
}
