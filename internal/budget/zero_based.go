package budget

import "github.com/shopspring/decimal"

// zeroBasedShares is the share of the remaining income a category without
// an existing budget receives.
var zeroBasedShares = map[Priority]decimal.Decimal{
	PriorityCritical:      decimal.NewFromFloat(0.30),
	PriorityEssential:     decimal.NewFromFloat(0.20),
	PriorityImportant:     decimal.NewFromFloat(0.15),
	PriorityDiscretionary: decimal.NewFromFloat(0.10),
}

// ZeroBasedEngine assigns every unit of income a purpose, walking the
// categories from the highest to the lowest priority.
type ZeroBasedEngine struct {
	name string
}

func (e ZeroBasedEngine) Name() string {
	return e.name
}

func (e ZeroBasedEngine) Type() MethodologyType {
	return MethodologyZeroBased
}

// Validate always succeeds, zero-based budgeting has no configuration.
func (e ZeroBasedEngine) Validate() error {
	return nil
}

// Allocate walks the categories by priority. Categories with a budget limit get
// their limit, all others a priority dependent share of the remaining income.
// No allocation ever exceeds the remaining income and allocation stops as soon as
// nothing is left.
func (e ZeroBasedEngine) Allocate(totalIncome decimal.Decimal, categories []Category) AllocationResult {
	result := AllocationResult{
		Methodology:     e.name,
		MethodologyType: MethodologyZeroBased,
		TotalIncome:     totalIncome,
		Allocations:     make([]Allocation, 0, len(categories)),
	}

	remaining := totalIncome
	for _, c := range byPriority(categories) {
		if !remaining.IsPositive() {
			break
		}

		var amount decimal.Decimal
		if c.BudgetLimit != nil && !c.BudgetLimit.IsZero() {
			amount = decimal.Min(*c.BudgetLimit, remaining)
		} else {
			share, ok := zeroBasedShares[c.BudgetPriority]
			if !ok {
				share = zeroBasedShares[PriorityDiscretionary]
			}
			amount = decimal.Min(remaining.Mul(share), remaining)
		}

		result.Allocations = append(result.Allocations, newAllocation(c, amount, totalIncome))
		remaining = remaining.Sub(amount)
	}

	result.finish()
	return result
}
