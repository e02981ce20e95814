package budget

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bucket is one of the three spending groups of a percentage split.
type Bucket string

const (
	BucketNeeds   Bucket = "needs"
	BucketWants   Bucket = "wants"
	BucketSavings Bucket = "savings"
)

var buckets = []Bucket{BucketNeeds, BucketWants, BucketSavings}

// BucketFor returns the bucket a priority belongs to.
func BucketFor(p Priority) Bucket {
	switch p {
	case PriorityCritical, PriorityEssential:
		return BucketNeeds
	case PriorityImportant:
		return BucketWants
	}
	return BucketSavings
}

// Configuration keys and defaults for percentage splits.
const (
	ConfigNeedsPercentage   = "needs_percentage"
	ConfigWantsPercentage   = "wants_percentage"
	ConfigSavingsPercentage = "savings_percentage"
)

var defaultSplit = map[Bucket]decimal.Decimal{
	BucketNeeds:   decimal.NewFromInt(50),
	BucketWants:   decimal.NewFromInt(30),
	BucketSavings: decimal.NewFromInt(20),
}

var splitKeys = map[Bucket]string{
	BucketNeeds:   ConfigNeedsPercentage,
	BucketWants:   ConfigWantsPercentage,
	BucketSavings: ConfigSavingsPercentage,
}

// PercentageSplitEngine splits the income into needs, wants and savings
// (50/30/20 unless configured otherwise) and distributes every bucket over
// its categories.
type PercentageSplitEngine struct {
	name   string
	config Configuration
}

func (e PercentageSplitEngine) Name() string {
	return e.name
}

func (e PercentageSplitEngine) Type() MethodologyType {
	return MethodologyPercentageBased
}

// percentages reads the split from the configuration.
func (e PercentageSplitEngine) percentages() (map[Bucket]decimal.Decimal, error) {
	split := make(map[Bucket]decimal.Decimal, len(buckets))
	for _, b := range buckets {
		p, err := e.config.Decimal(splitKeys[b], defaultSplit[b])
		if err != nil {
			return nil, err
		}
		split[b] = p
	}

	return split, nil
}

// Validate verifies that all percentages are in range and sum up to exactly 100.
func (e PercentageSplitEngine) Validate() error {
	split, err := e.percentages()
	if err != nil {
		return err
	}

	sum := decimal.Zero
	for _, b := range buckets {
		p := split[b]
		if p.IsNegative() || p.GreaterThan(hundred) {
			return fmt.Errorf("%w, %s is %s", ErrPercentageOutOfRange, splitKeys[b], p)
		}
		sum = sum.Add(p)
	}

	if !sum.Equal(hundred) {
		return fmt.Errorf("%w, got %s", ErrPercentagesSum, sum)
	}

	return nil
}

// Allocate assigns every category to the bucket of its priority. Inside a bucket,
// categories with an existing budget keep it, capped at the bucket budget. The bucket
// budget is split evenly between all other categories of the bucket.
//
// An invalid configuration falls back to the default split, callers are expected to
// call Validate first.
func (e PercentageSplitEngine) Allocate(totalIncome decimal.Decimal, categories []Category) AllocationResult {
	split, err := e.percentages()
	if err != nil {
		split = defaultSplit
	}

	result := AllocationResult{
		Methodology:     e.name,
		MethodologyType: MethodologyPercentageBased,
		TotalIncome:     totalIncome,
		Allocations:     make([]Allocation, 0, len(categories)),
		Buckets:         make([]BucketSummary, 0, len(buckets)),
	}

	members := make(map[Bucket][]Category, len(buckets))
	for _, c := range categories {
		b := BucketFor(c.BudgetPriority)
		members[b] = append(members[b], c)
	}

	for _, b := range buckets {
		summary := BucketSummary{
			Bucket:     b,
			Percentage: split[b],
			Budget:     totalIncome.Mul(split[b]).Div(hundred),
			Allocated:  decimal.Zero,
			Categories: len(members[b]),
		}

		unbudgeted := 0
		for _, c := range members[b] {
			if !c.HasBudget() {
				unbudgeted++
			}
		}

		evenShare := decimal.Zero
		if unbudgeted > 0 {
			evenShare = summary.Budget.Div(decimal.NewFromInt(int64(unbudgeted)))
		}

		for _, c := range members[b] {
			amount := evenShare
			if c.HasBudget() {
				amount = decimal.Min(*c.BudgetLimit, summary.Budget)
			}

			allocation := newAllocation(c, amount, totalIncome)
			allocation.Bucket = b
			result.Allocations = append(result.Allocations, allocation)

			summary.Allocated = summary.Allocated.Add(amount)
		}

		summary.Remaining = summary.Budget.Sub(summary.Allocated)
		result.Buckets = append(result.Buckets, summary)
	}

	result.finish()
	return result
}
