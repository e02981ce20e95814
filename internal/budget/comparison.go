package budget

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxComparisons is the maximum number of methodologies compared at once.
const MaxComparisons = 5

// Comparison is the allocation result of one compared methodology.
type Comparison struct {
	MethodologyID   uuid.UUID        `json:"methodologyId"`
	MethodologyName string           `json:"methodologyName"`
	Result          AllocationResult `json:"calculationResult"`
}

// Compare runs every methodology through its engine with the same income and
// categories. Results are in the order of the methodologies.
//
// Either all methodologies are compared or an error is returned.
func Compare(methodologies []Methodology, income decimal.Decimal, categories []Category) ([]Comparison, error) {
	if len(methodologies) == 0 || len(methodologies) > MaxComparisons {
		return nil, fmt.Errorf("%w, got %d", ErrComparisonCount, len(methodologies))
	}

	comparisons := make([]Comparison, 0, len(methodologies))
	for _, m := range methodologies {
		engine, err := EngineFor(m)
		if err != nil {
			return nil, err
		}

		comparisons = append(comparisons, Comparison{
			MethodologyID:   m.ID,
			MethodologyName: m.Name,
			Result:          engine.Allocate(income, categories),
		})
	}

	return comparisons, nil
}
