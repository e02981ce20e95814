package budget

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by this package wraps one of them.
var (
	ErrValidation = errors.New("validation failed")
	ErrInvariant  = errors.New("operation violates an invariant")
)

var (
	ErrUnknownMethodologyType  = fmt.Errorf("%w: unknown methodology type", ErrValidation)
	ErrPercentagesSum          = fmt.Errorf("%w: needs, wants and savings percentages must sum up to 100", ErrValidation)
	ErrPercentageOutOfRange    = fmt.Errorf("%w: percentages must be between 0 and 100", ErrValidation)
	ErrConfigurationValue      = fmt.Errorf("%w: configuration value has the wrong type", ErrValidation)
	ErrComparisonCount         = fmt.Errorf("%w: between 1 and %d methodologies can be compared", ErrValidation, MaxComparisons)
	ErrTrendMonthsOutOfRange   = fmt.Errorf("%w: the number of months must be between 1 and %d", ErrValidation, MaxTrendMonths)
	ErrApplyMode               = fmt.Errorf("%w: apply mode must be one of dry_run, auto_update", ErrValidation)
	ErrDeleteActiveMethodology = fmt.Errorf("%w: the active methodology cannot be deleted", ErrInvariant)
)
