package budget

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Configuration keys for envelope budgeting.
const (
	ConfigAllowTransfer         = "allow_transfer"
	ConfigRolloverUnused        = "rollover_unused"
	ConfigMaxTransferPercentage = "max_transfer_percentage"
)

// Envelope states.
const (
	EnvelopeActive = "active"
	EnvelopeEmpty  = "empty"
)

// envelopeShares is the share of the remaining income an envelope for a
// category without budget limit receives.
var envelopeShares = map[Priority]decimal.Decimal{
	PriorityCritical:      decimal.NewFromFloat(0.25),
	PriorityEssential:     decimal.NewFromFloat(0.15),
	PriorityImportant:     decimal.NewFromFloat(0.10),
	PriorityDiscretionary: decimal.NewFromFloat(0.05),
}

// EnvelopeEngine puts a fixed amount into one envelope per category.
type EnvelopeEngine struct {
	name   string
	config Configuration
}

func (e EnvelopeEngine) Name() string {
	return e.name
}

func (e EnvelopeEngine) Type() MethodologyType {
	return MethodologyEnvelope
}

// settings reads the envelope options from the configuration.
//
// The legacy key "allow_envelope_transfer" is accepted for allow_transfer.
func (e EnvelopeEngine) settings() (EnvelopeSettings, error) {
	var s EnvelopeSettings

	legacy, err := e.config.Bool("allow_envelope_transfer", false)
	if err != nil {
		return EnvelopeSettings{}, err
	}

	s.AllowTransfer, err = e.config.Bool(ConfigAllowTransfer, legacy)
	if err != nil {
		return EnvelopeSettings{}, err
	}

	s.RolloverUnused, err = e.config.Bool(ConfigRolloverUnused, true)
	if err != nil {
		return EnvelopeSettings{}, err
	}

	s.MaxTransferPercentage, err = e.config.Decimal(ConfigMaxTransferPercentage, decimal.Zero)
	if err != nil {
		return EnvelopeSettings{}, err
	}

	return s, nil
}

// Validate verifies the types of all options and the range of the maximum transfer percentage.
func (e EnvelopeEngine) Validate() error {
	s, err := e.settings()
	if err != nil {
		return err
	}

	if s.MaxTransferPercentage.IsNegative() || s.MaxTransferPercentage.GreaterThan(hundred) {
		return fmt.Errorf("%w, %s is %s", ErrPercentageOutOfRange, ConfigMaxTransferPercentage, s.MaxTransferPercentage)
	}

	return nil
}

// Allocate creates one envelope per category in the order given. An envelope holds the
// category's budget limit if it has one, otherwise a priority dependent share of the
// income that is left after all previous envelopes.
//
// Budget limits are always honored, even if they exceed the income. The result is then
// flagged as over-allocated with a negative unallocated amount.
func (e EnvelopeEngine) Allocate(totalIncome decimal.Decimal, categories []Category) AllocationResult {
	settings, err := e.settings()
	if err != nil {
		settings = EnvelopeSettings{RolloverUnused: true}
	}

	result := AllocationResult{
		Methodology:     e.name,
		MethodologyType: MethodologyEnvelope,
		TotalIncome:     totalIncome,
		Allocations:     make([]Allocation, 0, len(categories)),
		Envelope:        &settings,
	}

	remaining := totalIncome
	for _, c := range categories {
		amount := decimal.Zero
		if c.HasBudget() {
			amount = *c.BudgetLimit
		} else if remaining.IsPositive() {
			share, ok := envelopeShares[c.BudgetPriority]
			if !ok {
				share = envelopeShares[PriorityDiscretionary]
			}
			amount = remaining.Mul(share)
		}

		allocation := newAllocation(c, amount, totalIncome)
		allocation.EnvelopeStatus = EnvelopeEmpty
		if amount.IsPositive() {
			allocation.EnvelopeStatus = EnvelopeActive
		}

		result.Allocations = append(result.Allocations, allocation)
		remaining = remaining.Sub(amount)
	}

	result.finish()
	return result
}
