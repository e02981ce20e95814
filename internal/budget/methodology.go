package budget

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MethodologyType identifies an allocation strategy.
type MethodologyType string

const (
	MethodologyZeroBased       MethodologyType = "zero_based"
	MethodologyPercentageBased MethodologyType = "percentage_based"
	MethodologyEnvelope        MethodologyType = "envelope"
)

// DisplayName returns a human readable name for the methodology type,
// e.g. "Percentage Based".
func (t MethodologyType) DisplayName() string {
	return title(string(t))
}

// Configuration is the methodology specific key/value configuration.
type Configuration map[string]any

// Decimal returns the value for key as decimal. If the key is not set,
// the fallback is returned.
func (c Configuration) Decimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return fallback, nil
	}

	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case json.Number:
		return decimal.NewFromString(n.String())
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %s is not a number", ErrConfigurationValue, key)
		}
		return d, nil
	case decimal.Decimal:
		return n, nil
	}

	return decimal.Zero, fmt.Errorf("%w: %s is not a number", ErrConfigurationValue, key)
}

// Bool returns the value for key as bool. If the key is not set,
// the fallback is returned.
func (c Configuration) Bool(key string, fallback bool) (bool, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return fallback, nil
	}

	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err == nil {
			return parsed, nil
		}
	}

	return false, fmt.Errorf("%w: %s is not a boolean", ErrConfigurationValue, key)
}

// Methodology describes a stored budget methodology.
type Methodology struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Type          MethodologyType `json:"methodologyType"`
	IsActive      bool            `json:"isActive"`
	IsDefault     bool            `json:"isDefault"`
	Configuration Configuration   `json:"configuration"`
}

// title turns identifiers like "percentage_based" into "Percentage Based".
func title(s string) string {
	// Casers keep state and must not be shared between goroutines
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}
