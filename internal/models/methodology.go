package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/envelope-zero/budget-analytics/internal/budget"
	"gorm.io/gorm"
)

// Configuration is the methodology configuration, stored as JSON text.
type Configuration budget.Configuration

// GormDataType stores the configuration in a text column.
func (Configuration) GormDataType() string {
	return "text"
}

// Scan implements the sql.Scanner interface.
func (c *Configuration) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*c = Configuration{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Configuration", value)
	}

	if len(data) == 0 {
		*c = Configuration{}
		return nil
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("configuration is not valid JSON: %w", err)
	}
	*c = parsed
	return nil
}

// Value implements the driver.Valuer interface.
func (c Configuration) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}

	data, err := json.Marshal(map[string]any(c))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Methodology is a stored budget methodology. At most one methodology is active.
type Methodology struct {
	DefaultModel
	Name          string                 `json:"name" gorm:"uniqueIndex" example:"50/30/20 Rule"`                                                  // Name of the methodology
	Description   string                 `json:"description" example:"Allocate 50% for needs, 30% for wants, and 20% for savings." default:""` // Description
	Type          budget.MethodologyType `json:"methodologyType" gorm:"column:methodology_type" example:"percentage_based"`                        // zero_based, percentage_based or envelope
	IsActive      bool                   `json:"isActive" example:"false" default:"false"`                                                         // Is this the active methodology?
	IsDefault     bool                   `json:"isDefault" example:"false" default:"false"`                                                        // Is this the default methodology?
	Configuration Configuration          `json:"configuration" swaggertype:"object"`                                                               // Methodology specific configuration
}

// BeforeSave trims whitespace and rejects configurations the engine cannot run.
func (m *Methodology) BeforeSave(_ *gorm.DB) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Description = strings.TrimSpace(m.Description)

	if m.Name == "" {
		return ErrMethodologyNameEmpty
	}

	if m.Configuration == nil {
		m.Configuration = Configuration{}
	}

	_, err := budget.EngineFor(m.Snapshot())
	return err
}

// Snapshot returns the methodology as input for the budget engine.
func (m Methodology) Snapshot() budget.Methodology {
	return budget.Methodology{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Type:          m.Type,
		IsActive:      m.IsActive,
		IsDefault:     m.IsDefault,
		Configuration: budget.Configuration(m.Configuration),
	}
}

// defaultMethodologies are created on an empty database.
var defaultMethodologies = []Methodology{
	{
		Name:          "Zero-Based Budgeting",
		Description:   "Every dollar is assigned a specific purpose. Start from zero and justify every expense based on priority.",
		Type:          budget.MethodologyZeroBased,
		IsActive:      true,
		IsDefault:     true,
		Configuration: Configuration{},
	},
	{
		Name:          "50/30/20 Rule",
		Description:   "Allocate 50% for needs, 30% for wants, and 20% for savings and debt repayment.",
		Type:          budget.MethodologyPercentageBased,
		Configuration: Configuration{"needs_percentage": 50.0, "wants_percentage": 30.0, "savings_percentage": 20.0},
	},
	{
		Name:          "60/20/20 Conservative Rule",
		Description:   "More conservative approach: 60% for needs, 20% for wants, 20% for savings.",
		Type:          budget.MethodologyPercentageBased,
		Configuration: Configuration{"needs_percentage": 60.0, "wants_percentage": 20.0, "savings_percentage": 20.0},
	},
	{
		Name:          "70/20/10 Relaxed Rule",
		Description:   "More relaxed approach: 70% for needs, 20% for wants, 10% for savings.",
		Type:          budget.MethodologyPercentageBased,
		Configuration: Configuration{"needs_percentage": 70.0, "wants_percentage": 20.0, "savings_percentage": 10.0},
	},
	{
		Name:          "Envelope Budgeting",
		Description:   "Allocate specific amounts to spending \"envelopes\" for each category. Strict spending limits.",
		Type:          budget.MethodologyEnvelope,
		Configuration: Configuration{"allow_envelope_transfer": false, "rollover_unused": true},
	},
	{
		Name:          "Flexible Envelope System",
		Description:   "Envelope budgeting with flexibility to transfer between categories when needed.",
		Type:          budget.MethodologyEnvelope,
		Configuration: Configuration{"allow_envelope_transfer": true, "rollover_unused": true, "max_transfer_percentage": 20.0},
	},
}

// seedMethodologies creates the default methodologies when none exist.
func seedMethodologies(db *gorm.DB) error {
	var count int64
	err := db.Model(&Methodology{}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	methodologies := make([]Methodology, len(defaultMethodologies))
	copy(methodologies, defaultMethodologies)

	return db.Create(&methodologies).Error
}
