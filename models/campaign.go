package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CampaignStatus represents the lifecycle status of a campaign
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusSent      CampaignStatus = "sent"
)

// String returns the string representation of the status
func (s CampaignStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusScheduled, CampaignStatusSent:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for CampaignStatus
func (s *CampaignStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = CampaignStatus(v)
	case []byte:
		*s = CampaignStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CampaignStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for CampaignStatus
func (s CampaignStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid CampaignStatus: %s", s)
	}
	return string(s), nil
}

// MappingType says where a placeholder binding takes its value from:
// a contact field name or a static literal.
type MappingType string

const (
	MappingTypeField  MappingType = "field"
	MappingTypeStatic MappingType = "static"
)

// String returns the string representation of the mapping type
func (t MappingType) String() string {
	return string(t)
}

// Valid checks if the mapping type is valid
func (t MappingType) Valid() bool {
	switch t {
	case MappingTypeField, MappingTypeStatic:
		return true
	default:
		return false
	}
}

// VariableMapping binds one placeholder name to either a contact field
// or a literal value. Mappings are stored as supplied: duplicates of the
// same variable name stay separate entries.
type VariableMapping struct {
	VariableName string      `json:"variable_name"`
	Type         MappingType `json:"type"`
	Value        string      `json:"value"`
}

// VariableMappingList is the JSONB-backed list of placeholder bindings
type VariableMappingList []VariableMapping

// Value implements the driver.Valuer interface for VariableMappingList
func (l VariableMappingList) Value() (driver.Value, error) {
	if l == nil {
		l = VariableMappingList{}
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for VariableMappingList
func (l *VariableMappingList) Scan(value any) error {
	if value == nil {
		*l = VariableMappingList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into VariableMappingList", value)
	}

	return json.Unmarshal(bytes, l)
}

// AudienceFilterAll disables filtering on an audience axis
const AudienceFilterAll = "all"

// AudienceFilters holds the classification predicates used to select
// contacts when no explicit recipient list is given. They are kept on
// the campaign for auditability; the recipient snapshot is not
// re-evaluated against them unless explicitly re-resolved.
type AudienceFilters struct {
	Category string `json:"category"`
	Status   string `json:"status"`
}

// Canonical returns the filters with empty axes defaulted to "all"
func (f AudienceFilters) Canonical() AudienceFilters {
	if f.Category == "" {
		f.Category = AudienceFilterAll
	}
	if f.Status == "" {
		f.Status = AudienceFilterAll
	}
	return f
}

// Value implements the driver.Valuer interface for AudienceFilters
func (f AudienceFilters) Value() (driver.Value, error) {
	return json.Marshal(f.Canonical())
}

// Scan implements the sql.Scanner interface for AudienceFilters
func (f *AudienceFilters) Scan(value any) error {
	if value == nil {
		*f = AudienceFilters{}.Canonical()
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into AudienceFilters", value)
	}

	return json.Unmarshal(bytes, f)
}

// RecipientList is the JSONB-backed ordered snapshot of contact IDs.
// Order and duplicates are preserved exactly as resolved.
type RecipientList []uint

// Value implements the driver.Valuer interface for RecipientList
func (l RecipientList) Value() (driver.Value, error) {
	if l == nil {
		l = RecipientList{}
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for RecipientList
func (l *RecipientList) Scan(value any) error {
	if value == nil {
		*l = RecipientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RecipientList", value)
	}

	return json.Unmarshal(bytes, l)
}

// Campaign binds a template to a recipient snapshot and the variable
// mappings used to fill its placeholders.
type Campaign struct {
	ID               uint                `gorm:"primaryKey" json:"id"`
	UUID             uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uk_campaigns_uuid" json:"uuid"`
	Name             string              `gorm:"size:255;not null" json:"name"`
	Description      *string             `gorm:"type:text" json:"description,omitempty"`
	TemplateID       uint                `gorm:"not null;index:idx_campaigns_template_id" json:"template_id"`
	Recipients       RecipientList       `gorm:"type:jsonb;not null" json:"recipients"`
	VariableMappings VariableMappingList `gorm:"type:jsonb;not null" json:"variable_mappings"`
	AudienceFilters  AudienceFilters     `gorm:"type:jsonb;not null" json:"audience_filters"`
	Status           CampaignStatus      `gorm:"type:campaign_status;not null;default:'draft';index:idx_campaigns_status" json:"status"`
	ScheduledAt      *time.Time          `json:"scheduled_at,omitempty"`
	SentAt           *time.Time          `json:"sent_at,omitempty"`
	CreatedAt        time.Time           `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_campaigns_created_at" json:"created_at"`
	UpdatedAt        *time.Time          `json:"updated_at,omitempty"`

	// Relations. TemplateID is non-owning: deleting the referenced
	// template leaves the campaign with a dangling reference.
	Template *Template `gorm:"foreignKey:TemplateID;references:ID;constraint:OnDelete:NO ACTION" json:"template,omitempty"`
}

// TableName returns the table name for the model
func (Campaign) TableName() string {
	return "campaigns"
}

// BeforeCreate is called before creating a new record
func (c *Campaign) BeforeCreate() error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CampaignStatusDraft
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *Campaign) BeforeUpdate() error {
	now := time.Now().UTC()
	c.UpdatedAt = &now
	return nil
}

// IsDeletable checks if the campaign can be deleted
func (c *Campaign) IsDeletable() bool {
	return true
}

// CanTransitionTo is the single guard point for status changes. The
// current policy is permissive: any valid status may be set directly
// on update, including moving a sent campaign back to draft. Replace
// this body to enforce a strict draft -> scheduled -> sent machine.
func (c *Campaign) CanTransitionTo(newStatus CampaignStatus) bool {
	return newStatus.Valid()
}

// CampaignFilter represents filter criteria for campaign queries
type CampaignFilter struct {
	ID              *uint           `json:"id,omitempty"`
	UUID            *uuid.UUID      `json:"uuid,omitempty"`
	Name            *string         `json:"name,omitempty"`
	TemplateID      *uint           `json:"template_id,omitempty"`
	Status          *CampaignStatus `json:"status,omitempty"`
	CreatedAfter    *time.Time      `json:"created_after,omitempty"`
	CreatedBefore   *time.Time      `json:"created_before,omitempty"`
	ScheduledAfter  *time.Time      `json:"scheduled_after,omitempty"`
	ScheduledBefore *time.Time      `json:"scheduled_before,omitempty"`
}
