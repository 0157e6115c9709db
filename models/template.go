package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TemplateCategory represents the category of a message template
type TemplateCategory string

const (
	TemplateCategoryMarketing    TemplateCategory = "marketing"
	TemplateCategorySupport      TemplateCategory = "support"
	TemplateCategoryNotification TemplateCategory = "notification"
	TemplateCategoryWelcome      TemplateCategory = "welcome"
	TemplateCategoryOther        TemplateCategory = "other"
)

// String returns the string representation of the category
func (c TemplateCategory) String() string {
	return string(c)
}

// Valid checks if the category is valid
func (c TemplateCategory) Valid() bool {
	switch c {
	case TemplateCategoryMarketing, TemplateCategorySupport,
		TemplateCategoryNotification, TemplateCategoryWelcome, TemplateCategoryOther:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for TemplateCategory
func (c *TemplateCategory) Scan(value any) error {
	if value == nil {
		*c = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*c = TemplateCategory(v)
	case []byte:
		*c = TemplateCategory(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TemplateCategory", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for TemplateCategory
func (c TemplateCategory) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid TemplateCategory: %s", c)
	}
	return string(c), nil
}

// TemplateStatus represents the lifecycle status of a template
type TemplateStatus string

const (
	TemplateStatusActive   TemplateStatus = "active"
	TemplateStatusInactive TemplateStatus = "inactive"
	TemplateStatusPending  TemplateStatus = "pending"
)

// String returns the string representation of the status
func (s TemplateStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s TemplateStatus) Valid() bool {
	switch s {
	case TemplateStatusActive, TemplateStatusInactive, TemplateStatusPending:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for TemplateStatus
func (s *TemplateStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = TemplateStatus(v)
	case []byte:
		*s = TemplateStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TemplateStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for TemplateStatus
func (s TemplateStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid TemplateStatus: %s", s)
	}
	return string(s), nil
}

// TemplateVariable describes one declared placeholder in template content.
// Invariant: Name is never empty for a stored variable.
type TemplateVariable struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// TemplateVariableList is the JSONB-backed ordered list of declared placeholders
type TemplateVariableList []TemplateVariable

// Value implements the driver.Valuer interface for TemplateVariableList
func (l TemplateVariableList) Value() (driver.Value, error) {
	if l == nil {
		l = TemplateVariableList{}
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for TemplateVariableList
func (l *TemplateVariableList) Scan(value any) error {
	if value == nil {
		*l = TemplateVariableList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into TemplateVariableList", value)
	}

	return json.Unmarshal(bytes, l)
}

// Template represents a reusable message template with named placeholders
type Template struct {
	ID        uint                 `gorm:"primaryKey" json:"id"`
	UUID      uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:uk_templates_uuid" json:"uuid"`
	Name      string               `gorm:"size:255;not null" json:"name"`
	Category  TemplateCategory     `gorm:"type:template_category;not null;default:'other';index:idx_templates_category" json:"category"`
	Content   string               `gorm:"type:text;not null" json:"content"`
	Variables TemplateVariableList `gorm:"type:jsonb" json:"variables"`
	Language  string               `gorm:"size:10;not null;default:'en'" json:"language"`
	Status    TemplateStatus       `gorm:"type:template_status;not null;default:'active';index:idx_templates_status" json:"status"`
	CreatedBy string               `gorm:"size:255;not null;default:'admin'" json:"created_by"`
	CreatedAt time.Time            `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_templates_created_at" json:"created_at"`
	UpdatedAt *time.Time           `json:"updated_at,omitempty"`
}

// TableName returns the table name for the model
func (Template) TableName() string {
	return "templates"
}

// BeforeCreate is called before creating a new record
func (t *Template) BeforeCreate() error {
	if t.UUID == uuid.Nil {
		t.UUID = uuid.New()
	}
	if t.Category == "" {
		t.Category = TemplateCategoryOther
	}
	if t.Status == "" {
		t.Status = TemplateStatusActive
	}
	if t.Language == "" {
		t.Language = "en"
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (t *Template) BeforeUpdate() error {
	now := time.Now().UTC()
	t.UpdatedAt = &now
	return nil
}

// TemplateFilter represents filter criteria for template queries
type TemplateFilter struct {
	ID            *uint             `json:"id,omitempty"`
	UUID          *uuid.UUID        `json:"uuid,omitempty"`
	Name          *string           `json:"name,omitempty"`
	Category      *TemplateCategory `json:"category,omitempty"`
	Language      *string           `json:"language,omitempty"`
	Status        *TemplateStatus   `json:"status,omitempty"`
	CreatedAfter  *time.Time        `json:"created_after,omitempty"`
	CreatedBefore *time.Time        `json:"created_before,omitempty"`
}
