// Package models contains domain entities and business models for the outreach system
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContactCategory represents the classification of a contact
type ContactCategory string

const (
	ContactCategoryCustomer ContactCategory = "customer"
	ContactCategoryLead     ContactCategory = "lead"
	ContactCategoryProspect ContactCategory = "prospect"
	ContactCategoryVendor   ContactCategory = "vendor"
	ContactCategoryOther    ContactCategory = "other"
)

// String returns the string representation of the category
func (c ContactCategory) String() string {
	return string(c)
}

// Valid checks if the category is valid
func (c ContactCategory) Valid() bool {
	switch c {
	case ContactCategoryCustomer, ContactCategoryLead, ContactCategoryProspect,
		ContactCategoryVendor, ContactCategoryOther:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ContactCategory
func (c *ContactCategory) Scan(value any) error {
	if value == nil {
		*c = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*c = ContactCategory(v)
	case []byte:
		*c = ContactCategory(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ContactCategory", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ContactCategory
func (c ContactCategory) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid ContactCategory: %s", c)
	}
	return string(c), nil
}

// ContactStatus represents the lifecycle status of a contact
type ContactStatus string

const (
	ContactStatusActive   ContactStatus = "active"
	ContactStatusInactive ContactStatus = "inactive"
	ContactStatusPending  ContactStatus = "pending"
)

// String returns the string representation of the status
func (s ContactStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusActive, ContactStatusInactive, ContactStatusPending:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ContactStatus
func (s *ContactStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = ContactStatus(v)
	case []byte:
		*s = ContactStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ContactStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ContactStatus
func (s ContactStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ContactStatus: %s", s)
	}
	return string(s), nil
}

// StringList is a JSONB-backed list of strings (used for contact tags)
type StringList []string

// Value implements the driver.Valuer interface for StringList
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for StringList
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	return json.Unmarshal(bytes, l)
}

// Contact represents a person reachable by outreach campaigns
type Contact struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UUID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uk_contacts_uuid" json:"uuid"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Phone         string          `gorm:"size:20;not null;index:idx_contacts_phone" json:"phone"`
	Email         *string         `gorm:"size:255" json:"email,omitempty"`
	Category      ContactCategory `gorm:"type:contact_category;not null;default:'customer';index:idx_contacts_category" json:"category"`
	Status        ContactStatus   `gorm:"type:contact_status;not null;default:'active';index:idx_contacts_status" json:"status"`
	Tags          StringList      `gorm:"type:jsonb" json:"tags"`
	Notes         *string         `gorm:"type:text" json:"notes,omitempty"`
	LastContactAt *time.Time      `json:"last_contact_at,omitempty"`
	CreatedBy     string          `gorm:"size:255;not null;default:'admin'" json:"created_by"`
	CreatedAt     time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_contacts_created_at" json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// TableName returns the table name for the model
func (Contact) TableName() string {
	return "contacts"
}

// BeforeCreate is called before creating a new record
func (c *Contact) BeforeCreate() error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.Category == "" {
		c.Category = ContactCategoryCustomer
	}
	if c.Status == "" {
		c.Status = ContactStatusActive
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *Contact) BeforeUpdate() error {
	now := time.Now().UTC()
	c.UpdatedAt = &now
	return nil
}

// ContactFilter represents filter criteria for contact queries
type ContactFilter struct {
	ID            *uint            `json:"id,omitempty"`
	UUID          *uuid.UUID       `json:"uuid,omitempty"`
	Name          *string          `json:"name,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Category      *ContactCategory `json:"category,omitempty"`
	Status        *ContactStatus   `json:"status,omitempty"`
	Tag           *string          `json:"tag,omitempty"`
	CreatedAfter  *time.Time       `json:"created_after,omitempty"`
	CreatedBefore *time.Time       `json:"created_before,omitempty"`
}
