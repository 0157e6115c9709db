package dto

import (
	"time"
)

// CreateContactRequest represents the request to create a new contact
type CreateContactRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=255"`
	Phone    string   `json:"phone" validate:"required,min=3,max=32"`
	Email    *string  `json:"email,omitempty" validate:"omitempty,email"`
	Category *string  `json:"category,omitempty" validate:"omitempty,oneof=customer lead prospect vendor other"`
	Status   *string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive pending"`
	Tags     []string `json:"tags,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
}

// UpdateContactRequest represents the request to update an existing contact
type UpdateContactRequest struct {
	UUID          string     `json:"-"`
	Name          *string    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Phone         *string    `json:"phone,omitempty" validate:"omitempty,min=3,max=32"`
	Email         *string    `json:"email,omitempty" validate:"omitempty,email"`
	Category      *string    `json:"category,omitempty" validate:"omitempty,oneof=customer lead prospect vendor other"`
	Status        *string    `json:"status,omitempty" validate:"omitempty,oneof=active inactive pending"`
	Tags          []string   `json:"tags,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	LastContactAt *time.Time `json:"last_contact_at,omitempty"`
}

// ContactDTO represents a contact in API responses
type ContactDTO struct {
	ID            uint       `json:"id"`
	UUID          string     `json:"uuid"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	Email         *string    `json:"email,omitempty"`
	Category      string     `json:"category"`
	Status        string     `json:"status"`
	Tags          []string   `json:"tags,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	LastContactAt *time.Time `json:"last_contact_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// ListContactsFilter represents filter criteria for listing contacts in request layer
type ListContactsFilter struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Status   *string `json:"status,omitempty"`
	Tag      *string `json:"tag,omitempty"`
}

// ListContactsRequest represents a paginated list request for contacts
type ListContactsRequest struct {
	Page    int                 `json:"page"`
	Limit   int                 `json:"limit"`
	OrderBy string              `json:"orderby"` // newest, oldest
	Filter  *ListContactsFilter `json:"filter,omitempty"`
}

// ListContactsResponse represents a paginated list of contacts
type ListContactsResponse struct {
	Message    string         `json:"message"`
	Items      []ContactDTO   `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// ImportContactsRequest represents a bulk contact import request
type ImportContactsRequest struct {
	Contacts []CreateContactRequest `json:"contacts" validate:"required,min=1,dive"`
}

// ImportContactError describes why a single row of a bulk import was rejected
type ImportContactError struct {
	Index   int    `json:"index"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// ImportContactsResponse summarizes the outcome of a bulk contact import
type ImportContactsResponse struct {
	Message  string               `json:"message"`
	Imported int                  `json:"imported"`
	Failed   int                  `json:"failed"`
	Errors   []ImportContactError `json:"errors,omitempty"`
}

// ExportContactsRequest represents the request to export contacts as a spreadsheet
type ExportContactsRequest struct {
	Filter *ListContactsFilter `json:"filter,omitempty"`
}
