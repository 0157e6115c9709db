package dto

import (
	"time"
)

// TemplateVariableDTO describes a single placeholder declared by a template
type TemplateVariableDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// CreateTemplateRequest represents the request to create a new message template
type CreateTemplateRequest struct {
	Name      string                `json:"name" validate:"required,min=1,max=255"`
	Content   string                `json:"content" validate:"required,min=1"`
	Category  *string               `json:"category,omitempty"`
	Language  *string               `json:"language,omitempty"`
	Status    *string               `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	Variables []TemplateVariableDTO `json:"variables,omitempty"`
}

// UpdateTemplateRequest represents the request to update an existing message template
type UpdateTemplateRequest struct {
	UUID      string                `json:"-"`
	Name      *string               `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Content   *string               `json:"content,omitempty" validate:"omitempty,min=1"`
	Category  *string               `json:"category,omitempty"`
	Language  *string               `json:"language,omitempty"`
	Status    *string               `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	Variables []TemplateVariableDTO `json:"variables,omitempty"`
}

// TemplateDTO represents a message template in API responses
type TemplateDTO struct {
	ID        uint                  `json:"id"`
	UUID      string                `json:"uuid"`
	Name      string                `json:"name"`
	Content   string                `json:"content"`
	Category  string                `json:"category"`
	Language  string                `json:"language"`
	Status    string                `json:"status"`
	Variables []TemplateVariableDTO `json:"variables,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt *time.Time            `json:"updated_at,omitempty"`
}

// ListTemplatesFilter represents filter criteria for listing templates in request layer
type ListTemplatesFilter struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Language *string `json:"language,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// ListTemplatesRequest represents a paginated list request for templates
type ListTemplatesRequest struct {
	Page    int                  `json:"page"`
	Limit   int                  `json:"limit"`
	OrderBy string               `json:"orderby"` // newest, oldest
	Filter  *ListTemplatesFilter `json:"filter,omitempty"`
}

// ListTemplatesResponse represents a paginated list of templates
type ListTemplatesResponse struct {
	Message    string         `json:"message"`
	Items      []TemplateDTO  `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
