package dto

import (
	"time"
)

// VariableMappingDTO binds a template variable to a contact field or a
// static value. An omitted type defaults to "field" downstream.
type VariableMappingDTO struct {
	VariableName string `json:"variable_name" validate:"required,min=1"`
	Type         string `json:"type" validate:"omitempty,oneof=field static"`
	Value        string `json:"value"`
}

// AudienceFiltersDTO narrows the campaign audience when no explicit contacts are given
type AudienceFiltersDTO struct {
	Category *string `json:"category,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// CreateCampaignRequest represents the request to create a new campaign
type CreateCampaignRequest struct {
	Name             string               `json:"name" validate:"required,min=1,max=255"`
	Description      *string              `json:"description,omitempty"`
	TemplateUUID     string               `json:"template_uuid" validate:"required,uuid4"`
	ContactIDs       []uint               `json:"contact_ids,omitempty"`
	AudienceFilters  *AudienceFiltersDTO  `json:"audience_filters,omitempty"`
	VariableMappings []VariableMappingDTO `json:"variable_mappings,omitempty" validate:"omitempty,dive"`
	ScheduledAt      *time.Time           `json:"scheduled_at,omitempty"`
}

// CreateCampaignResponse represents the response to create a new campaign
type CreateCampaignResponse struct {
	Message        string `json:"message"`
	UUID           string `json:"uuid"`
	Status         string `json:"status"`
	RecipientCount int    `json:"recipient_count"`
	CreatedAt      string `json:"created_at"`
}

// UpdateCampaignRequest represents the request to update an existing campaign
type UpdateCampaignRequest struct {
	UUID             string               `json:"-"`
	Name             *string              `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description      *string              `json:"description,omitempty"`
	TemplateUUID     *string              `json:"template_uuid,omitempty" validate:"omitempty,uuid4"`
	ContactIDs       []uint               `json:"contact_ids,omitempty"`
	AudienceFilters  *AudienceFiltersDTO  `json:"audience_filters,omitempty"`
	VariableMappings []VariableMappingDTO `json:"variable_mappings,omitempty" validate:"omitempty,dive"`
	ScheduledAt      *time.Time           `json:"scheduled_at,omitempty"`
	Status           *string              `json:"status,omitempty" validate:"omitempty,oneof=draft scheduled sent"`
}

// GetCampaignRequest represents the request to get an existing campaign
type GetCampaignRequest struct {
	UUID string `json:"-"`
}

// GetCampaignResponse represents the campaign specification in responses
type GetCampaignResponse struct {
	ID               uint                 `json:"id"`
	UUID             string               `json:"uuid"`
	Name             string               `json:"name"`
	Description      *string              `json:"description,omitempty"`
	Status           string               `json:"status"`
	Template         *TemplateDTO         `json:"template,omitempty"`
	RecipientIDs     []uint               `json:"recipient_ids"`
	Recipients       []ContactDTO         `json:"recipients,omitempty"`
	RecipientCount   int                  `json:"recipient_count"`
	AudienceFilters  AudienceFiltersDTO   `json:"audience_filters"`
	VariableMappings []VariableMappingDTO `json:"variable_mappings,omitempty"`
	ScheduledAt      *time.Time           `json:"scheduled_at,omitempty"`
	SentAt           *time.Time           `json:"sent_at,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        *time.Time           `json:"updated_at,omitempty"`
}

// ListCampaignsFilter represents filter criteria for listing campaigns in request layer
type ListCampaignsFilter struct {
	Name           *string    `json:"name,omitempty"`
	Status         *string    `json:"status,omitempty"`
	ScheduledAfter *time.Time `json:"scheduled_after,omitempty"`
	ScheduledUntil *time.Time `json:"scheduled_until,omitempty"`
}

// ListCampaignsRequest represents a paginated list request for campaigns
type ListCampaignsRequest struct {
	Page    int                  `json:"page"`
	Limit   int                  `json:"limit"`
	OrderBy string               `json:"orderby"` // newest, oldest
	Filter  *ListCampaignsFilter `json:"filter,omitempty"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// ListCampaignsResponse represents a paginated list of campaigns
type ListCampaignsResponse struct {
	Message    string                `json:"message"`
	Items      []GetCampaignResponse `json:"items"`
	Pagination PaginationInfo        `json:"pagination"`
}

// ReResolveCampaignResponse reports the refreshed recipient snapshot of a campaign
type ReResolveCampaignResponse struct {
	Message        string `json:"message"`
	UUID           string `json:"uuid"`
	RecipientCount int    `json:"recipient_count"`
	RecipientIDs   []uint `json:"recipient_ids"`
}
