// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"

	"github.com/sampark-crm/sampark/app/dto"
	"github.com/sampark-crm/sampark/models"
	"github.com/sampark-crm/sampark/repository"
	"github.com/sampark-crm/sampark/utils"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging and request tracking
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	DeviceInfo map[string]string `json:"device_info,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		DeviceInfo: make(map[string]string),
		Additional: make(map[string]string),
	}
}

// AddDeviceInfo adds device information to the metadata
func (cm *ClientMetadata) AddDeviceInfo(key, value string) {
	if cm.DeviceInfo == nil {
		cm.DeviceInfo = make(map[string]string)
	}
	cm.DeviceInfo[key] = value
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// normalizePagination clamps page and limit to sane bounds and derives
// the row offset.
func normalizePagination(page, limit int) (int, int, int) {
	page = max(1, page)
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}

// listOrderBy maps the request-layer ordering keyword onto a SQL order
// clause, defaulting to newest first.
func listOrderBy(orderBy string) string {
	switch orderBy {
	case "oldest":
		return "created_at ASC"
	default:
		return "created_at DESC"
	}
}

// buildPagination assembles pagination metadata for list responses
func buildPagination(total int64, page, limit int) dto.PaginationInfo {
	return dto.PaginationInfo{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
}

// createAuditLog records an audit entry for a flow action. Failures are
// swallowed by callers: auditing never blocks the main operation.
func createAuditLog(ctx context.Context, auditRepo repository.AuditLogRepository, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
	audit := &models.AuditLog{
		Action:       action,
		Actor:        utils.ToPtr(utils.DefaultActor),
		Description:  &description,
		Success:      utils.ToPtr(success),
		ErrorMessage: errorMsg,
	}

	if metadata != nil {
		audit.IPAddress = utils.ToPtr(metadata.IPAddress)
		audit.UserAgent = utils.ToPtr(metadata.UserAgent)
		if metadata.RequestID != "" {
			audit.RequestID = utils.ToPtr(metadata.RequestID)
		}
	}

	return auditRepo.Save(ctx, audit)
}

// ToContactDTO converts a contact model to ContactDTO for API responses
func ToContactDTO(contact models.Contact) dto.ContactDTO {
	return dto.ContactDTO{
		ID:            contact.ID,
		UUID:          contact.UUID.String(),
		Name:          contact.Name,
		Phone:         contact.Phone,
		Email:         contact.Email,
		Category:      contact.Category.String(),
		Status:        contact.Status.String(),
		Tags:          []string(contact.Tags),
		Notes:         contact.Notes,
		LastContactAt: contact.LastContactAt,
		CreatedAt:     contact.CreatedAt,
		UpdatedAt:     contact.UpdatedAt,
	}
}

// ToTemplateDTO converts a template model to TemplateDTO for API responses
func ToTemplateDTO(template models.Template) dto.TemplateDTO {
	variables := make([]dto.TemplateVariableDTO, 0, len(template.Variables))
	for _, v := range template.Variables {
		variables = append(variables, dto.TemplateVariableDTO{
			Name:        v.Name,
			Description: v.Description,
			Required:    v.Required,
		})
	}

	return dto.TemplateDTO{
		ID:        template.ID,
		UUID:      template.UUID.String(),
		Name:      template.Name,
		Content:   template.Content,
		Category:  template.Category.String(),
		Language:  template.Language,
		Status:    template.Status.String(),
		Variables: variables,
		CreatedAt: template.CreatedAt,
		UpdatedAt: template.UpdatedAt,
	}
}

// ToGetCampaignResponse converts a campaign model to its API representation.
// The template relation is included only when it has been preloaded.
func ToGetCampaignResponse(campaign models.Campaign) dto.GetCampaignResponse {
	filters := campaign.AudienceFilters.Canonical()

	mappings := make([]dto.VariableMappingDTO, 0, len(campaign.VariableMappings))
	for _, m := range campaign.VariableMappings {
		mappings = append(mappings, dto.VariableMappingDTO{
			VariableName: m.VariableName,
			Type:         m.Type.String(),
			Value:        m.Value,
		})
	}

	resp := dto.GetCampaignResponse{
		ID:             campaign.ID,
		UUID:           campaign.UUID.String(),
		Name:           campaign.Name,
		Description:    campaign.Description,
		Status:         campaign.Status.String(),
		RecipientIDs:   []uint(campaign.Recipients),
		RecipientCount: len(campaign.Recipients),
		AudienceFilters: dto.AudienceFiltersDTO{
			Category: &filters.Category,
			Status:   &filters.Status,
		},
		VariableMappings: mappings,
		ScheduledAt:      campaign.ScheduledAt,
		SentAt:           campaign.SentAt,
		CreatedAt:        campaign.CreatedAt,
		UpdatedAt:        campaign.UpdatedAt,
	}

	if campaign.Template != nil {
		t := ToTemplateDTO(*campaign.Template)
		resp.Template = &t
	}

	return resp
}
