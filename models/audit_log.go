package models

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Action       string          `gorm:"size:100;not null;index:idx_audit_action" json:"action"`
	Actor        *string         `gorm:"size:255" json:"actor,omitempty"`
	Description  *string         `gorm:"type:text" json:"description,omitempty"`
	IPAddress    *string         `gorm:"type:inet;index:idx_audit_ip_address" json:"ip_address,omitempty"`
	UserAgent    *string         `gorm:"type:text" json:"user_agent,omitempty"`
	RequestID    *string         `gorm:"size:255;index:idx_audit_request_id" json:"request_id,omitempty"`
	Metadata     json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
	Success      *bool           `gorm:"default:true;index:idx_audit_success" json:"success"`
	ErrorMessage *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP;index:idx_audit_created_at" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// Audit action constants
const (
	AuditActionContactCreated         = "contact_created"
	AuditActionContactUpdated         = "contact_updated"
	AuditActionContactDeleted         = "contact_deleted"
	AuditActionContactsImported       = "contacts_imported"
	AuditActionContactImportFailed    = "contact_import_failed"
	AuditActionTemplateCreated        = "template_created"
	AuditActionTemplateUpdated        = "template_updated"
	AuditActionTemplateDeleted        = "template_deleted"
	AuditActionCampaignCreated        = "campaign_created"
	AuditActionCampaignCreationFailed = "campaign_creation_failed"
	AuditActionCampaignUpdated        = "campaign_updated"
	AuditActionCampaignUpdateFailed   = "campaign_update_failed"
	AuditActionCampaignDeleted        = "campaign_deleted"
	AuditActionCampaignReResolved     = "campaign_re_resolved"
)

// AuditLogFilter represents filter criteria for audit log queries
type AuditLogFilter struct {
	ID            *uint
	Action        *string
	Actor         *string
	Success       *bool
	IPAddress     *string
	RequestID     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (a *AuditLog) IsFailed() bool {
	return a.Success != nil && !*a.Success
}
