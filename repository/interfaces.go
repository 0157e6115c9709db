// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/sampark-crm/sampark/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// ContactRepository defines operations for contacts
type ContactRepository interface {
	Repository[models.Contact, models.ContactFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Contact, error)
	ByIDs(ctx context.Context, ids []uint) ([]*models.Contact, error)
	IDsByFilter(ctx context.Context, filter models.ContactFilter) ([]uint, error)
	Update(ctx context.Context, contact models.Contact) error
	Delete(ctx context.Context, id uint) error
}

// TemplateRepository defines operations for message templates
type TemplateRepository interface {
	Repository[models.Template, models.TemplateFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Template, error)
	Update(ctx context.Context, template models.Template) error
	Delete(ctx context.Context, id uint) error
}

// CampaignRepository defines operations for campaigns
type CampaignRepository interface {
	Repository[models.Campaign, models.CampaignFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Campaign, error)
	Create(ctx context.Context, campaign *models.Campaign) error
	Update(ctx context.Context, campaign models.Campaign) error
	Delete(ctx context.Context, id uint) error
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
	ListFailedActions(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
}
