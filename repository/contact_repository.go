package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sampark-crm/sampark/models"
	"github.com/sampark-crm/sampark/utils"
	"gorm.io/gorm"
)

// ContactRepositoryImpl implements the ContactRepository interface
type ContactRepositoryImpl struct {
	*BaseRepository[models.Contact, models.ContactFilter]
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &ContactRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Contact, models.ContactFilter](db),
	}
}

// ByUUID retrieves a contact by UUID
func (r *ContactRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Contact, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID format: %w", err)
	}

	filter := models.ContactFilter{UUID: &parsedUUID}
	contacts, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find contact by UUID: %w", err)
	}

	if len(contacts) == 0 {
		return nil, nil
	}

	return contacts[0], nil
}

// ByIDs retrieves contacts for a list of IDs. The result follows the
// store's natural order, not the input order.
func (r *ContactRepositoryImpl) ByIDs(ctx context.Context, ids []uint) ([]*models.Contact, error) {
	db := r.getDB(ctx)
	if len(ids) == 0 {
		return []*models.Contact{}, nil
	}

	var rows []*models.Contact
	if err := db.Model(&models.Contact{}).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find contacts by IDs: %w", err)
	}
	return rows, nil
}

// IDsByFilter retrieves only the IDs of contacts matching the filter
func (r *ContactRepositoryImpl) IDsByFilter(ctx context.Context, filter models.ContactFilter) ([]uint, error) {
	db := r.getDB(ctx)

	var ids []uint
	query := r.applyFilter(db.Model(&models.Contact{}), filter)
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to find contact IDs by filter: %w", err)
	}
	return ids, nil
}

// Update updates a contact
func (r *ContactRepositoryImpl) Update(ctx context.Context, contact models.Contact) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	now := time.Now().UTC()
	contact.UpdatedAt = &now

	err = db.Save(&contact).Error
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	return nil
}

// Delete removes a contact by ID
func (r *ContactRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	result := db.Delete(&models.Contact{}, id)
	if result.Error != nil {
		err = fmt.Errorf("failed to delete contact: %w", result.Error)
		return err
	}
	if result.RowsAffected == 0 {
		err = gorm.ErrRecordNotFound
		return err
	}

	return nil
}

// ByID retrieves a contact by ID
func (r *ContactRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Contact, error) {
	db := r.getDB(ctx)

	var contact models.Contact
	err := db.Last(&contact, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find contact by ID %d: %w", id, err)
	}

	return &contact, nil
}

// ByFilter retrieves contacts based on filter criteria
func (r *ContactRepositoryImpl) ByFilter(ctx context.Context, filter models.ContactFilter, orderBy string, limit, offset int) ([]*models.Contact, error) {
	db := r.getDB(ctx)

	var contacts []*models.Contact
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find contacts by filter: %w", err)
	}

	return contacts, nil
}

// Count returns the number of contacts matching the filter
func (r *ContactRepositoryImpl) Count(ctx context.Context, filter models.ContactFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Contact{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	return count, nil
}

// Exists checks if any contact matching the filter exists
func (r *ContactRepositoryImpl) Exists(ctx context.Context, filter models.ContactFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *ContactRepositoryImpl) applyFilter(db *gorm.DB, filter models.ContactFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.Name != nil {
		db = db.Where("name ILIKE ?", "%"+*filter.Name+"%")
	}
	if filter.Phone != nil {
		db = db.Where("phone = ?", *filter.Phone)
	}
	if filter.Email != nil {
		db = db.Where("email = ?", *filter.Email)
	}
	if filter.Category != nil {
		db = db.Where("category = ?", *filter.Category)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.Tag != nil {
		db = db.Where("tags @> ?", fmt.Sprintf(`["%s"]`, *filter.Tag))
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", *filter.CreatedBefore)
	}

	return db
}
