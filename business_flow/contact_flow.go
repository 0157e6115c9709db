// Package businessflow contains the core business logic and use cases for contact workflows
package businessflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sampark-crm/sampark/app/dto"
	"github.com/sampark-crm/sampark/models"
	"github.com/sampark-crm/sampark/repository"
	"github.com/sampark-crm/sampark/utils"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ContactFlow handles the contact book business logic
type ContactFlow interface {
	CreateContact(ctx context.Context, req *dto.CreateContactRequest, metadata *ClientMetadata) (*dto.ContactDTO, error)
	UpdateContact(ctx context.Context, req *dto.UpdateContactRequest, metadata *ClientMetadata) (*dto.ContactDTO, error)
	GetContact(ctx context.Context, uuidStr string, metadata *ClientMetadata) (*dto.ContactDTO, error)
	ListContacts(ctx context.Context, req *dto.ListContactsRequest, metadata *ClientMetadata) (*dto.ListContactsResponse, error)
	DeleteContact(ctx context.Context, uuidStr string, metadata *ClientMetadata) error
	ImportContacts(ctx context.Context, req *dto.ImportContactsRequest, metadata *ClientMetadata) (*dto.ImportContactsResponse, error)
	ExportContacts(ctx context.Context, req *dto.ExportContactsRequest, metadata *ClientMetadata) (string, []byte, error)
}

// ContactFlowImpl implements the contact business flow
type ContactFlowImpl struct {
	contactRepo repository.ContactRepository
	auditRepo   repository.AuditLogRepository
	db          *gorm.DB
}

// NewContactFlow creates a new contact flow instance
func NewContactFlow(
	contactRepo repository.ContactRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) ContactFlow {
	return &ContactFlowImpl{
		contactRepo: contactRepo,
		auditRepo:   auditRepo,
		db:          db,
	}
}

// CreateContact handles the complete contact creation process
func (s *ContactFlowImpl) CreateContact(ctx context.Context, req *dto.CreateContactRequest, metadata *ClientMetadata) (*dto.ContactDTO, error) {
	contact, err := contactFromCreateRequest(req)
	if err != nil {
		return nil, NewBusinessError("CONTACT_VALIDATION_FAILED", "Contact validation failed", err)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.contactRepo.Save(txCtx, contact)
	})
	if err != nil {
		return nil, NewBusinessError("CONTACT_CREATION_FAILED", "Contact creation failed", err)
	}

	msg := fmt.Sprintf("Contact created: %s", contact.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, models.AuditActionContactCreated, msg, true, nil, metadata)

	result := ToContactDTO(*contact)
	return &result, nil
}

// UpdateContact applies a partial update to an existing contact
func (s *ContactFlowImpl) UpdateContact(ctx context.Context, req *dto.UpdateContactRequest, metadata *ClientMetadata) (*dto.ContactDTO, error) {
	contact, err := s.contactRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("CONTACT_LOOKUP_FAILED", "Failed to lookup contact", err)
	}
	if contact == nil {
		return nil, NewBusinessError("CONTACT_NOT_FOUND", "Contact not found", ErrContactNotFound)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewBusinessError("CONTACT_VALIDATION_FAILED", "Contact validation failed", ErrContactNameRequired)
		}
		contact.Name = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			return nil, NewBusinessError("CONTACT_VALIDATION_FAILED", "Contact validation failed", ErrContactPhoneRequired)
		}
		contact.Phone = phone
	}
	if req.Email != nil {
		contact.Email = normalizeContactEmail(req.Email)
	}
	if req.Category != nil {
		category := models.ContactCategory(strings.ToLower(strings.TrimSpace(*req.Category)))
		if !category.Valid() {
			return nil, NewBusinessError("CONTACT_VALIDATION_FAILED", "Contact validation failed", ErrContactCategoryInvalid)
		}
		contact.Category = category
	}
	if req.Status != nil {
		status := models.ContactStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		if !status.Valid() {
			return nil, NewBusinessError("CONTACT_VALIDATION_FAILED", "Contact validation failed", ErrContactStatusInvalid)
		}
		contact.Status = status
	}
	if req.Tags != nil {
		contact.Tags = models.StringList(req.Tags)
	}
	if req.Notes != nil {
		contact.Notes = req.Notes
	}
	if req.LastContactAt != nil {
		contact.LastContactAt = utils.TimeToUTCPtr(req.LastContactAt)
	}
	contact.UpdatedAt = utils.UTCNowPtr()

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.contactRepo.Update(txCtx, *contact)
	})
	if err != nil {
		return nil, NewBusinessError("CONTACT_UPDATE_FAILED", "Contact update failed", err)
	}

	msg := fmt.Sprintf("Contact updated: %s", contact.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, models.AuditActionContactUpdated, msg, true, nil, metadata)

	result := ToContactDTO(*contact)
	return &result, nil
}

// GetContact retrieves a contact by its public UUID
func (s *ContactFlowImpl) GetContact(ctx context.Context, uuidStr string, metadata *ClientMetadata) (*dto.ContactDTO, error) {
	contact, err := s.contactRepo.ByUUID(ctx, uuidStr)
	if err != nil {
		return nil, NewBusinessError("CONTACT_LOOKUP_FAILED", "Failed to lookup contact", err)
	}
	if contact == nil {
		return nil, NewBusinessError("CONTACT_NOT_FOUND", "Contact not found", ErrContactNotFound)
	}

	result := ToContactDTO(*contact)
	return &result, nil
}

// ListContacts returns a filtered, paginated contact listing
func (s *ContactFlowImpl) ListContacts(ctx context.Context, req *dto.ListContactsRequest, metadata *ClientMetadata) (*dto.ListContactsResponse, error) {
	var err error
	defer func() {
		if err != nil {
			err = NewBusinessError("LIST_CONTACTS_FAILED", "Failed to list contacts", err)
		}
	}()

	page, limit, offset := normalizePagination(req.Page, req.Limit)
	filter := contactFilterFromListRequest(req.Filter)
	orderBy := listOrderBy(req.OrderBy)

	total, err := s.contactRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.contactRepo.ByFilter(ctx, filter, orderBy, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ContactDTO, 0, len(rows))
	for _, c := range rows {
		items = append(items, ToContactDTO(*c))
	}

	return &dto.ListContactsResponse{
		Message:    "Contacts retrieved successfully",
		Items:      items,
		Pagination: buildPagination(total, page, limit),
	}, nil
}

// DeleteContact removes a contact. Recipient snapshots that already
// reference the contact keep its ID.
func (s *ContactFlowImpl) DeleteContact(ctx context.Context, uuidStr string, metadata *ClientMetadata) error {
	contact, err := s.contactRepo.ByUUID(ctx, uuidStr)
	if err != nil {
		return NewBusinessError("CONTACT_LOOKUP_FAILED", "Failed to lookup contact", err)
	}
	if contact == nil {
		return NewBusinessError("CONTACT_NOT_FOUND", "Contact not found", ErrContactNotFound)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.contactRepo.Delete(txCtx, contact.ID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewBusinessError("CONTACT_NOT_FOUND", "Contact not found", ErrContactNotFound)
		}
		return NewBusinessError("CONTACT_DELETION_FAILED", "Contact deletion failed", err)
	}

	msg := fmt.Sprintf("Contact deleted: %s", contact.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, models.AuditActionContactDeleted, msg, true, nil, metadata)

	return nil
}

// ImportContacts bulk-creates contacts. Rows failing validation are
// skipped and reported per-row; valid rows are persisted in one batch.
func (s *ContactFlowImpl) ImportContacts(ctx context.Context, req *dto.ImportContactsRequest, metadata *ClientMetadata) (*dto.ImportContactsResponse, error) {
	if len(req.Contacts) == 0 {
		return nil, NewBusinessError("CONTACT_IMPORT_FAILED", "Contact import failed", ErrNoContactsToImport)
	}
	if len(req.Contacts) > utils.MaxImportBatchSize {
		return nil, NewBusinessError("CONTACT_IMPORT_FAILED", "Contact import failed", ErrImportBatchTooLarge)
	}

	contacts := make([]*models.Contact, 0, len(req.Contacts))
	rowErrors := make([]dto.ImportContactError, 0)
	for i := range req.Contacts {
		row := req.Contacts[i]
		contact, err := contactFromCreateRequest(&row)
		if err != nil {
			rowErrors = append(rowErrors, dto.ImportContactError{
				Index:   i,
				Name:    strings.TrimSpace(row.Name),
				Message: err.Error(),
			})
			continue
		}
		contacts = append(contacts, contact)
	}

	if len(contacts) > 0 {
		err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
			return s.contactRepo.SaveBatch(txCtx, contacts)
		})
		if err != nil {
			errMsg := fmt.Sprintf("Contact import failed: %s", err.Error())
			_ = createAuditLog(ctx, s.auditRepo, models.AuditActionContactImportFailed, errMsg, false, &errMsg, metadata)

			return nil, NewBusinessError("CONTACT_IMPORT_FAILED", "Contact import failed", err)
		}
	}

	msg := fmt.Sprintf("Contacts imported: %d of %d", len(contacts), len(req.Contacts))
	_ = createAuditLog(ctx, s.auditRepo, models.AuditActionContactsImported, msg, true, nil, metadata)

	return &dto.ImportContactsResponse{
		Message:  "Contacts imported",
		Imported: len(contacts),
		Failed:   len(rowErrors),
		Errors:   rowErrors,
	}, nil
}

// ExportContacts renders the filtered contact book as a spreadsheet and
// returns the suggested filename with the file bytes.
func (s *ContactFlowImpl) ExportContacts(ctx context.Context, req *dto.ExportContactsRequest, metadata *ClientMetadata) (string, []byte, error) {
	var filter models.ContactFilter
	if req != nil {
		filter = contactFilterFromListRequest(req.Filter)
	}

	rows, err := s.contactRepo.ByFilter(ctx, filter, "created_at ASC", 0, 0)
	if err != nil {
		return "", nil, NewBusinessError("CONTACT_EXPORT_FAILED", "Failed to export contacts", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	header := []string{"id", "uuid", "name", "phone", "email", "category", "status", "tags", "notes", "last_contact_at", "created_at", "updated_at"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for ri, c := range rows {
		email := ""
		if c.Email != nil {
			email = *c.Email
		}
		notes := ""
		if c.Notes != nil {
			notes = *c.Notes
		}
		lastContact := ""
		if c.LastContactAt != nil {
			lastContact = c.LastContactAt.UTC().Format(time.RFC3339)
		}
		updated := ""
		if c.UpdatedAt != nil {
			updated = c.UpdatedAt.UTC().Format(time.RFC3339)
		}

		record := []any{
			c.ID,
			c.UUID.String(),
			c.Name,
			c.Phone,
			email,
			c.Category.String(),
			c.Status.String(),
			strings.Join(c.Tags, ","),
			notes,
			lastContact,
			c.CreatedAt.UTC().Format(time.RFC3339),
			updated,
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	filename := fmt.Sprintf("contacts_%s.xlsx", utils.UTCNow().Format("20060102_150405"))
	return filename, buf.Bytes(), nil
}

// contactFromCreateRequest builds a contact model from a creation
// request, applying defaults and closed-vocabulary checks
func contactFromCreateRequest(req *dto.CreateContactRequest) (*models.Contact, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrContactNameRequired
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, ErrContactPhoneRequired
	}

	contact := &models.Contact{
		UUID:      uuid.New(),
		Name:      name,
		Phone:     phone,
		Email:     normalizeContactEmail(req.Email),
		Category:  models.ContactCategoryCustomer,
		Status:    models.ContactStatusActive,
		Tags:      models.StringList(req.Tags),
		Notes:     req.Notes,
		CreatedBy: utils.DefaultActor,
	}

	if req.Category != nil && *req.Category != "" {
		category := models.ContactCategory(strings.ToLower(strings.TrimSpace(*req.Category)))
		if !category.Valid() {
			return nil, ErrContactCategoryInvalid
		}
		contact.Category = category
	}
	if req.Status != nil && *req.Status != "" {
		status := models.ContactStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		if !status.Valid() {
			return nil, ErrContactStatusInvalid
		}
		contact.Status = status
	}

	return contact, nil
}

// normalizeContactEmail folds an email address to its stored form:
// trimmed and lower-cased. A nil input stays nil.
func normalizeContactEmail(email *string) *string {
	if email == nil {
		return nil
	}
	normalized := strings.ToLower(strings.TrimSpace(*email))
	return &normalized
}

// contactFilterFromListRequest maps request-layer filters onto the
// repository filter, dropping values outside the closed vocabularies
func contactFilterFromListRequest(in *dto.ListContactsFilter) models.ContactFilter {
	filter := models.ContactFilter{}
	if in == nil {
		return filter
	}

	if in.Name != nil && *in.Name != "" {
		filter.Name = in.Name
	}
	if in.Category != nil && *in.Category != "" {
		category := models.ContactCategory(*in.Category)
		if category.Valid() {
			filter.Category = &category
		}
	}
	if in.Status != nil && *in.Status != "" {
		status := models.ContactStatus(*in.Status)
		if status.Valid() {
			filter.Status = &status
		}
	}
	if in.Tag != nil && *in.Tag != "" {
		filter.Tag = in.Tag
	}

	return filter
}
