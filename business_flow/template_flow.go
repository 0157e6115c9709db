// Package businessflow contains the core business logic and use cases for message template workflows
package businessflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sampark-crm/sampark/app/dto"
	"github.com/sampark-crm/sampark/models"
	"github.com/sampark-crm/sampark/repository"
	"github.com/sampark-crm/sampark/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TemplateFlow handles the message template business logic
type TemplateFlow interface {
	CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest, metadata *ClientMetadata) (*dto.TemplateDTO, error)
	UpdateTemplate(ctx context.Context, req *dto.UpdateTemplateRequest, metadata *ClientMetadata) (*dto.TemplateDTO, error)
	GetTemplate(ctx context.Context, uuidStr string, metadata *ClientMetadata) (*dto.TemplateDTO, error)
	ListTemplates(ctx context.Context, req *dto.ListTemplatesRequest, metadata *ClientMetadata) (*dto.ListTemplatesResponse, error)
	DeleteTemplate(ctx context.Context, uuidStr string, metadata *ClientMetadata) error
}

// TemplateFlowImpl implements the template business flow
type TemplateFlowImpl struct {
	templateRepo repository.TemplateRepository
	auditRepo    repository.AuditLogRepository
	db           *gorm.DB
}

// NewTemplateFlow creates a new template flow instance
func NewTemplateFlow(
	templateRepo repository.TemplateRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) TemplateFlow {
	return &TemplateFlowImpl{
		templateRepo: templateRepo,
		auditRepo:    auditRepo,
		db:           db,
	}
}

// languageSynonyms maps the spellings accepted on input to canonical
// language codes. Codes not listed here pass through lower-cased: the
// language vocabulary stays open.
var languageSynonyms = map[string]string{
	"en":       "en",
	"english":  "en",
	"gu":       "gu",
	"guj":      "gu",
	"gujarati": "gu",
	"hi":       "hi",
	"hindi":    "hi",
}

// NormalizeTemplateLanguage maps a raw language value onto its
// canonical code, defaulting to "en" when blank.
func NormalizeTemplateLanguage(raw string) string {
	lang := strings.ToLower(strings.TrimSpace(raw))
	if lang == "" {
		return utils.DefaultTemplateLanguage
	}
	if canonical, ok := languageSynonyms[lang]; ok {
		return canonical
	}
	return lang
}

// NormalizeTemplateCategory folds a raw category onto the closed
// vocabulary, falling back to "other" for anything unrecognized.
func NormalizeTemplateCategory(raw string) models.TemplateCategory {
	category := models.TemplateCategory(strings.ToLower(strings.TrimSpace(raw)))
	if category.Valid() {
		return category
	}
	return models.TemplateCategoryOther
}

// NormalizeTemplateStatus folds a raw status onto the closed
// vocabulary. A blank value defaults to "active"; anything else
// outside the vocabulary is rejected.
func NormalizeTemplateStatus(raw string) (models.TemplateStatus, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return models.TemplateStatusActive, nil
	}
	status := models.TemplateStatus(trimmed)
	if !status.Valid() {
		return "", ErrTemplateStatusInvalid
	}
	return status, nil
}

// NormalizeTemplateVariables trims names and descriptions and drops
// entries whose name is blank. Order of the surviving entries is
// preserved.
func NormalizeTemplateVariables(raw []dto.TemplateVariableDTO) models.TemplateVariableList {
	variables := make(models.TemplateVariableList, 0, len(raw))
	for _, v := range raw {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			continue
		}
		variables = append(variables, models.TemplateVariable{
			Name:        name,
			Description: strings.TrimSpace(v.Description),
			Required:    v.Required,
		})
	}
	return variables
}

// CreateTemplate handles the complete template creation process
func (s *TemplateFlowImpl) CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest, metadata *ClientMetadata) (*dto.TemplateDTO, error) {
	if err := s.validateCreateTemplateRequest(req); err != nil {
		return nil, NewBusinessError("TEMPLATE_VALIDATION_FAILED", "Template validation failed", err)
	}

	template := models.Template{
		UUID:      uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Content:   req.Content,
		Category:  models.TemplateCategoryOther,
		Language:  utils.DefaultTemplateLanguage,
		Status:    models.TemplateStatusActive,
		Variables: NormalizeTemplateVariables(req.Variables),
		CreatedBy: utils.DefaultActor,
	}
	if req.Category != nil {
		template.Category = NormalizeTemplateCategory(*req.Category)
	}
	if req.Language != nil {
		template.Language = NormalizeTemplateLanguage(*req.Language)
	}
	if req.Status != nil {
		status, err := NormalizeTemplateStatus(*req.Status)
		if err != nil {
			return nil, NewBusinessError("TEMPLATE_VALIDATION_FAILED", "Template validation failed", err)
		}
		template.Status = status
	}

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.templateRepo.Save(txCtx, &template)
	})
	if err != nil {
		return nil, NewBusinessError("TEMPLATE_CREATION_FAILED", "Template creation failed", err)
	}

	msg := fmt.Sprintf("Template created: %s", template.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, models.AuditActionTemplateCreated, msg, true, nil, metadata)

	result := ToTemplateDTO(template)
	return &result, nil
}

// UpdateTemplate applies a partial update to an existing template.
// Provided fields replace the stored ones after per-field
// normalization; omitted fields are left untouched.
func (s *TemplateFlowImpl) UpdateTemplate(ctx context.Context, req *dto.UpdateTemplateRequest, metadata *ClientMetadata) (*dto.TemplateDTO, error) {
	if strings.TrimSpace(req.UUID) == "" {
		return nil, NewBusinessError("TEMPLATE_VALIDATION_FAILED", "Template validation failed", ErrTemplateUUIDRequired)
	}

	template, err := s.templateRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("TEMPLATE_LOOKUP_FAILED", "Failed to lookup template", err)
	}
	if template == nil {
		return nil, NewBusinessError("TEMPLATE_NOT_FOUND", "Template not found", ErrTemplateNotFound)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewBusinessError("TEMPLATE_VALIDATION_FAILED", "Template validation failed", ErrTemplateNameRequired)
		}
		template.Name = name
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, NewBusinessError("TEMPLATE_VALIDATION_FAILED", "Template validation failed", ErrTemplateContentRequired)
		}
		template.Content = *req.Content
	}
	if req.Category != nil {
		template.Category = NormalizeTemplateCategory(*req.Category)
	}
	if req.Language != nil {
		template.Language = NormalizeTemplateLanguage(*req.Language)
	}
	if req.Status != nil {
		status, err := NormalizeTemplateStatus(*req.Status)
		if err != nil {
			return nil, NewBusinessError("TEMPLATE_VALIDATION_FAILED", "Template validation failed", err)
		}
		template.Status = status
	}
	if req.Variables != nil {
		template.Variables = NormalizeTemplateVariables(req.Variables)
	}
	template.UpdatedAt = utils.UTCNowPtr()

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.templateRepo.Update(txCtx, *template)
	})
	if err != nil {
		return nil, NewBusinessError("TEMPLATE_UPDATE_FAILED", "Template update failed", err)
	}

	msg := fmt.Sprintf("Template updated: %s", template.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, models.AuditActionTemplateUpdated, msg, true, nil, metadata)

	result := ToTemplateDTO(*template)
	return &result, nil
}

// GetTemplate retrieves a template by its public UUID
func (s *TemplateFlowImpl) GetTemplate(ctx context.Context, uuidStr string, metadata *ClientMetadata) (*dto.TemplateDTO, error) {
	if strings.TrimSpace(uuidStr) == "" {
		return nil, NewBusinessError("TEMPLATE_VALIDATION_FAILED", "Template validation failed", ErrTemplateUUIDRequired)
	}

	template, err := s.templateRepo.ByUUID(ctx, uuidStr)
	if err != nil {
		return nil, NewBusinessError("TEMPLATE_LOOKUP_FAILED", "Failed to lookup template", err)
	}
	if template == nil {
		return nil, NewBusinessError("TEMPLATE_NOT_FOUND", "Template not found", ErrTemplateNotFound)
	}

	result := ToTemplateDTO(*template)
	return &result, nil
}

// ListTemplates returns a filtered, paginated template listing
func (s *TemplateFlowImpl) ListTemplates(ctx context.Context, req *dto.ListTemplatesRequest, metadata *ClientMetadata) (*dto.ListTemplatesResponse, error) {
	var err error
	defer func() {
		if err != nil {
			err = NewBusinessError("LIST_TEMPLATES_FAILED", "Failed to list templates", err)
		}
	}()

	page, limit, offset := normalizePagination(req.Page, req.Limit)

	filter := models.TemplateFilter{}
	if req.Filter != nil {
		if req.Filter.Name != nil && *req.Filter.Name != "" {
			filter.Name = req.Filter.Name
		}
		if req.Filter.Category != nil && *req.Filter.Category != "" {
			category := models.TemplateCategory(*req.Filter.Category)
			if category.Valid() {
				filter.Category = &category
			}
		}
		if req.Filter.Language != nil && *req.Filter.Language != "" {
			lang := NormalizeTemplateLanguage(*req.Filter.Language)
			filter.Language = &lang
		}
		if req.Filter.Status != nil && *req.Filter.Status != "" {
			status := models.TemplateStatus(*req.Filter.Status)
			if status.Valid() {
				filter.Status = &status
			}
		}
	}

	orderBy := listOrderBy(req.OrderBy)

	total, err := s.templateRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.templateRepo.ByFilter(ctx, filter, orderBy, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TemplateDTO, 0, len(rows))
	for _, t := range rows {
		items = append(items, ToTemplateDTO(*t))
	}

	return &dto.ListTemplatesResponse{
		Message:    "Templates retrieved successfully",
		Items:      items,
		Pagination: buildPagination(total, page, limit),
	}, nil
}

// DeleteTemplate removes a template. Campaigns already referencing it
// keep their dangling template reference.
func (s *TemplateFlowImpl) DeleteTemplate(ctx context.Context, uuidStr string, metadata *ClientMetadata) error {
	if strings.TrimSpace(uuidStr) == "" {
		return NewBusinessError("TEMPLATE_VALIDATION_FAILED", "Template validation failed", ErrTemplateUUIDRequired)
	}

	template, err := s.templateRepo.ByUUID(ctx, uuidStr)
	if err != nil {
		return NewBusinessError("TEMPLATE_LOOKUP_FAILED", "Failed to lookup template", err)
	}
	if template == nil {
		return NewBusinessError("TEMPLATE_NOT_FOUND", "Template not found", ErrTemplateNotFound)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.templateRepo.Delete(txCtx, template.ID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewBusinessError("TEMPLATE_NOT_FOUND", "Template not found", ErrTemplateNotFound)
		}
		return NewBusinessError("TEMPLATE_DELETION_FAILED", "Template deletion failed", err)
	}

	msg := fmt.Sprintf("Template deleted: %s", template.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, models.AuditActionTemplateDeleted, msg, true, nil, metadata)

	return nil
}

// validateCreateTemplateRequest validates the template creation request
func (s *TemplateFlowImpl) validateCreateTemplateRequest(req *dto.CreateTemplateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrTemplateNameRequired
	}
	if strings.TrimSpace(req.Content) == "" {
		return ErrTemplateContentRequired
	}
	return nil
}
