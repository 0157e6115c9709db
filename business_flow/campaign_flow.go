// Package businessflow contains the core business logic and use cases for campaign composition workflows
package businessflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sampark-crm/sampark/app/dto"
	"github.com/sampark-crm/sampark/config"
	"github.com/sampark-crm/sampark/models"
	"github.com/sampark-crm/sampark/repository"
	"github.com/sampark-crm/sampark/utils"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CampaignFlow handles the campaign composition business logic
type CampaignFlow interface {
	CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*dto.CreateCampaignResponse, error)
	UpdateCampaign(ctx context.Context, req *dto.UpdateCampaignRequest, metadata *ClientMetadata) (*dto.GetCampaignResponse, error)
	GetCampaign(ctx context.Context, req *dto.GetCampaignRequest, metadata *ClientMetadata) (*dto.GetCampaignResponse, error)
	ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest, metadata *ClientMetadata) (*dto.ListCampaignsResponse, error)
	DeleteCampaign(ctx context.Context, uuidStr string, metadata *ClientMetadata) error
	ReResolveAudience(ctx context.Context, uuidStr string, metadata *ClientMetadata) (*dto.ReResolveCampaignResponse, error)
}

// CampaignFlowImpl implements the campaign business flow
type CampaignFlowImpl struct {
	campaignRepo repository.CampaignRepository
	templateRepo repository.TemplateRepository
	contactRepo  repository.ContactRepository
	auditRepo    repository.AuditLogRepository
	cacheConfig  *config.CacheConfig
	rc           *redis.Client
	db           *gorm.DB
}

// NewCampaignFlow creates a new campaign flow instance
func NewCampaignFlow(
	campaignRepo repository.CampaignRepository,
	templateRepo repository.TemplateRepository,
	contactRepo repository.ContactRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
) CampaignFlow {
	return &CampaignFlowImpl{
		campaignRepo: campaignRepo,
		templateRepo: templateRepo,
		contactRepo:  contactRepo,
		auditRepo:    auditRepo,
		cacheConfig:  cacheConfig,
		rc:           rc,
		db:           db,
	}
}

// redisKey prefixes a cache key with the configured namespace
func redisKey(cfg config.CacheConfig, key string) string {
	return cfg.RedisPrefix + key
}

// audienceCacheKey derives the cache key for a canonical filter pair
func audienceCacheKey(cfg config.CacheConfig, filters models.AudienceFilters) string {
	return redisKey(cfg, fmt.Sprintf("audience:%s:%s", filters.Category, filters.Status))
}

// CreateCampaign composes a campaign: it checks the referenced
// template, resolves the recipient snapshot, normalizes the variable
// mappings, derives the lifecycle state and persists the result in one
// transaction.
func (s *CampaignFlowImpl) CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*dto.CreateCampaignResponse, error) {
	if err := s.validateCreateCampaignRequest(req); err != nil {
		return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", err)
	}

	// Template existence is checked at creation only. A later template
	// deletion leaves the campaign with a dangling reference.
	template, err := s.templateRepo.ByUUID(ctx, req.TemplateUUID)
	if err != nil {
		return nil, NewBusinessError("TEMPLATE_LOOKUP_FAILED", "Failed to lookup template", err)
	}
	if template == nil {
		return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", ErrTemplateNotFound)
	}

	filters := audienceFiltersFromDTO(req.AudienceFilters)

	recipients, err := s.resolveAudience(ctx, req.ContactIDs, filters, false)
	if err != nil {
		return nil, NewBusinessError("AUDIENCE_RESOLUTION_FAILED", "Failed to resolve campaign audience", err)
	}

	mappings, err := normalizeMappings(req.VariableMappings)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", err)
	}

	campaign := models.Campaign{
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		TemplateID:       template.ID,
		Recipients:       recipients,
		VariableMappings: mappings,
		AudienceFilters:  filters,
		Status:           models.CampaignStatusDraft,
	}

	if req.ScheduledAt != nil {
		if req.ScheduledAt.IsZero() {
			return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", ErrScheduledAtInvalid)
		}
		campaign.Status = models.CampaignStatusScheduled
		campaign.ScheduledAt = utils.TimeToUTCPtr(req.ScheduledAt)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.campaignRepo.Create(txCtx, &campaign)
	})
	if err != nil {
		errMsg := fmt.Sprintf("Campaign creation failed: %s", err.Error())
		_ = createAuditLog(ctx, s.auditRepo, models.AuditActionCampaignCreationFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("CAMPAIGN_CREATION_FAILED", "Campaign creation failed", err)
	}

	msg := fmt.Sprintf("Campaign created: %s", campaign.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, models.AuditActionCampaignCreated, msg, true, nil, metadata)

	return &dto.CreateCampaignResponse{
		Message:        "Campaign created successfully",
		UUID:           campaign.UUID.String(),
		Status:         campaign.Status.String(),
		RecipientCount: len(campaign.Recipients),
		CreatedAt:      campaign.CreatedAt.Format(time.RFC3339),
	}, nil
}

// UpdateCampaign applies a partial update. Provided fields replace the
// stored ones; a changed explicit contact list or filter pair triggers
// a fresh audience resolution.
func (s *CampaignFlowImpl) UpdateCampaign(ctx context.Context, req *dto.UpdateCampaignRequest, metadata *ClientMetadata) (*dto.GetCampaignResponse, error) {
	if strings.TrimSpace(req.UUID) == "" {
		return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", ErrCampaignUUIDRequired)
	}
	if err := s.validateUpdateCampaignRequest(req); err != nil {
		return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", err)
	}

	campaign, err := s.campaignRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", ErrCampaignNameRequired)
		}
		campaign.Name = name
	}
	if req.Description != nil {
		campaign.Description = req.Description
	}
	if req.TemplateUUID != nil {
		template, err := s.templateRepo.ByUUID(ctx, *req.TemplateUUID)
		if err != nil {
			return nil, NewBusinessError("TEMPLATE_LOOKUP_FAILED", "Failed to lookup template", err)
		}
		if template == nil {
			return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", ErrTemplateNotFound)
		}
		campaign.TemplateID = template.ID
		campaign.Template = template
	}
	if req.VariableMappings != nil {
		mappings, err := normalizeMappings(req.VariableMappings)
		if err != nil {
			return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", err)
		}
		campaign.VariableMappings = mappings
	}

	// A new explicit list or filter pair replaces the stored recipient
	// snapshot. Untouched audience inputs leave the snapshot as-is.
	if req.ContactIDs != nil || req.AudienceFilters != nil {
		filters := campaign.AudienceFilters
		if req.AudienceFilters != nil {
			filters = audienceFiltersFromDTO(req.AudienceFilters)
			campaign.AudienceFilters = filters
		}
		recipients, err := s.resolveAudience(ctx, req.ContactIDs, filters, false)
		if err != nil {
			return nil, NewBusinessError("AUDIENCE_RESOLUTION_FAILED", "Failed to resolve campaign audience", err)
		}
		campaign.Recipients = recipients
	}

	if req.ScheduledAt != nil {
		// A zero timestamp clears the schedule without touching the
		// campaign status.
		if req.ScheduledAt.IsZero() {
			campaign.ScheduledAt = nil
		} else {
			campaign.ScheduledAt = utils.TimeToUTCPtr(req.ScheduledAt)
		}
	}

	if req.Status != nil {
		status := models.CampaignStatus(*req.Status)
		if !status.Valid() {
			return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", ErrCampaignStatusInvalid)
		}
		if !campaign.CanTransitionTo(status) {
			return nil, NewBusinessError("CAMPAIGN_STATUS_TRANSITION_BLOCKED", "Campaign status transition blocked", ErrStatusTransitionBlocked)
		}
		if status == models.CampaignStatusSent && campaign.SentAt == nil {
			campaign.SentAt = utils.UTCNowPtr()
		}
		campaign.Status = status
	}

	campaign.UpdatedAt = utils.UTCNowPtr()

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.campaignRepo.Update(txCtx, *campaign)
	})
	if err != nil {
		errMsg := fmt.Sprintf("Campaign update failed: %s", err.Error())
		_ = createAuditLog(ctx, s.auditRepo, models.AuditActionCampaignUpdateFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("CAMPAIGN_UPDATE_FAILED", "Campaign update failed", err)
	}

	msg := fmt.Sprintf("Campaign updated: %s", campaign.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, models.AuditActionCampaignUpdated, msg, true, nil, metadata)

	resp := ToGetCampaignResponse(*campaign)
	return &resp, nil
}

// GetCampaign retrieves a campaign with its template relation and the
// still-existing recipient contacts expanded.
func (s *CampaignFlowImpl) GetCampaign(ctx context.Context, req *dto.GetCampaignRequest, metadata *ClientMetadata) (*dto.GetCampaignResponse, error) {
	if strings.TrimSpace(req.UUID) == "" {
		return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", ErrCampaignUUIDRequired)
	}

	campaign, err := s.campaignRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	resp := ToGetCampaignResponse(*campaign)

	// Batch-fetch the snapshot contacts. IDs deleted since resolution
	// simply have no expanded entry.
	if len(campaign.Recipients) > 0 {
		contacts, err := s.contactRepo.ByIDs(ctx, []uint(campaign.Recipients))
		if err != nil {
			return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to fetch campaign recipients", err)
		}
		recipients := make([]dto.ContactDTO, 0, len(contacts))
		for _, c := range contacts {
			recipients = append(recipients, ToContactDTO(*c))
		}
		resp.Recipients = recipients
	}

	return &resp, nil
}

// ListCampaigns returns a filtered, paginated campaign listing
func (s *CampaignFlowImpl) ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest, metadata *ClientMetadata) (*dto.ListCampaignsResponse, error) {
	var err error
	defer func() {
		if err != nil {
			err = NewBusinessError("LIST_CAMPAIGNS_FAILED", "Failed to list campaigns", err)
		}
	}()

	page, limit, offset := normalizePagination(req.Page, req.Limit)

	filter := models.CampaignFilter{}
	if req.Filter != nil {
		if req.Filter.Name != nil && *req.Filter.Name != "" {
			filter.Name = req.Filter.Name
		}
		if req.Filter.Status != nil && *req.Filter.Status != "" {
			status := models.CampaignStatus(*req.Filter.Status)
			if status.Valid() {
				filter.Status = &status
			}
		}
		filter.ScheduledAfter = req.Filter.ScheduledAfter
		filter.ScheduledBefore = req.Filter.ScheduledUntil
	}

	orderBy := listOrderBy(req.OrderBy)

	total, err := s.campaignRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.campaignRepo.ByFilter(ctx, filter, orderBy, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.GetCampaignResponse, 0, len(rows))
	for _, c := range rows {
		items = append(items, ToGetCampaignResponse(*c))
	}

	return &dto.ListCampaignsResponse{
		Message:    "Campaigns retrieved successfully",
		Items:      items,
		Pagination: buildPagination(total, page, limit),
	}, nil
}

// DeleteCampaign removes a campaign by its public UUID
func (s *CampaignFlowImpl) DeleteCampaign(ctx context.Context, uuidStr string, metadata *ClientMetadata) error {
	if strings.TrimSpace(uuidStr) == "" {
		return NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", ErrCampaignUUIDRequired)
	}

	campaign, err := s.campaignRepo.ByUUID(ctx, uuidStr)
	if err != nil {
		return NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.campaignRepo.Delete(txCtx, campaign.ID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
		}
		return NewBusinessError("CAMPAIGN_DELETION_FAILED", "Campaign deletion failed", err)
	}

	msg := fmt.Sprintf("Campaign deleted: %s", campaign.UUID.String())
	_ = createAuditLog(ctx, s.auditRepo, models.AuditActionCampaignDeleted, msg, true, nil, metadata)

	return nil
}

// ReResolveAudience refreshes the recipient snapshot from the stored
// audience filters, bypassing the cache so the result reflects the
// current contact store.
func (s *CampaignFlowImpl) ReResolveAudience(ctx context.Context, uuidStr string, metadata *ClientMetadata) (*dto.ReResolveCampaignResponse, error) {
	if strings.TrimSpace(uuidStr) == "" {
		return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", ErrCampaignUUIDRequired)
	}

	campaign, err := s.campaignRepo.ByUUID(ctx, uuidStr)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	recipients, err := s.resolveAudience(ctx, nil, campaign.AudienceFilters, true)
	if err != nil {
		return nil, NewBusinessError("AUDIENCE_RESOLUTION_FAILED", "Failed to resolve campaign audience", err)
	}

	campaign.Recipients = recipients
	campaign.UpdatedAt = utils.UTCNowPtr()

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.campaignRepo.Update(txCtx, *campaign)
	})
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_UPDATE_FAILED", "Campaign update failed", err)
	}

	msg := fmt.Sprintf("Campaign audience re-resolved: %s (%d recipients)", campaign.UUID.String(), len(recipients))
	_ = createAuditLog(ctx, s.auditRepo, models.AuditActionCampaignReResolved, msg, true, nil, metadata)

	return &dto.ReResolveCampaignResponse{
		Message:        "Campaign audience re-resolved successfully",
		UUID:           campaign.UUID.String(),
		RecipientCount: len(recipients),
		RecipientIDs:   []uint(recipients),
	}, nil
}

// resolveAudience turns audience inputs into a recipient snapshot. A
// non-empty explicit list wins verbatim, order and duplicates kept, and
// never touches the cache. Filter resolution goes through a best-effort
// redis cache-aside unless fresh is set.
func (s *CampaignFlowImpl) resolveAudience(ctx context.Context, explicitIDs []uint, filters models.AudienceFilters, fresh bool) (models.RecipientList, error) {
	if len(explicitIDs) > 0 {
		return models.RecipientList(explicitIDs), nil
	}

	filters = filters.Canonical()

	var cacheKey string
	if s.rc != nil && s.cacheConfig != nil && s.cacheConfig.Enabled {
		cacheKey = audienceCacheKey(*s.cacheConfig, filters)
		if !fresh {
			if bs, err := s.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
				var ids models.RecipientList
				if err := json.Unmarshal(bs, &ids); err == nil {
					return ids, nil
				}
			}
		}
	}

	filter, matchable := contactFilterFromAudience(filters)
	if !matchable {
		return models.RecipientList{}, nil
	}

	ids, err := s.contactRepo.IDsByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	recipients := models.RecipientList(ids)

	if cacheKey != "" {
		if bs, err := json.Marshal(recipients); err == nil {
			_ = s.rc.Set(ctx, cacheKey, bs, utils.AudienceSpecCacheTTL).Err()
		}
	}

	return recipients, nil
}

// contactFilterFromAudience maps canonical audience filters onto a
// contact repository filter. A value outside the closed contact
// vocabularies can never match a stored contact, reported via the
// second return.
func contactFilterFromAudience(filters models.AudienceFilters) (models.ContactFilter, bool) {
	filter := models.ContactFilter{}

	if filters.Category != models.AudienceFilterAll {
		category := models.ContactCategory(filters.Category)
		if !category.Valid() {
			return filter, false
		}
		filter.Category = &category
	}
	if filters.Status != models.AudienceFilterAll {
		status := models.ContactStatus(filters.Status)
		if !status.Valid() {
			return filter, false
		}
		filter.Status = &status
	}

	return filter, true
}

// audienceFiltersFromDTO converts request-layer filters to their
// canonical stored form
func audienceFiltersFromDTO(in *dto.AudienceFiltersDTO) models.AudienceFilters {
	filters := models.AudienceFilters{}
	if in != nil {
		if in.Category != nil {
			filters.Category = strings.ToLower(strings.TrimSpace(*in.Category))
		}
		if in.Status != nil {
			filters.Status = strings.ToLower(strings.TrimSpace(*in.Status))
		}
	}
	return filters.Canonical()
}

// normalizeMappings validates and normalizes placeholder bindings.
// Entries pass through in order, duplicates included; an empty type
// defaults to "field".
func normalizeMappings(raw []dto.VariableMappingDTO) (models.VariableMappingList, error) {
	mappings := make(models.VariableMappingList, 0, len(raw))
	for _, m := range raw {
		name := strings.TrimSpace(m.VariableName)
		if name == "" {
			return nil, ErrMappingVariableNameRequired
		}

		mappingType := models.MappingType(strings.ToLower(strings.TrimSpace(m.Type)))
		if mappingType == "" {
			mappingType = models.MappingTypeField
		}
		if !mappingType.Valid() {
			return nil, ErrMappingTypeInvalid
		}

		mappings = append(mappings, models.VariableMapping{
			VariableName: name,
			Type:         mappingType,
			Value:        m.Value,
		})
	}
	return mappings, nil
}

// validateCreateCampaignRequest validates the campaign creation request
func (s *CampaignFlowImpl) validateCreateCampaignRequest(req *dto.CreateCampaignRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrCampaignNameRequired
	}
	if strings.TrimSpace(req.TemplateUUID) == "" {
		return ErrTemplateUUIDRequired
	}
	return nil
}

// validateUpdateCampaignRequest ensures at least one updatable field is present
func (s *CampaignFlowImpl) validateUpdateCampaignRequest(req *dto.UpdateCampaignRequest) error {
	if req.Name == nil && req.Description == nil && req.TemplateUUID == nil &&
		req.ContactIDs == nil && req.AudienceFilters == nil && req.VariableMappings == nil &&
		req.ScheduledAt == nil && req.Status == nil {
		return ErrCampaignUpdateRequired
	}
	return nil
}
