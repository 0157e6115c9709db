package businessflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampark-crm/sampark/app/dto"
	"github.com/sampark-crm/sampark/config"
	"github.com/sampark-crm/sampark/models"
	"github.com/sampark-crm/sampark/utils"
)

func TestNormalizeMappings(t *testing.T) {
	t.Run("BlankVariableNameIsRejected", func(t *testing.T) {
		_, err := normalizeMappings([]dto.VariableMappingDTO{
			{VariableName: "  ", Type: "field", Value: "name"},
		})
		assert.ErrorIs(t, err, ErrMappingVariableNameRequired)
	})

	t.Run("EmptyTypeDefaultsToField", func(t *testing.T) {
		out, err := normalizeMappings([]dto.VariableMappingDTO{
			{VariableName: "name", Value: "name"},
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, models.MappingTypeField, out[0].Type)
	})

	t.Run("UnknownTypeIsRejected", func(t *testing.T) {
		_, err := normalizeMappings([]dto.VariableMappingDTO{
			{VariableName: "name", Type: "lookup", Value: "name"},
		})
		assert.ErrorIs(t, err, ErrMappingTypeInvalid)
	})

	t.Run("TypeIsCaseInsensitive", func(t *testing.T) {
		out, err := normalizeMappings([]dto.VariableMappingDTO{
			{VariableName: "greeting", Type: " Static ", Value: "Hello!"},
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, models.MappingTypeStatic, out[0].Type)
	})

	t.Run("DuplicatesAndOrderArePreserved", func(t *testing.T) {
		out, err := normalizeMappings([]dto.VariableMappingDTO{
			{VariableName: "name", Type: "field", Value: "name"},
			{VariableName: "name", Type: "static", Value: "friend"},
			{VariableName: "city", Type: "field", Value: "city"},
		})
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, "name", out[0].VariableName)
		assert.Equal(t, models.MappingTypeField, out[0].Type)
		assert.Equal(t, "name", out[1].VariableName)
		assert.Equal(t, models.MappingTypeStatic, out[1].Type)
		assert.Equal(t, "city", out[2].VariableName)
	})

	t.Run("ValuePassesThroughUntrimmed", func(t *testing.T) {
		out, err := normalizeMappings([]dto.VariableMappingDTO{
			{VariableName: "sig", Type: "static", Value: "  Regards,\nTeam  "},
		})
		require.NoError(t, err)
		assert.Equal(t, "  Regards,\nTeam  ", out[0].Value)
	})
}

func TestContactFilterFromAudience(t *testing.T) {
	t.Run("AllOnBothAxesMeansNoPredicates", func(t *testing.T) {
		filter, matchable := contactFilterFromAudience(models.AudienceFilters{
			Category: models.AudienceFilterAll,
			Status:   models.AudienceFilterAll,
		})
		assert.True(t, matchable)
		assert.Nil(t, filter.Category)
		assert.Nil(t, filter.Status)
	})

	t.Run("ValidValuesMapToPredicates", func(t *testing.T) {
		filter, matchable := contactFilterFromAudience(models.AudienceFilters{
			Category: "lead",
			Status:   "active",
		})
		assert.True(t, matchable)
		require.NotNil(t, filter.Category)
		assert.Equal(t, models.ContactCategoryLead, *filter.Category)
		require.NotNil(t, filter.Status)
		assert.Equal(t, models.ContactStatusActive, *filter.Status)
	})

	t.Run("InvalidCategoryCanNeverMatch", func(t *testing.T) {
		_, matchable := contactFilterFromAudience(models.AudienceFilters{
			Category: "partners",
			Status:   models.AudienceFilterAll,
		})
		assert.False(t, matchable)
	})

	t.Run("InvalidStatusCanNeverMatch", func(t *testing.T) {
		_, matchable := contactFilterFromAudience(models.AudienceFilters{
			Category: models.AudienceFilterAll,
			Status:   "dormant",
		})
		assert.False(t, matchable)
	})
}

func TestAudienceFiltersFromDTO(t *testing.T) {
	t.Run("NilInputCanonicalizesToAll", func(t *testing.T) {
		filters := audienceFiltersFromDTO(nil)
		assert.Equal(t, models.AudienceFilterAll, filters.Category)
		assert.Equal(t, models.AudienceFilterAll, filters.Status)
	})

	t.Run("ValuesAreTrimmedAndLowercased", func(t *testing.T) {
		filters := audienceFiltersFromDTO(&dto.AudienceFiltersDTO{
			Category: utils.ToPtr("  Lead "),
			Status:   utils.ToPtr("ACTIVE"),
		})
		assert.Equal(t, "lead", filters.Category)
		assert.Equal(t, "active", filters.Status)
	})

	t.Run("MissingAxisDefaultsToAll", func(t *testing.T) {
		filters := audienceFiltersFromDTO(&dto.AudienceFiltersDTO{
			Category: utils.ToPtr("vendor"),
		})
		assert.Equal(t, "vendor", filters.Category)
		assert.Equal(t, models.AudienceFilterAll, filters.Status)
	})

	t.Run("BlankValuesDefaultToAll", func(t *testing.T) {
		filters := audienceFiltersFromDTO(&dto.AudienceFiltersDTO{
			Category: utils.ToPtr("   "),
			Status:   utils.ToPtr(""),
		})
		assert.Equal(t, models.AudienceFilterAll, filters.Category)
		assert.Equal(t, models.AudienceFilterAll, filters.Status)
	})
}

func TestAudienceCacheKey(t *testing.T) {
	cfg := config.CacheConfig{RedisPrefix: "sampark:"}

	key := audienceCacheKey(cfg, models.AudienceFilters{Category: "lead", Status: "active"})
	assert.Equal(t, "sampark:audience:lead:active", key)

	key = audienceCacheKey(cfg, models.AudienceFilters{Category: "all", Status: "all"})
	assert.Equal(t, "sampark:audience:all:all", key)
}

func TestValidateCreateCampaignRequest(t *testing.T) {
	s := &CampaignFlowImpl{}

	t.Run("NameRequired", func(t *testing.T) {
		err := s.validateCreateCampaignRequest(&dto.CreateCampaignRequest{
			Name:         "  ",
			TemplateUUID: "8a2e2f9e-3f3c-4f7a-9c33-d34e49b4a111",
		})
		assert.ErrorIs(t, err, ErrCampaignNameRequired)
	})

	t.Run("TemplateUUIDRequired", func(t *testing.T) {
		err := s.validateCreateCampaignRequest(&dto.CreateCampaignRequest{
			Name: "Diwali Push",
		})
		assert.ErrorIs(t, err, ErrTemplateUUIDRequired)
	})

	t.Run("ValidRequestPasses", func(t *testing.T) {
		err := s.validateCreateCampaignRequest(&dto.CreateCampaignRequest{
			Name:         "Diwali Push",
			TemplateUUID: "8a2e2f9e-3f3c-4f7a-9c33-d34e49b4a111",
		})
		assert.NoError(t, err)
	})
}

func TestValidateUpdateCampaignRequest(t *testing.T) {
	s := &CampaignFlowImpl{}

	t.Run("EmptyUpdateIsRejected", func(t *testing.T) {
		err := s.validateUpdateCampaignRequest(&dto.UpdateCampaignRequest{UUID: "x"})
		assert.ErrorIs(t, err, ErrCampaignUpdateRequired)
	})

	t.Run("SingleFieldIsEnough", func(t *testing.T) {
		err := s.validateUpdateCampaignRequest(&dto.UpdateCampaignRequest{
			UUID: "x",
			Name: utils.ToPtr("Renamed"),
		})
		assert.NoError(t, err)
	})
}
