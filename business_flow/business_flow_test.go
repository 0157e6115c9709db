package businessflow

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampark-crm/sampark/models"
	"github.com/sampark-crm/sampark/utils"
)

func TestNormalizePagination(t *testing.T) {
	t.Run("DefaultsApply", func(t *testing.T) {
		page, limit, offset := normalizePagination(0, 0)
		assert.Equal(t, 1, page)
		assert.Equal(t, 10, limit)
		assert.Equal(t, 0, offset)
	})

	t.Run("NegativeValuesAreClamped", func(t *testing.T) {
		page, limit, offset := normalizePagination(-3, -5)
		assert.Equal(t, 1, page)
		assert.Equal(t, 10, limit)
		assert.Equal(t, 0, offset)
	})

	t.Run("LimitIsCapped", func(t *testing.T) {
		_, limit, _ := normalizePagination(1, 500)
		assert.Equal(t, 100, limit)
	})

	t.Run("OffsetFollowsPage", func(t *testing.T) {
		page, limit, offset := normalizePagination(3, 25)
		assert.Equal(t, 3, page)
		assert.Equal(t, 25, limit)
		assert.Equal(t, 50, offset)
	})
}

func TestListOrderBy(t *testing.T) {
	assert.Equal(t, "created_at ASC", listOrderBy("oldest"))
	assert.Equal(t, "created_at DESC", listOrderBy("newest"))
	assert.Equal(t, "created_at DESC", listOrderBy(""))
	assert.Equal(t, "created_at DESC", listOrderBy("garbage"))
}

func TestBuildPagination(t *testing.T) {
	t.Run("ExactDivision", func(t *testing.T) {
		p := buildPagination(40, 2, 10)
		assert.Equal(t, int64(40), p.Total)
		assert.Equal(t, 2, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, 4, p.TotalPages)
	})

	t.Run("PartialLastPage", func(t *testing.T) {
		p := buildPagination(41, 1, 10)
		assert.Equal(t, 5, p.TotalPages)
	})

	t.Run("EmptyResult", func(t *testing.T) {
		p := buildPagination(0, 1, 10)
		assert.Equal(t, 0, p.TotalPages)
	})
}

func TestToContactDTO(t *testing.T) {
	now := time.Now().UTC()
	contact := models.Contact{
		ID:        7,
		UUID:      uuid.New(),
		Name:      "Asha Patel",
		Phone:     "+919876543210",
		Email:     utils.ToPtr("asha@example.com"),
		Category:  models.ContactCategoryLead,
		Status:    models.ContactStatusActive,
		Tags:      models.StringList{"vip"},
		CreatedAt: now,
	}

	out := ToContactDTO(contact)
	assert.Equal(t, uint(7), out.ID)
	assert.Equal(t, contact.UUID.String(), out.UUID)
	assert.Equal(t, "lead", out.Category)
	assert.Equal(t, "active", out.Status)
	assert.Equal(t, []string{"vip"}, out.Tags)
	require.NotNil(t, out.Email)
	assert.Equal(t, "asha@example.com", *out.Email)
}

func TestToGetCampaignResponse(t *testing.T) {
	campaign := models.Campaign{
		ID:         3,
		UUID:       uuid.New(),
		Name:       "Diwali Push",
		TemplateID: 9,
		Recipients: models.RecipientList{4, 2, 4},
		VariableMappings: models.VariableMappingList{
			{VariableName: "name", Type: models.MappingTypeField, Value: "name"},
		},
		AudienceFilters: models.AudienceFilters{Category: "lead"},
		Status:          models.CampaignStatusDraft,
		CreatedAt:       time.Now().UTC(),
	}

	out := ToGetCampaignResponse(campaign)
	assert.Equal(t, campaign.UUID.String(), out.UUID)
	assert.Equal(t, "draft", out.Status)
	assert.Equal(t, []uint{4, 2, 4}, out.RecipientIDs)
	assert.Equal(t, 3, out.RecipientCount)
	require.NotNil(t, out.AudienceFilters.Category)
	assert.Equal(t, "lead", *out.AudienceFilters.Category)
	require.NotNil(t, out.AudienceFilters.Status)
	assert.Equal(t, models.AudienceFilterAll, *out.AudienceFilters.Status)
	require.Len(t, out.VariableMappings, 1)
	assert.Equal(t, "field", out.VariableMappings[0].Type)
	assert.Nil(t, out.Template)

	t.Run("PreloadedTemplateIsIncluded", func(t *testing.T) {
		campaign.Template = &models.Template{
			ID:       9,
			UUID:     uuid.New(),
			Name:     "Festival Greeting",
			Category: models.TemplateCategoryMarketing,
			Content:  "Hello {{name}}!",
			Language: "en",
			Status:   models.TemplateStatusActive,
		}
		out := ToGetCampaignResponse(campaign)
		require.NotNil(t, out.Template)
		assert.Equal(t, "Festival Greeting", out.Template.Name)
	})
}
