package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudienceFiltersCanonical(t *testing.T) {
	t.Run("EmptyAxesDefaultToAll", func(t *testing.T) {
		filters := AudienceFilters{}.Canonical()
		assert.Equal(t, AudienceFilterAll, filters.Category)
		assert.Equal(t, AudienceFilterAll, filters.Status)
	})

	t.Run("SetAxesAreKept", func(t *testing.T) {
		filters := AudienceFilters{Category: "lead"}.Canonical()
		assert.Equal(t, "lead", filters.Category)
		assert.Equal(t, AudienceFilterAll, filters.Status)
	})
}

func TestCampaignCanTransitionTo(t *testing.T) {
	campaign := &Campaign{Status: CampaignStatusSent}

	t.Run("AnyValidStatusIsAllowed", func(t *testing.T) {
		assert.True(t, campaign.CanTransitionTo(CampaignStatusDraft))
		assert.True(t, campaign.CanTransitionTo(CampaignStatusScheduled))
		assert.True(t, campaign.CanTransitionTo(CampaignStatusSent))
	})

	t.Run("UnknownStatusIsBlocked", func(t *testing.T) {
		assert.False(t, campaign.CanTransitionTo(CampaignStatus("archived")))
		assert.False(t, campaign.CanTransitionTo(CampaignStatus("")))
	})
}

func TestCampaignBeforeCreate(t *testing.T) {
	campaign := &Campaign{Name: "Diwali Push", TemplateID: 1}
	require.NoError(t, campaign.BeforeCreate())

	assert.NotEqual(t, uuid.Nil, campaign.UUID)
	assert.Equal(t, CampaignStatusDraft, campaign.Status)
	assert.False(t, campaign.CreatedAt.IsZero())

	t.Run("ExistingValuesAreKept", func(t *testing.T) {
		id := uuid.New()
		at := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
		campaign := &Campaign{UUID: id, Status: CampaignStatusScheduled, CreatedAt: at}
		require.NoError(t, campaign.BeforeCreate())
		assert.Equal(t, id, campaign.UUID)
		assert.Equal(t, CampaignStatusScheduled, campaign.Status)
		assert.Equal(t, at, campaign.CreatedAt)
	})
}

func TestMappingTypeValid(t *testing.T) {
	assert.True(t, MappingTypeField.Valid())
	assert.True(t, MappingTypeStatic.Valid())
	assert.False(t, MappingType("lookup").Valid())
	assert.False(t, MappingType("").Valid())
}

func TestContactVocabularies(t *testing.T) {
	t.Run("Categories", func(t *testing.T) {
		for _, c := range []ContactCategory{
			ContactCategoryCustomer, ContactCategoryLead, ContactCategoryProspect,
			ContactCategoryVendor, ContactCategoryOther,
		} {
			assert.True(t, c.Valid(), c.String())
		}
		assert.False(t, ContactCategory("partner").Valid())
	})

	t.Run("Statuses", func(t *testing.T) {
		for _, s := range []ContactStatus{
			ContactStatusActive, ContactStatusInactive, ContactStatusPending,
		} {
			assert.True(t, s.Valid(), s.String())
		}
		assert.False(t, ContactStatus("dormant").Valid())
	})
}
