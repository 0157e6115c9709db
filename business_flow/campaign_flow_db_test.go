package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampark-crm/sampark/app/dto"
	"github.com/sampark-crm/sampark/models"
	"github.com/sampark-crm/sampark/repository"
	testingutil "github.com/sampark-crm/sampark/testing"
	"github.com/sampark-crm/sampark/utils"
)

// newTestCampaignFlow wires a campaign flow against an isolated test
// database, skipping when no Postgres server is reachable. The redis
// client is left nil: resolution falls back to direct queries.
func newTestCampaignFlow(t *testing.T) (CampaignFlow, *testingutil.TestFixtures, repository.CampaignRepository) {
	t.Helper()

	testDB, err := testingutil.SetupTestDB()
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := testDB.TeardownTestDB(); err != nil {
			t.Logf("teardown warning: %v", err)
		}
	})

	campaignRepo := repository.NewCampaignRepository(testDB.DB)
	flow := NewCampaignFlow(
		campaignRepo,
		repository.NewTemplateRepository(testDB.DB),
		repository.NewContactRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		testDB.DB,
		nil,
		nil,
	)

	return flow, testingutil.NewTestFixtures(testDB), campaignRepo
}

func TestCreateCampaignFlow(t *testing.T) {
	flow, fixtures, campaignRepo := newTestCampaignFlow(t)
	ctx := context.Background()
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	template, err := fixtures.CreateTestTemplate()
	require.NoError(t, err)

	t.Run("UnknownTemplateRejectsWithoutPersisting", func(t *testing.T) {
		_, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
			Name:         "Diwali Push",
			TemplateUUID: "3f3c8a2e-2f9e-4f7a-9c33-d34e49b4a111",
		}, metadata)
		require.Error(t, err)
		assert.True(t, IsTemplateNotFound(err))

		total, err := campaignRepo.Count(ctx, models.CampaignFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("ExplicitContactListWinsVerbatim", func(t *testing.T) {
		contacts, err := fixtures.CreateTestContacts(2)
		require.NoError(t, err)

		resp, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
			Name:         "Diwali Push",
			TemplateUUID: template.UUID.String(),
			ContactIDs:   []uint{contacts[1].ID, contacts[0].ID, contacts[1].ID},
		}, metadata)
		require.NoError(t, err)
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, 3, resp.RecipientCount)

		stored, err := campaignRepo.ByUUID(ctx, resp.UUID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, models.RecipientList{contacts[1].ID, contacts[0].ID, contacts[1].ID}, stored.Recipients)
	})

	t.Run("FilterResolutionSelectsMatchingContacts", func(t *testing.T) {
		lead, err := fixtures.CreateTestContact(models.ContactCategoryLead, models.ContactStatusActive)
		require.NoError(t, err)

		resp, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
			Name:         "Lead Outreach",
			TemplateUUID: template.UUID.String(),
			AudienceFilters: &dto.AudienceFiltersDTO{
				Category: utils.ToPtr("lead"),
			},
		}, metadata)
		require.NoError(t, err)

		stored, err := campaignRepo.ByUUID(ctx, resp.UUID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, models.RecipientList{lead.ID}, stored.Recipients)
	})

	t.Run("UnmatchableFilterYieldsEmptySnapshot", func(t *testing.T) {
		resp, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
			Name:         "Nobody Home",
			TemplateUUID: template.UUID.String(),
			AudienceFilters: &dto.AudienceFiltersDTO{
				Category: utils.ToPtr("partners"),
			},
		}, metadata)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.RecipientCount)
	})

	t.Run("ScheduledAtDerivesScheduledStatus", func(t *testing.T) {
		at := time.Now().UTC().Add(24 * time.Hour)
		resp, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
			Name:         "Scheduled Push",
			TemplateUUID: template.UUID.String(),
			ScheduledAt:  &at,
		}, metadata)
		require.NoError(t, err)
		assert.Equal(t, "scheduled", resp.Status)
	})

	t.Run("ZeroScheduledAtIsRejected", func(t *testing.T) {
		var zero time.Time
		_, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
			Name:         "Bad Schedule",
			TemplateUUID: template.UUID.String(),
			ScheduledAt:  &zero,
		}, metadata)
		require.Error(t, err)
		assert.True(t, IsScheduledAtInvalid(err))
	})
}

func TestUpdateCampaignFlow(t *testing.T) {
	flow, fixtures, _ := newTestCampaignFlow(t)
	ctx := context.Background()
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	template, err := fixtures.CreateTestTemplate()
	require.NoError(t, err)

	t.Run("ClearingScheduleKeepsStatus", func(t *testing.T) {
		at := time.Now().UTC().Add(24 * time.Hour)
		created, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
			Name:         "Scheduled Push",
			TemplateUUID: template.UUID.String(),
			ScheduledAt:  &at,
		}, metadata)
		require.NoError(t, err)

		var zero time.Time
		updated, err := flow.UpdateCampaign(ctx, &dto.UpdateCampaignRequest{
			UUID:        created.UUID,
			ScheduledAt: &zero,
		}, metadata)
		require.NoError(t, err)
		assert.Nil(t, updated.ScheduledAt)
		assert.Equal(t, "scheduled", updated.Status)
	})

	t.Run("TransitionToSentStampsSentAt", func(t *testing.T) {
		created, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
			Name:         "Send Me",
			TemplateUUID: template.UUID.String(),
		}, metadata)
		require.NoError(t, err)

		updated, err := flow.UpdateCampaign(ctx, &dto.UpdateCampaignRequest{
			UUID:   created.UUID,
			Status: utils.ToPtr("sent"),
		}, metadata)
		require.NoError(t, err)
		assert.Equal(t, "sent", updated.Status)
		assert.NotNil(t, updated.SentAt)
	})

	t.Run("NewContactListReplacesSnapshot", func(t *testing.T) {
		contacts, err := fixtures.CreateTestContacts(3)
		require.NoError(t, err)

		created, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
			Name:         "Replace Me",
			TemplateUUID: template.UUID.String(),
			ContactIDs:   []uint{contacts[0].ID},
		}, metadata)
		require.NoError(t, err)

		updated, err := flow.UpdateCampaign(ctx, &dto.UpdateCampaignRequest{
			UUID:       created.UUID,
			ContactIDs: []uint{contacts[2].ID, contacts[1].ID},
		}, metadata)
		require.NoError(t, err)
		assert.Equal(t, []uint{contacts[2].ID, contacts[1].ID}, updated.RecipientIDs)
	})

	t.Run("MissingCampaignReturnsNotFound", func(t *testing.T) {
		_, err := flow.UpdateCampaign(ctx, &dto.UpdateCampaignRequest{
			UUID: "3f3c8a2e-2f9e-4f7a-9c33-d34e49b4a111",
			Name: utils.ToPtr("Ghost"),
		}, metadata)
		require.Error(t, err)
		assert.True(t, IsCampaignNotFound(err))
	})
}

func TestReResolveAudienceFlow(t *testing.T) {
	flow, fixtures, campaignRepo := newTestCampaignFlow(t)
	ctx := context.Background()
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	template, err := fixtures.CreateTestTemplate()
	require.NoError(t, err)

	created, err := flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
		Name:         "Lead Outreach",
		TemplateUUID: template.UUID.String(),
		AudienceFilters: &dto.AudienceFiltersDTO{
			Category: utils.ToPtr("lead"),
		},
	}, metadata)
	require.NoError(t, err)
	assert.Equal(t, 0, created.RecipientCount)

	// A contact added after creation shows up only after re-resolution
	lead, err := fixtures.CreateTestContact(models.ContactCategoryLead, models.ContactStatusActive)
	require.NoError(t, err)

	resolved, err := flow.ReResolveAudience(ctx, created.UUID, metadata)
	require.NoError(t, err)
	assert.Equal(t, 1, resolved.RecipientCount)
	assert.Equal(t, []uint{lead.ID}, resolved.RecipientIDs)

	stored, err := campaignRepo.ByUUID(ctx, created.UUID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.RecipientList{lead.ID}, stored.Recipients)
}
