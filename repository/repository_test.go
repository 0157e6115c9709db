package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampark-crm/sampark/models"
	testingutil "github.com/sampark-crm/sampark/testing"
	"github.com/sampark-crm/sampark/utils"
)

// setupDB provisions an isolated database per test, skipping when no
// Postgres server is reachable.
func setupDB(t *testing.T) *testingutil.TestDB {
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
	return testDB
}

func TestContactRepository(t *testing.T) {
	testDB := setupDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	repo := NewContactRepository(testDB.DB)
	ctx := context.Background()

	t.Run("SaveAndByUUID", func(t *testing.T) {
		contact, err := fixtures.CreateTestContact(models.ContactCategoryLead, models.ContactStatusActive)
		require.NoError(t, err)

		found, err := repo.ByUUID(ctx, contact.UUID.String())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, contact.Name, found.Name)
		assert.Equal(t, models.ContactCategoryLead, found.Category)
	})

	t.Run("ByUUIDMissingReturnsNil", func(t *testing.T) {
		found, err := repo.ByUUID(ctx, "3f3c8a2e-2f9e-4f7a-9c33-d34e49b4a111")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("IDsByFilter", func(t *testing.T) {
		require.NoError(t, testDB.ClearAllTables())

		lead, err := fixtures.CreateTestContact(models.ContactCategoryLead, models.ContactStatusActive)
		require.NoError(t, err)
		_, err = fixtures.CreateTestContact(models.ContactCategoryCustomer, models.ContactStatusInactive)
		require.NoError(t, err)

		category := models.ContactCategoryLead
		ids, err := repo.IDsByFilter(ctx, models.ContactFilter{Category: &category})
		require.NoError(t, err)
		require.Len(t, ids, 1)
		assert.Equal(t, lead.ID, ids[0])
	})

	t.Run("ByIDsSkipsMissing", func(t *testing.T) {
		require.NoError(t, testDB.ClearAllTables())

		contacts, err := fixtures.CreateTestContacts(2)
		require.NoError(t, err)

		found, err := repo.ByIDs(ctx, []uint{contacts[0].ID, contacts[1].ID, 999999})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("UpdateAndDelete", func(t *testing.T) {
		contact, err := fixtures.CreateTestContact(models.ContactCategoryCustomer, models.ContactStatusActive)
		require.NoError(t, err)

		contact.Name = "Renamed Contact"
		require.NoError(t, repo.Update(ctx, *contact))

		found, err := repo.ByID(ctx, contact.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Renamed Contact", found.Name)

		require.NoError(t, repo.Delete(ctx, contact.ID))
		found, err = repo.ByID(ctx, contact.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestTemplateRepository(t *testing.T) {
	testDB := setupDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	repo := NewTemplateRepository(testDB.DB)
	ctx := context.Background()

	t.Run("SaveAndByUUID", func(t *testing.T) {
		template, err := fixtures.CreateTestTemplate()
		require.NoError(t, err)

		found, err := repo.ByUUID(ctx, template.UUID.String())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, template.Name, found.Name)
		require.Len(t, found.Variables, 1)
		assert.Equal(t, "name", found.Variables[0].Name)
	})

	t.Run("FilterByLanguage", func(t *testing.T) {
		require.NoError(t, testDB.ClearAllTables())

		_, err := fixtures.CreateTestTemplate()
		require.NoError(t, err)

		rows, err := repo.ByFilter(ctx, models.TemplateFilter{Language: utils.ToPtr("en")}, "created_at DESC", 10, 0)
		require.NoError(t, err)
		assert.Len(t, rows, 1)

		rows, err = repo.ByFilter(ctx, models.TemplateFilter{Language: utils.ToPtr("hi")}, "created_at DESC", 10, 0)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestCampaignRepository(t *testing.T) {
	testDB := setupDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	repo := NewCampaignRepository(testDB.DB)
	ctx := context.Background()

	t.Run("CreateAndByUUID", func(t *testing.T) {
		template, err := fixtures.CreateTestTemplate()
		require.NoError(t, err)
		contacts, err := fixtures.CreateTestContacts(3)
		require.NoError(t, err)

		campaign, err := fixtures.CreateTestCampaign(template.ID, []uint{contacts[0].ID, contacts[2].ID, contacts[0].ID})
		require.NoError(t, err)

		found, err := repo.ByUUID(ctx, campaign.UUID.String())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, models.CampaignStatusDraft, found.Status)

		// Snapshot order and duplicates survive the round trip
		assert.Equal(t, models.RecipientList{contacts[0].ID, contacts[2].ID, contacts[0].ID}, found.Recipients)
		assert.Equal(t, models.AudienceFilterAll, found.AudienceFilters.Category)
	})

	t.Run("TemplateIsPreloaded", func(t *testing.T) {
		template, err := fixtures.CreateTestTemplate()
		require.NoError(t, err)
		campaign, err := fixtures.CreateTestCampaign(template.ID, nil)
		require.NoError(t, err)

		found, err := repo.ByUUID(ctx, campaign.UUID.String())
		require.NoError(t, err)
		require.NotNil(t, found)
		require.NotNil(t, found.Template)
		assert.Equal(t, template.Name, found.Template.Name)
	})

	t.Run("FilterByStatus", func(t *testing.T) {
		require.NoError(t, testDB.ClearAllTables())

		template, err := fixtures.CreateTestTemplate()
		require.NoError(t, err)
		_, err = fixtures.CreateTestCampaign(template.ID, nil)
		require.NoError(t, err)

		status := models.CampaignStatusDraft
		total, err := repo.Count(ctx, models.CampaignFilter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		sent := models.CampaignStatusSent
		total, err = repo.Count(ctx, models.CampaignFilter{Status: &sent})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}
