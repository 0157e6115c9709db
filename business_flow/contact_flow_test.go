package businessflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampark-crm/sampark/app/dto"
	"github.com/sampark-crm/sampark/models"
	"github.com/sampark-crm/sampark/utils"
)

func TestContactFromCreateRequest(t *testing.T) {
	t.Run("NameRequired", func(t *testing.T) {
		_, err := contactFromCreateRequest(&dto.CreateContactRequest{
			Name:  "   ",
			Phone: "+919876543210",
		})
		assert.ErrorIs(t, err, ErrContactNameRequired)
	})

	t.Run("PhoneRequired", func(t *testing.T) {
		_, err := contactFromCreateRequest(&dto.CreateContactRequest{
			Name: "Asha Patel",
		})
		assert.ErrorIs(t, err, ErrContactPhoneRequired)
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		contact, err := contactFromCreateRequest(&dto.CreateContactRequest{
			Name:  "  Asha Patel  ",
			Phone: " +919876543210 ",
		})
		require.NoError(t, err)
		assert.Equal(t, "Asha Patel", contact.Name)
		assert.Equal(t, "+919876543210", contact.Phone)
		assert.Equal(t, models.ContactCategoryCustomer, contact.Category)
		assert.Equal(t, models.ContactStatusActive, contact.Status)
		assert.Equal(t, utils.DefaultActor, contact.CreatedBy)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", contact.UUID.String())
	})

	t.Run("CategoryIsCaseInsensitive", func(t *testing.T) {
		contact, err := contactFromCreateRequest(&dto.CreateContactRequest{
			Name:     "Asha Patel",
			Phone:    "+919876543210",
			Category: utils.ToPtr(" Lead "),
		})
		require.NoError(t, err)
		assert.Equal(t, models.ContactCategoryLead, contact.Category)
	})

	t.Run("InvalidCategoryIsRejected", func(t *testing.T) {
		_, err := contactFromCreateRequest(&dto.CreateContactRequest{
			Name:     "Asha Patel",
			Phone:    "+919876543210",
			Category: utils.ToPtr("partner"),
		})
		assert.ErrorIs(t, err, ErrContactCategoryInvalid)
	})

	t.Run("InvalidStatusIsRejected", func(t *testing.T) {
		_, err := contactFromCreateRequest(&dto.CreateContactRequest{
			Name:   "Asha Patel",
			Phone:  "+919876543210",
			Status: utils.ToPtr("dormant"),
		})
		assert.ErrorIs(t, err, ErrContactStatusInvalid)
	})

	t.Run("EmailIsTrimmedAndLowercased", func(t *testing.T) {
		contact, err := contactFromCreateRequest(&dto.CreateContactRequest{
			Name:  "Asha Patel",
			Phone: "+919876543210",
			Email: utils.ToPtr(" Asha.PATEL@Example.COM "),
		})
		require.NoError(t, err)
		require.NotNil(t, contact.Email)
		assert.Equal(t, "asha.patel@example.com", *contact.Email)
	})

	t.Run("TagsAndNotesCarryOver", func(t *testing.T) {
		contact, err := contactFromCreateRequest(&dto.CreateContactRequest{
			Name:  "Asha Patel",
			Phone: "+919876543210",
			Tags:  []string{"vip", "festival"},
			Notes: utils.ToPtr("Prefers morning calls"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.StringList{"vip", "festival"}, contact.Tags)
		require.NotNil(t, contact.Notes)
		assert.Equal(t, "Prefers morning calls", *contact.Notes)
	})
}

func TestNormalizeContactEmail(t *testing.T) {
	t.Run("NilStaysNil", func(t *testing.T) {
		assert.Nil(t, normalizeContactEmail(nil))
	})

	t.Run("FoldsToStoredForm", func(t *testing.T) {
		out := normalizeContactEmail(utils.ToPtr("  Ravi.SHAH@Example.COM  "))
		require.NotNil(t, out)
		assert.Equal(t, "ravi.shah@example.com", *out)
	})

	t.Run("AlreadyCanonicalPassesThrough", func(t *testing.T) {
		out := normalizeContactEmail(utils.ToPtr("ravi@example.com"))
		require.NotNil(t, out)
		assert.Equal(t, "ravi@example.com", *out)
	})
}

func TestContactFilterFromListRequest(t *testing.T) {
	t.Run("NilFilterMeansNoPredicates", func(t *testing.T) {
		filter := contactFilterFromListRequest(nil)
		assert.Nil(t, filter.Name)
		assert.Nil(t, filter.Category)
		assert.Nil(t, filter.Status)
		assert.Nil(t, filter.Tag)
	})

	t.Run("ValidValuesMapThrough", func(t *testing.T) {
		filter := contactFilterFromListRequest(&dto.ListContactsFilter{
			Name:     utils.ToPtr("asha"),
			Category: utils.ToPtr("vendor"),
			Status:   utils.ToPtr("pending"),
			Tag:      utils.ToPtr("vip"),
		})
		require.NotNil(t, filter.Category)
		assert.Equal(t, models.ContactCategoryVendor, *filter.Category)
		require.NotNil(t, filter.Status)
		assert.Equal(t, models.ContactStatusPending, *filter.Status)
		assert.Equal(t, "asha", *filter.Name)
		assert.Equal(t, "vip", *filter.Tag)
	})

	t.Run("ValuesOutsideVocabularyAreDropped", func(t *testing.T) {
		filter := contactFilterFromListRequest(&dto.ListContactsFilter{
			Category: utils.ToPtr("partner"),
			Status:   utils.ToPtr("dormant"),
		})
		assert.Nil(t, filter.Category)
		assert.Nil(t, filter.Status)
	})
}
