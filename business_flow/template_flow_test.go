package businessflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sampark-crm/sampark/app/dto"
	"github.com/sampark-crm/sampark/models"
)

func TestNormalizeTemplateLanguage(t *testing.T) {
	t.Run("BlankDefaultsToEnglish", func(t *testing.T) {
		assert.Equal(t, "en", NormalizeTemplateLanguage(""))
		assert.Equal(t, "en", NormalizeTemplateLanguage("   "))
	})

	t.Run("SynonymsFoldToCanonicalCodes", func(t *testing.T) {
		assert.Equal(t, "en", NormalizeTemplateLanguage("English"))
		assert.Equal(t, "en", NormalizeTemplateLanguage("EN"))
		assert.Equal(t, "gu", NormalizeTemplateLanguage("Gujarati"))
		assert.Equal(t, "gu", NormalizeTemplateLanguage("guj"))
		assert.Equal(t, "gu", NormalizeTemplateLanguage("gu"))
		assert.Equal(t, "hi", NormalizeTemplateLanguage("Hindi"))
		assert.Equal(t, "hi", NormalizeTemplateLanguage("hi"))
	})

	t.Run("UnknownCodesPassThroughLowercased", func(t *testing.T) {
		assert.Equal(t, "fr", NormalizeTemplateLanguage("FR"))
		assert.Equal(t, "ta", NormalizeTemplateLanguage(" ta "))
		assert.Equal(t, "klingon", NormalizeTemplateLanguage("Klingon"))
	})
}

func TestNormalizeTemplateCategory(t *testing.T) {
	t.Run("KnownValuesFoldToVocabulary", func(t *testing.T) {
		assert.Equal(t, models.TemplateCategoryMarketing, NormalizeTemplateCategory("Marketing"))
		assert.Equal(t, models.TemplateCategorySupport, NormalizeTemplateCategory(" support "))
		assert.Equal(t, models.TemplateCategoryNotification, NormalizeTemplateCategory("NOTIFICATION"))
		assert.Equal(t, models.TemplateCategoryWelcome, NormalizeTemplateCategory("welcome"))
	})

	t.Run("UnknownValuesFallBackToOther", func(t *testing.T) {
		assert.Equal(t, models.TemplateCategoryOther, NormalizeTemplateCategory("promotional"))
		assert.Equal(t, models.TemplateCategoryOther, NormalizeTemplateCategory(""))
	})
}

func TestNormalizeTemplateStatus(t *testing.T) {
	t.Run("KnownValuesFoldToVocabulary", func(t *testing.T) {
		status, err := NormalizeTemplateStatus("Active")
		assert.NoError(t, err)
		assert.Equal(t, models.TemplateStatusActive, status)

		status, err = NormalizeTemplateStatus("inactive")
		assert.NoError(t, err)
		assert.Equal(t, models.TemplateStatusInactive, status)

		status, err = NormalizeTemplateStatus(" PENDING ")
		assert.NoError(t, err)
		assert.Equal(t, models.TemplateStatusPending, status)
	})

	t.Run("BlankDefaultsToActive", func(t *testing.T) {
		status, err := NormalizeTemplateStatus("")
		assert.NoError(t, err)
		assert.Equal(t, models.TemplateStatusActive, status)

		status, err = NormalizeTemplateStatus("   ")
		assert.NoError(t, err)
		assert.Equal(t, models.TemplateStatusActive, status)
	})

	t.Run("UnknownValuesAreRejected", func(t *testing.T) {
		_, err := NormalizeTemplateStatus("archived")
		assert.ErrorIs(t, err, ErrTemplateStatusInvalid)

		_, err = NormalizeTemplateStatus("draft")
		assert.ErrorIs(t, err, ErrTemplateStatusInvalid)
	})
}

func TestNormalizeTemplateVariables(t *testing.T) {
	t.Run("BlankNamesAreDropped", func(t *testing.T) {
		out := NormalizeTemplateVariables([]dto.TemplateVariableDTO{
			{Name: "name", Description: "Recipient name", Required: true},
			{Name: "   ", Description: "dropped"},
			{Name: "", Description: "also dropped"},
			{Name: "city", Description: " Recipient city "},
		})

		assert.Len(t, out, 2)
		assert.Equal(t, "name", out[0].Name)
		assert.Equal(t, "city", out[1].Name)
	})

	t.Run("SurvivingOrderIsPreserved", func(t *testing.T) {
		out := NormalizeTemplateVariables([]dto.TemplateVariableDTO{
			{Name: "c"},
			{Name: ""},
			{Name: "a"},
			{Name: "b"},
		})

		names := make([]string, 0, len(out))
		for _, v := range out {
			names = append(names, v.Name)
		}
		assert.Equal(t, []string{"c", "a", "b"}, names)
	})

	t.Run("NamesAndDescriptionsAreTrimmed", func(t *testing.T) {
		out := NormalizeTemplateVariables([]dto.TemplateVariableDTO{
			{Name: "  greeting  ", Description: "  opening line  ", Required: true},
		})

		assert.Len(t, out, 1)
		assert.Equal(t, "greeting", out[0].Name)
		assert.Equal(t, "opening line", out[0].Description)
		assert.True(t, out[0].Required)
	})

	t.Run("EmptyInputYieldsEmptyList", func(t *testing.T) {
		assert.Empty(t, NormalizeTemplateVariables(nil))
	})
}
