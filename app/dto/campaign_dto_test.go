package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestCreateCampaignRequestValidation(t *testing.T) {
	validate := validator.New()

	valid := CreateCampaignRequest{
		Name:         "Diwali Push",
		TemplateUUID: "3f3c8a2e-2f9e-4f7a-9c33-d34e49b4a111",
	}

	t.Run("MappingsAreValidatedPerElement", func(t *testing.T) {
		req := valid
		req.VariableMappings = []VariableMappingDTO{
			{VariableName: "name", Type: "lookup"},
		}
		assert.Error(t, validate.Struct(&req))
	})

	t.Run("BlankMappingNameIsRejected", func(t *testing.T) {
		req := valid
		req.VariableMappings = []VariableMappingDTO{
			{VariableName: "", Type: "field"},
		}
		assert.Error(t, validate.Struct(&req))
	})

	t.Run("OmittedMappingTypePasses", func(t *testing.T) {
		req := valid
		req.VariableMappings = []VariableMappingDTO{
			{VariableName: "name"},
		}
		assert.NoError(t, validate.Struct(&req))
	})

	t.Run("KnownMappingTypesPass", func(t *testing.T) {
		req := valid
		req.VariableMappings = []VariableMappingDTO{
			{VariableName: "name", Type: "field"},
			{VariableName: "greeting", Type: "static", Value: "Namaste"},
		}
		assert.NoError(t, validate.Struct(&req))
	})
}

func TestUpdateCampaignRequestValidation(t *testing.T) {
	validate := validator.New()

	t.Run("MappingsAreValidatedPerElement", func(t *testing.T) {
		req := UpdateCampaignRequest{
			UUID: "3f3c8a2e-2f9e-4f7a-9c33-d34e49b4a111",
			VariableMappings: []VariableMappingDTO{
				{VariableName: "name", Type: "lookup"},
			},
		}
		assert.Error(t, validate.Struct(&req))
	})

	t.Run("EmptyMappingSlicePasses", func(t *testing.T) {
		req := UpdateCampaignRequest{
			UUID: "3f3c8a2e-2f9e-4f7a-9c33-d34e49b4a111",
		}
		assert.NoError(t, validate.Struct(&req))
	})
}
