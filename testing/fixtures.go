// Package testing provides test utilities and database setup for testing the outreach system
package testing

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/sampark-crm/sampark/models"
	"github.com/sampark-crm/sampark/utils"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestContact creates a contact with the given category and status
func (tf *TestFixtures) CreateTestContact(category models.ContactCategory, status models.ContactStatus) (*models.Contact, error) {
	randomDigits := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)
	email := fmt.Sprintf("contact.%s@example.com", randomDigits)

	contact := &models.Contact{
		UUID:      uuid.New(),
		Name:      fmt.Sprintf("Test Contact %s", randomDigits),
		Phone:     fmt.Sprintf("+91%s", randomDigits),
		Email:     &email,
		Category:  category,
		Status:    status,
		Tags:      models.StringList{"fixture"},
		CreatedBy: utils.DefaultActor,
	}

	if err := tf.DB.DB.Create(contact).Error; err != nil {
		return nil, fmt.Errorf("failed to create test contact: %w", err)
	}

	return contact, nil
}

// CreateTestContacts creates n active customer contacts
func (tf *TestFixtures) CreateTestContacts(n int) ([]*models.Contact, error) {
	contacts := make([]*models.Contact, 0, n)
	for i := 0; i < n; i++ {
		contact, err := tf.CreateTestContact(models.ContactCategoryCustomer, models.ContactStatusActive)
		if err != nil {
			return nil, fmt.Errorf("failed to create contact %d: %w", i, err)
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

// CreateTestTemplate creates a message template with one declared variable
func (tf *TestFixtures) CreateTestTemplate() (*models.Template, error) {
	template := &models.Template{
		UUID:     uuid.New(),
		Name:     fmt.Sprintf("Test Template %d", rand.Intn(10000)),
		Category: models.TemplateCategoryMarketing,
		Content:  "Hello {{name}}, welcome aboard!",
		Variables: models.TemplateVariableList{
			{Name: "name", Description: "Recipient name", Required: true},
		},
		Language:  "en",
		Status:    models.TemplateStatusActive,
		CreatedBy: utils.DefaultActor,
	}

	if err := tf.DB.DB.Create(template).Error; err != nil {
		return nil, fmt.Errorf("failed to create test template: %w", err)
	}

	return template, nil
}

// CreateTestCampaign creates a draft campaign referencing the template
// with the given recipient snapshot
func (tf *TestFixtures) CreateTestCampaign(templateID uint, recipients []uint) (*models.Campaign, error) {
	campaign := &models.Campaign{
		UUID:       uuid.New(),
		Name:       fmt.Sprintf("Test Campaign %d", rand.Intn(10000)),
		TemplateID: templateID,
		Recipients: models.RecipientList(recipients),
		VariableMappings: models.VariableMappingList{
			{VariableName: "name", Type: models.MappingTypeField, Value: "name"},
		},
		AudienceFilters: models.AudienceFilters{}.Canonical(),
		Status:          models.CampaignStatusDraft,
	}

	if err := tf.DB.DB.Create(campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to create test campaign: %w", err)
	}

	return campaign, nil
}

// CreateTestAuditLog creates a test audit log entry
func (tf *TestFixtures) CreateTestAuditLog(action string, success bool) (*models.AuditLog, error) {
	description := fmt.Sprintf("Test %s action", action)
	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"
	actor := utils.DefaultActor

	audit := &models.AuditLog{
		Action:      action,
		Actor:       &actor,
		Description: &description,
		Success:     &success,
		IPAddress:   &ipAddress,
		UserAgent:   &userAgent,
	}

	if !success {
		errorMessage := "Test failed action"
		audit.ErrorMessage = &errorMessage
	}

	if err := tf.DB.DB.Create(audit).Error; err != nil {
		return nil, fmt.Errorf("failed to create test audit log: %w", err)
	}

	return audit, nil
}
