// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/sampark-crm/sampark/app/dto"
	businessflow "github.com/sampark-crm/sampark/business_flow"
	"github.com/sampark-crm/sampark/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ContactHandlerInterface defines the contract for contact handlers
type ContactHandlerInterface interface {
	CreateContact(c fiber.Ctx) error
	UpdateContact(c fiber.Ctx) error
	GetContact(c fiber.Ctx) error
	ListContacts(c fiber.Ctx) error
	DeleteContact(c fiber.Ctx) error
	ImportContacts(c fiber.Ctx) error
	ExportContacts(c fiber.Ctx) error
}

// ContactHandler handles contact-related HTTP requests
type ContactHandler struct {
	contactFlow businessflow.ContactFlow
	validator   *validator.Validate
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactFlow businessflow.ContactFlow) *ContactHandler {
	return &ContactHandler{
		contactFlow: contactFlow,
		validator:   validator.New(),
	}
}

func (h *ContactHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ContactHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateContact handles the contact creation process
func (h *ContactHandler) CreateContact(c fiber.Ctx) error {
	var req dto.CreateContactRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.contactFlow.CreateContact(h.createRequestContext(c, "/api/v1/contacts"), &req, metadata)
	if err != nil {
		if businessflow.IsContactNameRequired(err) || businessflow.IsContactPhoneRequired(err) ||
			businessflow.IsContactCategoryInvalid(err) || businessflow.IsContactStatusInvalid(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Contact validation failed", "CONTACT_VALIDATION_FAILED", err.Error())
		}

		log.Println("Contact creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Contact creation failed", "CONTACT_CREATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Contact created successfully", result)
}

// UpdateContact handles partial contact updates
func (h *ContactHandler) UpdateContact(c fiber.Ctx) error {
	contactUUID := c.Params("uuid")
	if contactUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Contact UUID is required", "MISSING_CONTACT_UUID", nil)
	}

	var req dto.UpdateContactRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.UUID = contactUUID

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.contactFlow.UpdateContact(h.createRequestContext(c, "/api/v1/contacts/"+contactUUID), &req, metadata)
	if err != nil {
		if businessflow.IsContactNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", "CONTACT_NOT_FOUND", nil)
		}
		if businessflow.IsContactNameRequired(err) || businessflow.IsContactPhoneRequired(err) ||
			businessflow.IsContactCategoryInvalid(err) || businessflow.IsContactStatusInvalid(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Contact validation failed", "CONTACT_VALIDATION_FAILED", err.Error())
		}

		log.Println("Contact update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Contact update failed", "CONTACT_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Contact updated successfully", result)
}

// GetContact retrieves a single contact by UUID
func (h *ContactHandler) GetContact(c fiber.Ctx) error {
	contactUUID := c.Params("uuid")
	if contactUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Contact UUID is required", "MISSING_CONTACT_UUID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.contactFlow.GetContact(h.createRequestContext(c, "/api/v1/contacts/"+contactUUID), contactUUID, metadata)
	if err != nil {
		if businessflow.IsContactNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", "CONTACT_NOT_FOUND", nil)
		}

		log.Println("Contact lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Contact lookup failed", "CONTACT_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Contact retrieved successfully", result)
}

// ListContacts returns a filtered, paginated contact listing
func (h *ContactHandler) ListContacts(c fiber.Ctx) error {
	page := 1
	if v, err := strconv.Atoi(c.Query("page", "1")); err == nil && v > 0 {
		page = v
	}
	limit := 10
	if v, err := strconv.Atoi(c.Query("limit", "10")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	orderby := c.Query("orderby", "newest")
	name := c.Query("name")
	category := c.Query("category")
	status := c.Query("status")
	tag := c.Query("tag")

	var filter *dto.ListContactsFilter
	if name != "" || category != "" || status != "" || tag != "" {
		filter = &dto.ListContactsFilter{}
		if name != "" {
			filter.Name = &name
		}
		if category != "" {
			filter.Category = &category
		}
		if status != "" {
			filter.Status = &status
		}
		if tag != "" {
			filter.Tag = &tag
		}
	}

	req := &dto.ListContactsRequest{
		Page:    page,
		Limit:   limit,
		OrderBy: orderby,
		Filter:  filter,
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.contactFlow.ListContacts(h.createRequestContext(c, "/api/v1/contacts"), req, metadata)
	if err != nil {
		log.Println("List contacts failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list contacts", "LIST_CONTACTS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Contacts retrieved successfully", result)
}

// DeleteContact removes a contact by UUID
func (h *ContactHandler) DeleteContact(c fiber.Ctx) error {
	contactUUID := c.Params("uuid")
	if contactUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Contact UUID is required", "MISSING_CONTACT_UUID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	err := h.contactFlow.DeleteContact(h.createRequestContext(c, "/api/v1/contacts/"+contactUUID), contactUUID, metadata)
	if err != nil {
		if businessflow.IsContactNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", "CONTACT_NOT_FOUND", nil)
		}

		log.Println("Contact deletion failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Contact deletion failed", "CONTACT_DELETION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Contact deleted successfully", nil)
}

// ImportContacts bulk-creates contacts from a JSON array
func (h *ContactHandler) ImportContacts(c fiber.Ctx) error {
	var req dto.ImportContactsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.contactFlow.ImportContacts(h.createRequestContext(c, "/api/v1/contacts/import"), &req, metadata)
	if err != nil {
		if businessflow.IsNoContactsToImport(err) || businessflow.IsImportBatchTooLarge(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Contact import failed", "CONTACT_IMPORT_FAILED", err.Error())
		}

		log.Println("Contact import failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Contact import failed", "CONTACT_IMPORT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Contacts imported", result)
}

// ExportContacts streams the filtered contact book as an xlsx download
func (h *ContactHandler) ExportContacts(c fiber.Ctx) error {
	category := c.Query("category")
	status := c.Query("status")
	tag := c.Query("tag")

	var filter *dto.ListContactsFilter
	if category != "" || status != "" || tag != "" {
		filter = &dto.ListContactsFilter{}
		if category != "" {
			filter.Category = &category
		}
		if status != "" {
			filter.Status = &status
		}
		if tag != "" {
			filter.Tag = &tag
		}
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	filename, data, err := h.contactFlow.ExportContacts(h.createRequestContext(c, "/api/v1/contacts/export"), &dto.ExportContactsRequest{Filter: filter}, metadata)
	if err != nil {
		log.Println("Contact export failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export contacts", "CONTACT_EXPORT_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}

// createRequestContext mirrors other handlers for request-scoped values
func (h *ContactHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *ContactHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
