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

// TemplateHandlerInterface defines the contract for template handlers
type TemplateHandlerInterface interface {
	CreateTemplate(c fiber.Ctx) error
	UpdateTemplate(c fiber.Ctx) error
	GetTemplate(c fiber.Ctx) error
	ListTemplates(c fiber.Ctx) error
	DeleteTemplate(c fiber.Ctx) error
}

// TemplateHandler handles message template HTTP requests
type TemplateHandler struct {
	templateFlow businessflow.TemplateFlow
	validator    *validator.Validate
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateFlow businessflow.TemplateFlow) *TemplateHandler {
	return &TemplateHandler{
		templateFlow: templateFlow,
		validator:    validator.New(),
	}
}

func (h *TemplateHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *TemplateHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateTemplate handles the template creation process
func (h *TemplateHandler) CreateTemplate(c fiber.Ctx) error {
	var req dto.CreateTemplateRequest
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

	result, err := h.templateFlow.CreateTemplate(h.createRequestContext(c, "/api/v1/templates"), &req, metadata)
	if err != nil {
		if businessflow.IsTemplateNameRequired(err) || businessflow.IsTemplateContentRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Template validation failed", "TEMPLATE_VALIDATION_FAILED", err.Error())
		}

		log.Println("Template creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Template creation failed", "TEMPLATE_CREATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Template created successfully", result)
}

// UpdateTemplate handles partial template updates
func (h *TemplateHandler) UpdateTemplate(c fiber.Ctx) error {
	templateUUID := c.Params("uuid")
	if templateUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Template UUID is required", "MISSING_TEMPLATE_UUID", nil)
	}

	var req dto.UpdateTemplateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.UUID = templateUUID

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.templateFlow.UpdateTemplate(h.createRequestContext(c, "/api/v1/templates/"+templateUUID), &req, metadata)
	if err != nil {
		if businessflow.IsTemplateNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Template not found", "TEMPLATE_NOT_FOUND", nil)
		}
		if businessflow.IsTemplateNameRequired(err) || businessflow.IsTemplateContentRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Template validation failed", "TEMPLATE_VALIDATION_FAILED", err.Error())
		}

		log.Println("Template update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Template update failed", "TEMPLATE_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Template updated successfully", result)
}

// GetTemplate retrieves a single template by UUID
func (h *TemplateHandler) GetTemplate(c fiber.Ctx) error {
	templateUUID := c.Params("uuid")
	if templateUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Template UUID is required", "MISSING_TEMPLATE_UUID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.templateFlow.GetTemplate(h.createRequestContext(c, "/api/v1/templates/"+templateUUID), templateUUID, metadata)
	if err != nil {
		if businessflow.IsTemplateNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Template not found", "TEMPLATE_NOT_FOUND", nil)
		}

		log.Println("Template lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Template lookup failed", "TEMPLATE_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Template retrieved successfully", result)
}

// ListTemplates returns a filtered, paginated template listing
func (h *TemplateHandler) ListTemplates(c fiber.Ctx) error {
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
	language := c.Query("language")
	status := c.Query("status")

	var filter *dto.ListTemplatesFilter
	if name != "" || category != "" || language != "" || status != "" {
		filter = &dto.ListTemplatesFilter{}
		if name != "" {
			filter.Name = &name
		}
		if category != "" {
			filter.Category = &category
		}
		if language != "" {
			filter.Language = &language
		}
		if status != "" {
			filter.Status = &status
		}
	}

	req := &dto.ListTemplatesRequest{
		Page:    page,
		Limit:   limit,
		OrderBy: orderby,
		Filter:  filter,
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.templateFlow.ListTemplates(h.createRequestContext(c, "/api/v1/templates"), req, metadata)
	if err != nil {
		log.Println("List templates failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list templates", "LIST_TEMPLATES_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Templates retrieved successfully", result)
}

// DeleteTemplate removes a template by UUID
func (h *TemplateHandler) DeleteTemplate(c fiber.Ctx) error {
	templateUUID := c.Params("uuid")
	if templateUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Template UUID is required", "MISSING_TEMPLATE_UUID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	err := h.templateFlow.DeleteTemplate(h.createRequestContext(c, "/api/v1/templates/"+templateUUID), templateUUID, metadata)
	if err != nil {
		if businessflow.IsTemplateNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Template not found", "TEMPLATE_NOT_FOUND", nil)
		}

		log.Println("Template deletion failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Template deletion failed", "TEMPLATE_DELETION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Template deleted successfully", nil)
}

// createRequestContext mirrors other handlers for request-scoped values
func (h *TemplateHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *TemplateHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
