// Package businessflow contains the core business logic and use cases for campaign composition workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Contact-related errors
	ErrContactNotFound        = errors.New("contact not found")
	ErrContactNameRequired    = errors.New("contact name is required")
	ErrContactPhoneRequired   = errors.New("contact phone is required")
	ErrContactCategoryInvalid = errors.New("contact category is invalid")
	ErrContactStatusInvalid   = errors.New("contact status is invalid")
	ErrNoContactsToImport     = errors.New("no contacts to import")
	ErrImportBatchTooLarge    = errors.New("import batch exceeds the maximum allowed size")

	// Template-related errors
	ErrTemplateNotFound        = errors.New("template not found")
	ErrTemplateNameRequired    = errors.New("template name is required")
	ErrTemplateContentRequired = errors.New("template content is required")
	ErrTemplateUUIDRequired    = errors.New("template UUID is required")
	ErrTemplateStatusInvalid   = errors.New("template status is invalid")

	// Campaign-related errors
	ErrCampaignNotFound        = errors.New("campaign not found")
	ErrCampaignNameRequired    = errors.New("campaign name is required")
	ErrCampaignUUIDRequired    = errors.New("campaign UUID is required")
	ErrCampaignUpdateRequired  = errors.New("at least one field must be provided for update")
	ErrCampaignStatusInvalid   = errors.New("campaign status is invalid")
	ErrStatusTransitionBlocked = errors.New("campaign status transition is not allowed")
	ErrScheduledAtInvalid      = errors.New("scheduled time is invalid")

	// Variable mapping errors
	ErrMappingVariableNameRequired = errors.New("mapping variable name is required")
	ErrMappingTypeInvalid          = errors.New("mapping type must be 'field' or 'static'")

	// Cache errors
	ErrCacheNotAvailable = errors.New("cache not available")

	// Filter errors
	ErrInvalidPage           = errors.New("page must be at least 1")
	ErrInvalidPageSize       = errors.New("page size must be between 1 and 100")
	ErrStartDateAfterEndDate = errors.New("start date cannot be after end date")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsContactNotFound(err error) bool {
	return errors.Is(err, ErrContactNotFound)
}

func IsContactNameRequired(err error) bool {
	return errors.Is(err, ErrContactNameRequired)
}

func IsContactPhoneRequired(err error) bool {
	return errors.Is(err, ErrContactPhoneRequired)
}

func IsContactCategoryInvalid(err error) bool {
	return errors.Is(err, ErrContactCategoryInvalid)
}

func IsContactStatusInvalid(err error) bool {
	return errors.Is(err, ErrContactStatusInvalid)
}

func IsNoContactsToImport(err error) bool {
	return errors.Is(err, ErrNoContactsToImport)
}

func IsImportBatchTooLarge(err error) bool {
	return errors.Is(err, ErrImportBatchTooLarge)
}

func IsTemplateNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}

func IsTemplateNameRequired(err error) bool {
	return errors.Is(err, ErrTemplateNameRequired)
}

func IsTemplateContentRequired(err error) bool {
	return errors.Is(err, ErrTemplateContentRequired)
}

func IsTemplateUUIDRequired(err error) bool {
	return errors.Is(err, ErrTemplateUUIDRequired)
}

func IsTemplateStatusInvalid(err error) bool {
	return errors.Is(err, ErrTemplateStatusInvalid)
}

func IsCampaignNotFound(err error) bool {
	return errors.Is(err, ErrCampaignNotFound)
}

func IsCampaignNameRequired(err error) bool {
	return errors.Is(err, ErrCampaignNameRequired)
}

func IsCampaignUUIDRequired(err error) bool {
	return errors.Is(err, ErrCampaignUUIDRequired)
}

func IsCampaignUpdateRequired(err error) bool {
	return errors.Is(err, ErrCampaignUpdateRequired)
}

func IsCampaignStatusInvalid(err error) bool {
	return errors.Is(err, ErrCampaignStatusInvalid)
}

func IsStatusTransitionBlocked(err error) bool {
	return errors.Is(err, ErrStatusTransitionBlocked)
}

func IsScheduledAtInvalid(err error) bool {
	return errors.Is(err, ErrScheduledAtInvalid)
}

func IsMappingVariableNameRequired(err error) bool {
	return errors.Is(err, ErrMappingVariableNameRequired)
}

func IsMappingTypeInvalid(err error) bool {
	return errors.Is(err, ErrMappingTypeInvalid)
}

func IsCacheNotAvailable(err error) bool {
	return errors.Is(err, ErrCacheNotAvailable)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

func IsStartDateAfterEndDate(err error) bool {
	return errors.Is(err, ErrStartDateAfterEndDate)
}
