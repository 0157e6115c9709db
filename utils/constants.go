package utils

import (
	"time"
)

// Context keys for request-scoped values
const (
	RequestIDKey  = "request_id"
	UserAgentKey  = "user_agent"
	IPAddressKey  = "ip_address"
	EndpointKey   = "endpoint"
	TimeoutKey    = "timeout"
	CancelFuncKey = "cancel_func"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Campaign composition constants
const (
	// DefaultTemplateLanguage is assigned when a template carries no language
	DefaultTemplateLanguage = "en"

	// DefaultActor is recorded on writes when no actor is supplied
	DefaultActor = "admin"

	// AudienceSpecCacheTTL bounds how long a resolved audience listing may be
	// served from cache before the database is consulted again.
	AudienceSpecCacheTTL = 2 * time.Minute
)

// Bulk import constants
const (
	// MaxImportBatchSize caps the number of contacts accepted per import request
	MaxImportBatchSize = 5000
)
