package constant

// Error labels written to ApiError.error
const (
	LabelAuthentication = "Authentication Failed"
	LabelAuthorization  = "Authorization Failed"
	LabelInvalidRequest = "Invalid Request"
	LabelNotFound       = "Resource Not Found"
	LabelConflict       = "Conflict"
	LabelExternal       = "External Service Error"
	LabelService        = "Service Error"
	LabelInternal       = "Internal Server Error"
	LabelTimeout        = "Request Timeout"
)

// Messages
const (
	MsgMissingToken       = "No valid authorization token found"
	MsgInvalidToken       = "Invalid JWT token"
	MsgInvalidCredentials = "Invalid username or password"
	MsgAccessDenied       = "You can only access your own resources"
	MsgValidationFailed   = "Validation failed"
	MsgInvalidPostalCode  = "Invalid postal code format"
	MsgServiceUnavailable = "Service temporarily unavailable"
	MsgUnexpected         = "An unexpected error occurred"
	MsgRetriesExhausted   = "External Service failed to process after max retries"
	MsgRequestTimeout     = "Request timed out"
	MsgPasswordTooLong    = "Password must be at most 72 bytes"
)
