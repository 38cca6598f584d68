package response

import "time"

// ApiError is the body of every error response.
type ApiError struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Path      string            `json:"path"`
	Errors    []ValidationError `json:"errors,omitempty"`
	TraceID   string            `json:"traceId"`
}

type ValidationError struct {
	Field         string `json:"field"`
	RejectedValue any    `json:"rejectedValue"`
	Message       string `json:"message"`
}
