package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ExhaustedRetriesMessage is reported once every attempt failed with a
// retryable status.
const ExhaustedRetriesMessage = "External Service failed to process after max retries"

var ErrCircuitOpen = errors.New("circuit breaker is open")

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// ApiClientError is returned when the retry budget is spent.
type ApiClientError struct {
	StatusCode int
	Message    string
	Attempts   int
	Err        error
}

func (e *ApiClientError) Error() string {
	return fmt.Sprintf("%s (status %d, attempts %d)", e.Message, e.StatusCode, e.Attempts)
}

func (e *ApiClientError) Unwrap() error {
	return e.Err
}

// StatusCode returns the upstream status carried by err, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	var apiErr *ApiClientError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// isRetryable reports whether another attempt may succeed. Only an
// upstream 401 qualifies.
func isRetryable(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized
}
