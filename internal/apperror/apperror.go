// Package apperror holds the error taxonomy of the service and the single
// table used to turn those errors into HTTP responses.
package apperror

import (
	"errors"
	"fmt"

	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/model/response"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidToken
	KindInvalidCredentials
	KindUnauthorizedAccess
	KindValidation
	KindResourceNotFound
	KindUserAlreadyExists
	KindApiClient
	KindWeatherServiceUnavailable
	KindDatabaseUnavailable
	KindRequestTimeout
)

var kindNames = map[Kind]string{
	KindUnknown:                   "Unknown",
	KindInvalidToken:              "InvalidToken",
	KindInvalidCredentials:        "InvalidCredentials",
	KindUnauthorizedAccess:        "UnauthorizedAccess",
	KindValidation:                "Validation",
	KindResourceNotFound:          "ResourceNotFound",
	KindUserAlreadyExists:         "UserAlreadyExists",
	KindApiClient:                 "ApiClient",
	KindWeatherServiceUnavailable: "WeatherServiceUnavailable",
	KindDatabaseUnavailable:       "DatabaseUnavailable",
	KindRequestTimeout:            "RequestTimeout",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a classified application error. Message is safe to show to
// clients; Err carries internal detail and is only logged.
type Error struct {
	Kind           Kind
	Message        string
	UpstreamStatus int
	Fields         []response.ValidationError
	Err            error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func InvalidToken(message string) error {
	return &Error{Kind: KindInvalidToken, Message: message}
}

func InvalidCredentials() error {
	return &Error{Kind: KindInvalidCredentials, Message: constant.MsgInvalidCredentials}
}

func UnauthorizedAccess(message string) error {
	return &Error{Kind: KindUnauthorizedAccess, Message: message}
}

func Validation(message string, fields ...response.ValidationError) error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func ResourceNotFound(message string) error {
	return &Error{Kind: KindResourceNotFound, Message: message}
}

func UserAlreadyExists(username string) error {
	return &Error{
		Kind:    KindUserAlreadyExists,
		Message: "User already exists with username: " + username,
	}
}

// ApiClient reports an upstream failure that survived the retry policy.
func ApiClient(status int, message string, cause error) error {
	return &Error{Kind: KindApiClient, Message: message, UpstreamStatus: status, Err: cause}
}

func WeatherServiceUnavailable(message string, cause error) error {
	return &Error{Kind: KindWeatherServiceUnavailable, Message: message, Err: cause}
}

func DatabaseUnavailable(message string, cause error) error {
	return &Error{Kind: KindDatabaseUnavailable, Message: message, Err: cause}
}

// RequestTimeout reports a request cut off by the server's handler timeout.
func RequestTimeout() error {
	return &Error{Kind: KindRequestTimeout, Message: constant.MsgRequestTimeout}
}
