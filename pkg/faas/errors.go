package faas

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
)

// ErrorKind discriminates the two ways an operation can fail.
type ErrorKind string

const (
	// KindBackend is a response from the backend with a non-2xx status.
	KindBackend ErrorKind = "backend"

	// KindNetwork is a transport failure with no response to inspect.
	KindNetwork ErrorKind = "network"
)

// Error is the single error value returned by every management operation.
//
// Message is always a non-empty human readable string. For backend errors it is
// the envelope's "error" field verbatim, so validation messages keep their
// "<field>: <message>" shape. Code is the HTTP status for backend errors and 0
// for network failures.
type Error struct {
	Message string    `json:"message" yaml:"message"`
	Code    int       `json:"code"    yaml:"code"`
	Kind    ErrorKind `json:"kind"    yaml:"kind"`
	Err     error     `json:"-"       yaml:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// HasCode reports whether the failure carries a transport status code.
func (e *Error) HasCode() bool {
	return e.Kind == KindBackend && e.Code != 0
}

// NewBackendError builds an error for a non-2xx response. An empty message is
// replaced with the status text.
func NewBackendError(status int, message string) *Error {
	if message == "" {
		message = statusMessage(status)
	}

	return &Error{Message: message, Code: status, Kind: KindBackend}
}

// NewNetworkError builds an error for a request that never produced a response.
func NewNetworkError(cause error) *Error {
	message := "network error"
	if cause != nil {
		message = "network error: " + cause.Error()
	}

	return &Error{Message: message, Kind: KindNetwork, Err: cause}
}

func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}

	return fmt.Sprintf("request failed with status %d", status)
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrFunctionIDRequired  = errors.New("function ID is required")
	ErrExecutionIDRequired = errors.New("execution ID is required")
	ErrAPIKeyRequired      = errors.New("API key is required")
	ErrInvalidVersion      = errors.New("version must be a positive number")
	ErrNotAuthenticated    = errors.New("not authenticated")
)

// AsError extracts the normalized error from err's chain.
func AsError(err error) (*Error, bool) {
	apiErr := &Error{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

func hasCode(err error, codes ...int) bool {
	apiErr, ok := AsError(err)
	if !ok || apiErr.Kind != KindBackend {
		return false
	}

	for _, code := range codes {
		if apiErr.Code == code {
			return true
		}
	}

	return false
}

// IsUnauthorized checks if the error is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return hasCode(err, http.StatusUnauthorized)
}

// IsNotFound checks if the error is a 404 from the backend.
func IsNotFound(err error) bool {
	return hasCode(err, http.StatusNotFound)
}

// IsValidation checks if the backend rejected the input.
func IsValidation(err error) bool {
	return hasCode(err, http.StatusBadRequest, http.StatusUnprocessableEntity)
}

// IsNetwork checks if the error is a transport failure.
func IsNetwork(err error) bool {
	apiErr, ok := AsError(err)

	return ok && apiErr.Kind == KindNetwork
}

// FieldError is a validation message split on the "<field>: <message>" convention.
type FieldError struct {
	Field   string `json:"field"   yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

var fieldErrorPattern = regexp.MustCompile(`^(\w+):\s*(.+)$`)

// ParseFieldError splits a backend validation message such as
// "name: cannot be empty". It returns false when message does not follow
// the convention.
func ParseFieldError(message string) (FieldError, bool) {
	match := fieldErrorPattern.FindStringSubmatch(message)
	if match == nil {
		return FieldError{}, false
	}

	return FieldError{Field: match[1], Message: match[2]}, true
}

// String renders the field error back into its wire form.
func (f FieldError) String() string {
	return f.Field + ": " + f.Message
}
