package sponsorapi

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every *APIError unwraps to exactly one of the classification
// sentinels, so callers can use errors.Is(err, sponsorapi.ErrUnauthorized).
var (
	ErrUnauthorized    = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("resource not found")
	ErrServerError     = errors.New("server error")
	ErrRequestFailed   = errors.New("request failed")
	ErrNetwork         = errors.New("network error")
	ErrTimeout         = errors.New("request timed out")
	ErrCanceled        = errors.New("request canceled")
	ErrInvalidResponse = errors.New("invalid response")
	ErrInvalidRequest  = errors.New("invalid request")

	ErrDecodingFailed = errors.New("decoding failed")
	ErrInvalidStatus  = errors.New("invalid sponsorship status")
	ErrNoCredential   = errors.New("no credential stored")
)

// User-facing messages carried by classified errors.
const (
	MsgUnauthorized    = "Authentication required. Please log in again."
	MsgForbidden       = "Access denied. You don't have permission for this action."
	MsgNotFound        = "The requested resource was not found."
	MsgServerError     = "Server error. Please try again later."
	MsgGeneric         = "An error occurred"
	MsgNetwork         = "Network error. Please check your connection."
	MsgTimeout         = "Request timed out. Please try again."
	MsgUploadNetwork   = "Network error during upload. Please check your connection."
	MsgUploadTimeout   = "Upload timed out. Please try again."
	MsgCanceled        = "Request was cancelled."
	MsgInvalidResponse = "Invalid response from server."
	MsgInvalidRequest  = "Request could not be prepared."
)

// APIError is the normalized shape of every failure returned by the client.
// Status is 0 for failures that never reached a server.
type APIError struct {
	Status     int
	StatusText string
	Message    string
	Details    any

	// Cause holds the transport error behind a status 0 failure, if any.
	Cause error

	kind error
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes both the classification sentinel and the transport cause.
func (e *APIError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// IsTransport reports whether the failure happened before a server answered.
func (e *APIError) IsTransport() bool {
	return e.Status == 0
}

// String renders the error with its status for logs.
func (e *APIError) String() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s (%s)", e.Message, e.StatusText)
	}
	return fmt.Sprintf("%s (HTTP %d %s)", e.Message, e.Status, e.StatusText)
}

// AsAPIError returns the *APIError in err's chain, if there is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
