package sponsorapi

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Navigator is the application surface told to return to the landing location
// when the session is invalidated by a 401.
type Navigator interface {
	CurrentLocation() string
	NavigateTo(location string)
}

// TransportFailure identifies a failure that never produced a server status.
type TransportFailure int

const (
	FailureNetwork TransportFailure = iota
	FailureTimeout
	FailureCanceled
	FailureInvalidResponse
	FailureInvalidRequest
)

// Classifier turns exchange outcomes into *APIError values. Classifying a 401
// clears the credential store and redirects the Navigator.
type Classifier struct {
	credentials *CredentialStore
	navigator   Navigator
	logger      Logger
}

// NewClassifier builds a Classifier. credentials and navigator may be nil.
func NewClassifier(credentials *CredentialStore, navigator Navigator, l Logger) *Classifier {
	if l == nil {
		l = DefaultLogger{}
	}
	return &Classifier{credentials: credentials, navigator: navigator, logger: l}
}

// ClassifyResponse maps a non-success response to an *APIError. Rules apply in
// order: 401, 403, 404, >=500, application "error" field, generic fallback.
func (c *Classifier) ClassifyResponse(status int, statusText string, body any) *APIError {
	apiErr := &APIError{Status: status, StatusText: statusText}

	switch {
	case status == http.StatusUnauthorized:
		apiErr.Message = MsgUnauthorized
		apiErr.kind = ErrUnauthorized
		c.invalidateSession()
	case status == http.StatusForbidden:
		apiErr.Message = MsgForbidden
		apiErr.kind = ErrForbidden
	case status == http.StatusNotFound:
		apiErr.Message = MsgNotFound
		apiErr.kind = ErrNotFound
	case status >= http.StatusInternalServerError:
		apiErr.Message = MsgServerError
		apiErr.kind = ErrServerError
	default:
		apiErr.kind = ErrRequestFailed
		if msg, details, ok := applicationError(body); ok {
			apiErr.Message = msg
			apiErr.Details = details
		} else {
			apiErr.Message = MsgGeneric
		}
	}

	c.logger.Debugf("Classified HTTP %d as %q", status, apiErr.Message)
	return apiErr
}

// ClassifyTransport maps a failure that produced no status to an *APIError.
func (c *Classifier) ClassifyTransport(failure TransportFailure, cause error) *APIError {
	apiErr := &APIError{Cause: cause}

	switch failure {
	case FailureTimeout:
		apiErr.StatusText = "Timeout"
		apiErr.Message = MsgTimeout
		apiErr.kind = ErrTimeout
	case FailureCanceled:
		apiErr.StatusText = "Canceled"
		apiErr.Message = MsgCanceled
		apiErr.kind = ErrCanceled
	case FailureInvalidResponse:
		apiErr.StatusText = "Invalid Response"
		apiErr.Message = MsgInvalidResponse
		apiErr.kind = ErrInvalidResponse
	case FailureInvalidRequest:
		apiErr.StatusText = "Invalid Request"
		apiErr.Message = MsgInvalidRequest
		apiErr.kind = ErrInvalidRequest
	default:
		apiErr.StatusText = "Network Error"
		apiErr.Message = MsgNetwork
		apiErr.kind = ErrNetwork
	}

	c.logger.Debugf("Transport failure %q: %v", apiErr.StatusText, cause)
	return apiErr
}

func (c *Classifier) invalidateSession() {
	if c.credentials != nil {
		// Clear already logs persistence failures.
		_ = c.credentials.Clear()
	}
	if c.navigator != nil && c.navigator.CurrentLocation() != LandingLocation {
		c.navigator.NavigateTo(LandingLocation)
	}
}

// applicationError extracts a non-empty string "error" field and the optional
// "details" field from a decoded JSON object.
func applicationError(body any) (string, any, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return "", nil, false
	}
	msg, ok := obj["error"].(string)
	if !ok || msg == "" {
		return "", nil, false
	}
	return msg, obj["details"], true
}

// transportFailureOf decides how an error from sending or reading an exchange
// is reported. parent is the caller's context, before the per-attempt timeout.
func transportFailureOf(parent context.Context, err error) TransportFailure {
	if errors.Is(parent.Err(), context.Canceled) {
		return FailureCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}
	if errors.Is(err, context.Canceled) {
		return FailureCanceled
	}
	return FailureNetwork
}
