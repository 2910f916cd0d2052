// Package sponsorapi provides constants used throughout the sponsorship API client.
package sponsorapi

import "time"

// Default request configuration.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = 1 * time.Second

	// backoffMultiplier is applied to the retry delay after every failed attempt.
	backoffMultiplier = 2
)

// Base URL resolution.
const (
	DevelopmentBaseURL = "http://localhost:5000/api"
	deployedAPIPath    = "/api"
)

// AuthTokenKey is the durable storage key holding the bearer token.
const AuthTokenKey = "authToken"

// LandingLocation is where a Navigator is sent after the session is invalidated.
const LandingLocation = "/"

// Header names and media types.
const (
	HeaderRequestID   = "X-Request-ID"
	headerContentType = "Content-Type"
	headerAccept      = "Accept"

	contentTypeJSON = "application/json"
)

// uploadFormField is the multipart field carrying an uploaded file.
const uploadFormField = "file"

// defaultUploadName is used when an UploadFile has no name.
const defaultUploadName = "upload.bin"

// Sponsorship statuses accepted by the service.
const (
	StatusNegotiating = "negotiating"
	StatusConfirmed   = "confirmed"
	StatusPaid        = "paid"
	StatusCancelled   = "cancelled"
)
