// Package common contains shared constants and sentinel errors used across
// EduPilot client components.
package common

const (
	// AuthorizationHeader carries the bearer token on authenticated requests.
	AuthorizationHeader = "Authorization"

	// BearerPrefix precedes the raw token in AuthorizationHeader.
	BearerPrefix = "Bearer "

	// RequestIDHeader correlates client log lines with server requests.
	RequestIDHeader = "X-Request-ID"

	// APIPrefix is the path prefix shared by every backend route except /health.
	APIPrefix = "/api"
)

// Durable storage keys. The token is stored on its own so that a missing or
// corrupt session snapshot never loses the credential.
const (
	TokenStorageKey   = "token"
	SessionStorageKey = "edupilot-storage"
)
