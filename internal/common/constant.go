// Package common contains constants and small helpers shared by the
// client packages.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on API requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the session token in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName correlates a client request with server logs.
	RequestIDHeaderName = "X-Request-ID"

	// TokenMetadataKey is the single durable key holding the session token.
	TokenMetadataKey = "plated_auth_token"
)
