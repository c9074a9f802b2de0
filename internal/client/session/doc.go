// Package session owns the client side of the sign-in lifecycle: where the
// session token lives, what can be read out of it, whether it still looks
// usable, and what happens when the server rejects it.
//
// Trust boundary: tokens are decoded without checking their signature.
// The result is UnverifiedClaims, good for pre-filling forms and display
// only. Whether a request is authorized is decided by the server alone;
// the client learns the outcome from the HTTP status it gets back.
package session
