package services

import (
	"errors"

	"github.com/dmitrijs2005/plated/internal/client/client"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoHandoffToken   = errors.New("no handoff token")
	ErrBootstrapped     = errors.New("registration already bootstrapped")
	ErrNotBootstrapped  = errors.New("registration not bootstrapped")
	ErrNotEditing       = errors.New("profile is not in edit mode")
	ErrNotViewing       = errors.New("profile is not loaded")
	ErrBusy             = errors.New("a submission is already in progress")
	ErrCheckPending     = errors.New("username availability check still in progress")
)

// User-visible messages.
const (
	MsgUsernameTooShort     = "Username must be at least 3 characters long"
	MsgDisplayNameRequired  = "Display name is required"
	MsgUsernameTaken        = "Username is already taken"
	MsgProfilePicInvalid    = "Profile picture must be a valid URL"
	MsgNoChanges            = "No changes to save"
	MsgRegistrationFailed   = "Failed to complete registration. Please try again."
	MsgUpdateFailed         = "Failed to update profile. Please try again."
	MsgProfileLoadFailed    = "Failed to load profile. Please try again."
	MsgProfileUpdateSuccess = "Profile updated successfully!"
)

// ValidationError is a client-side rejection raised before any request is
// made. Message is shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UserMessage picks the text to show for err: the validation message, the
// server's own message, or fallback.
func UserMessage(err error, fallback string) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var rej *client.RejectionError
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message
	}
	return fallback
}
