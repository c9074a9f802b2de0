// Package models defines the wire types exchanged with the Plated API.
package models

// UserProfile is the server's canonical record for the signed-in user.
// It is the only authoritative view of identity the client holds; token
// claims are a display-only projection.
type UserProfile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	ProfilePic  string `json:"profile_pic"`
}

// RegisterRequest completes a profile after OAuth sign-in.
type RegisterRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	ProfilePic  string `json:"profile_pic,omitempty"`
}

// ProfileUpdate is a partial update. Nil fields are left untouched by the
// server and omitted from the payload.
type ProfileUpdate struct {
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	ProfilePic  *string `json:"profile_pic,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Username == nil && u.DisplayName == nil && u.ProfilePic == nil
}

// ApplyTo copies the set fields onto p.
func (u ProfileUpdate) ApplyTo(p *UserProfile) {
	if u.Username != nil {
		p.Username = *u.Username
	}
	if u.DisplayName != nil {
		p.DisplayName = *u.DisplayName
	}
	if u.ProfilePic != nil {
		p.ProfilePic = *u.ProfilePic
	}
}

// UsernameCheck is the server's answer to an availability query.
type UsernameCheck struct {
	Exists bool `json:"exists"`
}

// APIError is the error body returned with non-2xx responses.
type APIError struct {
	Error string `json:"error"`
}
