package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
)

// ErrDecode marks a token whose payload could not be read.
var ErrDecode = errors.New("malformed session token")

// UnverifiedClaims is the payload of a session token read without checking
// its signature. It must never be used to make an authorization decision;
// see the package documentation.
type UnverifiedClaims struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	ProfilePic  string `json:"profile_pic,omitempty"`
	jwt.RegisteredClaims
}

// ExpiresAtUnix returns the exp claim in epoch seconds and whether the
// token carries one.
func (c *UnverifiedClaims) ExpiresAtUnix() (int64, bool) {
	if c == nil || c.ExpiresAt == nil {
		return 0, false
	}
	return c.ExpiresAt.Unix(), true
}

// parser is only used for its segment decoding; the header and the
// signature are never looked at.
var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode reads the claims segment of token. It fails with ErrDecode when
// the token is not three dot-separated segments, the middle segment is not
// base64url (padded or not), the payload is not UTF-8, or it is not a JSON
// object of the expected shape. The header and signature segments are
// ignored.
func Decode(token string) (*UnverifiedClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: token has %d segments, want 3", ErrDecode, len(parts))
	}

	payload, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if !utf8.Valid(payload) {
		return nil, fmt.Errorf("%w: claims are not valid UTF-8", ErrDecode)
	}

	claims := &UnverifiedClaims{}
	if err := json.Unmarshal(payload, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return claims, nil
}

// CurrentClaims decodes the stored token. It returns (nil, nil) when no
// token is stored.
func CurrentClaims(ctx context.Context, store TokenStore) (*UnverifiedClaims, error) {
	token, err := store.Read(ctx)
	if errors.Is(err, ErrNoToken) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Decode(token)
}
