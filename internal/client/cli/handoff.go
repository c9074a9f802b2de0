package cli

import (
	"net/url"
	"strings"
)

// ExtractHandoffToken accepts either the bare session token or the whole
// redirect URL the sign-in page lands on (".../register?token=...") and
// returns the token. An empty result means there is no token.
func ExtractHandoffToken(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.Scheme != "" || u.RawQuery != "" {
		return u.Query().Get("token")
	}
	return raw
}
