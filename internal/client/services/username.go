package services

import "strings"

// MinUsernameLength is the shortest username the API accepts; shorter
// candidates are never sent for an availability check.
const MinUsernameLength = 3

// NormalizeUsername lowercases s and drops every character outside
// [a-z0-9_]. It is idempotent.
func NormalizeUsername(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
