// internal/app/system/normalize/normalize.go

// Package normalize centralizes the cleanup applied to user-supplied
// identity fields before they are stored or compared. Case-insensitive
// search keys use waffle's text.Fold at the call sites; this package
// covers the lowercase/trim normalization stored in the primary fields.
package normalize

import "strings"

// Email lowercases and trims an email address for storage and lookup.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name collapses surrounding whitespace in a display name.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Role lowercases and trims a role string before authz.Parse sees it.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims an account/entity status string.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
