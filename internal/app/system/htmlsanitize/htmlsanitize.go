// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips markup from user-authored text before it
// is stored: campaign descriptions, NGO missions, donation messages.
// The platform's API is JSON-only, so nothing user-authored should
// carry HTML at all.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag and attribute. Shared and read-only after
// init; bluemonday policies are safe for concurrent use.
var strict = bluemonday.StrictPolicy()

// Text returns s with all HTML removed and whitespace trimmed.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
