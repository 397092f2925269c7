// internal/app/system/status/status.go

// Package status holds the account/entity status vocabulary shared by
// the user, NGO, and company stores.
package status

const (
	Active   = "active"
	Disabled = "disabled"
)

// IsValid reports whether s is a known status value.
func IsValid(s string) bool {
	return s == Active || s == Disabled
}
