// internal/app/system/authz/authz.go

// Package authz holds the role model and the policy decision function
// used by the auth middleware gate and by handlers that need finer
// checks than the route-level role set.
//
// Roles are a closed, flat enum. There is no hierarchy: a route that
// requires the ngo role is not satisfied by an admin token. Routes that
// should admit several roles list all of them explicitly.
//
// The package is deliberately free of I/O and of HTTP types so the
// decision function stays trivially testable.
package authz

import "strings"

// Role is one of the platform's account roles.
type Role string

const (
	RoleDonor   Role = "donor"
	RoleCompany Role = "company"
	RoleNGO     Role = "ngo"
	RoleAdmin   Role = "admin"
)

// String returns the wire form of the role.
func (r Role) String() string { return string(r) }

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleCompany, RoleNGO, RoleAdmin:
		return true
	}
	return false
}

// Parse normalizes a stored role string to a Role. The bool is false
// when the string is not a known role, so callers can fail closed on
// corrupt account records instead of treating them as some role.
func Parse(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Evaluate is the pure policy decision: it reports whether a principal
// holding `have` satisfies a route's required-role set.
//
// An empty required set means "any authenticated principal" - the
// route still demands a valid token and a live, active account, it
// just doesn't care which role holds it. A non-empty set requires
// exact membership; no role implies another.
func Evaluate(required []Role, have Role) bool {
	if len(required) == 0 {
		return true
	}
	for _, want := range required {
		if have == want {
			return true
		}
	}
	return false
}

// Strings converts a required-role set to its wire form, for error
// bodies and audit details.
func Strings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
