package authz_test

import (
	"testing"

	"github.com/kindbridge/kindbridge/internal/app/system/authz"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		required []authz.Role
		have     authz.Role
		want     bool
	}{
		{"empty set admits donor", nil, authz.RoleDonor, true},
		{"empty set admits admin", []authz.Role{}, authz.RoleAdmin, true},
		{"member of single-role set", []authz.Role{authz.RoleAdmin}, authz.RoleAdmin, true},
		{"non-member of single-role set", []authz.Role{authz.RoleAdmin}, authz.RoleDonor, false},
		{"member of multi-role set", []authz.Role{authz.RoleDonor, authz.RoleCompany}, authz.RoleCompany, true},
		{"non-member of multi-role set", []authz.Role{authz.RoleDonor, authz.RoleCompany}, authz.RoleNGO, false},
		{"admin does not satisfy ngo route", []authz.Role{authz.RoleNGO}, authz.RoleAdmin, false},
		{"ngo does not satisfy admin route", []authz.Role{authz.RoleAdmin}, authz.RoleNGO, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.Evaluate(tt.required, tt.have); got != tt.want {
				t.Errorf("Evaluate(%v, %q) = %v, want %v", tt.required, tt.have, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   authz.Role
		wantOK bool
	}{
		{"donor", authz.RoleDonor, true},
		{"ADMIN", authz.RoleAdmin, true},
		{"  ngo  ", authz.RoleNGO, true},
		{"company", authz.RoleCompany, true},
		{"superuser", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := authz.Parse(tt.in)
		if ok != tt.wantOK {
			t.Errorf("Parse(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStrings(t *testing.T) {
	got := authz.Strings([]authz.Role{authz.RoleDonor, authz.RoleAdmin})
	if len(got) != 2 || got[0] != "donor" || got[1] != "admin" {
		t.Errorf("Strings() = %v, want [donor admin]", got)
	}
}
