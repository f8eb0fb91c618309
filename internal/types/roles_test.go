// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"testing"
)

func TestRole_Ordinal(t *testing.T) {
	tests := []struct {
		role    Role
		ordinal int
	}{
		{RoleOwner, 4},
		{RoleAdmin, 3},
		{RoleStaff, 2},
		{RoleClient, 1},
		{Role("superuser"), 0},
		{Role(""), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Ordinal(); got != tt.ordinal {
				t.Errorf("expected ordinal %d, got %d", tt.ordinal, got)
			}
		})
	}
}

func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		min      Role
		expected bool
	}{
		{"owner satisfies admin", RoleOwner, RoleAdmin, true},
		{"owner satisfies owner", RoleOwner, RoleOwner, true},
		{"admin satisfies admin", RoleAdmin, RoleAdmin, true},
		{"admin does not satisfy owner", RoleAdmin, RoleOwner, false},
		{"staff satisfies client", RoleStaff, RoleClient, true},
		{"staff does not satisfy admin", RoleStaff, RoleAdmin, false},
		{"client satisfies client", RoleClient, RoleClient, true},
		{"client does not satisfy staff", RoleClient, RoleStaff, false},
		{"unknown role satisfies nothing", Role("superuser"), RoleClient, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.AtLeast(tt.min); got != tt.expected {
				t.Errorf("AtLeast(%s, %s): expected %v, got %v", tt.role, tt.min, tt.expected, got)
			}
		})
	}
}

func TestRole_Privileged(t *testing.T) {
	tests := []struct {
		role     Role
		expected bool
	}{
		{RoleOwner, true},
		{RoleAdmin, true},
		{RoleStaff, false},
		{RoleClient, false},
		{Role("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Privileged(); got != tt.expected {
				t.Errorf("Privileged(%s): expected %v, got %v", tt.role, tt.expected, got)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"owner", "admin", "staff", "client"} {
		if _, err := ParseRole(valid); err != nil {
			t.Errorf("ParseRole(%q): unexpected error %v", valid, err)
		}
	}

	for _, invalid := range []string{"", "Owner", "OWNER", "root", "member"} {
		if _, err := ParseRole(invalid); err == nil {
			t.Errorf("ParseRole(%q): expected error", invalid)
		}
	}
}

func TestParseInvitableRole(t *testing.T) {
	for _, valid := range []string{"admin", "staff", "client"} {
		if _, err := ParseInvitableRole(valid); err != nil {
			t.Errorf("ParseInvitableRole(%q): unexpected error %v", valid, err)
		}
	}

	if _, err := ParseInvitableRole("owner"); err == nil {
		t.Error("ParseInvitableRole(owner): expected error")
	}

	if _, err := ParseInvitableRole("root"); err == nil {
		t.Error("ParseInvitableRole(root): expected error")
	}
}
