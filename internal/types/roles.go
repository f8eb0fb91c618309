// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "fmt"

// Role is the closed set of per-organization roles. New roles must be added
// here and to the ordinal table, never as free-form strings.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

var roleOrdinals = map[Role]int{
	RoleOwner:  4,
	RoleAdmin:  3,
	RoleStaff:  2,
	RoleClient: 1,
}

// Ordinal returns the rank of the role in the total order
// owner > admin > staff > client. Unknown roles rank below every valid role.
func (r Role) Ordinal() int {
	return roleOrdinals[r]
}

// Valid reports whether the role is one of the four known roles.
func (r Role) Valid() bool {
	_, ok := roleOrdinals[r]
	return ok
}

// Privileged reports whether the role grants admin-level access within its
// organization.
func (r Role) Privileged() bool {
	return r.Ordinal() >= RoleAdmin.Ordinal()
}

// AtLeast reports whether the role satisfies the given minimum role.
func (r Role) AtLeast(min Role) bool {
	return r.Ordinal() >= min.Ordinal()
}

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role: %q", s)
	}
	return r, nil
}

// ParseInvitableRole parses a role that may be granted through an invitation.
// Ownership is never granted by invite.
func ParseInvitableRole(s string) (Role, error) {
	r, err := ParseRole(s)
	if err != nil {
		return "", err
	}
	if r == RoleOwner {
		return "", fmt.Errorf("role %q cannot be granted by invitation", s)
	}
	return r, nil
}
