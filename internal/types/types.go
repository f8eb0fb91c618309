// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

type Organization struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}

type Membership struct {
	ID        string    `db:"id"`
	OrgID     string    `db:"org_id"`
	UserID    string    `db:"user_id"`
	Role      Role      `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// InviteStatus is the closed set of invitation states. Pending is the only
// non-terminal state.
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteExpired  InviteStatus = "expired"
	InviteRevoked  InviteStatus = "revoked"
)

type Invitation struct {
	ID         string       `db:"id"`
	OrgID      string       `db:"org_id"`
	Email      string       `db:"email"`
	Role       Role         `db:"role"`
	Token      string       `db:"token"`
	Status     InviteStatus `db:"status"`
	InvitedBy  string       `db:"invited_by"`
	AcceptedBy *string      `db:"accepted_by"`
	ExpiresAt  time.Time    `db:"expires_at"`
	CreatedAt  time.Time    `db:"created_at"`
}

// Expired reports whether the invitation's lifetime has elapsed. Expiry is
// never persisted eagerly; every read path evaluates this predicate instead.
func (i *Invitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// Acceptable reports whether the invitation can still be accepted at the
// given instant.
func (i *Invitation) Acceptable(now time.Time) bool {
	return i.Status == InvitePending && !i.Expired(now)
}

// EffectiveStatus returns the status as observed at the given instant, with
// a lazily-detected expiry taking precedence over a stored pending state.
func (i *Invitation) EffectiveStatus(now time.Time) InviteStatus {
	if i.Status == InvitePending && i.Expired(now) {
		return InviteExpired
	}
	return i.Status
}

// Identity is the authenticated caller as delivered by the external identity
// provider. This service trusts it completely and never verifies credentials.
type Identity struct {
	UserID string
	Email  string
}

// Task is the sample org-owned resource consumed by the ownership enforcer.
type Task struct {
	ID          string    `db:"id"`
	OrgID       string    `db:"org_id"`
	OwnerUserID string    `db:"owner_user_id"`
	Title       string    `db:"title"`
	Done        bool      `db:"done"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ResourceOrgID implements the ownership enforcer's resource contract.
func (t *Task) ResourceOrgID() string { return t.OrgID }

// ResourceOwnerID implements the ownership enforcer's resource contract.
func (t *Task) ResourceOwnerID() string { return t.OwnerUserID }

type Member struct {
	UserID string
	Email  string
	Role   Role
}
