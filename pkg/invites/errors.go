// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"errors"
	"net/http"

	"github.com/tempoworks/tempo/pkg/authz"
)

// Expected invitation lifecycle outcomes, returned as values to the caller.
var (
	// ErrInviteAlreadyExists means a pending invitation for the same email
	// and organization already exists.
	ErrInviteAlreadyExists = errors.New("a pending invitation already exists for this email")
	// ErrUserAlreadyMember means the invited email resolves to a user who is
	// already a member of the organization.
	ErrUserAlreadyMember = errors.New("user is already a member of this organization")
	// ErrInvalidInviteStatus means the operation was attempted on an
	// invitation that is no longer pending.
	ErrInvalidInviteStatus = errors.New("invitation is no longer pending")
	// ErrInviteExpired means an accept was attempted past the expiry time.
	// The accept path reports it outwardly like a missing invitation.
	ErrInviteExpired = errors.New("invitation has expired")
	// ErrEmailMismatch means the accepting identity's email differs from the
	// invited one. Distinct from not-found: the token already proves
	// possession.
	ErrEmailMismatch = errors.New("invitation was issued to a different email address")
	// ErrInviteNotFound means no invitation matches the given token or ID.
	ErrInviteNotFound = errors.New("invitation not found")
)

// HTTPStatus maps lifecycle outcomes onto HTTP statuses. Expired and missing
// invitations map to the same status so the accept path does not reveal
// which of the two occurred.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInviteAlreadyExists), errors.Is(err, ErrUserAlreadyMember):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInviteStatus):
		return http.StatusBadRequest
	case errors.Is(err, ErrInviteExpired), errors.Is(err, ErrInviteNotFound):
		return http.StatusGone
	case errors.Is(err, ErrEmailMismatch):
		return http.StatusForbidden
	default:
		return authz.HTTPStatus(err)
	}
}
