// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authz

import (
	"errors"
	"net/http"
)

// Expected, user-facing authorization outcomes. These are returned as values,
// never logged as server faults.
var (
	// ErrMissingOrgContext means the request declared no organization.
	ErrMissingOrgContext = errors.New("no organization context supplied")
	// ErrNoMembership covers both "organization does not exist" and "caller
	// is not a member"; the two are never distinguished so that organization
	// existence does not leak to non-members.
	ErrNoMembership = errors.New("not a member of this organization")
	// ErrInsufficientRole means the caller is a member but below the required
	// role ordinal.
	ErrInsufficientRole = errors.New("insufficient role")
	// ErrNotFound covers resources that are absent or belong to a different
	// organization; the two are never distinguished to the caller.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden means the resource exists in the caller's organization but
	// the caller is neither privileged nor its owner.
	ErrForbidden = errors.New("forbidden")
	// ErrCannotModifyOwner rejects any role change or removal targeting an
	// owner membership, regardless of the actor's own role.
	ErrCannotModifyOwner = errors.New("owner memberships cannot be modified")
)

// HTTPStatus maps an authorization outcome to its HTTP status. Unknown errors
// map to 500 and should be logged by the caller without leaking details.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingOrgContext):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoMembership),
		errors.Is(err, ErrInsufficientRole),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrCannotModifyOwner):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
