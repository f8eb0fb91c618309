// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authz

import (
	"context"

	"github.com/tempoworks/tempo/internal/types"
)

// MembershipStoreInterface is the subset of the storage layer the resolver
// needs. The membership table is the single source of truth for every
// authorization decision.
type MembershipStoreInterface interface {
	GetMembership(ctx context.Context, userID, orgID string) (*types.Membership, error)
}

// Resource is any org-owned record the ownership enforcer can rule on. The
// record must already have been loaded through a query filtered by the
// caller's organization.
type Resource interface {
	ResourceOrgID() string
	ResourceOwnerID() string
}

type AuthorizerInterface interface {
	ResolveScope(ctx context.Context, userID, orgRef string) (Scope, error)
	EnforceRole(ctx context.Context, scope Scope, min types.Role) error
	CheckOwnership(ctx context.Context, resource Resource, scope Scope) error
}
