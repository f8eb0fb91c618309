// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package orgs

import (
	"context"

	"github.com/tempoworks/tempo/internal/types"
	"github.com/tempoworks/tempo/pkg/authz"
)

type ServiceInterface interface {
	Create(ctx context.Context, identity types.Identity, name string) (*types.Organization, error)
	ListMine(ctx context.Context, userID string) ([]*types.Organization, error)
	ListMembers(ctx context.Context, scope authz.Scope) ([]*types.Member, error)
	UpdateMemberRole(ctx context.Context, scope authz.Scope, targetUserID string, newRole types.Role) (*types.Membership, error)
	RemoveMember(ctx context.Context, scope authz.Scope, targetUserID string) error
	Leave(ctx context.Context, scope authz.Scope) error
}

// StorageInterface is the subset of the storage layer the organization
// service needs.
type StorageInterface interface {
	CreateOrganization(ctx context.Context, org *types.Organization) (*types.Organization, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)
	GetMembership(ctx context.Context, userID, orgID string) (*types.Membership, error)
	AddMember(ctx context.Context, orgID, userID string, role types.Role) (string, error)
	UpdateMemberRole(ctx context.Context, orgID, userID string, role types.Role) error
	RemoveMember(ctx context.Context, orgID, userID string) error
	ListMembersByOrgID(ctx context.Context, orgID string) ([]*types.Membership, error)
}

// IdentityClientInterface enriches member listings with email addresses from
// the external identity provider.
type IdentityClientInterface interface {
	GetIdentityEmail(ctx context.Context, id string) (string, error)
}
