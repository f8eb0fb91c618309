// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"context"

	"github.com/tempoworks/tempo/internal/types"
	"github.com/tempoworks/tempo/pkg/authz"
)

type ServiceInterface interface {
	Create(ctx context.Context, scope authz.Scope, email string, role types.Role) (*types.Invitation, error)
	List(ctx context.Context, scope authz.Scope) ([]*types.Invitation, error)
	Revoke(ctx context.Context, scope authz.Scope, inviteID string) error
	Accept(ctx context.Context, token string, identity types.Identity) (*types.Membership, error)
}

// StorageInterface is the subset of the storage layer the invitation
// lifecycle needs.
type StorageInterface interface {
	GetMembership(ctx context.Context, userID, orgID string) (*types.Membership, error)
	AddMember(ctx context.Context, orgID, userID string, role types.Role) (string, error)
	CreateInvitation(ctx context.Context, invite *types.Invitation) (*types.Invitation, error)
	GetInvitationByID(ctx context.Context, id string) (*types.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error)
	GetPendingInvitation(ctx context.Context, orgID, email string) (*types.Invitation, error)
	ListInvitationsByOrgID(ctx context.Context, orgID string) ([]*types.Invitation, error)
	AcceptInvitation(ctx context.Context, id, acceptedBy string) error
	RevokeInvitation(ctx context.Context, id string) error
	ExpireInvitation(ctx context.Context, id string) error
}

// IdentityClientInterface resolves invited email addresses against the
// external identity provider.
type IdentityClientInterface interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
}
