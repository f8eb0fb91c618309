// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/tempoworks/tempo/internal/types"
)

type StorageInterface interface {
	CreateOrganization(ctx context.Context, org *types.Organization) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	ListOrganizations(ctx context.Context) ([]*types.Organization, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)

	GetMembership(ctx context.Context, userID, orgID string) (*types.Membership, error)
	AddMember(ctx context.Context, orgID, userID string, role types.Role) (string, error)
	UpdateMemberRole(ctx context.Context, orgID, userID string, role types.Role) error
	RemoveMember(ctx context.Context, orgID, userID string) error
	ListMembersByOrgID(ctx context.Context, orgID string) ([]*types.Membership, error)

	CreateInvitation(ctx context.Context, invite *types.Invitation) (*types.Invitation, error)
	GetInvitationByID(ctx context.Context, id string) (*types.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error)
	GetPendingInvitation(ctx context.Context, orgID, email string) (*types.Invitation, error)
	ListInvitationsByOrgID(ctx context.Context, orgID string) ([]*types.Invitation, error)
	AcceptInvitation(ctx context.Context, id, acceptedBy string) error
	RevokeInvitation(ctx context.Context, id string) error
	ExpireInvitation(ctx context.Context, id string) error

	CreateTask(ctx context.Context, task *types.Task) (*types.Task, error)
	GetTaskByID(ctx context.Context, orgID, id string) (*types.Task, error)
	ListTasksByOrgID(ctx context.Context, orgID string) ([]*types.Task, error)
	UpdateTask(ctx context.Context, task *types.Task) error
	DeleteTask(ctx context.Context, orgID, id string) error
}
