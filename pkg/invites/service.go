// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tempoworks/tempo/internal/db"
	"github.com/tempoworks/tempo/internal/logging"
	"github.com/tempoworks/tempo/internal/monitoring"
	"github.com/tempoworks/tempo/internal/storage"
	"github.com/tempoworks/tempo/internal/tracing"
	"github.com/tempoworks/tempo/internal/types"
	"github.com/tempoworks/tempo/pkg/authz"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage  StorageInterface
	db       db.DBClientInterface
	identity IdentityClientInterface
	lifetime time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	s StorageInterface,
	dbClient db.DBClientInterface,
	identityClient IdentityClientInterface,
	lifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  s,
		db:       dbClient,
		identity: identityClient,
		lifetime: lifetime,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// Create issues a pending invitation for an email address. The duplicate
// checks run inside one transaction; the partial unique index on pending
// (org, email) pairs is the backstop when two creates race anyway.
func (s *Service) Create(ctx context.Context, scope authz.Scope, email string, role types.Role) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.Create")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now()

	var created *types.Invitation
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		userID, err := s.identity.GetIdentityIDByEmail(txCtx, email)
		if err != nil {
			return fmt.Errorf("failed to resolve invited email: %w", err)
		}

		if userID != "" {
			if _, err := s.storage.GetMembership(txCtx, userID, scope.OrgID); err == nil {
				return ErrUserAlreadyMember
			} else if !errors.Is(err, storage.ErrNotFound) {
				return err
			}
		}

		pending, err := s.storage.GetPendingInvitation(txCtx, scope.OrgID, email)
		switch {
		case err == nil && !pending.Expired(now):
			return ErrInviteAlreadyExists
		case err == nil:
			// A stale pending row would collide with the unique index, so
			// this is the one place lazy expiry is persisted.
			if err := s.storage.ExpireInvitation(txCtx, pending.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
				return err
			}
		case !errors.Is(err, storage.ErrNotFound):
			return err
		}

		token, err := newInviteToken()
		if err != nil {
			return err
		}

		created, err = s.storage.CreateInvitation(txCtx, &types.Invitation{
			OrgID:     scope.OrgID,
			Email:     email,
			Role:      role,
			Token:     token,
			InvitedBy: scope.UserID,
			ExpiresAt: now.Add(s.lifetime),
		})
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return ErrInviteAlreadyExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("invitation %s created for org %s", created.ID, scope.OrgID)
	return created, nil
}

// List returns the organization's invitations with lazily-detected expiry
// reflected in the status, for operational visibility.
func (s *Service) List(ctx context.Context, scope authz.Scope) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.List")
	defer span.End()

	invitations, err := s.storage.ListInvitationsByOrgID(ctx, scope.OrgID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, inv := range invitations {
		inv.Status = inv.EffectiveStatus(now)
	}

	return invitations, nil
}

// Revoke moves a pending invitation to the terminal revoked state. Invitations
// outside the caller's organization are reported as not found.
func (s *Service) Revoke(ctx context.Context, scope authz.Scope, inviteID string) error {
	ctx, span := s.tracer.Start(ctx, "invites.Service.Revoke")
	defer span.End()

	invite, err := s.storage.GetInvitationByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return authz.ErrNotFound
		}
		return err
	}

	if invite.OrgID != scope.OrgID {
		return authz.ErrNotFound
	}

	if !invite.Acceptable(time.Now()) {
		return ErrInvalidInviteStatus
	}

	if err := s.storage.RevokeInvitation(ctx, invite.ID); err != nil {
		// The CAS lost against a concurrent accept or revoke.
		if errors.Is(err, storage.ErrNotFound) {
			return ErrInvalidInviteStatus
		}
		return err
	}

	return nil
}

// Accept converts a pending invitation into a membership. The state
// transition and the membership insert are one atomic unit: a reader never
// observes an accepted invitation without its membership or vice versa. Of
// two concurrent accepts, only the CAS winner creates the membership.
func (s *Service) Accept(ctx context.Context, token string, identity types.Identity) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.Accept")
	defer span.End()

	invite, err := s.storage.GetInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}

	if invite.Status != types.InvitePending {
		return nil, ErrInvalidInviteStatus
	}

	if invite.Expired(time.Now()) {
		return nil, ErrInviteExpired
	}

	if !strings.EqualFold(identity.Email, invite.Email) {
		s.logger.Security().AuthzFailure(identity.UserID, "invite_accept:"+invite.OrgID)
		return nil, ErrEmailMismatch
	}

	var membership *types.Membership
	err = s.db.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.storage.AcceptInvitation(txCtx, invite.ID, identity.UserID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrInvalidInviteStatus
			}
			return err
		}

		memberID, err := s.storage.AddMember(txCtx, invite.OrgID, identity.UserID, invite.Role)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return ErrUserAlreadyMember
			}
			return err
		}

		membership = &types.Membership{
			ID:     memberID,
			OrgID:  invite.OrgID,
			UserID: identity.UserID,
			Role:   invite.Role,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("invitation %s accepted by %s", invite.ID, identity.UserID)
	return membership, nil
}
