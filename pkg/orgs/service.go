// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package orgs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/tempoworks/tempo/internal/db"
	"github.com/tempoworks/tempo/internal/logging"
	"github.com/tempoworks/tempo/internal/monitoring"
	"github.com/tempoworks/tempo/internal/storage"
	"github.com/tempoworks/tempo/internal/tracing"
	"github.com/tempoworks/tempo/internal/types"
	"github.com/tempoworks/tempo/pkg/authz"
)

var _ ServiceInterface = (*Service)(nil)

// ErrSlugTaken surfaces an organization slug collision as a client conflict.
var ErrSlugTaken = errors.New("organization name is already in use")

type Service struct {
	storage  StorageInterface
	db       db.DBClientInterface
	identity IdentityClientInterface

	// superUserID is the operational super-principal identity. It holds no
	// memberships; member listings filter it out regardless.
	superUserID string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	s StorageInterface,
	dbClient db.DBClientInterface,
	identityClient IdentityClientInterface,
	superUserID string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:     s,
		db:          dbClient,
		identity:    identityClient,
		superUserID: superUserID,
		tracer:      tracer,
		monitor:     monitor,
		logger:      logger,
	}
}

// Create provisions a new organization with the caller as its first owner.
// The organization insert and the owner membership are one atomic unit.
func (s *Service) Create(ctx context.Context, identity types.Identity, name string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "orgs.Service.Create")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("organization name is required")
	}

	var created *types.Organization
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.storage.CreateOrganization(txCtx, &types.Organization{
			Name:      name,
			Slug:      slugify(name),
			CreatedBy: identity.UserID,
		})
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return ErrSlugTaken
			}
			return err
		}

		if _, err := s.storage.AddMember(txCtx, created.ID, identity.UserID, types.RoleOwner); err != nil {
			return fmt.Errorf("failed to add owner membership: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("organization %s provisioned for user %s", created.ID, identity.UserID)
	return created, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "orgs.Service.ListMine")
	defer span.End()

	return s.storage.ListOrganizationsByUserID(ctx, userID)
}

// ListMembers returns the organization's members enriched with email
// addresses. The super-principal identity is filtered out even if a
// membership was ever created for it by mistake.
func (s *Service) ListMembers(ctx context.Context, scope authz.Scope) ([]*types.Member, error) {
	ctx, span := s.tracer.Start(ctx, "orgs.Service.ListMembers")
	defer span.End()

	memberships, err := s.storage.ListMembersByOrgID(ctx, scope.OrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	var members []*types.Member
	for _, m := range memberships {
		if s.superUserID != "" && m.UserID == s.superUserID {
			continue
		}

		email, err := s.identity.GetIdentityEmail(ctx, m.UserID)
		if err != nil {
			// The identity may have been deleted upstream; keep the row.
			s.logger.Warn("failed to get identity for user", "user_id", m.UserID, "err", err)
			email = "unknown"
		}

		members = append(members, &types.Member{
			UserID: m.UserID,
			Email:  email,
			Role:   m.Role,
		})
	}

	return members, nil
}

// UpdateMemberRole changes another member's role. Owner memberships are
// immutable through this path no matter who asks; ownership transfer is a
// deliberate non-feature.
func (s *Service) UpdateMemberRole(ctx context.Context, scope authz.Scope, targetUserID string, newRole types.Role) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "orgs.Service.UpdateMemberRole")
	defer span.End()

	target, err := s.storage.GetMembership(ctx, targetUserID, scope.OrgID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, authz.ErrNotFound
		}
		return nil, err
	}

	if target.Role == types.RoleOwner {
		s.logger.Security().AuthzFailure(scope.UserID, "modify_owner:"+scope.OrgID)
		return nil, authz.ErrCannotModifyOwner
	}

	if err := s.storage.UpdateMemberRole(ctx, scope.OrgID, targetUserID, newRole); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, authz.ErrNotFound
		}
		return nil, err
	}

	target.Role = newRole
	return target, nil
}

// RemoveMember removes another member from the organization, with the same
// owner protection as role updates.
func (s *Service) RemoveMember(ctx context.Context, scope authz.Scope, targetUserID string) error {
	ctx, span := s.tracer.Start(ctx, "orgs.Service.RemoveMember")
	defer span.End()

	target, err := s.storage.GetMembership(ctx, targetUserID, scope.OrgID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return authz.ErrNotFound
		}
		return err
	}

	if target.Role == types.RoleOwner {
		s.logger.Security().AuthzFailure(scope.UserID, "modify_owner:"+scope.OrgID)
		return authz.ErrCannotModifyOwner
	}

	if err := s.storage.RemoveMember(ctx, scope.OrgID, targetUserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return authz.ErrNotFound
		}
		return err
	}

	return nil
}

// Leave removes the caller's own membership. Owners cannot leave; they would
// orphan the organization.
func (s *Service) Leave(ctx context.Context, scope authz.Scope) error {
	ctx, span := s.tracer.Start(ctx, "orgs.Service.Leave")
	defer span.End()

	if scope.Role == types.RoleOwner {
		return authz.ErrCannotModifyOwner
	}

	if err := s.storage.RemoveMember(ctx, scope.OrgID, scope.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return authz.ErrNotFound
		}
		return err
	}

	return nil
}

// slugify reduces a display name to a URL-safe slug.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
