// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tempoworks/tempo/internal/types"
)

const invitationColumns = "id, org_id, email, role, token, status, invited_by, accepted_by, expires_at, created_at"

func (s *Storage) CreateInvitation(ctx context.Context, invite *types.Invitation) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvitation")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation ID: %w", err)
	}

	var created types.Invitation
	err = s.db.Statement(ctx).
		Insert("invitations").
		Columns("id", "org_id", "email", "role", "token", "status", "invited_by", "expires_at").
		Values(
			id.String(),
			invite.OrgID,
			strings.ToLower(invite.Email),
			string(invite.Role),
			invite.Token,
			string(types.InvitePending),
			invite.InvitedBy,
			invite.ExpiresAt,
		).
		Suffix("RETURNING "+invitationColumns).
		QueryRowContext(ctx).
		Scan(
			&created.ID, &created.OrgID, &created.Email, &created.Role, &created.Token,
			&created.Status, &created.InvitedBy, &created.AcceptedBy, &created.ExpiresAt, &created.CreatedAt,
		)

	if err != nil {
		// The partial unique index on (org_id, lower(email)) where pending is
		// the final backstop against two concurrent creates.
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert invitation: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetInvitationByID(ctx context.Context, id string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInvitationByID")
	defer span.End()

	return s.getInvitation(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInvitationByToken")
	defer span.End()

	return s.getInvitation(ctx, sq.Eq{"token": token})
}

func (s *Storage) GetPendingInvitation(ctx context.Context, orgID, email string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPendingInvitation")
	defer span.End()

	return s.getInvitation(ctx, sq.Eq{
		"org_id": orgID,
		"email":  strings.ToLower(email),
		"status": string(types.InvitePending),
	})
}

func (s *Storage) getInvitation(ctx context.Context, where sq.Eq) (*types.Invitation, error) {
	var inv types.Invitation
	err := s.db.Statement(ctx).
		Select(strings.Split(invitationColumns, ", ")...).
		From("invitations").
		Where(where).
		QueryRowContext(ctx).
		Scan(
			&inv.ID, &inv.OrgID, &inv.Email, &inv.Role, &inv.Token,
			&inv.Status, &inv.InvitedBy, &inv.AcceptedBy, &inv.ExpiresAt, &inv.CreatedAt,
		)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return &inv, nil
}

func (s *Storage) ListInvitationsByOrgID(ctx context.Context, orgID string) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListInvitationsByOrgID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(strings.Split(invitationColumns, ", ")...).
		From("invitations").
		Where(sq.Eq{"org_id": orgID}).
		OrderBy("created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invites []*types.Invitation
	for rows.Next() {
		var inv types.Invitation
		if err := rows.Scan(
			&inv.ID, &inv.OrgID, &inv.Email, &inv.Role, &inv.Token,
			&inv.Status, &inv.InvitedBy, &inv.AcceptedBy, &inv.ExpiresAt, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invites = append(invites, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invites, nil
}

// AcceptInvitation performs the compare-and-swap from pending to accepted.
// With two concurrent accepts only one update matches; the loser gets
// ErrNotFound and must report the invitation as no longer pending.
func (s *Storage) AcceptInvitation(ctx context.Context, id, acceptedBy string) error {
	ctx, span := s.tracer.Start(ctx, "storage.AcceptInvitation")
	defer span.End()

	return s.transitionInvitation(ctx, id, types.InviteAccepted, &acceptedBy)
}

// RevokeInvitation performs the compare-and-swap from pending to revoked.
func (s *Storage) RevokeInvitation(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.RevokeInvitation")
	defer span.End()

	return s.transitionInvitation(ctx, id, types.InviteRevoked, nil)
}

// ExpireInvitation persists a lazily-detected expiry. Expiry is normally
// computed on read; the write only happens when a stale pending row would
// otherwise collide with the partial unique index on a fresh invitation.
func (s *Storage) ExpireInvitation(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.ExpireInvitation")
	defer span.End()

	return s.transitionInvitation(ctx, id, types.InviteExpired, nil)
}

func (s *Storage) transitionInvitation(ctx context.Context, id string, to types.InviteStatus, acceptedBy *string) error {
	update := s.db.Statement(ctx).
		Update("invitations").
		Set("status", string(to)).
		Where(sq.Eq{
			"id":     id,
			"status": string(types.InvitePending),
		})

	if acceptedBy != nil {
		update = update.Set("accepted_by", *acceptedBy)
	}

	res, err := update.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to transition invitation: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
