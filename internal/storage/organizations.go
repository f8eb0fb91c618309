// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tempoworks/tempo/internal/db"
	"github.com/tempoworks/tempo/internal/logging"
	"github.com/tempoworks/tempo/internal/monitoring"
	"github.com/tempoworks/tempo/internal/tracing"
	"github.com/tempoworks/tempo/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) CreateOrganization(ctx context.Context, org *types.Organization) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateOrganization")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate organization ID: %w", err)
	}

	var created types.Organization
	err = s.db.Statement(ctx).
		Insert("organizations").
		Columns("id", "name", "slug", "created_by").
		Values(id.String(), org.Name, org.Slug, org.CreatedBy).
		Suffix("RETURNING id, name, slug, created_by, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Name, &created.Slug, &created.CreatedBy, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, "organization slug already in use")
		}
		return nil, fmt.Errorf("failed to insert organization: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrganizationByID")
	defer span.End()

	var org types.Organization
	err := s.db.Statement(ctx).
		Select("id", "name", "slug", "created_by", "created_at").
		From("organizations").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedBy, &org.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &org, nil
}

func (s *Storage) ListOrganizations(ctx context.Context) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListOrganizations")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("id", "name", "slug", "created_by", "created_at").
		From("organizations").
		OrderBy("created_at")

	return s.scanOrganizations(ctx, query)
}

func (s *Storage) ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListOrganizationsByUserID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("o.id", "o.name", "o.slug", "o.created_by", "o.created_at").
		From("organizations o").
		Join("memberships m ON o.id = m.org_id").
		Where(sq.Eq{"m.user_id": userID}).
		OrderBy("o.created_at")

	return s.scanOrganizations(ctx, query)
}

func (s *Storage) scanOrganizations(ctx context.Context, query sq.SelectBuilder) ([]*types.Organization, error) {
	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*types.Organization
	for rows.Next() {
		var org types.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedBy, &org.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, &org)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return orgs, nil
}
