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

	"github.com/tempoworks/tempo/internal/types"
)

// Every task query filters by org_id. A row that exists under another
// organization is indistinguishable from a missing row, so cross-tenant
// requests observe ErrNotFound.

func (s *Storage) CreateTask(ctx context.Context, task *types.Task) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTask")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate task ID: %w", err)
	}

	var created types.Task
	err = s.db.Statement(ctx).
		Insert("tasks").
		Columns("id", "org_id", "owner_user_id", "title", "done").
		Values(id.String(), task.OrgID, task.OwnerUserID, task.Title, task.Done).
		Suffix("RETURNING id, org_id, owner_user_id, title, done, created_at, updated_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.OrgID, &created.OwnerUserID, &created.Title, &created.Done, &created.CreatedAt, &created.UpdatedAt)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetTaskByID(ctx context.Context, orgID, id string) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTaskByID")
	defer span.End()

	var task types.Task
	err := s.db.Statement(ctx).
		Select("id", "org_id", "owner_user_id", "title", "done", "created_at", "updated_at").
		From("tasks").
		Where(sq.Eq{"id": id, "org_id": orgID}).
		QueryRowContext(ctx).
		Scan(&task.ID, &task.OrgID, &task.OwnerUserID, &task.Title, &task.Done, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

func (s *Storage) ListTasksByOrgID(ctx context.Context, orgID string) ([]*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTasksByOrgID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "org_id", "owner_user_id", "title", "done", "created_at", "updated_at").
		From("tasks").
		Where(sq.Eq{"org_id": orgID}).
		OrderBy("created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*types.Task
	for rows.Next() {
		var task types.Task
		if err := rows.Scan(&task.ID, &task.OrgID, &task.OwnerUserID, &task.Title, &task.Done, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tasks, nil
}

func (s *Storage) UpdateTask(ctx context.Context, task *types.Task) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTask")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("tasks").
		Set("title", task.Title).
		Set("done", task.Done).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": task.ID, "org_id": task.OrgID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
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

func (s *Storage) DeleteTask(ctx context.Context, orgID, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteTask")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("tasks").
		Where(sq.Eq{"id": id, "org_id": orgID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
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
