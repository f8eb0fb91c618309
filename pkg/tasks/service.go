// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tempoworks/tempo/internal/logging"
	"github.com/tempoworks/tempo/internal/monitoring"
	"github.com/tempoworks/tempo/internal/storage"
	"github.com/tempoworks/tempo/internal/tracing"
	"github.com/tempoworks/tempo/internal/types"
	"github.com/tempoworks/tempo/pkg/authz"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage    StorageInterface
	authorizer authz.AuthorizerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	s StorageInterface,
	authorizer authz.AuthorizerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:    s,
		authorizer: authorizer,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

func (s *Service) Create(ctx context.Context, scope authz.Scope, title string) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Service.Create")
	defer span.End()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("task title is required")
	}

	return s.storage.CreateTask(ctx, &types.Task{
		OrgID:       scope.OrgID,
		OwnerUserID: scope.UserID,
		Title:       title,
	})
}

// Get loads a task through the caller's organization filter, then applies
// the ownership check. A task in another organization is not found, never
// forbidden.
func (s *Service) Get(ctx context.Context, scope authz.Scope, taskID string) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Service.Get")
	defer span.End()

	task, err := s.loadOwned(ctx, scope, taskID)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// List returns the organization's tasks: all of them for privileged roles,
// only the caller's own otherwise.
func (s *Service) List(ctx context.Context, scope authz.Scope) ([]*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Service.List")
	defer span.End()

	tasks, err := s.storage.ListTasksByOrgID(ctx, scope.OrgID)
	if err != nil {
		return nil, err
	}

	if scope.Role.Privileged() {
		return tasks, nil
	}

	var own []*types.Task
	for _, task := range tasks {
		if task.OwnerUserID == scope.UserID {
			own = append(own, task)
		}
	}
	return own, nil
}

func (s *Service) Update(ctx context.Context, scope authz.Scope, taskID, title string, done bool) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Service.Update")
	defer span.End()

	task, err := s.loadOwned(ctx, scope, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Done = done

	if err := s.storage.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, authz.ErrNotFound
		}
		return nil, err
	}

	return task, nil
}

func (s *Service) Delete(ctx context.Context, scope authz.Scope, taskID string) error {
	ctx, span := s.tracer.Start(ctx, "tasks.Service.Delete")
	defer span.End()

	if _, err := s.loadOwned(ctx, scope, taskID); err != nil {
		return err
	}

	if err := s.storage.DeleteTask(ctx, scope.OrgID, taskID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return authz.ErrNotFound
		}
		return err
	}

	return nil
}

func (s *Service) loadOwned(ctx context.Context, scope authz.Scope, taskID string) (*types.Task, error) {
	task, err := s.storage.GetTaskByID(ctx, scope.OrgID, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, authz.ErrNotFound
		}
		return nil, err
	}

	if err := s.authorizer.CheckOwnership(ctx, task, scope); err != nil {
		return nil, err
	}

	return task, nil
}
