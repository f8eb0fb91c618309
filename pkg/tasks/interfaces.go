// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"context"

	"github.com/tempoworks/tempo/internal/types"
	"github.com/tempoworks/tempo/pkg/authz"
)

type ServiceInterface interface {
	Create(ctx context.Context, scope authz.Scope, title string) (*types.Task, error)
	Get(ctx context.Context, scope authz.Scope, taskID string) (*types.Task, error)
	List(ctx context.Context, scope authz.Scope) ([]*types.Task, error)
	Update(ctx context.Context, scope authz.Scope, taskID, title string, done bool) (*types.Task, error)
	Delete(ctx context.Context, scope authz.Scope, taskID string) error
}

// StorageInterface is the subset of the storage layer the task service
// needs. Every lookup is filtered by the caller's organization.
type StorageInterface interface {
	CreateTask(ctx context.Context, task *types.Task) (*types.Task, error)
	GetTaskByID(ctx context.Context, orgID, id string) (*types.Task, error)
	ListTasksByOrgID(ctx context.Context, orgID string) ([]*types.Task, error)
	UpdateTask(ctx context.Context, task *types.Task) error
	DeleteTask(ctx context.Context, orgID, id string) error
}
