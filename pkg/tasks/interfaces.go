// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"context"

	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/identity"
)

//go:generate mockgen -build_flags=--mod=mod -package tasks -destination ./mock_tasks.go -source=interfaces.go

type StorageInterface interface {
	CreateTask(ctx context.Context, t *types.Task) (*types.Task, error)
	GetTaskByID(ctx context.Context, id string) (*types.Task, error)
	ListTasks(ctx context.Context, scope types.TaskScope, filter types.TaskFilter, page types.Pagination) ([]*types.Task, int64, error)
	UpdateTask(ctx context.Context, t *types.Task) (*types.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type ServiceInterface interface {
	Create(ctx context.Context, req CreateTaskRequest, actor *identity.Identity) (*types.Task, error)
	FindAll(ctx context.Context, filter types.TaskFilter, page types.Pagination, actor *identity.Identity) ([]*types.Task, int64, error)
	FindOne(ctx context.Context, id string, actor *identity.Identity) (*types.Task, error)
	Update(ctx context.Context, id string, patch TaskPatch, actor *identity.Identity) (*types.Task, error)
	UpdateStatus(ctx context.Context, id string, status types.TaskStatus, actor *identity.Identity) (*types.Task, error)
	Remove(ctx context.Context, id string, actor *identity.Identity) (*types.Task, error)
}
