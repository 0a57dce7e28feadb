// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/storage"
	"github.com/canonical/task-service/internal/tracing"
	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/authorization"
	"github.com/canonical/task-service/pkg/identity"
)

// Service gates every task operation on the caller's organization role.
type Service struct {
	store StorageInterface
	authz authorization.CheckerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(store StorageInterface, authz authorization.CheckerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)
	s.store = store
	s.authz = authz
	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger
	return s
}

func (s *Service) Create(ctx context.Context, req CreateTaskRequest, actor *identity.Identity) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Service.Create")
	defer span.End()

	ok, err := s.authz.CanCreateTask(ctx, actor, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.Forbiddenf("only owners and admins can create tasks")
	}

	task := &types.Task{
		Title:          req.Title,
		Description:    req.Description,
		Status:         types.TaskStatusTodo,
		Priority:       types.TaskPriorityMedium,
		DueDate:        req.DueDate,
		AssignedToID:   req.AssignedToID,
		OrganizationID: req.OrganizationID,
		CreatedByID:    actor.ID,
	}
	if req.Status != "" {
		task.Status, err = types.ParseTaskStatus(req.Status)
		if err != nil {
			return nil, err
		}
	}
	if req.Priority != "" {
		task.Priority, err = types.ParseTaskPriority(req.Priority)
		if err != nil {
			return nil, err
		}
	}

	created, err := s.store.CreateTask(ctx, task)
	if err != nil {
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, types.BadRequestf("invalid organization or assignee reference")
		}
		s.logger.Errorf("failed to create task: %v", err)
		return nil, err
	}

	return created, nil
}

// FindAll lists tasks inside the caller's visibility scope. Caller-supplied
// filters only ever narrow that scope.
func (s *Service) FindAll(ctx context.Context, filter types.TaskFilter, page types.Pagination, actor *identity.Identity) ([]*types.Task, int64, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Service.FindAll")
	defer span.End()

	scope := s.authz.TaskScope(actor)

	tasks, total, err := s.store.ListTasks(ctx, scope, filter, page)
	if err != nil {
		s.logger.Errorf("failed to list tasks: %v", err)
		return nil, 0, err
	}

	return tasks, total, nil
}

func (s *Service) FindOne(ctx context.Context, id string, actor *identity.Identity) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Service.FindOne")
	defer span.End()

	return s.readable(ctx, id, actor)
}

// readable fetches a task and verifies the actor may see it. A missing row is
// not found; an existing task outside the actor's access is forbidden.
func (s *Service) readable(ctx context.Context, id string, actor *identity.Identity) (*types.Task, error) {
	task, err := s.store.GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.NotFoundf("task not found")
		}
		return nil, err
	}

	ok, err := s.authz.CanReadTask(ctx, actor, task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.Forbiddenf("you do not have access to this task")
	}

	return task, nil
}

func (s *Service) Update(ctx context.Context, id string, patch TaskPatch, actor *identity.Identity) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Service.Update")
	defer span.End()

	task, err := s.readable(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	ok, err := s.authz.CanPatchTask(ctx, actor, task, patch.Fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.Forbiddenf("viewers can only update task status")
	}

	patch.Apply(task)
	task.UpdatedAt = time.Now().UTC()

	updated, err := s.store.UpdateTask(ctx, task)
	if err != nil {
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, types.BadRequestf("invalid assignee reference")
		}
		s.logger.Errorf("failed to update task %s: %v", id, err)
		return nil, err
	}

	return updated, nil
}

// UpdateStatus is the status-only shortcut every role with read access may
// use, including viewers on their assigned tasks.
func (s *Service) UpdateStatus(ctx context.Context, id string, status types.TaskStatus, actor *identity.Identity) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Service.UpdateStatus")
	defer span.End()

	return s.Update(ctx, id, TaskPatch{Status: &status, Fields: []string{"status"}}, actor)
}

// Remove deletes a task and returns its last state.
func (s *Service) Remove(ctx context.Context, id string, actor *identity.Identity) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "tasks.Service.Remove")
	defer span.End()

	task, err := s.readable(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	ok, err := s.authz.CanDeleteTask(ctx, actor, task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.Forbiddenf("viewers cannot delete tasks")
	}

	if err := s.store.DeleteTask(ctx, id); err != nil {
		return nil, err
	}

	return task, nil
}
