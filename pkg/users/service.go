// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"
	"errors"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/storage"
	"github.com/canonical/task-service/internal/tracing"
	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/audit"
	"github.com/canonical/task-service/pkg/identity"
)

// Service exposes the user directory. Any authenticated user may read it,
// so members can be picked for organizations and tasks; global role changes
// are restricted to super_admins.
type Service struct {
	store    StorageInterface
	recorder audit.RecorderInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(store StorageInterface, recorder audit.RecorderInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)
	s.store = store
	s.recorder = recorder
	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger
	return s
}

func (s *Service) FindAll(ctx context.Context) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.FindAll")
	defer span.End()

	return s.store.ListUsers(ctx)
}

func (s *Service) FindOne(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.FindOne")
	defer span.End()

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.NotFoundf("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdateGlobalRole(ctx context.Context, id string, role types.GlobalRole, actor *identity.Identity) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.UpdateGlobalRole")
	defer span.End()

	if !actor.IsSuperAdmin() {
		s.logger.Security().PermissionDenied(actor.ID, "update_global_role", id)
		return nil, types.Forbiddenf("only super admins can change global roles")
	}

	user, err := s.store.UpdateUserGlobalRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.NotFoundf("user not found")
		}
		return nil, err
	}

	s.recorder.Record(ctx, audit.Event{
		UserID:       actor.ID,
		Action:       types.AuditActionUpdate,
		ResourceType: types.ResourceTypeUser,
		ResourceID:   user.ID,
		Details:      map[string]any{"globalRole": string(role)},
	})

	return user, nil
}
