// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/tracing"
	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/identity"
)

// Service answers scoped queries over the audit trail. Scope is decided by
// the authorizer, never by the caller's filter.
type Service struct {
	store StorageInterface
	authz AuthzInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(store StorageInterface, authz AuthzInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)
	s.store = store
	s.authz = authz
	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger
	return s
}

func (s *Service) Query(ctx context.Context, actor *identity.Identity, filter types.AuditFilter, page types.Pagination) ([]*types.AuditLog, int64, error) {
	ctx, span := s.tracer.Start(ctx, "audit.Service.Query")
	defer span.End()

	scope, ok := s.authz.AuditScope(actor)
	if !ok {
		return nil, 0, types.Forbiddenf("you do not have permission to view audit logs")
	}

	logs, total, err := s.store.ListAuditLogs(ctx, scope, filter, page)
	if err != nil {
		s.logger.Errorf("failed to list audit logs: %v", err)
		return nil, 0, err
	}

	return logs, total, nil
}
