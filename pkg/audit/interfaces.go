// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"

	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/identity"
)

//go:generate mockgen -build_flags=--mod=mod -package audit -destination ./mock_audit.go -source=interfaces.go

// Event is a security-relevant occurrence to be persisted to the audit log.
type Event struct {
	UserID       string
	Action       types.AuditAction
	ResourceType types.ResourceType
	ResourceID   string
	Details      map[string]any
	IPAddress    string
}

// RecorderInterface accepts events without blocking the caller. A failure to
// persist never propagates to the triggering operation.
type RecorderInterface interface {
	Record(ctx context.Context, e Event)
}

type ServiceInterface interface {
	Query(ctx context.Context, actor *identity.Identity, filter types.AuditFilter, page types.Pagination) ([]*types.AuditLog, int64, error)
}

// StorageInterface is the subset of the storage layer the audit package needs.
type StorageInterface interface {
	CreateAuditLog(ctx context.Context, e *types.AuditLog) error
	ListAuditLogs(ctx context.Context, scope types.AuditScope, filter types.AuditFilter, page types.Pagination) ([]*types.AuditLog, int64, error)
}

type AuthzInterface interface {
	AuditScope(id *identity.Identity) (types.AuditScope, bool)
}
