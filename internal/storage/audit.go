// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/task-service/internal/types"
)

const auditColumns = "id, user_id, action, resource_type, resource_id, details, ip_address, created_at"

func (s *Storage) CreateAuditLog(ctx context.Context, e *types.AuditLog) error {
	ctx, span := s.tracer.Start(ctx, "storage.CreateAuditLog")
	defer span.End()

	id := e.ID
	if id == "" {
		generated, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate audit log ID: %w", err)
		}
		id = generated.String()
	}

	var details []byte
	var err error
	if e.Details != nil {
		details, err = json.Marshal(e.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal audit details: %w", err)
		}
	}

	_, err = s.db.Statement(ctx).
		Insert("audit_logs").
		Columns("id", "user_id", "action", "resource_type", "resource_id", "details", "ip_address").
		Values(id, e.UserID, e.Action, e.ResourceType, e.ResourceID, details, e.IPAddress).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

func auditConditions(scope types.AuditScope, filter types.AuditFilter) sq.And {
	conds := sq.And{}

	if !scope.All {
		// Restrict to entries whose actor shares an organization with the
		// querying admin.
		conds = append(conds, sq.Expr(
			"user_id IN (SELECT user_id FROM memberships WHERE organization_id = ANY(?))",
			scope.OrgIDs,
		))
	}

	if filter.Action != nil {
		conds = append(conds, sq.Eq{"action": *filter.Action})
	}
	if filter.ResourceType != nil {
		conds = append(conds, sq.Eq{"resource_type": *filter.ResourceType})
	}
	if filter.UserID != "" {
		conds = append(conds, sq.Eq{"user_id": filter.UserID})
	}
	if filter.Start != nil {
		conds = append(conds, sq.GtOrEq{"created_at": *filter.Start})
	}
	if filter.End != nil {
		conds = append(conds, sq.LtOrEq{"created_at": *filter.End})
	}

	return conds
}

func (s *Storage) ListAuditLogs(ctx context.Context, scope types.AuditScope, filter types.AuditFilter, page types.Pagination) ([]*types.AuditLog, int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAuditLogs")
	defer span.End()

	if !scope.All && len(scope.OrgIDs) == 0 {
		return nil, 0, nil
	}

	conds := auditConditions(scope, filter)

	var total int64
	count := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("audit_logs")
	if len(conds) > 0 {
		count = count.Where(conds)
	}
	if err := count.QueryRowContext(ctx).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	query := s.db.Statement(ctx).
		Select(auditColumns).
		From("audit_logs").
		OrderBy("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit())
	if len(conds) > 0 {
		query = query.Where(conds)
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var entries []*types.AuditLog
	for rows.Next() {
		var e types.AuditLog
		var details []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.ResourceType, &e.ResourceID, &details, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit log: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				s.logger.Warnf("failed to unmarshal audit details for %s: %v", e.ID, err)
			}
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, total, nil
}
