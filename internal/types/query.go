// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == SortAsc {
		return SortAsc
	}
	return SortDesc
}

type TaskSortField string

const (
	TaskSortCreatedAt TaskSortField = "createdAt"
	TaskSortDueDate   TaskSortField = "dueDate"
	TaskSortPriority  TaskSortField = "priority"
)

func ParseTaskSortField(s string) (TaskSortField, error) {
	switch TaskSortField(s) {
	case "":
		return TaskSortCreatedAt, nil
	case TaskSortCreatedAt, TaskSortDueDate, TaskSortPriority:
		return TaskSortField(s), nil
	}
	return "", BadRequestf("invalid sort field %q", s)
}

// TaskScope is the visibility predicate computed from the acting identity.
// It is applied before any caller-supplied filter.
type TaskScope struct {
	// All disables scoping entirely (super_admin).
	All bool
	// OrgIDs restricts results to tasks in these organizations.
	OrgIDs []string
	// AssignedToID restricts results to tasks assigned to this user.
	AssignedToID string
}

type TaskFilter struct {
	Status         *TaskStatus
	Priority       *TaskPriority
	AssignedToID   string
	OrganizationID string
	Search         string
	Sort           TaskSortField
	Order          SortOrder
}

// AuditScope restricts audit queries to entries whose actor belongs to one of
// the given organizations. All=true lifts the restriction.
type AuditScope struct {
	All    bool
	OrgIDs []string
}

type AuditFilter struct {
	Action       *AuditAction
	ResourceType *ResourceType
	UserID       string
	Start        *time.Time
	End          *time.Time
}
