// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// GlobalRole is a role attached to a user account independently of any
// organization. Only super_admin carries cross-organization power.
type GlobalRole string

const (
	GlobalRoleSuperAdmin GlobalRole = "super_admin"
	GlobalRoleViewer     GlobalRole = "viewer"
)

func ParseGlobalRole(s string) (GlobalRole, error) {
	switch GlobalRole(s) {
	case GlobalRoleSuperAdmin, GlobalRoleViewer:
		return GlobalRole(s), nil
	}
	return "", BadRequestf("invalid global role %q", s)
}

// OrgRole is a role scoped to a single organization via a membership.
type OrgRole string

const (
	OrgRoleOwner  OrgRole = "owner"
	OrgRoleAdmin  OrgRole = "admin"
	OrgRoleViewer OrgRole = "viewer"
)

func ParseOrgRole(s string) (OrgRole, error) {
	switch OrgRole(s) {
	case OrgRoleOwner, OrgRoleAdmin, OrgRoleViewer:
		return OrgRole(s), nil
	}
	return "", BadRequestf("invalid role %q", s)
}

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return TaskStatus(s), nil
	}
	return "", BadRequestf("invalid task status %q", s)
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(s) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return TaskPriority(s), nil
	}
	return "", BadRequestf("invalid task priority %q", s)
}

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionRead   AuditAction = "read"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionLogin  AuditAction = "login"
)

func ParseAuditAction(s string) (AuditAction, error) {
	switch AuditAction(s) {
	case AuditActionCreate, AuditActionRead, AuditActionUpdate, AuditActionDelete, AuditActionLogin:
		return AuditAction(s), nil
	}
	return "", BadRequestf("invalid audit action %q", s)
}

type ResourceType string

const (
	ResourceTypeTask         ResourceType = "task"
	ResourceTypeUser         ResourceType = "user"
	ResourceTypeOrganization ResourceType = "organization"
)

func ParseResourceType(s string) (ResourceType, error) {
	switch ResourceType(s) {
	case ResourceTypeTask, ResourceTypeUser, ResourceTypeOrganization:
		return ResourceType(s), nil
	}
	return "", BadRequestf("invalid resource type %q", s)
}

type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"firstName"`
	LastName     string     `db:"last_name" json:"lastName"`
	IsActive     bool       `db:"is_active" json:"isActive"`
	GlobalRole   GlobalRole `db:"global_role" json:"role"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

type Organization struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Membership links a user to an organization with an org-scoped role.
// At most one membership exists per (user, organization) pair.
type Membership struct {
	ID             string    `db:"id" json:"id"`
	OrganizationID string    `db:"organization_id" json:"organizationId"`
	UserID         string    `db:"user_id" json:"userId"`
	Role           OrgRole   `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"joinedAt"`
}

// Member is a membership joined with the member's user record, as returned
// by the organization members listing.
type Member struct {
	UserID    string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      OrgRole   `json:"role"`
	IsActive  bool      `json:"isActive"`
	JoinedAt  time.Time `json:"joinedAt"`
}

type Task struct {
	ID             string       `db:"id" json:"id"`
	Title          string       `db:"title" json:"title"`
	Description    string       `db:"description" json:"description"`
	Status         TaskStatus   `db:"status" json:"status"`
	Priority       TaskPriority `db:"priority" json:"priority"`
	DueDate        *time.Time   `db:"due_date" json:"dueDate"`
	OrganizationID string       `db:"organization_id" json:"organizationId"`
	CreatedByID    string       `db:"created_by_id" json:"createdById"`
	AssignedToID   *string      `db:"assigned_to_id" json:"assignedToId"`
	CreatedAt      time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updatedAt"`
}

// AuditLog is an append-only record of a security-relevant event. Entries are
// never mutated or deleted by the application.
type AuditLog struct {
	ID           string         `db:"id" json:"id"`
	UserID       string         `db:"user_id" json:"userId"`
	Action       AuditAction    `db:"action" json:"action"`
	ResourceType ResourceType   `db:"resource_type" json:"resourceType"`
	ResourceID   string         `db:"resource_id" json:"resourceId"`
	Details      map[string]any `db:"details" json:"details"`
	IPAddress    string         `db:"ip_address" json:"ipAddress"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
}
