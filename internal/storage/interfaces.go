// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/task-service/internal/types"
)

type StorageInterface interface {
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	ListUsers(ctx context.Context) ([]*types.User, error)
	UpdateUserGlobalRole(ctx context.Context, id string, role types.GlobalRole) (*types.User, error)

	CreateOrganization(ctx context.Context, name string) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	ListOrganizations(ctx context.Context) ([]*types.Organization, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)
	UpdateOrganization(ctx context.Context, id, name string) (*types.Organization, error)
	DeleteOrganization(ctx context.Context, id string) error

	AddMember(ctx context.Context, orgID, userID string, role types.OrgRole) (*types.Membership, error)
	GetMembership(ctx context.Context, orgID, userID string) (*types.Membership, error)
	ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error)
	ListMembers(ctx context.Context, orgID string) ([]*types.Member, error)
	UpdateMemberRole(ctx context.Context, orgID, userID string, role types.OrgRole) error
	RemoveMember(ctx context.Context, orgID, userID string) error
	DeleteMembershipsByOrgID(ctx context.Context, orgID string) error
	CountOwners(ctx context.Context, orgID string) (int64, error)

	CreateTask(ctx context.Context, t *types.Task) (*types.Task, error)
	GetTaskByID(ctx context.Context, id string) (*types.Task, error)
	ListTasks(ctx context.Context, scope types.TaskScope, filter types.TaskFilter, page types.Pagination) ([]*types.Task, int64, error)
	UpdateTask(ctx context.Context, t *types.Task) (*types.Task, error)
	DeleteTask(ctx context.Context, id string) error

	CreateAuditLog(ctx context.Context, e *types.AuditLog) error
	ListAuditLogs(ctx context.Context, scope types.AuditScope, filter types.AuditFilter, page types.Pagination) ([]*types.AuditLog, int64, error)
}
