// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/identity"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_authorization.go -source=interfaces.go

// StorageInterface is the subset of the membership store the checker needs.
// Role lookups always go through it so decisions reflect current state, not
// the identity context captured at authentication time.
type StorageInterface interface {
	GetMembership(ctx context.Context, orgID, userID string) (*types.Membership, error)
	CountOwners(ctx context.Context, orgID string) (int64, error)
}

type CheckerInterface interface {
	RoleOf(ctx context.Context, orgID, userID string) (types.OrgRole, bool, error)
	CanManageOrg(ctx context.Context, id *identity.Identity, orgID string) (bool, error)
	CanViewMembers(ctx context.Context, id *identity.Identity, orgID string) (bool, error)
	CanAddMember(ctx context.Context, id *identity.Identity, orgID string, role types.OrgRole) (bool, error)
	CanUpdateMemberRole(ctx context.Context, id *identity.Identity, orgID string) (bool, error)
	CanRemoveMember(ctx context.Context, id *identity.Identity, orgID string, targetRole types.OrgRole) (bool, error)
	CheckSoleOwner(ctx context.Context, orgID string) (bool, error)
	CanCreateTask(ctx context.Context, id *identity.Identity, orgID string) (bool, error)
	CanReadTask(ctx context.Context, id *identity.Identity, task *types.Task) (bool, error)
	CanPatchTask(ctx context.Context, id *identity.Identity, task *types.Task, fields []string) (bool, error)
	CanDeleteTask(ctx context.Context, id *identity.Identity, task *types.Task) (bool, error)
	TaskScope(id *identity.Identity) types.TaskScope
	AuditScope(id *identity.Identity) (types.AuditScope, bool)
}
