// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"slices"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/storage"
	"github.com/canonical/task-service/internal/tracing"
	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/identity"
)

var _ CheckerInterface = (*Checker)(nil)

// Checker centralizes every role predicate in the system so the escalation
// and sole-owner rules are defined once. A global super_admin short-circuits
// every organization-scoped check.
type Checker struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewChecker(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Checker {
	return &Checker{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// RoleOf looks up the current role of a user in an organization. The second
// return value is false when no membership exists.
func (c *Checker) RoleOf(ctx context.Context, orgID, userID string) (types.OrgRole, bool, error) {
	ctx, span := c.tracer.Start(ctx, "authorization.Checker.RoleOf")
	defer span.End()

	m, err := c.storage.GetMembership(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return m.Role, true, nil
}

// CanManageOrg allows super_admins and organization owners.
func (c *Checker) CanManageOrg(ctx context.Context, id *identity.Identity, orgID string) (bool, error) {
	if id.IsSuperAdmin() {
		return true, nil
	}
	role, ok, err := c.RoleOf(ctx, orgID, id.ID)
	if err != nil {
		return false, err
	}
	return ok && role == types.OrgRoleOwner, nil
}

// CanViewMembers allows super_admins and any member of the organization.
func (c *Checker) CanViewMembers(ctx context.Context, id *identity.Identity, orgID string) (bool, error) {
	if id.IsSuperAdmin() {
		return true, nil
	}
	_, ok, err := c.RoleOf(ctx, orgID, id.ID)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// CanAddMember allows super_admins, owners with any role, and admins granting
// anything but owner.
func (c *Checker) CanAddMember(ctx context.Context, id *identity.Identity, orgID string, role types.OrgRole) (bool, error) {
	if id.IsSuperAdmin() {
		return true, nil
	}
	actorRole, ok, err := c.RoleOf(ctx, orgID, id.ID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	switch actorRole {
	case types.OrgRoleOwner:
		return true, nil
	case types.OrgRoleAdmin:
		return role != types.OrgRoleOwner, nil
	}
	return false, nil
}

// CanUpdateMemberRole allows super_admins and owners only.
func (c *Checker) CanUpdateMemberRole(ctx context.Context, id *identity.Identity, orgID string) (bool, error) {
	return c.CanManageOrg(ctx, id, orgID)
}

// CanRemoveMember allows super_admins, owners, and admins removing viewers.
func (c *Checker) CanRemoveMember(ctx context.Context, id *identity.Identity, orgID string, targetRole types.OrgRole) (bool, error) {
	if id.IsSuperAdmin() {
		return true, nil
	}
	actorRole, ok, err := c.RoleOf(ctx, orgID, id.ID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	switch actorRole {
	case types.OrgRoleOwner:
		return true, nil
	case types.OrgRoleAdmin:
		return targetRole == types.OrgRoleViewer, nil
	}
	return false, nil
}

// CheckSoleOwner reports whether the organization currently has exactly one
// owner. It re-reads the count at call time; callers run it inside the same
// transaction as the mutation it guards.
func (c *Checker) CheckSoleOwner(ctx context.Context, orgID string) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "authorization.Checker.CheckSoleOwner")
	defer span.End()

	count, err := c.storage.CountOwners(ctx, orgID)
	if err != nil {
		return false, err
	}
	return count == 1, nil
}

// CanCreateTask allows super_admins and owners/admins of the organization.
func (c *Checker) CanCreateTask(ctx context.Context, id *identity.Identity, orgID string) (bool, error) {
	if id.IsSuperAdmin() {
		return true, nil
	}
	role, ok, err := c.RoleOf(ctx, orgID, id.ID)
	if err != nil {
		return false, err
	}
	return ok && (role == types.OrgRoleOwner || role == types.OrgRoleAdmin), nil
}

// CanReadTask requires membership in the task's organization; viewers may
// only read tasks assigned to them.
func (c *Checker) CanReadTask(ctx context.Context, id *identity.Identity, task *types.Task) (bool, error) {
	if id.IsSuperAdmin() {
		return true, nil
	}
	role, ok, err := c.RoleOf(ctx, task.OrganizationID, id.ID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if role == types.OrgRoleViewer {
		return task.AssignedToID != nil && *task.AssignedToID == id.ID, nil
	}
	return true, nil
}

// CanPatchTask assumes read access has already been checked. Viewers may
// only touch the status field; other roles may patch any mutable field.
func (c *Checker) CanPatchTask(ctx context.Context, id *identity.Identity, task *types.Task, fields []string) (bool, error) {
	if id.IsSuperAdmin() {
		return true, nil
	}
	role, ok, err := c.RoleOf(ctx, task.OrganizationID, id.ID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if role != types.OrgRoleViewer {
		return true, nil
	}
	for _, f := range fields {
		if f != "status" {
			return false, nil
		}
	}
	return true, nil
}

// CanDeleteTask assumes read access has already been checked; viewers may
// never delete.
func (c *Checker) CanDeleteTask(ctx context.Context, id *identity.Identity, task *types.Task) (bool, error) {
	if id.IsSuperAdmin() {
		return true, nil
	}
	role, ok, err := c.RoleOf(ctx, task.OrganizationID, id.ID)
	if err != nil {
		return false, err
	}
	return ok && role != types.OrgRoleViewer, nil
}

// TaskScope computes the visibility predicate for task listings from the
// per-request identity:
//   - super_admin sees everything;
//   - an identity with no memberships falls back to tasks assigned to it;
//   - an identity that is viewer everywhere sees tasks in its organizations
//     that are also assigned to it;
//   - otherwise all tasks across its organizations.
func (c *Checker) TaskScope(id *identity.Identity) types.TaskScope {
	if id.IsSuperAdmin() {
		return types.TaskScope{All: true}
	}

	orgIDs := id.OrgIDs()
	if len(orgIDs) == 0 {
		return types.TaskScope{AssignedToID: id.ID}
	}

	if id.ViewerEverywhere() {
		return types.TaskScope{OrgIDs: orgIDs, AssignedToID: id.ID}
	}

	return types.TaskScope{OrgIDs: orgIDs}
}

// AuditScope decides audit-log access. Plain viewers can never read audit
// data. Super_admins and owners are unrestricted; org-scoped admins see only
// entries whose actor belongs to one of the organizations they administer.
func (c *Checker) AuditScope(id *identity.Identity) (types.AuditScope, bool) {
	if id.IsSuperAdmin() {
		return types.AuditScope{All: true}, true
	}

	roles := make([]types.OrgRole, 0, len(id.Memberships))
	for _, m := range id.Memberships {
		roles = append(roles, m.Role)
	}

	if slices.Contains(roles, types.OrgRoleOwner) {
		return types.AuditScope{All: true}, true
	}

	if !slices.Contains(roles, types.OrgRoleAdmin) {
		return types.AuditScope{}, false
	}

	var adminOrgs []string
	for _, m := range id.Memberships {
		if m.Role == types.OrgRoleAdmin {
			adminOrgs = append(adminOrgs, m.OrganizationID)
		}
	}
	return types.AuditScope{OrgIDs: adminOrgs}, true
}
