// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/storage"
	"github.com/canonical/task-service/internal/tracing"
	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/identity"
)

const orgID = "org-1"

func newChecker(t *testing.T) (*Checker, *MockStorageInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := NewMockStorageInterface(ctrl)
	c := NewChecker(store, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	return c, store
}

func member(id string, role types.OrgRole) *identity.Identity {
	return &identity.Identity{
		ID:         id,
		GlobalRole: types.GlobalRoleViewer,
		Memberships: []identity.OrgMembership{
			{OrganizationID: orgID, Role: role},
		},
	}
}

func superAdmin(id string) *identity.Identity {
	return &identity.Identity{ID: id, GlobalRole: types.GlobalRoleSuperAdmin}
}

func expectRole(store *MockStorageInterface, userID string, role types.OrgRole) {
	store.EXPECT().GetMembership(gomock.Any(), orgID, userID).
		Return(&types.Membership{OrganizationID: orgID, UserID: userID, Role: role}, nil)
}

func expectNoMembership(store *MockStorageInterface, userID string) {
	store.EXPECT().GetMembership(gomock.Any(), orgID, userID).Return(nil, storage.ErrNotFound)
}

func TestCheckerCanAddMember(t *testing.T) {
	testCases := []struct {
		name      string
		actorRole types.OrgRole
		isMember  bool
		newRole   types.OrgRole
		allowed   bool
	}{
		{"owner grants owner", types.OrgRoleOwner, true, types.OrgRoleOwner, true},
		{"owner grants viewer", types.OrgRoleOwner, true, types.OrgRoleViewer, true},
		{"admin grants admin", types.OrgRoleAdmin, true, types.OrgRoleAdmin, true},
		{"admin grants owner", types.OrgRoleAdmin, true, types.OrgRoleOwner, false},
		{"viewer grants viewer", types.OrgRoleViewer, true, types.OrgRoleViewer, false},
		{"non-member grants viewer", "", false, types.OrgRoleViewer, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, store := newChecker(t)

			actor := member("actor", tc.actorRole)
			if tc.isMember {
				expectRole(store, actor.ID, tc.actorRole)
			} else {
				expectNoMembership(store, actor.ID)
			}

			ok, err := c.CanAddMember(context.Background(), actor, orgID, tc.newRole)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, ok)
		})
	}

	t.Run("super admin needs no membership", func(t *testing.T) {
		c, _ := newChecker(t)

		ok, err := c.CanAddMember(context.Background(), superAdmin("root"), orgID, types.OrgRoleOwner)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestCheckerCanRemoveMember(t *testing.T) {
	testCases := []struct {
		name       string
		actorRole  types.OrgRole
		targetRole types.OrgRole
		allowed    bool
	}{
		{"owner removes admin", types.OrgRoleOwner, types.OrgRoleAdmin, true},
		{"owner removes owner", types.OrgRoleOwner, types.OrgRoleOwner, true},
		{"admin removes viewer", types.OrgRoleAdmin, types.OrgRoleViewer, true},
		{"admin removes admin", types.OrgRoleAdmin, types.OrgRoleAdmin, false},
		{"admin removes owner", types.OrgRoleAdmin, types.OrgRoleOwner, false},
		{"viewer removes viewer", types.OrgRoleViewer, types.OrgRoleViewer, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, store := newChecker(t)

			actor := member("actor", tc.actorRole)
			expectRole(store, actor.ID, tc.actorRole)

			ok, err := c.CanRemoveMember(context.Background(), actor, orgID, tc.targetRole)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, ok)
		})
	}
}

func TestCheckerCanReadTask(t *testing.T) {
	assignee := "viewer-1"
	task := &types.Task{ID: "task-1", OrganizationID: orgID, AssignedToID: &assignee}
	unassigned := &types.Task{ID: "task-2", OrganizationID: orgID}

	t.Run("viewer reads assigned task", func(t *testing.T) {
		c, store := newChecker(t)
		actor := member(assignee, types.OrgRoleViewer)
		expectRole(store, assignee, types.OrgRoleViewer)

		ok, err := c.CanReadTask(context.Background(), actor, task)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("viewer cannot read unassigned task", func(t *testing.T) {
		c, store := newChecker(t)
		actor := member(assignee, types.OrgRoleViewer)
		expectRole(store, assignee, types.OrgRoleViewer)

		ok, err := c.CanReadTask(context.Background(), actor, unassigned)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("admin reads any org task", func(t *testing.T) {
		c, store := newChecker(t)
		actor := member("admin-1", types.OrgRoleAdmin)
		expectRole(store, actor.ID, types.OrgRoleAdmin)

		ok, err := c.CanReadTask(context.Background(), actor, unassigned)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("non-member cannot read", func(t *testing.T) {
		c, store := newChecker(t)
		actor := member("outsider", types.OrgRoleOwner)
		expectNoMembership(store, actor.ID)

		ok, err := c.CanReadTask(context.Background(), actor, task)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCheckerCanPatchTask(t *testing.T) {
	task := &types.Task{ID: "task-1", OrganizationID: orgID}

	t.Run("viewer patching status only", func(t *testing.T) {
		c, store := newChecker(t)
		actor := member("viewer-1", types.OrgRoleViewer)
		expectRole(store, actor.ID, types.OrgRoleViewer)

		ok, err := c.CanPatchTask(context.Background(), actor, task, []string{"status"})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("viewer patching other fields", func(t *testing.T) {
		c, store := newChecker(t)
		actor := member("viewer-1", types.OrgRoleViewer)
		expectRole(store, actor.ID, types.OrgRoleViewer)

		ok, err := c.CanPatchTask(context.Background(), actor, task, []string{"status", "title"})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("admin patching any fields", func(t *testing.T) {
		c, store := newChecker(t)
		actor := member("admin-1", types.OrgRoleAdmin)
		expectRole(store, actor.ID, types.OrgRoleAdmin)

		ok, err := c.CanPatchTask(context.Background(), actor, task, []string{"title", "assignedToId"})
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestCheckerTaskScope(t *testing.T) {
	t.Run("super admin sees all", func(t *testing.T) {
		c, _ := newChecker(t)
		scope := c.TaskScope(superAdmin("root"))
		assert.True(t, scope.All)
	})

	t.Run("no memberships falls back to assignment", func(t *testing.T) {
		c, _ := newChecker(t)
		scope := c.TaskScope(&identity.Identity{ID: "loner", GlobalRole: types.GlobalRoleViewer})
		assert.False(t, scope.All)
		assert.Empty(t, scope.OrgIDs)
		assert.Equal(t, "loner", scope.AssignedToID)
	})

	t.Run("viewer everywhere is limited to assigned tasks in orgs", func(t *testing.T) {
		c, _ := newChecker(t)
		scope := c.TaskScope(member("viewer-1", types.OrgRoleViewer))
		assert.Equal(t, []string{orgID}, scope.OrgIDs)
		assert.Equal(t, "viewer-1", scope.AssignedToID)
	})

	t.Run("admin sees whole org", func(t *testing.T) {
		c, _ := newChecker(t)
		scope := c.TaskScope(member("admin-1", types.OrgRoleAdmin))
		assert.Equal(t, []string{orgID}, scope.OrgIDs)
		assert.Empty(t, scope.AssignedToID)
	})
}

func TestCheckerAuditScope(t *testing.T) {
	t.Run("super admin unrestricted", func(t *testing.T) {
		c, _ := newChecker(t)
		scope, ok := c.AuditScope(superAdmin("root"))
		assert.True(t, ok)
		assert.True(t, scope.All)
	})

	t.Run("owner unrestricted", func(t *testing.T) {
		c, _ := newChecker(t)
		scope, ok := c.AuditScope(member("owner-1", types.OrgRoleOwner))
		assert.True(t, ok)
		assert.True(t, scope.All)
	})

	t.Run("admin limited to administered orgs", func(t *testing.T) {
		c, _ := newChecker(t)
		actor := &identity.Identity{
			ID:         "admin-1",
			GlobalRole: types.GlobalRoleViewer,
			Memberships: []identity.OrgMembership{
				{OrganizationID: "org-a", Role: types.OrgRoleAdmin},
				{OrganizationID: "org-b", Role: types.OrgRoleViewer},
			},
		}
		scope, ok := c.AuditScope(actor)
		assert.True(t, ok)
		assert.False(t, scope.All)
		assert.Equal(t, []string{"org-a"}, scope.OrgIDs)
	})

	t.Run("viewer denied", func(t *testing.T) {
		c, _ := newChecker(t)
		_, ok := c.AuditScope(member("viewer-1", types.OrgRoleViewer))
		assert.False(t, ok)
	})
}

func TestCheckerCheckSoleOwner(t *testing.T) {
	c, store := newChecker(t)
	store.EXPECT().CountOwners(gomock.Any(), orgID).Return(int64(1), nil)

	sole, err := c.CheckSoleOwner(context.Background(), orgID)
	require.NoError(t, err)
	assert.True(t, sole)

	store.EXPECT().CountOwners(gomock.Any(), orgID).Return(int64(2), nil)
	sole, err = c.CheckSoleOwner(context.Background(), orgID)
	require.NoError(t, err)
	assert.False(t, sole)
}
