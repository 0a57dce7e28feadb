// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

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
	"github.com/canonical/task-service/pkg/audit"
	"github.com/canonical/task-service/pkg/authorization"
	"github.com/canonical/task-service/pkg/identity"
)

// txRunner executes the callback directly, without a database transaction.
type txRunner struct{}

func (txRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recorderStub captures audit events synchronously so tests can assert on
// what was recorded without a background worker.
type recorderStub struct {
	events []audit.Event
}

func (r *recorderStub) Record(_ context.Context, e audit.Event) {
	r.events = append(r.events, e)
}

type fixture struct {
	service    *Service
	store      *MockStorageInterface
	authzStore *authorization.MockStorageInterface
	recorder   *recorderStub
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		store:      NewMockStorageInterface(ctrl),
		authzStore: authorization.NewMockStorageInterface(ctrl),
		recorder:   &recorderStub{},
	}

	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor()
	logger := logging.NewNoopLogger()

	checker := authorization.NewChecker(f.authzStore, tracer, monitor, logger)
	f.service = NewService(f.store, checker, txRunner{}, f.recorder, tracer, monitor, logger)
	return f
}

func actorWithRole(f *fixture, orgID string, role types.OrgRole) *identity.Identity {
	f.authzStore.EXPECT().GetMembership(gomock.Any(), orgID, "actor").
		Return(&types.Membership{OrganizationID: orgID, UserID: "actor", Role: role}, nil)
	return &identity.Identity{ID: "actor", GlobalRole: types.GlobalRoleViewer}
}

func TestServiceCreate(t *testing.T) {
	f := setup(t)
	actor := &identity.Identity{ID: "actor"}

	org := &types.Organization{ID: "org-1", Name: "engineering"}
	f.store.EXPECT().CreateOrganization(gomock.Any(), "engineering").Return(org, nil)
	f.store.EXPECT().AddMember(gomock.Any(), "org-1", "actor", types.OrgRoleOwner).
		Return(&types.Membership{OrganizationID: "org-1", UserID: "actor", Role: types.OrgRoleOwner}, nil)

	got, err := f.service.Create(context.Background(), "engineering", actor)
	require.NoError(t, err)
	assert.Equal(t, org, got)

	require.Len(t, f.recorder.events, 1)
	assert.Equal(t, types.AuditActionCreate, f.recorder.events[0].Action)
	assert.Equal(t, "org-1", f.recorder.events[0].ResourceID)
}

func TestServiceFindAll(t *testing.T) {
	t.Run("super admin sees every organization", func(t *testing.T) {
		f := setup(t)
		f.store.EXPECT().ListOrganizations(gomock.Any()).Return([]*types.Organization{{ID: "org-1"}, {ID: "org-2"}}, nil)

		orgs, err := f.service.FindAll(context.Background(), &identity.Identity{ID: "root", GlobalRole: types.GlobalRoleSuperAdmin})
		require.NoError(t, err)
		assert.Len(t, orgs, 2)
	})

	t.Run("regular user sees only their organizations", func(t *testing.T) {
		f := setup(t)
		f.store.EXPECT().ListOrganizationsByUserID(gomock.Any(), "actor").Return([]*types.Organization{{ID: "org-1"}}, nil)

		orgs, err := f.service.FindAll(context.Background(), &identity.Identity{ID: "actor", GlobalRole: types.GlobalRoleViewer})
		require.NoError(t, err)
		assert.Len(t, orgs, 1)
	})
}

func TestServiceFindOne(t *testing.T) {
	t.Run("member list included for members", func(t *testing.T) {
		f := setup(t)
		actor := actorWithRole(f, "org-1", types.OrgRoleViewer)

		f.store.EXPECT().GetOrganizationByID(gomock.Any(), "org-1").Return(&types.Organization{ID: "org-1"}, nil)
		f.store.EXPECT().ListMembers(gomock.Any(), "org-1").Return([]*types.Member{{UserID: "actor"}}, nil)

		detail, err := f.service.FindOne(context.Background(), "org-1", actor)
		require.NoError(t, err)
		assert.Len(t, detail.Members, 1)
	})

	t.Run("member list omitted for non-members", func(t *testing.T) {
		f := setup(t)
		f.authzStore.EXPECT().GetMembership(gomock.Any(), "org-1", "actor").Return(nil, storage.ErrNotFound)
		f.store.EXPECT().GetOrganizationByID(gomock.Any(), "org-1").Return(&types.Organization{ID: "org-1"}, nil)

		detail, err := f.service.FindOne(context.Background(), "org-1", &identity.Identity{ID: "actor"})
		require.NoError(t, err)
		assert.Empty(t, detail.Members)
	})

	t.Run("unknown organization", func(t *testing.T) {
		f := setup(t)
		f.store.EXPECT().GetOrganizationByID(gomock.Any(), "nope").Return(nil, storage.ErrNotFound)

		_, err := f.service.FindOne(context.Background(), "nope", &identity.Identity{ID: "actor"})
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestServiceUpdate(t *testing.T) {
	t.Run("admin cannot rename", func(t *testing.T) {
		f := setup(t)
		actor := actorWithRole(f, "org-1", types.OrgRoleAdmin)

		_, err := f.service.Update(context.Background(), "org-1", "renamed", actor)
		assert.ErrorIs(t, err, types.ErrForbidden)
		assert.Empty(t, f.recorder.events)
	})

	t.Run("owner renames", func(t *testing.T) {
		f := setup(t)
		actor := actorWithRole(f, "org-1", types.OrgRoleOwner)

		f.store.EXPECT().UpdateOrganization(gomock.Any(), "org-1", "renamed").
			Return(&types.Organization{ID: "org-1", Name: "renamed"}, nil)

		org, err := f.service.Update(context.Background(), "org-1", "renamed", actor)
		require.NoError(t, err)
		assert.Equal(t, "renamed", org.Name)
		require.Len(t, f.recorder.events, 1)
		assert.Equal(t, types.AuditActionUpdate, f.recorder.events[0].Action)
	})
}

func TestServiceRemove(t *testing.T) {
	f := setup(t)
	actor := actorWithRole(f, "org-1", types.OrgRoleOwner)

	f.store.EXPECT().GetOrganizationByID(gomock.Any(), "org-1").Return(&types.Organization{ID: "org-1"}, nil)
	f.store.EXPECT().DeleteMembershipsByOrgID(gomock.Any(), "org-1").Return(nil)
	f.store.EXPECT().DeleteOrganization(gomock.Any(), "org-1").Return(nil)

	org, err := f.service.Remove(context.Background(), "org-1", actor)
	require.NoError(t, err)
	assert.Equal(t, "org-1", org.ID)
	require.Len(t, f.recorder.events, 1)
	assert.Equal(t, types.AuditActionDelete, f.recorder.events[0].Action)
}

func TestServiceAddMember(t *testing.T) {
	t.Run("admin cannot grant owner", func(t *testing.T) {
		f := setup(t)
		actor := actorWithRole(f, "org-1", types.OrgRoleAdmin)

		_, err := f.service.AddMember(context.Background(), "org-1", "user-2", types.OrgRoleOwner, actor)
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("duplicate membership", func(t *testing.T) {
		f := setup(t)
		actor := actorWithRole(f, "org-1", types.OrgRoleOwner)

		f.store.EXPECT().GetOrganizationByID(gomock.Any(), "org-1").Return(&types.Organization{ID: "org-1"}, nil)
		f.store.EXPECT().GetUserByID(gomock.Any(), "user-2").Return(&types.User{ID: "user-2"}, nil)
		f.store.EXPECT().AddMember(gomock.Any(), "org-1", "user-2", types.OrgRoleViewer).Return(nil, storage.ErrDuplicateKey)

		_, err := f.service.AddMember(context.Background(), "org-1", "user-2", types.OrgRoleViewer, actor)
		assert.ErrorIs(t, err, types.ErrBadRequest)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := setup(t)
		actor := actorWithRole(f, "org-1", types.OrgRoleOwner)

		f.store.EXPECT().GetOrganizationByID(gomock.Any(), "org-1").Return(&types.Organization{ID: "org-1"}, nil)
		f.store.EXPECT().GetUserByID(gomock.Any(), "user-2").Return(nil, storage.ErrNotFound)

		_, err := f.service.AddMember(context.Background(), "org-1", "user-2", types.OrgRoleViewer, actor)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("owner adds member", func(t *testing.T) {
		f := setup(t)
		actor := actorWithRole(f, "org-1", types.OrgRoleOwner)

		f.store.EXPECT().GetOrganizationByID(gomock.Any(), "org-1").Return(&types.Organization{ID: "org-1"}, nil)
		f.store.EXPECT().GetUserByID(gomock.Any(), "user-2").Return(&types.User{ID: "user-2"}, nil)
		f.store.EXPECT().AddMember(gomock.Any(), "org-1", "user-2", types.OrgRoleAdmin).
			Return(&types.Membership{OrganizationID: "org-1", UserID: "user-2", Role: types.OrgRoleAdmin}, nil)

		m, err := f.service.AddMember(context.Background(), "org-1", "user-2", types.OrgRoleAdmin, actor)
		require.NoError(t, err)
		assert.Equal(t, types.OrgRoleAdmin, m.Role)
		require.Len(t, f.recorder.events, 1)
	})
}

func TestServiceUpdateMemberRole(t *testing.T) {
	t.Run("demoting the only owner is rejected", func(t *testing.T) {
		f := setup(t)
		actor := actorWithRole(f, "org-1", types.OrgRoleOwner)

		f.store.EXPECT().GetMembership(gomock.Any(), "org-1", "actor").
			Return(&types.Membership{OrganizationID: "org-1", UserID: "actor", Role: types.OrgRoleOwner}, nil)
		f.authzStore.EXPECT().CountOwners(gomock.Any(), "org-1").Return(int64(1), nil)

		_, err := f.service.UpdateMemberRole(context.Background(), "org-1", "actor", types.OrgRoleAdmin, actor)
		assert.ErrorIs(t, err, types.ErrBadRequest)
		assert.Empty(t, f.recorder.events)
	})

	t.Run("demoting an owner succeeds with a second owner", func(t *testing.T) {
		f := setup(t)
		actor := actorWithRole(f, "org-1", types.OrgRoleOwner)

		f.store.EXPECT().GetMembership(gomock.Any(), "org-1", "user-2").
			Return(&types.Membership{OrganizationID: "org-1", UserID: "user-2", Role: types.OrgRoleOwner}, nil)
		f.authzStore.EXPECT().CountOwners(gomock.Any(), "org-1").Return(int64(2), nil)
		f.store.EXPECT().UpdateMemberRole(gomock.Any(), "org-1", "user-2", types.OrgRoleAdmin).Return(nil)

		m, err := f.service.UpdateMemberRole(context.Background(), "org-1", "user-2", types.OrgRoleAdmin, actor)
		require.NoError(t, err)
		assert.Equal(t, types.OrgRoleAdmin, m.Role)
	})

	t.Run("admins cannot change roles", func(t *testing.T) {
		f := setup(t)
		actor := actorWithRole(f, "org-1", types.OrgRoleAdmin)

		_, err := f.service.UpdateMemberRole(context.Background(), "org-1", "user-2", types.OrgRoleViewer, actor)
		assert.ErrorIs(t, err, types.ErrForbidden)
	})
}

func TestServiceRemoveMember(t *testing.T) {
	t.Run("removing the only owner is rejected", func(t *testing.T) {
		f := setup(t)
		actor := actorWithRole(f, "org-1", types.OrgRoleOwner)

		f.store.EXPECT().GetMembership(gomock.Any(), "org-1", "actor").
			Return(&types.Membership{OrganizationID: "org-1", UserID: "actor", Role: types.OrgRoleOwner}, nil)
		f.authzStore.EXPECT().CountOwners(gomock.Any(), "org-1").Return(int64(1), nil)

		err := f.service.RemoveMember(context.Background(), "org-1", "actor", actor)
		assert.ErrorIs(t, err, types.ErrBadRequest)
		assert.Contains(t, err.Error(), "transfer ownership first")
	})

	t.Run("admin removes a viewer", func(t *testing.T) {
		f := setup(t)
		actor := actorWithRole(f, "org-1", types.OrgRoleAdmin)

		f.store.EXPECT().GetMembership(gomock.Any(), "org-1", "user-2").
			Return(&types.Membership{OrganizationID: "org-1", UserID: "user-2", Role: types.OrgRoleViewer}, nil)
		f.store.EXPECT().RemoveMember(gomock.Any(), "org-1", "user-2").Return(nil)

		err := f.service.RemoveMember(context.Background(), "org-1", "user-2", actor)
		require.NoError(t, err)
		require.Len(t, f.recorder.events, 1)
	})

	t.Run("admin cannot remove an admin", func(t *testing.T) {
		f := setup(t)
		actor := actorWithRole(f, "org-1", types.OrgRoleAdmin)

		f.store.EXPECT().GetMembership(gomock.Any(), "org-1", "user-2").
			Return(&types.Membership{OrganizationID: "org-1", UserID: "user-2", Role: types.OrgRoleAdmin}, nil)

		err := f.service.RemoveMember(context.Background(), "org-1", "user-2", actor)
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("non-member target", func(t *testing.T) {
		f := setup(t)
		actor := &identity.Identity{ID: "actor", GlobalRole: types.GlobalRoleSuperAdmin}

		f.store.EXPECT().GetMembership(gomock.Any(), "org-1", "ghost").Return(nil, storage.ErrNotFound)

		err := f.service.RemoveMember(context.Background(), "org-1", "ghost", actor)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestServiceListMembers(t *testing.T) {
	f := setup(t)
	f.authzStore.EXPECT().GetMembership(gomock.Any(), "org-1", "actor").Return(nil, storage.ErrNotFound)

	_, err := f.service.ListMembers(context.Background(), "org-1", &identity.Identity{ID: "actor"})
	assert.ErrorIs(t, err, types.ErrForbidden)
}
