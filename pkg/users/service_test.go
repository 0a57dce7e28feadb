// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

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
	"github.com/canonical/task-service/pkg/identity"
)

type recorderStub struct {
	events []audit.Event
}

func (r *recorderStub) Record(_ context.Context, e audit.Event) {
	r.events = append(r.events, e)
}

func newService(t *testing.T) (*Service, *MockStorageInterface, *recorderStub) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := NewMockStorageInterface(ctrl)
	rec := &recorderStub{}
	s := NewService(store, rec, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	return s, store, rec
}

func TestUsersFindOne(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, store, _ := newService(t)
		store.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(&types.User{ID: "user-1"}, nil)

		user, err := s.FindOne(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("missing", func(t *testing.T) {
		s, store, _ := newService(t)
		store.EXPECT().GetUserByID(gomock.Any(), "ghost").Return(nil, storage.ErrNotFound)

		_, err := s.FindOne(context.Background(), "ghost")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestUsersUpdateGlobalRole(t *testing.T) {
	t.Run("super admin promotes", func(t *testing.T) {
		s, store, rec := newService(t)
		actor := &identity.Identity{ID: "root", GlobalRole: types.GlobalRoleSuperAdmin}

		store.EXPECT().UpdateUserGlobalRole(gomock.Any(), "user-1", types.GlobalRoleSuperAdmin).
			Return(&types.User{ID: "user-1", GlobalRole: types.GlobalRoleSuperAdmin}, nil)

		user, err := s.UpdateGlobalRole(context.Background(), "user-1", types.GlobalRoleSuperAdmin, actor)
		require.NoError(t, err)
		assert.Equal(t, types.GlobalRoleSuperAdmin, user.GlobalRole)

		require.Len(t, rec.events, 1)
		assert.Equal(t, types.AuditActionUpdate, rec.events[0].Action)
		assert.Equal(t, "user-1", rec.events[0].ResourceID)
	})

	t.Run("non super admin denied", func(t *testing.T) {
		s, _, rec := newService(t)
		actor := &identity.Identity{ID: "actor", GlobalRole: types.GlobalRoleViewer}

		_, err := s.UpdateGlobalRole(context.Background(), "user-1", types.GlobalRoleSuperAdmin, actor)
		assert.ErrorIs(t, err, types.ErrForbidden)
		assert.Empty(t, rec.events)
	})

	t.Run("unknown user", func(t *testing.T) {
		s, store, _ := newService(t)
		actor := &identity.Identity{ID: "root", GlobalRole: types.GlobalRoleSuperAdmin}

		store.EXPECT().UpdateUserGlobalRole(gomock.Any(), "ghost", types.GlobalRoleViewer).Return(nil, storage.ErrNotFound)

		_, err := s.UpdateGlobalRole(context.Background(), "ghost", types.GlobalRoleViewer, actor)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}
