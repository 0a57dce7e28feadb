// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

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
	"github.com/canonical/task-service/pkg/authorization"
	"github.com/canonical/task-service/pkg/identity"
)

type fixture struct {
	service    *Service
	store      *MockStorageInterface
	authzStore *authorization.MockStorageInterface
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		store:      NewMockStorageInterface(ctrl),
		authzStore: authorization.NewMockStorageInterface(ctrl),
	}

	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor()
	logger := logging.NewNoopLogger()

	checker := authorization.NewChecker(f.authzStore, tracer, monitor, logger)
	f.service = NewService(f.store, checker, tracer, monitor, logger)
	return f
}

func memberIn(f *fixture, orgID string, role types.OrgRole) *identity.Identity {
	f.authzStore.EXPECT().GetMembership(gomock.Any(), orgID, "actor").
		Return(&types.Membership{OrganizationID: orgID, UserID: "actor", Role: role}, nil).
		AnyTimes()
	return &identity.Identity{
		ID:         "actor",
		GlobalRole: types.GlobalRoleViewer,
		Memberships: []identity.OrgMembership{
			{OrganizationID: orgID, Role: role},
		},
	}
}

func taskIn(orgID string, assignee string) *types.Task {
	t := &types.Task{
		ID:             "task-1",
		Title:          "ship it",
		Status:         types.TaskStatusTodo,
		Priority:       types.TaskPriorityMedium,
		OrganizationID: orgID,
		CreatedByID:    "creator",
	}
	if assignee != "" {
		t.AssignedToID = &assignee
	}
	return t
}

func TestTaskCreate(t *testing.T) {
	t.Run("admin creates with defaults", func(t *testing.T) {
		f := setup(t)
		actor := memberIn(f, "org-1", types.OrgRoleAdmin)

		f.store.EXPECT().CreateTask(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, task *types.Task) (*types.Task, error) {
				assert.Equal(t, types.TaskStatusTodo, task.Status)
				assert.Equal(t, types.TaskPriorityMedium, task.Priority)
				assert.Equal(t, "actor", task.CreatedByID)
				return task, nil
			})

		task, err := f.service.Create(context.Background(), CreateTaskRequest{
			Title:          "ship it",
			OrganizationID: "org-1",
		}, actor)
		require.NoError(t, err)
		assert.Equal(t, "ship it", task.Title)
	})

	t.Run("viewer cannot create", func(t *testing.T) {
		f := setup(t)
		actor := memberIn(f, "org-1", types.OrgRoleViewer)

		_, err := f.service.Create(context.Background(), CreateTaskRequest{
			Title:          "ship it",
			OrganizationID: "org-1",
		}, actor)
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("non-member cannot create", func(t *testing.T) {
		f := setup(t)
		f.authzStore.EXPECT().GetMembership(gomock.Any(), "org-1", "actor").Return(nil, storage.ErrNotFound)

		_, err := f.service.Create(context.Background(), CreateTaskRequest{
			Title:          "ship it",
			OrganizationID: "org-1",
		}, actor())
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := setup(t)
		actor := memberIn(f, "org-1", types.OrgRoleAdmin)

		_, err := f.service.Create(context.Background(), CreateTaskRequest{
			Title:          "ship it",
			OrganizationID: "org-1",
			Status:         "paused",
		}, actor)
		assert.ErrorIs(t, err, types.ErrBadRequest)
	})

	t.Run("dangling assignee reference", func(t *testing.T) {
		f := setup(t)
		actor := memberIn(f, "org-1", types.OrgRoleOwner)

		f.store.EXPECT().CreateTask(gomock.Any(), gomock.Any()).Return(nil, storage.ErrForeignKeyViolation)

		_, err := f.service.Create(context.Background(), CreateTaskRequest{
			Title:          "ship it",
			OrganizationID: "org-1",
		}, actor)
		assert.ErrorIs(t, err, types.ErrBadRequest)
	})
}

func actor() *identity.Identity {
	return &identity.Identity{ID: "actor", GlobalRole: types.GlobalRoleViewer}
}

func TestTaskFindAll(t *testing.T) {
	f := setup(t)
	actor := memberIn(f, "org-1", types.OrgRoleViewer)

	f.store.EXPECT().ListTasks(gomock.Any(), types.TaskScope{OrgIDs: []string{"org-1"}, AssignedToID: "actor"}, gomock.Any(), gomock.Any()).
		Return([]*types.Task{taskIn("org-1", "actor")}, int64(1), nil)

	tasks, total, err := f.service.FindAll(context.Background(), types.TaskFilter{}, types.Pagination{Page: 1, PageSize: 20}, actor)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, tasks, 1)
}

func TestTaskFindOne(t *testing.T) {
	t.Run("viewer reads assigned task", func(t *testing.T) {
		f := setup(t)
		actor := memberIn(f, "org-1", types.OrgRoleViewer)

		f.store.EXPECT().GetTaskByID(gomock.Any(), "task-1").Return(taskIn("org-1", "actor"), nil)

		task, err := f.service.FindOne(context.Background(), "task-1", actor)
		require.NoError(t, err)
		assert.Equal(t, "task-1", task.ID)
	})

	t.Run("viewer denied on unassigned task", func(t *testing.T) {
		f := setup(t)
		actor := memberIn(f, "org-1", types.OrgRoleViewer)

		f.store.EXPECT().GetTaskByID(gomock.Any(), "task-1").Return(taskIn("org-1", "someone-else"), nil)

		_, err := f.service.FindOne(context.Background(), "task-1", actor)
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("non-member denied", func(t *testing.T) {
		f := setup(t)
		f.authzStore.EXPECT().GetMembership(gomock.Any(), "org-1", "actor").Return(nil, storage.ErrNotFound)

		f.store.EXPECT().GetTaskByID(gomock.Any(), "task-1").Return(taskIn("org-1", ""), nil)

		_, err := f.service.FindOne(context.Background(), "task-1", actor())
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("missing task", func(t *testing.T) {
		f := setup(t)

		f.store.EXPECT().GetTaskByID(gomock.Any(), "task-1").Return(nil, storage.ErrNotFound)

		_, err := f.service.FindOne(context.Background(), "task-1", actor())
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestTaskUpdate(t *testing.T) {
	t.Run("viewer patching beyond status", func(t *testing.T) {
		f := setup(t)
		actor := memberIn(f, "org-1", types.OrgRoleViewer)

		f.store.EXPECT().GetTaskByID(gomock.Any(), "task-1").Return(taskIn("org-1", "actor"), nil)

		title := "renamed"
		_, err := f.service.Update(context.Background(), "task-1", TaskPatch{
			Title:  &title,
			Fields: []string{"title"},
		}, actor)
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("viewer smuggling an extra key alongside status", func(t *testing.T) {
		f := setup(t)
		actor := memberIn(f, "org-1", types.OrgRoleViewer)

		f.store.EXPECT().GetTaskByID(gomock.Any(), "task-1").Return(taskIn("org-1", "actor"), nil)

		patch, err := ParseTaskPatch([]byte(`{"status":"done","organizationId":"other"}`))
		require.NoError(t, err)

		_, err = f.service.Update(context.Background(), "task-1", patch, actor)
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("admin patches any field", func(t *testing.T) {
		f := setup(t)
		actor := memberIn(f, "org-1", types.OrgRoleAdmin)

		f.store.EXPECT().GetTaskByID(gomock.Any(), "task-1").Return(taskIn("org-1", ""), nil)
		f.store.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, task *types.Task) (*types.Task, error) {
				assert.Equal(t, "renamed", task.Title)
				return task, nil
			})

		title := "renamed"
		task, err := f.service.Update(context.Background(), "task-1", TaskPatch{
			Title:  &title,
			Fields: []string{"title"},
		}, actor)
		require.NoError(t, err)
		assert.Equal(t, "renamed", task.Title)
	})
}

func TestTaskUpdateStatus(t *testing.T) {
	f := setup(t)
	actor := memberIn(f, "org-1", types.OrgRoleViewer)

	f.store.EXPECT().GetTaskByID(gomock.Any(), "task-1").Return(taskIn("org-1", "actor"), nil)
	f.store.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task *types.Task) (*types.Task, error) {
			assert.Equal(t, types.TaskStatusDone, task.Status)
			return task, nil
		})

	task, err := f.service.UpdateStatus(context.Background(), "task-1", types.TaskStatusDone, actor)
	require.NoError(t, err)
	assert.Equal(t, types.TaskStatusDone, task.Status)
}

func TestTaskRemove(t *testing.T) {
	t.Run("viewer cannot delete own assigned task", func(t *testing.T) {
		f := setup(t)
		actor := memberIn(f, "org-1", types.OrgRoleViewer)

		f.store.EXPECT().GetTaskByID(gomock.Any(), "task-1").Return(taskIn("org-1", "actor"), nil)

		_, err := f.service.Remove(context.Background(), "task-1", actor)
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("admin deletes and gets the removed task back", func(t *testing.T) {
		f := setup(t)
		actor := memberIn(f, "org-1", types.OrgRoleAdmin)

		f.store.EXPECT().GetTaskByID(gomock.Any(), "task-1").Return(taskIn("org-1", ""), nil)
		f.store.EXPECT().DeleteTask(gomock.Any(), "task-1").Return(nil)

		task, err := f.service.Remove(context.Background(), "task-1", actor)
		require.NoError(t, err)
		assert.Equal(t, "task-1", task.ID)
	})
}
