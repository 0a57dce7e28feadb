// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/task-service/internal/types"
)

func TestParseTaskPatch(t *testing.T) {
	t.Run("records every provided key", func(t *testing.T) {
		patch, err := ParseTaskPatch([]byte(`{"title":"renamed","status":"done","organizationId":"other"}`))
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"title", "status", "organizationId"}, patch.Fields)
		require.NotNil(t, patch.Title)
		assert.Equal(t, "renamed", *patch.Title)
		require.NotNil(t, patch.Status)
		assert.Equal(t, types.TaskStatusDone, *patch.Status)
	})

	t.Run("invalid enum value", func(t *testing.T) {
		_, err := ParseTaskPatch([]byte(`{"status":"paused"}`))
		assert.ErrorIs(t, err, types.ErrBadRequest)

		_, err = ParseTaskPatch([]byte(`{"priority":"asap"}`))
		assert.ErrorIs(t, err, types.ErrBadRequest)
	})

	t.Run("invalid body", func(t *testing.T) {
		_, err := ParseTaskPatch([]byte(`[]`))
		assert.ErrorIs(t, err, types.ErrBadRequest)
	})
}

func TestTaskPatchApply(t *testing.T) {
	assignee := "user-1"
	task := &types.Task{
		Title:        "before",
		Status:       types.TaskStatusTodo,
		AssignedToID: &assignee,
	}

	t.Run("only provided fields change", func(t *testing.T) {
		title := "after"
		TaskPatch{Title: &title}.Apply(task)

		assert.Equal(t, "after", task.Title)
		assert.Equal(t, types.TaskStatusTodo, task.Status)
		assert.Equal(t, &assignee, task.AssignedToID)
	})

	t.Run("empty assignee clears the assignment", func(t *testing.T) {
		empty := ""
		TaskPatch{AssignedToID: &empty}.Apply(task)

		assert.Nil(t, task.AssignedToID)
	})
}
