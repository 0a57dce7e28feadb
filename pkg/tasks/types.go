// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"encoding/json"
	"time"

	"github.com/canonical/task-service/internal/types"
)

type CreateTaskRequest struct {
	Title          string     `json:"title" validate:"required,min=1,max=200"`
	Description    string     `json:"description" validate:"max=2000"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"dueDate"`
	AssignedToID   *string    `json:"assignedToId" validate:"omitempty,uuid"`
	OrganizationID string     `json:"organizationId" validate:"required,uuid"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// TaskPatch is a partial update. Fields records which JSON keys the caller
// actually sent, which is what the viewer status-only rule is checked
// against. A nil pointer with the key present means the value failed to
// parse or was null and the field is left untouched.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *types.TaskStatus
	Priority     *types.TaskPriority
	DueDate      *time.Time
	AssignedToID *string

	Fields []string
}

type taskPatchBody struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	Priority     *string    `json:"priority"`
	DueDate      *time.Time `json:"dueDate"`
	AssignedToID *string    `json:"assignedToId"`
}

// ParseTaskPatch decodes a partial-update body, keeping the set of provided
// keys alongside the parsed values. Every key the caller sent goes into
// Fields, recognized or not, so the status-only gate cannot be bypassed by
// smuggling extra keys alongside "status".
func ParseTaskPatch(raw []byte) (TaskPatch, error) {
	var patch TaskPatch

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return patch, types.BadRequestf("invalid request body")
	}
	for k := range keys {
		patch.Fields = append(patch.Fields, k)
	}

	var body taskPatchBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return patch, types.BadRequestf("invalid request body")
	}

	patch.Title = body.Title
	patch.Description = body.Description
	patch.DueDate = body.DueDate
	patch.AssignedToID = body.AssignedToID

	if body.Status != nil {
		status, err := types.ParseTaskStatus(*body.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}
	if body.Priority != nil {
		priority, err := types.ParseTaskPriority(*body.Priority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &priority
	}

	return patch, nil
}

// Apply copies the provided fields onto t.
func (p TaskPatch) Apply(t *types.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.AssignedToID != nil {
		if *p.AssignedToID == "" {
			t.AssignedToID = nil
		} else {
			t.AssignedToID = p.AssignedToID
		}
	}
}
