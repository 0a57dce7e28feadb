// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import "github.com/canonical/task-service/internal/types"

// OrganizationDetail is an organization plus its member list. Members is nil
// when the requester is not entitled to see it.
type OrganizationDetail struct {
	*types.Organization
	Members []*types.Member `json:"members,omitempty"`
}

type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type AddMemberRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Role   string `json:"role" validate:"required"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type RemoveMemberResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}
