// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import (
	"context"

	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/identity"
)

//go:generate mockgen -build_flags=--mod=mod -package organizations -destination ./mock_organizations.go -source=interfaces.go

// StorageInterface is the slice of the store this package operates on.
type StorageInterface interface {
	CreateOrganization(ctx context.Context, name string) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	ListOrganizations(ctx context.Context) ([]*types.Organization, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)
	UpdateOrganization(ctx context.Context, id, name string) (*types.Organization, error)
	DeleteOrganization(ctx context.Context, id string) error

	GetUserByID(ctx context.Context, id string) (*types.User, error)

	AddMember(ctx context.Context, orgID, userID string, role types.OrgRole) (*types.Membership, error)
	GetMembership(ctx context.Context, orgID, userID string) (*types.Membership, error)
	ListMembers(ctx context.Context, orgID string) ([]*types.Member, error)
	UpdateMemberRole(ctx context.Context, orgID, userID string, role types.OrgRole) error
	RemoveMember(ctx context.Context, orgID, userID string) error
	DeleteMembershipsByOrgID(ctx context.Context, orgID string) error
	CountOwners(ctx context.Context, orgID string) (int64, error)
}

// TxRunnerInterface runs fn inside a single database transaction.
type TxRunnerInterface interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ServiceInterface interface {
	Create(ctx context.Context, name string, actor *identity.Identity) (*types.Organization, error)
	FindAll(ctx context.Context, actor *identity.Identity) ([]*types.Organization, error)
	FindOne(ctx context.Context, orgID string, actor *identity.Identity) (*OrganizationDetail, error)
	Update(ctx context.Context, orgID, name string, actor *identity.Identity) (*types.Organization, error)
	Remove(ctx context.Context, orgID string, actor *identity.Identity) (*types.Organization, error)
	AddMember(ctx context.Context, orgID, userID string, role types.OrgRole, actor *identity.Identity) (*types.Membership, error)
	UpdateMemberRole(ctx context.Context, orgID, userID string, role types.OrgRole, actor *identity.Identity) (*types.Membership, error)
	RemoveMember(ctx context.Context, orgID, userID string, actor *identity.Identity) error
	ListMembers(ctx context.Context, orgID string, actor *identity.Identity) ([]*types.Member, error)
}
