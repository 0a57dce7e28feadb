// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"

	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/identity"
)

//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_users.go -source=interfaces.go

type StorageInterface interface {
	ListUsers(ctx context.Context) ([]*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	UpdateUserGlobalRole(ctx context.Context, id string, role types.GlobalRole) (*types.User, error)
}

type ServiceInterface interface {
	FindAll(ctx context.Context) ([]*types.User, error)
	FindOne(ctx context.Context, id string) (*types.User, error)
	UpdateGlobalRole(ctx context.Context, id string, role types.GlobalRole, actor *identity.Identity) (*types.User, error)
}
