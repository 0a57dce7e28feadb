// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"

	"github.com/canonical/task-service/internal/types"
)

// StorageInterface is the subset of the storage layer the resolver needs.
type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error)
}

type ResolverInterface interface {
	Resolve(ctx context.Context, userID string) (*Identity, error)
}
