// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"time"

	"github.com/canonical/task-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_authentication.go -source=interfaces.go

type StorageInterface interface {
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

// TokenManagerInterface mints and verifies the service's own access tokens.
type TokenManagerInterface interface {
	Mint(u *types.User) (token string, expiresAt time.Time, err error)
	// Verify validates a raw token and returns the subject (user ID).
	Verify(rawToken string) (string, error)
}

type PasswordHasherInterface interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type ServiceInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}
