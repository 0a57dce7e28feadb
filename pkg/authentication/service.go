// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"strings"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/storage"
	"github.com/canonical/task-service/internal/tracing"
	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/audit"
)

// Service handles registration and credential login. Both failure modes of
// login collapse into the same error so the endpoint cannot be used to probe
// which emails exist.
type Service struct {
	store    StorageInterface
	tokens   TokenManagerInterface
	hasher   PasswordHasherInterface
	recorder audit.RecorderInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(store StorageInterface, tokens TokenManagerInterface, hasher PasswordHasherInterface, recorder audit.RecorderInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)
	s.store = store
	s.tokens = tokens
	s.hasher = hasher
	s.recorder = recorder
	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger
	return s
}

// Register creates an account with the default viewer global role and logs
// it straight in. Organization roles are granted separately through
// memberships.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.Register")
	defer span.End()

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Errorf("failed to hash password: %v", err)
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, &types.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		GlobalRole:   types.GlobalRoleViewer,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, types.BadRequestf("email already registered")
		}
		s.logger.Errorf("failed to create user: %v", err)
		return nil, err
	}

	s.recorder.Record(ctx, audit.Event{
		UserID:       user.ID,
		Action:       types.AuditActionCreate,
		ResourceType: types.ResourceTypeUser,
		ResourceID:   user.ID,
		Details:      map[string]any{"email": user.Email},
	})

	return s.issue(ctx, user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.Login")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	ip := audit.ClientIPFromContext(ctx)

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Security().AuthFailure(email, ip)
			return nil, types.ErrUnauthenticated
		}
		return nil, err
	}

	if !user.IsActive || !s.hasher.Compare(user.PasswordHash, req.Password) {
		s.logger.Security().AuthFailure(email, ip)
		return nil, types.ErrUnauthenticated
	}

	s.logger.Security().AuthSuccess(user.ID, ip)
	s.recorder.Record(ctx, audit.Event{
		UserID:       user.ID,
		Action:       types.AuditActionLogin,
		ResourceType: types.ResourceTypeUser,
		ResourceID:   user.ID,
	})

	return s.issue(ctx, user)
}

func (s *Service) issue(_ context.Context, user *types.User) (*LoginResponse, error) {
	token, expiresAt, err := s.tokens.Mint(user)
	if err != nil {
		s.logger.Errorf("failed to mint token for user %s: %v", user.ID, err)
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}
