// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import (
	"context"
	"errors"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/storage"
	"github.com/canonical/task-service/internal/tracing"
	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/audit"
	"github.com/canonical/task-service/pkg/authorization"
	"github.com/canonical/task-service/pkg/identity"
)

// Service owns the organization lifecycle and membership management. The
// sole-owner invariant is enforced here, inside the same transaction as the
// mutation it protects.
type Service struct {
	store    StorageInterface
	authz    authorization.CheckerInterface
	tx       TxRunnerInterface
	recorder audit.RecorderInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(store StorageInterface, authz authorization.CheckerInterface, tx TxRunnerInterface, recorder audit.RecorderInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)
	s.store = store
	s.authz = authz
	s.tx = tx
	s.recorder = recorder
	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger
	return s
}

// Create provisions an organization and makes the creator its owner, both in
// one transaction so a half-created organization can never exist.
func (s *Service) Create(ctx context.Context, name string, actor *identity.Identity) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.Create")
	defer span.End()

	var org *types.Organization
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		org, err = s.store.CreateOrganization(ctx, name)
		if err != nil {
			return err
		}
		_, err = s.store.AddMember(ctx, org.ID, actor.ID, types.OrgRoleOwner)
		return err
	})
	if err != nil {
		s.logger.Errorf("failed to create organization: %v", err)
		return nil, err
	}

	s.recorder.Record(ctx, audit.Event{
		UserID:       actor.ID,
		Action:       types.AuditActionCreate,
		ResourceType: types.ResourceTypeOrganization,
		ResourceID:   org.ID,
		Details:      map[string]any{"name": org.Name},
	})

	return org, nil
}

// FindAll returns every organization for super_admins and only the actor's
// organizations otherwise.
func (s *Service) FindAll(ctx context.Context, actor *identity.Identity) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.FindAll")
	defer span.End()

	if actor.IsSuperAdmin() {
		return s.store.ListOrganizations(ctx)
	}
	return s.store.ListOrganizationsByUserID(ctx, actor.ID)
}

// FindOne returns the organization. The embedded member list is populated
// only for super_admins and members of the organization.
func (s *Service) FindOne(ctx context.Context, orgID string, actor *identity.Identity) (*OrganizationDetail, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.FindOne")
	defer span.End()

	org, err := s.store.GetOrganizationByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.NotFoundf("organization not found")
		}
		return nil, err
	}

	detail := &OrganizationDetail{Organization: org}

	ok, err := s.authz.CanViewMembers(ctx, actor, orgID)
	if err != nil {
		return nil, err
	}
	if ok {
		detail.Members, err = s.store.ListMembers(ctx, orgID)
		if err != nil {
			return nil, err
		}
	}

	return detail, nil
}

func (s *Service) Update(ctx context.Context, orgID, name string, actor *identity.Identity) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.Update")
	defer span.End()

	ok, err := s.authz.CanManageOrg(ctx, actor, orgID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.Forbiddenf("only owners can update the organization")
	}

	org, err := s.store.UpdateOrganization(ctx, orgID, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.NotFoundf("organization not found")
		}
		return nil, err
	}

	s.recorder.Record(ctx, audit.Event{
		UserID:       actor.ID,
		Action:       types.AuditActionUpdate,
		ResourceType: types.ResourceTypeOrganization,
		ResourceID:   org.ID,
		Details:      map[string]any{"name": org.Name},
	})

	return org, nil
}

// Remove deletes the organization and all of its memberships atomically.
// Remove deletes an organization and returns its last state.
func (s *Service) Remove(ctx context.Context, orgID string, actor *identity.Identity) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.Remove")
	defer span.End()

	ok, err := s.authz.CanManageOrg(ctx, actor, orgID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.Forbiddenf("only owners can delete the organization")
	}

	var org *types.Organization
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		org, err = s.store.GetOrganizationByID(ctx, orgID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return types.NotFoundf("organization not found")
			}
			return err
		}
		if err := s.store.DeleteMembershipsByOrgID(ctx, orgID); err != nil {
			return err
		}
		return s.store.DeleteOrganization(ctx, orgID)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Event{
		UserID:       actor.ID,
		Action:       types.AuditActionDelete,
		ResourceType: types.ResourceTypeOrganization,
		ResourceID:   orgID,
	})

	return org, nil
}

func (s *Service) AddMember(ctx context.Context, orgID, userID string, role types.OrgRole, actor *identity.Identity) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.AddMember")
	defer span.End()

	ok, err := s.authz.CanAddMember(ctx, actor, orgID, role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.Forbiddenf("you do not have permission to add members with role %s", role)
	}

	if _, err := s.store.GetOrganizationByID(ctx, orgID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.NotFoundf("organization not found")
		}
		return nil, err
	}
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.NotFoundf("user not found")
		}
		return nil, err
	}

	m, err := s.store.AddMember(ctx, orgID, userID, role)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, types.BadRequestf("user is already a member of this organization")
		}
		return nil, err
	}

	s.recorder.Record(ctx, audit.Event{
		UserID:       actor.ID,
		Action:       types.AuditActionCreate,
		ResourceType: types.ResourceTypeOrganization,
		ResourceID:   orgID,
		Details:      map[string]any{"memberId": userID, "role": string(role)},
	})

	return m, nil
}

// UpdateMemberRole changes a member's role. Demoting the only owner is
// rejected regardless of who asks, the organization must never be left
// ownerless.
func (s *Service) UpdateMemberRole(ctx context.Context, orgID, userID string, role types.OrgRole, actor *identity.Identity) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.UpdateMemberRole")
	defer span.End()

	ok, err := s.authz.CanUpdateMemberRole(ctx, actor, orgID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.Forbiddenf("only owners can change member roles")
	}

	var m *types.Membership
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		m, err = s.store.GetMembership(ctx, orgID, userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return types.NotFoundf("user is not a member of this organization")
			}
			return err
		}

		if m.Role == types.OrgRoleOwner && role != types.OrgRoleOwner {
			sole, err := s.authz.CheckSoleOwner(ctx, orgID)
			if err != nil {
				return err
			}
			if sole {
				return types.BadRequestf("cannot demote the only owner")
			}
		}

		if err := s.store.UpdateMemberRole(ctx, orgID, userID, role); err != nil {
			return err
		}
		m.Role = role
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Event{
		UserID:       actor.ID,
		Action:       types.AuditActionUpdate,
		ResourceType: types.ResourceTypeOrganization,
		ResourceID:   orgID,
		Details:      map[string]any{"memberId": userID, "role": string(role)},
	})

	return m, nil
}

// RemoveMember removes a member. The last owner can never be removed, not
// even by themselves; ownership has to be transferred first.
func (s *Service) RemoveMember(ctx context.Context, orgID, userID string, actor *identity.Identity) error {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.RemoveMember")
	defer span.End()

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		m, err := s.store.GetMembership(ctx, orgID, userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return types.NotFoundf("user is not a member of this organization")
			}
			return err
		}

		ok, err := s.authz.CanRemoveMember(ctx, actor, orgID, m.Role)
		if err != nil {
			return err
		}
		if !ok {
			return types.Forbiddenf("you do not have permission to remove this member")
		}

		if m.Role == types.OrgRoleOwner {
			sole, err := s.authz.CheckSoleOwner(ctx, orgID)
			if err != nil {
				return err
			}
			if sole {
				return types.BadRequestf("cannot remove the only owner, transfer ownership first")
			}
		}

		return s.store.RemoveMember(ctx, orgID, userID)
	})
	if err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Event{
		UserID:       actor.ID,
		Action:       types.AuditActionDelete,
		ResourceType: types.ResourceTypeOrganization,
		ResourceID:   orgID,
		Details:      map[string]any{"memberId": userID},
	})

	return nil
}

func (s *Service) ListMembers(ctx context.Context, orgID string, actor *identity.Identity) ([]*types.Member, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.ListMembers")
	defer span.End()

	ok, err := s.authz.CanViewMembers(ctx, actor, orgID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.Forbiddenf("you are not a member of this organization")
	}

	return s.store.ListMembers(ctx, orgID)
}
