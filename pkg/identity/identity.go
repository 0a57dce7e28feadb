// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"

	"github.com/canonical/task-service/internal/types"
)

// OrgMembership is one (organization, role) pair held by an identity.
type OrgMembership struct {
	OrganizationID string        `json:"organizationId"`
	Role           types.OrgRole `json:"role"`
}

// Identity is the immutable description of the acting principal for the
// lifetime of one request. It is never re-derived mid-operation; callers that
// must not trust a possibly-stale context re-resolve through the Resolver.
type Identity struct {
	ID          string           `json:"id"`
	Email       string           `json:"email"`
	FirstName   string           `json:"firstName"`
	LastName    string           `json:"lastName"`
	GlobalRole  types.GlobalRole `json:"role"`
	Memberships []OrgMembership  `json:"organizations"`
}

func (i *Identity) IsSuperAdmin() bool {
	return i.GlobalRole == types.GlobalRoleSuperAdmin
}

// RoleIn returns the identity's role in the given organization as captured at
// resolution time. Authorization checks that must see current state use the
// membership store instead.
func (i *Identity) RoleIn(orgID string) (types.OrgRole, bool) {
	for _, m := range i.Memberships {
		if m.OrganizationID == orgID {
			return m.Role, true
		}
	}
	return "", false
}

// OrgIDs returns the organizations the identity belongs to.
func (i *Identity) OrgIDs() []string {
	ids := make([]string, 0, len(i.Memberships))
	for _, m := range i.Memberships {
		ids = append(ids, m.OrganizationID)
	}
	return ids
}

// ViewerEverywhere reports whether the identity holds only the viewer role
// across all of its organizations.
func (i *Identity) ViewerEverywhere() bool {
	if len(i.Memberships) == 0 {
		return false
	}
	for _, m := range i.Memberships {
		if m.Role != types.OrgRoleViewer {
			return false
		}
	}
	return true
}

// Define a private custom type to avoid collisions
type contextKey struct{}

var identityContextKey = contextKey{}

// WithIdentity returns a new context carrying the given identity.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// FromContext retrieves the identity from the context, nil when the request
// is unauthenticated.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey).(*Identity)
	return id
}
