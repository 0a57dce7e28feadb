// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/tracing"
	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/identity"
)

func newService(t *testing.T) (*Service, *MockStorageInterface, *MockAuthzInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := NewMockStorageInterface(ctrl)
	authz := NewMockAuthzInterface(ctrl)
	s := NewService(store, authz, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	return s, store, authz
}

func TestServiceQuery(t *testing.T) {
	actor := &identity.Identity{ID: "actor"}

	t.Run("denied scope", func(t *testing.T) {
		s, _, authz := newService(t)
		authz.EXPECT().AuditScope(actor).Return(types.AuditScope{}, false)

		_, _, err := s.Query(context.Background(), actor, types.AuditFilter{}, types.Pagination{})
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("scope decided by authorizer, not the filter", func(t *testing.T) {
		s, store, authz := newService(t)

		scope := types.AuditScope{OrgIDs: []string{"org-1"}}
		authz.EXPECT().AuditScope(actor).Return(scope, true)
		store.EXPECT().ListAuditLogs(gomock.Any(), scope, gomock.Any(), gomock.Any()).
			Return([]*types.AuditLog{{ID: "log-1"}}, int64(1), nil)

		action := types.AuditActionCreate
		logs, total, err := s.Query(context.Background(), actor, types.AuditFilter{Action: &action}, types.Pagination{Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, logs, 1)
	})
}
