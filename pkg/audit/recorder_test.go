// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/tracing"
	"github.com/canonical/task-service/internal/types"
)

func newRecorder(t *testing.T, queueSize int) (*Recorder, *MockStorageInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := NewMockStorageInterface(ctrl)
	r := NewRecorder(store, queueSize, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	return r, store
}

func TestRecorderPersistsEvents(t *testing.T) {
	r, store := newRecorder(t, 16)

	persisted := make(chan *types.AuditLog, 1)
	store.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, log *types.AuditLog) error {
			persisted <- log
			return nil
		})

	ctx := WithClientIP(context.Background(), "10.0.0.1")
	r.Record(ctx, Event{
		UserID:       "user-1",
		Action:       types.AuditActionCreate,
		ResourceType: types.ResourceTypeTask,
		ResourceID:   "task-1",
		Details:      map[string]any{"title": "ship it", "password": "oops"},
	})

	select {
	case log := <-persisted:
		assert.Equal(t, "user-1", log.UserID)
		assert.Equal(t, types.AuditActionCreate, log.Action)
		assert.Equal(t, "task-1", log.ResourceID)
		assert.Equal(t, "10.0.0.1", log.IPAddress)
		assert.Equal(t, "[REDACTED]", log.Details["password"])
		assert.False(t, log.CreatedAt.IsZero())
		_, err := uuid.Parse(log.ID)
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("event was never persisted")
	}

	r.Shutdown()
}

func TestRecorderShutdownDrainsQueue(t *testing.T) {
	r, store := newRecorder(t, 16)

	var persisted int
	store.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *types.AuditLog) error {
			persisted++
			return nil
		}).Times(5)

	for i := 0; i < 5; i++ {
		r.Record(context.Background(), Event{
			UserID: "user-1",
			Action: types.AuditActionUpdate,
		})
	}

	r.Shutdown()
	assert.Equal(t, 5, persisted)
}

func TestRecorderDropsWhenQueueFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStorageInterface(ctrl)

	// An unstarted recorder keeps the worker from draining, so the second
	// event must hit the full-queue path without blocking.
	r := &Recorder{
		store:   store,
		queue:   make(chan Event, 1),
		tracer:  tracing.NewNoopTracer(),
		monitor: monitoring.NewNoopMonitor(),
		logger:  logging.NewNoopLogger(),
	}

	done := make(chan struct{})
	go func() {
		r.Record(context.Background(), Event{ResourceID: "first"})
		r.Record(context.Background(), Event{ResourceID: "second"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full queue")
	}

	require.Len(t, r.queue, 1)
	assert.Equal(t, "first", (<-r.queue).ResourceID)
}

func TestRecorderDropsAfterShutdown(t *testing.T) {
	r, store := newRecorder(t, 16)

	store.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	r.Record(context.Background(), Event{ResourceID: "before"})
	r.Shutdown()

	// A late event must be dropped, not panic on the closed queue.
	r.Record(context.Background(), Event{ResourceID: "after"})
}

func TestClientIPFromContext(t *testing.T) {
	assert.Equal(t, "unknown", ClientIPFromContext(context.Background()))
	assert.Equal(t, "10.0.0.1", ClientIPFromContext(WithClientIP(context.Background(), "10.0.0.1")))
}
