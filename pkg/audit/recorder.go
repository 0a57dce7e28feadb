// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"
	"sync"
	"time"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/tracing"
	"github.com/canonical/task-service/internal/types"
	"github.com/google/uuid"
)

type ipContextKey struct{}

// WithClientIP stashes the caller's address so events recorded deeper in the
// stack carry it without threading it through every signature.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipContextKey{}, ip)
}

func ClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(ipContextKey{}).(string); ok {
		return ip
	}
	return "unknown"
}

// Recorder persists audit events off the request path. Events are queued on a
// bounded channel and written by a single background worker, a full queue
// drops the event rather than stalling the caller.
type Recorder struct {
	store StorageInterface
	queue chan Event

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	once   sync.Once

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ RecorderInterface = (*Recorder)(nil)

func NewRecorder(store StorageInterface, queueSize int, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Recorder {
	if queueSize <= 0 {
		queueSize = 1024
	}

	r := new(Recorder)
	r.store = store
	r.queue = make(chan Event, queueSize)
	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	r.wg.Add(1)
	go r.run()

	return r
}

// Record enqueues e for persistence and returns immediately. The event's IP
// falls back to the one carried on ctx. Events arriving after Shutdown are
// dropped.
func (r *Recorder) Record(ctx context.Context, e Event) {
	if e.IPAddress == "" {
		e.IPAddress = ClientIPFromContext(ctx)
	}
	e.Details = Sanitize(e.Details)

	// The read lock spans the send so Shutdown cannot close the queue
	// between the closed check and the enqueue.
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.logger.Warnf("audit recorder stopped, dropping %s event for resource %s", e.Action, e.ResourceID)
		return
	}

	select {
	case r.queue <- e:
	default:
		r.logger.Warnf("audit queue full, dropping %s event for resource %s", e.Action, e.ResourceID)
	}
}

func (r *Recorder) run() {
	defer r.wg.Done()

	for e := range r.queue {
		// Request contexts are gone by the time the worker runs, each
		// write gets its own deadline.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		r.persist(ctx, e)
		cancel()
	}
}

func (r *Recorder) persist(ctx context.Context, e Event) {
	ctx, span := r.tracer.Start(ctx, "audit.Recorder.persist")
	defer span.End()

	log := &types.AuditLog{
		ID:           uuid.Must(uuid.NewV7()).String(),
		UserID:       e.UserID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Details:      e.Details,
		IPAddress:    e.IPAddress,
		CreatedAt:    time.Now().UTC(),
	}

	if err := r.store.CreateAuditLog(ctx, log); err != nil {
		r.logger.Errorf("failed to persist audit event %s/%s: %v", e.Action, e.ResourceID, err)
	}
}

// Shutdown stops accepting events and blocks until the queue is drained.
func (r *Recorder) Shutdown() {
	r.once.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		close(r.queue)
	})
	r.wg.Wait()
}
