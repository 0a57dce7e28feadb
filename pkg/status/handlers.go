// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/task-service/internal/http/types"
	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/tracing"
)

// PingerInterface is satisfied by the database client.
type PingerInterface interface {
	Ping(ctx context.Context) error
}

type statusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type API struct {
	db      PingerInterface
	version string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(db PingerInterface, version string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)
	a.db = db
	a.version = version
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger
	return a
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v1/status", a.alive)
	mux.Get("/api/v1/status/ready", a.ready)
	mux.Get("/api/v1/version", a.handleVersion)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	httptypes.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok", Version: a.version})
}

// ready reports whether the service can actually serve traffic, which for
// this service means the database answers.
func (a *API) ready(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.ready")
	defer span.End()

	tags := map[string]string{"dependency": "postgres"}

	if err := a.db.Ping(ctx); err != nil {
		a.logger.Errorf("database ping failed: %v", err)
		if err := a.monitor.SetDependencyAvailability(tags, 0); err != nil {
			a.logger.Errorf("failed to set availability metric: %v", err)
		}
		httptypes.WriteJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "unavailable", Version: a.version})
		return
	}

	if err := a.monitor.SetDependencyAvailability(tags, 1); err != nil {
		a.logger.Errorf("failed to set availability metric: %v", err)
	}
	httptypes.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok", Version: a.version})
}

func (a *API) handleVersion(w http.ResponseWriter, r *http.Request) {
	httptypes.WriteJSON(w, http.StatusOK, map[string]string{"version": a.version})
}
