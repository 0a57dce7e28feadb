// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"encoding/json"
	"net/http"

	httptypes "github.com/canonical/task-service/internal/http/types"
	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/tracing"
	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/internal/validation"
	"github.com/canonical/task-service/pkg/identity"
	"github.com/go-chi/chi/v5"
)

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type API struct {
	service  ServiceInterface
	validate *validation.Validator

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, validate *validation.Validator, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)
	a.service = service
	a.validate = validate
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger
	return a
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v1/users", a.handleList)
	mux.Get("/api/v1/users/{id}", a.handleDetail)
	mux.Put("/api/v1/users/{id}/role", a.handleUpdateRole)
}

func (a *API) actor(w http.ResponseWriter, r *http.Request) *identity.Identity {
	actor := identity.FromContext(r.Context())
	if actor == nil {
		httptypes.WriteError(w, types.ErrUnauthenticated, a.logger)
	}
	return actor
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	if a.actor(w, r) == nil {
		return
	}

	users, err := a.service.FindAll(r.Context())
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, users)
}

func (a *API) handleDetail(w http.ResponseWriter, r *http.Request) {
	if a.actor(w, r) == nil {
		return
	}

	user, err := a.service.FindOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, user)
}

func (a *API) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httptypes.WriteError(w, types.BadRequestf("invalid request body"), a.logger)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	role, err := types.ParseGlobalRole(req.Role)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	user, err := a.service.UpdateGlobalRole(r.Context(), chi.URLParam(r, "id"), role, actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, user)
}
