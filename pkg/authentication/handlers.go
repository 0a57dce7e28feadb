// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

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

// RegisterEndpoints mounts the unauthenticated entry points. RegisterMe is
// mounted separately, behind the authentication middleware.
func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v1/auth/register", a.handleRegister)
	mux.Post("/api/v1/auth/login", a.handleLogin)
}

func (a *API) RegisterMe(mux chi.Router) {
	mux.Get("/api/v1/auth/me", a.handleMe)
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httptypes.WriteError(w, types.BadRequestf("invalid request body"), a.logger)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	resp, err := a.service.Register(r.Context(), req)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, resp)
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httptypes.WriteError(w, types.BadRequestf("invalid request body"), a.logger)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	resp, err := a.service.Login(r.Context(), req)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, resp)
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	id := identity.FromContext(r.Context())
	if id == nil {
		httptypes.WriteError(w, types.ErrUnauthenticated, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, id)
}
