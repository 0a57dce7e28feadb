// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

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

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v1/organizations", a.handleCreate)
	mux.Get("/api/v1/organizations", a.handleList)
	mux.Get("/api/v1/organizations/{id}", a.handleDetail)
	mux.Patch("/api/v1/organizations/{id}", a.handleUpdate)
	mux.Delete("/api/v1/organizations/{id}", a.handleRemove)
	mux.Get("/api/v1/organizations/{id}/members", a.handleListMembers)
	mux.Post("/api/v1/organizations/{id}/members", a.handleAddMember)
	mux.Patch("/api/v1/organizations/{id}/members/{userId}", a.handleUpdateMemberRole)
	mux.Delete("/api/v1/organizations/{id}/members/{userId}", a.handleRemoveMember)
}

func (a *API) actor(w http.ResponseWriter, r *http.Request) *identity.Identity {
	actor := identity.FromContext(r.Context())
	if actor == nil {
		httptypes.WriteError(w, types.ErrUnauthenticated, a.logger)
	}
	return actor
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	var req CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httptypes.WriteError(w, types.BadRequestf("invalid request body"), a.logger)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	org, err := a.service.Create(r.Context(), req.Name, actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, org)
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	orgs, err := a.service.FindAll(r.Context(), actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, orgs)
}

func (a *API) handleDetail(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	detail, err := a.service.FindOne(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, detail)
}

func (a *API) handleUpdate(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	var req UpdateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httptypes.WriteError(w, types.BadRequestf("invalid request body"), a.logger)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	org, err := a.service.Update(r.Context(), chi.URLParam(r, "id"), req.Name, actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, org)
}

func (a *API) handleRemove(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	org, err := a.service.Remove(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, org)
}

func (a *API) handleListMembers(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	members, err := a.service.ListMembers(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, members)
}

func (a *API) handleAddMember(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httptypes.WriteError(w, types.BadRequestf("invalid request body"), a.logger)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	role, err := types.ParseOrgRole(req.Role)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	m, err := a.service.AddMember(r.Context(), chi.URLParam(r, "id"), req.UserID, role, actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, m)
}

func (a *API) handleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	var req UpdateMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httptypes.WriteError(w, types.BadRequestf("invalid request body"), a.logger)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	role, err := types.ParseOrgRole(req.Role)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	m, err := a.service.UpdateMemberRole(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userId"), role, actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, m)
}

func (a *API) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	userID := chi.URLParam(r, "userId")
	if err := a.service.RemoveMember(r.Context(), chi.URLParam(r, "id"), userID, actor); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, RemoveMemberResponse{
		Message: "member removed successfully",
		UserID:  userID,
	})
}
