// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"encoding/json"
	"io"
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
	mux.Post("/api/v1/tasks", a.handleCreate)
	mux.Get("/api/v1/tasks", a.handleList)
	mux.Get("/api/v1/tasks/{id}", a.handleDetail)
	mux.Patch("/api/v1/tasks/{id}", a.handleUpdate)
	mux.Patch("/api/v1/tasks/{id}/status", a.handleUpdateStatus)
	mux.Delete("/api/v1/tasks/{id}", a.handleRemove)
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

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httptypes.WriteError(w, types.BadRequestf("invalid request body"), a.logger)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	task, err := a.service.Create(r.Context(), req, actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, task)
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	filter, err := filterFromRequest(r)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	page := httptypes.ParsePagination(r)

	tasks, total, err := a.service.FindAll(r.Context(), filter, page, actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, httptypes.NewListResponse(tasks, total, page))
}

func (a *API) handleDetail(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	task, err := a.service.FindOne(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, task)
}

func (a *API) handleUpdate(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		httptypes.WriteError(w, types.BadRequestf("invalid request body"), a.logger)
		return
	}

	patch, err := ParseTaskPatch(raw)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	task, err := a.service.Update(r.Context(), chi.URLParam(r, "id"), patch, actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, task)
}

func (a *API) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httptypes.WriteError(w, types.BadRequestf("invalid request body"), a.logger)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	status, err := types.ParseTaskStatus(req.Status)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	task, err := a.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status, actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, task)
}

func (a *API) handleRemove(w http.ResponseWriter, r *http.Request) {
	actor := a.actor(w, r)
	if actor == nil {
		return
	}

	task, err := a.service.Remove(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, task)
}

func filterFromRequest(r *http.Request) (types.TaskFilter, error) {
	q := r.URL.Query()

	filter := types.TaskFilter{
		AssignedToID:   q.Get("assignedToId"),
		OrganizationID: q.Get("organizationId"),
		Search:         q.Get("search"),
		Order:          types.ParseSortOrder(q.Get("order")),
	}

	sort, err := types.ParseTaskSortField(q.Get("sortBy"))
	if err != nil {
		return filter, err
	}
	filter.Sort = sort

	if v := q.Get("status"); v != "" {
		status, err := types.ParseTaskStatus(v)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if v := q.Get("priority"); v != "" {
		priority, err := types.ParseTaskPriority(v)
		if err != nil {
			return filter, err
		}
		filter.Priority = &priority
	}

	return filter, nil
}
