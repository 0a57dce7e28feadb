// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"net/http"
	"time"

	httptypes "github.com/canonical/task-service/internal/http/types"
	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/tracing"
	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/identity"
	"github.com/go-chi/chi/v5"
)

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)
	a.service = service
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger
	return a
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v1/audit-logs", a.handleList)
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor := identity.FromContext(ctx)
	if actor == nil {
		httptypes.WriteError(w, types.ErrUnauthenticated, a.logger)
		return
	}

	filter, err := filterFromRequest(r)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	page := httptypes.ParsePagination(r)

	logs, total, err := a.service.Query(ctx, actor, filter, page)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, httptypes.NewListResponse(logs, total, page))
}

func filterFromRequest(r *http.Request) (types.AuditFilter, error) {
	q := r.URL.Query()
	filter := types.AuditFilter{UserID: q.Get("userId")}

	if v := q.Get("action"); v != "" {
		action, err := types.ParseAuditAction(v)
		if err != nil {
			return filter, err
		}
		filter.Action = &action
	}

	if v := q.Get("resourceType"); v != "" {
		resource, err := types.ParseResourceType(v)
		if err != nil {
			return filter, err
		}
		filter.ResourceType = &resource
	}

	if v := q.Get("startDate"); v != "" {
		start, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, types.BadRequestf("invalid startDate, expected RFC 3339 timestamp")
		}
		filter.Start = &start
	}

	if v := q.Get("endDate"); v != "" {
		end, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, types.BadRequestf("invalid endDate, expected RFC 3339 timestamp")
		}
		filter.End = &end
	}

	return filter, nil
}
