// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/identity"
)

type captureRecorder struct {
	events []Event
}

func (r *captureRecorder) Record(_ context.Context, e Event) {
	r.events = append(r.events, e)
}

func TestClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"first forwarded hop wins", "10.0.0.1, 172.16.0.1", "192.168.0.1", "127.0.0.1:1234", "10.0.0.1"},
		{"real ip next", "", "192.168.0.1", "127.0.0.1:1234", "192.168.0.1"},
		{"socket address last", "", "", "127.0.0.1:1234", "127.0.0.1"},
		{"nothing known", "", "", "", "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if tc.realIP != "" {
				r.Header.Set("X-Real-IP", tc.realIP)
			}
			assert.Equal(t, tc.want, ClientIP(r))
		})
	}
}

func taskRouter(recorder RecorderInterface, handler http.HandlerFunc) http.Handler {
	m := NewMiddleware(recorder, types.ResourceTypeTask, "/api/v1/tasks", logging.NewNoopLogger())
	router := chi.NewRouter()
	router.Use(m.Handler)
	router.MethodFunc(http.MethodPost, "/api/v1/tasks", handler)
	router.MethodFunc(http.MethodPatch, "/api/v1/tasks/{id}", handler)
	router.MethodFunc(http.MethodGet, "/api/v1/tasks/{id}", handler)
	return router
}

func asUser(r *http.Request) *http.Request {
	id := &identity.Identity{ID: "actor", GlobalRole: types.GlobalRoleViewer}
	return r.WithContext(identity.WithIdentity(r.Context(), id))
}

func TestMiddlewareRecordsMutations(t *testing.T) {
	t.Run("successful patch", func(t *testing.T) {
		rec := &captureRecorder{}
		router := taskRouter(rec, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"id":"task-1"}`))
		})

		r := asUser(httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/task-1", strings.NewReader(`{"title":"renamed"}`)))
		router.ServeHTTP(httptest.NewRecorder(), r)

		require.Len(t, rec.events, 1)
		e := rec.events[0]
		assert.Equal(t, "actor", e.UserID)
		assert.Equal(t, types.AuditActionUpdate, e.Action)
		assert.Equal(t, "task-1", e.ResourceID)
		assert.Equal(t, map[string]any{"title": "renamed"}, e.Details["body"])
	})

	t.Run("create takes id from the response", func(t *testing.T) {
		rec := &captureRecorder{}
		router := taskRouter(rec, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"task-9","title":"new"}`))
		})

		r := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(`{"title":"new"}`)))
		router.ServeHTTP(httptest.NewRecorder(), r)

		require.Len(t, rec.events, 1)
		assert.Equal(t, types.AuditActionCreate, rec.events[0].Action)
		assert.Equal(t, "task-9", rec.events[0].ResourceID)
	})

	t.Run("failure captures status and message", func(t *testing.T) {
		rec := &captureRecorder{}
		router := taskRouter(rec, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"status":403,"message":"viewers can only update task status"}`))
		})

		r := asUser(httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/task-1", strings.NewReader(`{"title":"renamed"}`)))
		router.ServeHTTP(httptest.NewRecorder(), r)

		require.Len(t, rec.events, 1)
		details := rec.events[0].Details
		assert.Equal(t, http.StatusForbidden, details["statusCode"])
		assert.Equal(t, "viewers can only update task status", details["error"])
	})

	t.Run("reads are not recorded", func(t *testing.T) {
		rec := &captureRecorder{}
		router := taskRouter(rec, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		r := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/tasks/task-1", nil))
		router.ServeHTTP(httptest.NewRecorder(), r)

		assert.Empty(t, rec.events)
	})

	t.Run("anonymous requests are not recorded", func(t *testing.T) {
		rec := &captureRecorder{}
		router := taskRouter(rec, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		r := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(`{}`))
		router.ServeHTTP(httptest.NewRecorder(), r)

		assert.Empty(t, rec.events)
	})

	t.Run("paths outside the prefix are not recorded", func(t *testing.T) {
		rec := &captureRecorder{}
		m := NewMiddleware(rec, types.ResourceTypeTask, "/api/v1/tasks", logging.NewNoopLogger())

		handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		r := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/organizations", strings.NewReader(`{}`)))
		handler.ServeHTTP(httptest.NewRecorder(), r)

		assert.Empty(t, rec.events)
	})
}
