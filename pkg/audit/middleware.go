// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/pkg/identity"
	"github.com/go-chi/chi/v5"
)

// ClientIP resolves the caller's address, preferring the first hop of
// X-Forwarded-For, then X-Real-IP, then the socket address.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}
	if r.RemoteAddr != "" {
		host := r.RemoteAddr
		if i := strings.LastIndex(host, ":"); i > 0 {
			host = host[:i]
		}
		return host
	}
	return "unknown"
}

// ContextMiddleware makes the client address available to downstream code
// that records audit events outside the request handler.
func ContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithClientIP(r.Context(), ClientIP(r))))
	})
}

type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware records every mutating request under its path prefix, after the
// handler settles. Reads are not captured. Recording never alters the
// response.
type Middleware struct {
	recorder RecorderInterface
	resource types.ResourceType
	prefix   string
	logger   logging.LoggerInterface
}

func NewMiddleware(recorder RecorderInterface, resource types.ResourceType, prefix string, logger logging.LoggerInterface) *Middleware {
	m := new(Middleware)
	m.recorder = recorder
	m.resource = resource
	m.prefix = prefix
	m.logger = logger
	return m
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, m.prefix) {
			next.ServeHTTP(w, r)
			return
		}
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		actor := identity.FromContext(r.Context())
		if actor == nil {
			next.ServeHTTP(w, r)
			return
		}

		var reqBody map[string]any
		if r.Body != nil {
			raw, err := io.ReadAll(r.Body)
			if err == nil {
				r.Body = io.NopCloser(bytes.NewReader(raw))
				// Non-JSON bodies are simply not captured.
				_ = json.Unmarshal(raw, &reqBody)
			}
		}

		cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(cw, r)
		elapsed := time.Since(start)

		e := Event{
			UserID:       actor.ID,
			Action:       actionForMethod(r.Method),
			ResourceType: m.resource,
			ResourceID:   chi.URLParam(r, "id"),
			IPAddress:    ClientIP(r),
		}

		if cw.status < http.StatusBadRequest {
			if e.ResourceID == "" {
				e.ResourceID = idFromResponse(cw.body.Bytes())
			}
			e.Details = map[string]any{
				"body":           reqBody,
				"responseTimeMs": elapsed.Milliseconds(),
			}
		} else {
			e.Details = map[string]any{
				"statusCode": cw.status,
				"error":      errorFromResponse(cw.body.Bytes()),
			}
		}

		m.recorder.Record(r.Context(), e)
	})
}

func actionForMethod(method string) types.AuditAction {
	switch method {
	case http.MethodPost:
		return types.AuditActionCreate
	case http.MethodDelete:
		return types.AuditActionDelete
	default:
		return types.AuditActionUpdate
	}
}

func idFromResponse(body []byte) string {
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.ID
}

func errorFromResponse(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		return http.StatusText(http.StatusInternalServerError)
	}
	return payload.Message
}
