// Copyright 2026 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/task-service/internal/db"
	"github.com/canonical/task-service/internal/logging"
	"github.com/canonical/task-service/internal/monitoring"
	"github.com/canonical/task-service/internal/storage"
	"github.com/canonical/task-service/internal/tracing"
	"github.com/canonical/task-service/internal/types"
	"github.com/canonical/task-service/internal/validation"
	"github.com/canonical/task-service/pkg/audit"
	"github.com/canonical/task-service/pkg/authentication"
	"github.com/canonical/task-service/pkg/authorization"
	"github.com/canonical/task-service/pkg/identity"
	"github.com/canonical/task-service/pkg/metrics"
	"github.com/canonical/task-service/pkg/organizations"
	"github.com/canonical/task-service/pkg/status"
	"github.com/canonical/task-service/pkg/tasks"
	"github.com/canonical/task-service/pkg/users"
)

type Config struct {
	JWTSecret          string
	JWTExpiry          time.Duration
	CORSAllowedOrigins []string
	Version            string
}

func NewRouter(
	cfg Config,
	s storage.StorageInterface,
	dbClient db.DBClientInterface,
	recorder audit.RecorderInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(cfg.CORSAllowedOrigins),
		audit.ContextMiddleware,
	)

	router.Use(middlewares...)

	validate := validation.NewValidator()

	tokens := authentication.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	hasher := authentication.NewPasswordHasher(0)
	resolver := identity.NewResolver(s, tracer, monitor, logger)
	authz := authorization.NewChecker(s, tracer, monitor, logger)

	authnService := authentication.NewService(s, tokens, hasher, recorder, tracer, monitor, logger)
	orgService := organizations.NewService(s, authz, dbClient, recorder, tracer, monitor, logger)
	taskService := tasks.NewService(s, authz, tracer, monitor, logger)
	userService := users.NewService(s, recorder, tracer, monitor, logger)
	auditService := audit.NewService(s, authz, tracer, monitor, logger)

	authnAPI := authentication.NewAPI(authnService, validate, tracer, monitor, logger)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(dbClient, cfg.Version, tracer, monitor, logger).RegisterEndpoints(router)
	authnAPI.RegisterEndpoints(router)

	// Everything below requires a valid access token. Mutations run inside a
	// request-scoped transaction; task routes additionally pass through the
	// audit capture middleware.
	router.Group(func(r chi.Router) {
		r.Use(authentication.NewMiddleware(tokens, resolver, tracer, monitor, logger).Authenticate())
		r.Use(db.TransactionMiddleware(dbClient, logger))
		r.Use(audit.NewMiddleware(recorder, types.ResourceTypeTask, "/api/v1/tasks", logger).Handler)

		authnAPI.RegisterMe(r)
		users.NewAPI(userService, validate, tracer, monitor, logger).RegisterEndpoints(r)
		organizations.NewAPI(orgService, validate, tracer, monitor, logger).RegisterEndpoints(r)
		tasks.NewAPI(taskService, validate, tracer, monitor, logger).RegisterEndpoints(r)
		audit.NewAPI(auditService, tracer, monitor, logger).RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
