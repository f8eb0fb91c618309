// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tempoworks/tempo/internal/db"
	"github.com/tempoworks/tempo/internal/identity"
	"github.com/tempoworks/tempo/internal/logging"
	"github.com/tempoworks/tempo/internal/monitoring"
	"github.com/tempoworks/tempo/internal/tracing"
	"github.com/tempoworks/tempo/pkg/invites"
	"github.com/tempoworks/tempo/pkg/metrics"
	"github.com/tempoworks/tempo/pkg/orgs"
	"github.com/tempoworks/tempo/pkg/status"
	"github.com/tempoworks/tempo/pkg/superadmin"
	"github.com/tempoworks/tempo/pkg/tasks"
	"github.com/tempoworks/tempo/pkg/webhooks"
)

func NewRouter(
	orgsAPI *orgs.API,
	invitesAPI *invites.API,
	tasksAPI *tasks.API,
	superAPI *superadmin.API,
	webhooksAPI *webhooks.API,
	identityMiddleware *identity.Middleware,
	dbClient db.DBClientInterface,
	corsAllowedOrigins []string,
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
		middlewareCORS(corsAllowedOrigins),
		identityMiddleware.HTTPMiddleware,
		db.TransactionMiddleware(dbClient, logger),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	orgsAPI.RegisterEndpoints(router)
	invitesAPI.RegisterEndpoints(router)
	tasksAPI.RegisterEndpoints(router)
	superAPI.RegisterEndpoints(router)
	webhooksAPI.RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
