// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authz

import (
	"encoding/json"
	"net/http"

	"github.com/tempoworks/tempo/internal/identity"
	"github.com/tempoworks/tempo/internal/logging"
	"github.com/tempoworks/tempo/internal/monitoring"
	"github.com/tempoworks/tempo/internal/tracing"
	"github.com/tempoworks/tempo/internal/types"
)

const (
	// OrgHeaderName is the request header declaring the target organization.
	OrgHeaderName = "X-Org-Id"
	// OrgQueryParam is the query fallback for the same declaration.
	OrgQueryParam = "org_id"
)

type Middleware struct {
	authorizer AuthorizerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(authorizer AuthorizerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		authorizer: authorizer,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

// RequireRole resolves the request's organization scope and enforces the
// minimum role before the handler body runs. The resolved Scope is attached
// to the request context for the handler.
func (m *Middleware) RequireRole(min types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authz.Middleware.RequireRole")
			defer span.End()

			id, ok := identity.FromContext(ctx)
			if !ok {
				m.deniedResponse(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			orgRef := r.Header.Get(OrgHeaderName)
			if orgRef == "" {
				orgRef = r.URL.Query().Get(OrgQueryParam)
			}

			scope, err := m.authorizer.ResolveScope(ctx, id.UserID, orgRef)
			if err != nil {
				m.deniedResponse(w, HTTPStatus(err), err.Error())
				return
			}

			if err := m.authorizer.EnforceRole(ctx, scope, min); err != nil {
				m.deniedResponse(w, HTTPStatus(err), err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithScope(ctx, scope)))
		})
	}
}

// RequireAdmin is RequireRole at the privileged threshold.
func (m *Middleware) RequireAdmin() func(http.Handler) http.Handler {
	return m.RequireRole(types.RoleAdmin)
}

func (m *Middleware) deniedResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  status,
		"message": message,
	}); err != nil {
		m.logger.Errorf("failed to encode denied response: %v", err)
	}
}
