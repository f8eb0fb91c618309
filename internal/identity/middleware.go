// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"net/http"

	"github.com/tempoworks/tempo/internal/logging"
	"github.com/tempoworks/tempo/internal/monitoring"
	"github.com/tempoworks/tempo/internal/tracing"
	"github.com/tempoworks/tempo/internal/types"
)

const (
	// UserIDHeaderName carries the authenticated identity ID, set by the
	// identity proxy in front of this service.
	UserIDHeaderName = "X-Kratos-Authenticated-Identity-Id"
	// EmailHeaderName carries the authenticated identity's email address.
	EmailHeaderName = "X-Kratos-Authenticated-Identity-Email"
)

type contextKey struct{}

var identityContextKey contextKey

// WithIdentity returns a new context carrying the authenticated identity.
func WithIdentity(ctx context.Context, id types.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// FromContext retrieves the authenticated identity from the context.
func FromContext(ctx context.Context) (types.Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(types.Identity)
	return id, ok && id.UserID != ""
}

type Middleware struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// HTTPMiddleware lifts the identity headers into the request context. The
// headers are trusted completely; credential verification happened upstream.
func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "identity.Middleware.HTTPMiddleware")
		defer span.End()

		ctx = WithIdentity(ctx, types.Identity{
			UserID: r.Header.Get(UserIDHeaderName),
			Email:  r.Header.Get(EmailHeaderName),
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
