// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authz

import (
	"context"

	"github.com/tempoworks/tempo/internal/types"
)

// Scope is the resolved tenant boundary for one request: the caller, the
// organization the request operates against and the caller's role in it.
// It is passed by value and never re-derived downstream.
type Scope struct {
	UserID string
	OrgID  string
	Role   types.Role
}

type scopeContextKey struct{}

var scopeKey scopeContextKey

// WithScope returns a new context carrying the resolved scope.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}

// ScopeFromContext retrieves the resolved scope from the context.
func ScopeFromContext(ctx context.Context) (Scope, bool) {
	scope, ok := ctx.Value(scopeKey).(Scope)
	return scope, ok
}
