// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/tempoworks/tempo/internal/identity"
	"github.com/tempoworks/tempo/internal/types"
)

func TestMiddleware_RequireRole(t *testing.T) {
	tests := []struct {
		name               string
		identity           *types.Identity
		orgHeader          string
		orgQuery           string
		setupMocks         func(*MockAuthorizerInterface)
		expectedStatusCode int
		expectedBody       string
	}{
		{
			name:               "Unauthenticated request - rejects",
			identity:           nil,
			setupMocks:         func(authorizer *MockAuthorizerInterface) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:      "Missing org context - 400",
			identity:  &types.Identity{UserID: "user-1", Email: "u@example.com"},
			orgHeader: "",
			setupMocks: func(authorizer *MockAuthorizerInterface) {
				authorizer.EXPECT().ResolveScope(gomock.Any(), "user-1", "").Return(Scope{}, ErrMissingOrgContext)
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:      "Non-member - 403",
			identity:  &types.Identity{UserID: "user-1", Email: "u@example.com"},
			orgHeader: "org-1",
			setupMocks: func(authorizer *MockAuthorizerInterface) {
				authorizer.EXPECT().ResolveScope(gomock.Any(), "user-1", "org-1").Return(Scope{}, ErrNoMembership)
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:      "Insufficient role - 403",
			identity:  &types.Identity{UserID: "user-1", Email: "u@example.com"},
			orgHeader: "org-1",
			setupMocks: func(authorizer *MockAuthorizerInterface) {
				scope := Scope{UserID: "user-1", OrgID: "org-1", Role: types.RoleClient}
				authorizer.EXPECT().ResolveScope(gomock.Any(), "user-1", "org-1").Return(scope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), scope, types.RoleStaff).Return(ErrInsufficientRole)
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:     "Org from query parameter",
			identity: &types.Identity{UserID: "user-1", Email: "u@example.com"},
			orgQuery: "org-1",
			setupMocks: func(authorizer *MockAuthorizerInterface) {
				scope := Scope{UserID: "user-1", OrgID: "org-1", Role: types.RoleStaff}
				authorizer.EXPECT().ResolveScope(gomock.Any(), "user-1", "org-1").Return(scope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), scope, types.RoleStaff).Return(nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedBody:       "org-1",
		},
		{
			name:      "Header wins and scope reaches handler",
			identity:  &types.Identity{UserID: "user-1", Email: "u@example.com"},
			orgHeader: "org-1",
			orgQuery:  "org-2",
			setupMocks: func(authorizer *MockAuthorizerInterface) {
				scope := Scope{UserID: "user-1", OrgID: "org-1", Role: types.RoleStaff}
				authorizer.EXPECT().ResolveScope(gomock.Any(), "user-1", "org-1").Return(scope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), scope, types.RoleStaff).Return(nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedBody:       "org-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuthorizer := NewMockAuthorizerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "authz.Middleware.RequireRole").DoAndReturn(
				func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
					return ctx, trace.SpanFromContext(ctx)
				})

			tt.setupMocks(mockAuthorizer)

			mw := NewMiddleware(mockAuthorizer, mockTracer, mockMonitor, mockLogger)

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				scope, ok := ScopeFromContext(r.Context())
				if !ok {
					t.Error("expected scope in handler context")
				}
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(scope.OrgID))
			})

			target := "/test"
			if tt.orgQuery != "" {
				target += "?org_id=" + tt.orgQuery
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.orgHeader != "" {
				req.Header.Set(OrgHeaderName, tt.orgHeader)
			}
			if tt.identity != nil {
				req = req.WithContext(identity.WithIdentity(req.Context(), *tt.identity))
			}
			rr := httptest.NewRecorder()

			mw.RequireRole(types.RoleStaff)(handler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tt.expectedStatusCode, rr.Code)
			}

			if tt.expectedBody != "" && rr.Body.String() != tt.expectedBody {
				t.Errorf("expected body %q, got %q", tt.expectedBody, rr.Body.String())
			}

			if tt.expectedStatusCode >= 400 && !strings.Contains(rr.Header().Get("Content-Type"), "application/json") {
				t.Errorf("expected JSON error response, got %q", rr.Header().Get("Content-Type"))
			}
		})
	}
}
