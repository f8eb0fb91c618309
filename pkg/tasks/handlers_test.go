// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/tempoworks/tempo/internal/identity"
	"github.com/tempoworks/tempo/internal/types"
	"github.com/tempoworks/tempo/pkg/authz"
)

// newTestMux wires the API behind a real scope middleware with the
// authorizer mocked, and injects the given identity into every request.
func newTestMux(ctrl *gomock.Controller, service ServiceInterface, authorizer authz.AuthorizerInterface, id types.Identity) *chi.Mux {
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		}).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	mw := authz.NewMiddleware(authorizer, mockTracer, mockMonitor, mockLogger)

	mux := chi.NewMux()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), id)))
		})
	})
	NewAPI(service, mw, mockTracer, mockMonitor, mockLogger).RegisterEndpoints(mux)
	return mux
}

func TestAPI_Endpoints(t *testing.T) {
	id := types.Identity{UserID: "user-1", Email: "u@example.com"}
	staffScope := authz.Scope{UserID: "user-1", OrgID: "org-1", Role: types.RoleStaff}
	clientScope := authz.Scope{UserID: "user-1", OrgID: "org-1", Role: types.RoleClient}

	tests := []struct {
		name               string
		method             string
		target             string
		body               string
		setupMocks         func(*MockServiceInterface, *MockAuthorizerInterface)
		expectedStatusCode int
		expectedBodyPart   string
	}{
		{
			name:   "create task",
			method: http.MethodPost,
			target: "/api/v0/tasks",
			body:   `{"title":"Write report"}`,
			setupMocks: func(service *MockServiceInterface, authorizer *MockAuthorizerInterface) {
				authorizer.EXPECT().ResolveScope(gomock.Any(), "user-1", "org-1").Return(staffScope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), staffScope, types.RoleStaff).Return(nil)
				service.EXPECT().Create(gomock.Any(), staffScope, "Write report").Return(&types.Task{
					ID: "task-1", OrgID: "org-1", OwnerUserID: "user-1", Title: "Write report",
				}, nil)
			},
			expectedStatusCode: http.StatusCreated,
			expectedBodyPart:   `"id":"task-1"`,
		},
		{
			name:   "create rejects missing title",
			method: http.MethodPost,
			target: "/api/v0/tasks",
			body:   `{"done":true}`,
			setupMocks: func(service *MockServiceInterface, authorizer *MockAuthorizerInterface) {
				authorizer.EXPECT().ResolveScope(gomock.Any(), "user-1", "org-1").Return(staffScope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), staffScope, types.RoleStaff).Return(nil)
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:   "client cannot create",
			method: http.MethodPost,
			target: "/api/v0/tasks",
			body:   `{"title":"Write report"}`,
			setupMocks: func(service *MockServiceInterface, authorizer *MockAuthorizerInterface) {
				authorizer.EXPECT().ResolveScope(gomock.Any(), "user-1", "org-1").Return(clientScope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), clientScope, types.RoleStaff).Return(authz.ErrInsufficientRole)
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:   "client can list",
			method: http.MethodGet,
			target: "/api/v0/tasks",
			setupMocks: func(service *MockServiceInterface, authorizer *MockAuthorizerInterface) {
				authorizer.EXPECT().ResolveScope(gomock.Any(), "user-1", "org-1").Return(clientScope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), clientScope, types.RoleClient).Return(nil)
				service.EXPECT().List(gomock.Any(), clientScope).Return([]*types.Task{
					{ID: "task-1", OrgID: "org-1", OwnerUserID: "user-1"},
				}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedBodyPart:   `"id":"task-1"`,
		},
		{
			name:   "forbidden task reads as forbidden",
			method: http.MethodGet,
			target: "/api/v0/tasks/task-9",
			setupMocks: func(service *MockServiceInterface, authorizer *MockAuthorizerInterface) {
				authorizer.EXPECT().ResolveScope(gomock.Any(), "user-1", "org-1").Return(clientScope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), clientScope, types.RoleClient).Return(nil)
				service.EXPECT().Get(gomock.Any(), clientScope, "task-9").Return(nil, authz.ErrForbidden)
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:   "missing task reads as not found",
			method: http.MethodGet,
			target: "/api/v0/tasks/task-9",
			setupMocks: func(service *MockServiceInterface, authorizer *MockAuthorizerInterface) {
				authorizer.EXPECT().ResolveScope(gomock.Any(), "user-1", "org-1").Return(clientScope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), clientScope, types.RoleClient).Return(nil)
				service.EXPECT().Get(gomock.Any(), clientScope, "task-9").Return(nil, authz.ErrNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:   "delete task",
			method: http.MethodDelete,
			target: "/api/v0/tasks/task-1",
			setupMocks: func(service *MockServiceInterface, authorizer *MockAuthorizerInterface) {
				authorizer.EXPECT().ResolveScope(gomock.Any(), "user-1", "org-1").Return(staffScope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), staffScope, types.RoleStaff).Return(nil)
				service.EXPECT().Delete(gomock.Any(), staffScope, "task-1").Return(nil)
			},
			expectedStatusCode: http.StatusNoContent,
		},
		{
			name:               "missing org context",
			method:             http.MethodGet,
			target:             "/api/v0/tasks",
			setupMocks:         func(service *MockServiceInterface, authorizer *MockAuthorizerInterface) {},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockAuthorizer := NewMockAuthorizerInterface(ctrl)

			if tt.name == "missing org context" {
				mockAuthorizer.EXPECT().ResolveScope(gomock.Any(), "user-1", "").Return(authz.Scope{}, authz.ErrMissingOrgContext)
			}
			tt.setupMocks(mockService, mockAuthorizer)

			mux := newTestMux(ctrl, mockService, mockAuthorizer, id)

			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			} else {
				body = strings.NewReader("")
			}
			req := httptest.NewRequest(tt.method, tt.target, body)
			if tt.name != "missing org context" {
				req.Header.Set(authz.OrgHeaderName, "org-1")
			}
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tt.expectedStatusCode, rr.Code)
			}
			if tt.expectedBodyPart != "" && !strings.Contains(rr.Body.String(), tt.expectedBodyPart) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBodyPart, rr.Body.String())
			}
		})
	}
}
