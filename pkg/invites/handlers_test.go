// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

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

func TestAPI_CreateInvite(t *testing.T) {
	id := types.Identity{UserID: "admin-1", Email: "admin@example.com"}
	adminScope := authz.Scope{UserID: "admin-1", OrgID: "org-1", Role: types.RoleAdmin}

	tests := []struct {
		name               string
		body               string
		setupMocks         func(*MockServiceInterface, *MockAuthorizerInterface)
		expectedStatusCode int
		expectedBodyPart   string
	}{
		{
			name: "invitation created with token",
			body: `{"email":"invitee@example.com","role":"staff"}`,
			setupMocks: func(service *MockServiceInterface, authorizer *MockAuthorizerInterface) {
				authorizer.EXPECT().ResolveScope(gomock.Any(), "admin-1", "org-1").Return(adminScope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), adminScope, types.RoleAdmin).Return(nil)
				service.EXPECT().Create(gomock.Any(), adminScope, "invitee@example.com", types.RoleStaff).Return(&types.Invitation{
					ID: "inv-1", OrgID: "org-1", Email: "invitee@example.com", Role: types.RoleStaff,
					Status: types.InvitePending, Token: "tok-1",
				}, nil)
			},
			expectedStatusCode: http.StatusCreated,
			expectedBodyPart:   `"token":"tok-1"`,
		},
		{
			name: "owner role cannot be granted",
			body: `{"email":"invitee@example.com","role":"owner"}`,
			setupMocks: func(service *MockServiceInterface, authorizer *MockAuthorizerInterface) {
				authorizer.EXPECT().ResolveScope(gomock.Any(), "admin-1", "org-1").Return(adminScope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), adminScope, types.RoleAdmin).Return(nil)
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			body: `{"email":"not-an-email","role":"staff"}`,
			setupMocks: func(service *MockServiceInterface, authorizer *MockAuthorizerInterface) {
				authorizer.EXPECT().ResolveScope(gomock.Any(), "admin-1", "org-1").Return(adminScope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), adminScope, types.RoleAdmin).Return(nil)
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name: "duplicate live invitation",
			body: `{"email":"invitee@example.com","role":"staff"}`,
			setupMocks: func(service *MockServiceInterface, authorizer *MockAuthorizerInterface) {
				authorizer.EXPECT().ResolveScope(gomock.Any(), "admin-1", "org-1").Return(adminScope, nil)
				authorizer.EXPECT().EnforceRole(gomock.Any(), adminScope, types.RoleAdmin).Return(nil)
				service.EXPECT().Create(gomock.Any(), adminScope, "invitee@example.com", types.RoleStaff).Return(nil, ErrInviteAlreadyExists)
			},
			expectedStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockAuthorizer := NewMockAuthorizerInterface(ctrl)
			tt.setupMocks(mockService, mockAuthorizer)

			mux := newTestMux(ctrl, mockService, mockAuthorizer, id)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/invites", strings.NewReader(tt.body))
			req.Header.Set(authz.OrgHeaderName, "org-1")
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

func TestAPI_ListInvites_OmitsTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := types.Identity{UserID: "admin-1", Email: "admin@example.com"}
	adminScope := authz.Scope{UserID: "admin-1", OrgID: "org-1", Role: types.RoleAdmin}

	mockService := NewMockServiceInterface(ctrl)
	mockAuthorizer := NewMockAuthorizerInterface(ctrl)

	mockAuthorizer.EXPECT().ResolveScope(gomock.Any(), "admin-1", "org-1").Return(adminScope, nil)
	mockAuthorizer.EXPECT().EnforceRole(gomock.Any(), adminScope, types.RoleAdmin).Return(nil)
	mockService.EXPECT().List(gomock.Any(), adminScope).Return([]*types.Invitation{
		{ID: "inv-1", OrgID: "org-1", Email: "a@example.com", Role: types.RoleStaff, Status: types.InvitePending, Token: "secret-token"},
	}, nil)

	mux := newTestMux(ctrl, mockService, mockAuthorizer, id)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/invites", nil)
	req.Header.Set(authz.OrgHeaderName, "org-1")
	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "secret-token") {
		t.Error("listing must not expose invitation tokens")
	}
}

func TestAPI_AcceptInvite(t *testing.T) {
	id := types.Identity{UserID: "user-2", Email: "invitee@example.com"}

	tests := []struct {
		name               string
		body               string
		setupMocks         func(*MockServiceInterface)
		expectedStatusCode int
		expectedBodyPart   string
	}{
		{
			name: "accepted",
			body: `{"token":"tok-1"}`,
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Accept(gomock.Any(), "tok-1", id).Return(&types.Membership{
					OrgID: "org-1", UserID: "user-2", Role: types.RoleStaff,
				}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedBodyPart:   `"org_id":"org-1"`,
		},
		{
			name: "expired and unknown read identically",
			body: `{"token":"tok-1"}`,
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Accept(gomock.Any(), "tok-1", id).Return(nil, ErrInviteExpired)
			},
			expectedStatusCode: http.StatusGone,
			expectedBodyPart:   "invitation not found or expired",
		},
		{
			name: "unknown token",
			body: `{"token":"tok-1"}`,
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Accept(gomock.Any(), "tok-1", id).Return(nil, ErrInviteNotFound)
			},
			expectedStatusCode: http.StatusGone,
			expectedBodyPart:   "invitation not found or expired",
		},
		{
			name: "email mismatch",
			body: `{"token":"tok-1"}`,
			setupMocks: func(service *MockServiceInterface) {
				service.EXPECT().Accept(gomock.Any(), "tok-1", id).Return(nil, ErrEmailMismatch)
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:               "missing token",
			body:               `{}`,
			setupMocks:         func(service *MockServiceInterface) {},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockAuthorizer := NewMockAuthorizerInterface(ctrl)
			tt.setupMocks(mockService)

			mux := newTestMux(ctrl, mockService, mockAuthorizer, id)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/invites/accept", strings.NewReader(tt.body))
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

func TestNewInviteToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := newInviteToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(token) < 40 {
			t.Fatalf("token %q looks too short", token)
		}
		if seen[token] {
			t.Fatal("duplicate token generated")
		}
		seen[token] = true
	}
}
