// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package superadmin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/tempoworks/tempo/internal/types"
)

func TestAPI_ListOrganizations(t *testing.T) {
	tests := []struct {
		name               string
		cookie             string
		setupMocks         func(*MockVerifierInterface, *MockStorageInterface, *MockLoggerInterface, *MockSecurityLoggerInterface)
		expectedStatusCode int
		expectedBodyPart   string
	}{
		{
			name: "no token - rejects",
			setupMocks: func(verifier *MockVerifierInterface, storage *MockStorageInterface, logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				logger.EXPECT().Security().Return(security)
				security.EXPECT().AuthnFailure("unknown", "super-token")
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "valid token lists every organization",
			cookie: "good-token",
			setupMocks: func(verifier *MockVerifierInterface, storage *MockStorageInterface, logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				verifier.EXPECT().Verify("good-token", gomock.Any()).Return(nil)
				storage.EXPECT().ListOrganizations(gomock.Any()).Return([]*types.Organization{
					{ID: "org-1", Name: "Acme Inc", Slug: "acme-inc"},
					{ID: "org-2", Name: "Globex", Slug: "globex"},
				}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedBodyPart:   `"slug":"globex"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockVerifier := NewMockVerifierInterface(ctrl)
			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
					return ctx, trace.SpanFromContext(ctx)
				}).AnyTimes()

			tt.setupMocks(mockVerifier, mockStorage, mockLogger, mockSecurity)

			mw := NewMiddleware(mockVerifier, nil, mockLogger)

			mux := chi.NewMux()
			NewAPI(mockStorage, mw, mockTracer, mockMonitor, mockLogger).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/super/organizations", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tt.cookie})
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
