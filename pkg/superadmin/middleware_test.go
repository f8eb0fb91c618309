// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package superadmin

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/tempoworks/tempo/pkg/authentication"
)

func TestMiddleware_RequireSuperToken(t *testing.T) {
	tests := []struct {
		name               string
		cookie             string
		authHeader         string
		withJWTVerifier    bool
		setupMocks         func(*MockVerifierInterface, *authentication.MockTokenVerifierInterface, *MockLoggerInterface, *MockSecurityLoggerInterface)
		expectedStatusCode int
	}{
		{
			name: "No credentials - rejects",
			setupMocks: func(verifier *MockVerifierInterface, jwt *authentication.MockTokenVerifierInterface, logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				logger.EXPECT().Security().Return(security)
				security.EXPECT().AuthnFailure("unknown", "super-token")
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "Invalid cookie token - rejects",
			cookie: "bad-token",
			setupMocks: func(verifier *MockVerifierInterface, jwt *authentication.MockTokenVerifierInterface, logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				verifier.EXPECT().Verify("bad-token", gomock.Any()).Return(ErrInvalidToken)
				logger.EXPECT().Security().Return(security)
				security.EXPECT().AuthnFailure("unknown", "super-token")
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "Valid cookie token",
			cookie: "good-token",
			setupMocks: func(verifier *MockVerifierInterface, jwt *authentication.MockTokenVerifierInterface, logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				verifier.EXPECT().Verify("good-token", gomock.Any()).Return(nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:            "Valid service account JWT",
			authHeader:      "Bearer service-jwt",
			withJWTVerifier: true,
			setupMocks: func(verifier *MockVerifierInterface, jwt *authentication.MockTokenVerifierInterface, logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				jwt.EXPECT().VerifyToken(gomock.Any(), "service-jwt").Return("svc-1", nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:            "Rejected JWT - rejects",
			authHeader:      "Bearer bad-jwt",
			withJWTVerifier: true,
			setupMocks: func(verifier *MockVerifierInterface, jwt *authentication.MockTokenVerifierInterface, logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				jwt.EXPECT().VerifyToken(gomock.Any(), "bad-jwt").Return("", fmt.Errorf("invalid token"))
				logger.EXPECT().Security().Return(security)
				security.EXPECT().AuthnFailure("unknown", "super-token")
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "Bearer JWT without configured verifier - rejects",
			authHeader: "Bearer service-jwt",
			setupMocks: func(verifier *MockVerifierInterface, jwt *authentication.MockTokenVerifierInterface, logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				logger.EXPECT().Security().Return(security)
				security.EXPECT().AuthnFailure("unknown", "super-token")
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:            "Expired cookie falls through to JWT",
			cookie:          "stale-token",
			authHeader:      "Bearer service-jwt",
			withJWTVerifier: true,
			setupMocks: func(verifier *MockVerifierInterface, jwt *authentication.MockTokenVerifierInterface, logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				verifier.EXPECT().Verify("stale-token", gomock.Any()).Return(ErrTokenExpired)
				jwt.EXPECT().VerifyToken(gomock.Any(), "service-jwt").Return("svc-1", nil)
			},
			expectedStatusCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockVerifier := NewMockVerifierInterface(ctrl)
			mockJWT := authentication.NewMockTokenVerifierInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			tt.setupMocks(mockVerifier, mockJWT, mockLogger, mockSecurity)

			var jwtVerifier authentication.TokenVerifierInterface
			if tt.withJWTVerifier {
				jwtVerifier = mockJWT
			}

			mw := NewMiddleware(mockVerifier, jwtVerifier, mockLogger)

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("success"))
			})

			req := httptest.NewRequest(http.MethodGet, "/super", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tt.cookie})
			}
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			mw.RequireSuperToken()(handler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tt.expectedStatusCode, rr.Code)
			}
		})
	}
}
