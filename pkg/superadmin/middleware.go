// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package superadmin

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/tempoworks/tempo/internal/logging"
	"github.com/tempoworks/tempo/pkg/authentication"
)

const TokenCookieName = "tempo_super_token"

type Middleware struct {
	verifier    VerifierInterface
	jwtVerifier authentication.TokenVerifierInterface
	logger      logging.LoggerInterface
}

// NewMiddleware builds the gate for the super channel. jwtVerifier may
// be nil, in which case only the cookie token is accepted.
func NewMiddleware(verifier VerifierInterface, jwtVerifier authentication.TokenVerifierInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		verifier:    verifier,
		jwtVerifier: jwtVerifier,
		logger:      logger,
	}
}

// RequireSuperToken gates handlers on a valid super token cookie, or a
// bearer JWT issued to a service account. The super channel sits
// outside the membership model entirely, so nothing here touches
// organization scope.
func (m *Middleware) RequireSuperToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(TokenCookieName); err == nil {
				if err := m.verifier.Verify(cookie.Value, time.Now()); err == nil {
					next.ServeHTTP(w, r)
					return
				}
			}

			if m.jwtVerifier != nil {
				if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
					if _, err := m.jwtVerifier.VerifyToken(r.Context(), bearer); err == nil {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			m.logger.Security().AuthnFailure("unknown", "super-token")
			m.deniedResponse(w)
		})
	}
}

func (m *Middleware) deniedResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  http.StatusUnauthorized,
		"message": "unauthorized",
	})
}
