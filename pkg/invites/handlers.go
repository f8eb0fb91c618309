// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tempoworks/tempo/internal/identity"
	"github.com/tempoworks/tempo/internal/logging"
	"github.com/tempoworks/tempo/internal/monitoring"
	"github.com/tempoworks/tempo/internal/tracing"
	"github.com/tempoworks/tempo/internal/types"
	"github.com/tempoworks/tempo/pkg/authz"
)

type API struct {
	service  ServiceInterface
	validate *validator.Validate
	mw       *authz.Middleware

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, mw *authz.Middleware, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		validate: validator.New(),
		mw:       mw,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Route("/api/v0/invites", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(a.mw.RequireAdmin())
			r.Post("/", a.createInvite)
			r.Get("/", a.listInvites)
			r.Delete("/{id}", a.revokeInvite)
		})
		// Accepting needs only an authenticated identity; the caller has no
		// membership yet, so no org scope is resolved.
		r.Post("/accept", a.acceptInvite)
	})
}

type createInviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

type invitationResponse struct {
	ID         string  `json:"id"`
	OrgID      string  `json:"org_id"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Status     string  `json:"status"`
	InvitedBy  string  `json:"invited_by"`
	Token      string  `json:"token,omitempty"`
	ExpiresAt  string  `json:"expires_at"`
	CreatedAt  string  `json:"created_at"`
	AcceptedBy *string `json:"accepted_by,omitempty"`
}

func toInvitationResponse(inv *types.Invitation, includeToken bool) invitationResponse {
	resp := invitationResponse{
		ID:         inv.ID,
		OrgID:      inv.OrgID,
		Email:      inv.Email,
		Role:       string(inv.Role),
		Status:     string(inv.Status),
		InvitedBy:  inv.InvitedBy,
		ExpiresAt:  inv.ExpiresAt.Format(time.RFC3339),
		CreatedAt:  inv.CreatedAt.Format(time.RFC3339),
		AcceptedBy: inv.AcceptedBy,
	}
	if includeToken {
		resp.Token = inv.Token
	}
	return resp
}

func (a *API) createInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invites.API.createInvite")
	defer span.End()

	scope, ok := authz.ScopeFromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusForbidden, "no organization scope")
		return
	}

	var req createInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	role, err := types.ParseInvitableRole(req.Role)
	if err != nil {
		a.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	invite, err := a.service.Create(ctx, scope, req.Email, role)
	if err != nil {
		a.serviceError(w, err, "failed to create invitation")
		return
	}

	// The token is surfaced once, to the privileged caller; delivery to the
	// invitee is their concern.
	a.jsonResponse(w, http.StatusCreated, toInvitationResponse(invite, true))
}

func (a *API) listInvites(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invites.API.listInvites")
	defer span.End()

	scope, ok := authz.ScopeFromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusForbidden, "no organization scope")
		return
	}

	invitations, err := a.service.List(ctx, scope)
	if err != nil {
		a.serviceError(w, err, "failed to list invitations")
		return
	}

	resp := make([]invitationResponse, len(invitations))
	for i, inv := range invitations {
		resp[i] = toInvitationResponse(inv, false)
	}

	a.jsonResponse(w, http.StatusOK, resp)
}

func (a *API) revokeInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invites.API.revokeInvite")
	defer span.End()

	scope, ok := authz.ScopeFromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusForbidden, "no organization scope")
		return
	}

	if err := a.service.Revoke(ctx, scope, chi.URLParam(r, "id")); err != nil {
		a.serviceError(w, err, "failed to revoke invitation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type acceptInviteRequest struct {
	Token string `json:"token" validate:"required"`
}

func (a *API) acceptInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invites.API.acceptInvite")
	defer span.End()

	id, ok := identity.FromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req acceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	membership, err := a.service.Accept(ctx, req.Token, id)
	if err != nil {
		a.serviceError(w, err, "failed to accept invitation")
		return
	}

	a.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"org_id": membership.OrgID,
		"role":   string(membership.Role),
	})
}

func (a *API) serviceError(w http.ResponseWriter, err error, logMsg string) {
	status := HTTPStatus(err)
	switch status {
	case http.StatusInternalServerError:
		a.logger.Errorf("%s: %v", logMsg, err)
		a.errorResponse(w, status, "internal error")
	case http.StatusGone:
		// Expired and missing invitations must read identically.
		a.errorResponse(w, status, "invitation not found or expired")
	default:
		a.errorResponse(w, status, err.Error())
	}
}

func (a *API) errorResponse(w http.ResponseWriter, status int, message string) {
	a.jsonResponse(w, status, map[string]interface{}{
		"status":  status,
		"message": message,
	})
}

func (a *API) jsonResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}
