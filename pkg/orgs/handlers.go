// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package orgs

import (
	"encoding/json"
	"errors"
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
	mux.Route("/api/v0/orgs", func(r chi.Router) {
		r.Post("/", a.createOrg)
		r.Get("/", a.listMyOrgs)

		r.Group(func(r chi.Router) {
			r.Use(a.mw.RequireRole(types.RoleStaff))
			r.Get("/members", a.listMembers)
		})

		r.Group(func(r chi.Router) {
			r.Use(a.mw.RequireAdmin())
			r.Patch("/members/{userID}", a.updateMemberRole)
			r.Delete("/members/{userID}", a.removeMember)
		})

		r.Group(func(r chi.Router) {
			r.Use(a.mw.RequireRole(types.RoleClient))
			r.Post("/leave", a.leaveOrg)
		})
	})
}

type createOrgRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type organizationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

func toOrganizationResponse(org *types.Organization) organizationResponse {
	return organizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		Slug:      org.Slug,
		CreatedBy: org.CreatedBy,
		CreatedAt: org.CreatedAt.Format(time.RFC3339),
	}
}

func (a *API) createOrg(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "orgs.API.createOrg")
	defer span.End()

	id, ok := identity.FromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req createOrgRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	org, err := a.service.Create(ctx, id, req.Name)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			a.errorResponse(w, http.StatusConflict, err.Error())
			return
		}
		a.serviceError(w, err, "failed to create organization")
		return
	}

	a.jsonResponse(w, http.StatusCreated, toOrganizationResponse(org))
}

func (a *API) listMyOrgs(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "orgs.API.listMyOrgs")
	defer span.End()

	id, ok := identity.FromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	orgs, err := a.service.ListMine(ctx, id.UserID)
	if err != nil {
		a.serviceError(w, err, "failed to list organizations")
		return
	}

	resp := make([]organizationResponse, len(orgs))
	for i, org := range orgs {
		resp[i] = toOrganizationResponse(org)
	}

	a.jsonResponse(w, http.StatusOK, resp)
}

type memberResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "orgs.API.listMembers")
	defer span.End()

	scope, ok := authz.ScopeFromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusForbidden, "no organization scope")
		return
	}

	members, err := a.service.ListMembers(ctx, scope)
	if err != nil {
		a.serviceError(w, err, "failed to list members")
		return
	}

	resp := make([]memberResponse, len(members))
	for i, m := range members {
		resp[i] = memberResponse{
			UserID: m.UserID,
			Email:  m.Email,
			Role:   string(m.Role),
		}
	}

	a.jsonResponse(w, http.StatusOK, resp)
}

type updateMemberRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (a *API) updateMemberRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "orgs.API.updateMemberRole")
	defer span.End()

	scope, ok := authz.ScopeFromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusForbidden, "no organization scope")
		return
	}

	var req updateMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Ownership is never granted through role updates either.
	role, err := types.ParseInvitableRole(req.Role)
	if err != nil {
		a.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	membership, err := a.service.UpdateMemberRole(ctx, scope, chi.URLParam(r, "userID"), role)
	if err != nil {
		a.serviceError(w, err, "failed to update member role")
		return
	}

	a.jsonResponse(w, http.StatusOK, memberResponse{
		UserID: membership.UserID,
		Role:   string(membership.Role),
	})
}

func (a *API) removeMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "orgs.API.removeMember")
	defer span.End()

	scope, ok := authz.ScopeFromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusForbidden, "no organization scope")
		return
	}

	if err := a.service.RemoveMember(ctx, scope, chi.URLParam(r, "userID")); err != nil {
		a.serviceError(w, err, "failed to remove member")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) leaveOrg(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "orgs.API.leaveOrg")
	defer span.End()

	scope, ok := authz.ScopeFromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusForbidden, "no organization scope")
		return
	}

	if err := a.service.Leave(ctx, scope); err != nil {
		a.serviceError(w, err, "failed to leave organization")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) serviceError(w http.ResponseWriter, err error, logMsg string) {
	status := authz.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		a.logger.Errorf("%s: %v", logMsg, err)
		a.errorResponse(w, status, "internal error")
		return
	}
	a.errorResponse(w, status, err.Error())
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
