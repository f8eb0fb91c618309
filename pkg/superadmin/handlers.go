// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package superadmin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tempoworks/tempo/internal/logging"
	"github.com/tempoworks/tempo/internal/monitoring"
	"github.com/tempoworks/tempo/internal/tracing"
	"github.com/tempoworks/tempo/internal/types"
)

type API struct {
	storage StorageInterface
	mw      *Middleware

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(storage StorageInterface, mw *Middleware, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		storage: storage,
		mw:      mw,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Route("/api/v0/super", func(r chi.Router) {
		r.Use(a.mw.RequireSuperToken())
		r.Get("/organizations", a.listOrganizations)
	})
}

type organizationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

func (a *API) listOrganizations(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "superadmin.API.listOrganizations")
	defer span.End()

	orgs, err := a.storage.ListOrganizations(ctx)
	if err != nil {
		a.logger.Errorf("failed to list organizations: %v", err)
		a.errorResponse(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := make([]organizationResponse, len(orgs))
	for i, org := range orgs {
		resp[i] = toOrganizationResponse(org)
	}

	a.jsonResponse(w, http.StatusOK, resp)
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
