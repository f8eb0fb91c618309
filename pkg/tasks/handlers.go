// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

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
	mux.Route("/api/v0/tasks", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(a.mw.RequireRole(types.RoleClient))
			r.Get("/", a.listTasks)
			r.Get("/{id}", a.getTask)
		})

		r.Group(func(r chi.Router) {
			r.Use(a.mw.RequireRole(types.RoleStaff))
			r.Post("/", a.createTask)
			r.Put("/{id}", a.updateTask)
			r.Delete("/{id}", a.deleteTask)
		})
	})
}

type taskRequest struct {
	Title string `json:"title" validate:"required,max=500"`
	Done  bool   `json:"done"`
}

type taskResponse struct {
	ID          string `json:"id"`
	OrgID       string `json:"org_id"`
	OwnerUserID string `json:"owner_user_id"`
	Title       string `json:"title"`
	Done        bool   `json:"done"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toTaskResponse(task *types.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		OrgID:       task.OrgID,
		OwnerUserID: task.OwnerUserID,
		Title:       task.Title,
		Done:        task.Done,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
}

func (a *API) createTask(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tasks.API.createTask")
	defer span.End()

	scope, ok := authz.ScopeFromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusForbidden, "no organization scope")
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := a.service.Create(ctx, scope, req.Title)
	if err != nil {
		a.serviceError(w, err, "failed to create task")
		return
	}

	a.jsonResponse(w, http.StatusCreated, toTaskResponse(task))
}

func (a *API) getTask(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tasks.API.getTask")
	defer span.End()

	scope, ok := authz.ScopeFromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusForbidden, "no organization scope")
		return
	}

	task, err := a.service.Get(ctx, scope, chi.URLParam(r, "id"))
	if err != nil {
		a.serviceError(w, err, "failed to get task")
		return
	}

	a.jsonResponse(w, http.StatusOK, toTaskResponse(task))
}

func (a *API) listTasks(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tasks.API.listTasks")
	defer span.End()

	scope, ok := authz.ScopeFromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusForbidden, "no organization scope")
		return
	}

	tasks, err := a.service.List(ctx, scope)
	if err != nil {
		a.serviceError(w, err, "failed to list tasks")
		return
	}

	resp := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		resp[i] = toTaskResponse(task)
	}

	a.jsonResponse(w, http.StatusOK, resp)
}

func (a *API) updateTask(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tasks.API.updateTask")
	defer span.End()

	scope, ok := authz.ScopeFromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusForbidden, "no organization scope")
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := a.service.Update(ctx, scope, chi.URLParam(r, "id"), req.Title, req.Done)
	if err != nil {
		a.serviceError(w, err, "failed to update task")
		return
	}

	a.jsonResponse(w, http.StatusOK, toTaskResponse(task))
}

func (a *API) deleteTask(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tasks.API.deleteTask")
	defer span.End()

	scope, ok := authz.ScopeFromContext(ctx)
	if !ok {
		a.errorResponse(w, http.StatusForbidden, "no organization scope")
		return
	}

	if err := a.service.Delete(ctx, scope, chi.URLParam(r, "id")); err != nil {
		a.serviceError(w, err, "failed to delete task")
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
