// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/tempoworks/tempo/internal/storage"
	"github.com/tempoworks/tempo/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authz -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authz -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authz -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authz -destination ./mock_authz.go -source=./interfaces.go

func TestAuthorizer_ResolveScope(t *testing.T) {
	tests := []struct {
		name          string
		userID        string
		orgRef        string
		setupMocks    func(*MockMembershipStoreInterface, *MockLoggerInterface, *MockSecurityLoggerInterface)
		expectedScope Scope
		expectedErr   error
	}{
		{
			name:   "missing org reference",
			userID: "user-1",
			orgRef: "",
			setupMocks: func(store *MockMembershipStoreInterface, logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
			},
			expectedErr: ErrMissingOrgContext,
		},
		{
			name:   "no membership",
			userID: "user-1",
			orgRef: "org-1",
			setupMocks: func(store *MockMembershipStoreInterface, logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				store.EXPECT().GetMembership(gomock.Any(), "user-1", "org-1").Return(nil, storage.ErrNotFound)
				logger.EXPECT().Security().Return(security)
				security.EXPECT().AuthzFailure("user-1", "org_scope:org-1")
			},
			expectedErr: ErrNoMembership,
		},
		{
			name:   "storage failure is not a denial",
			userID: "user-1",
			orgRef: "org-1",
			setupMocks: func(store *MockMembershipStoreInterface, logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				store.EXPECT().GetMembership(gomock.Any(), "user-1", "org-1").Return(nil, fmt.Errorf("connection reset"))
			},
		},
		{
			name:   "member resolves scope",
			userID: "user-1",
			orgRef: "org-1",
			setupMocks: func(store *MockMembershipStoreInterface, logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				store.EXPECT().GetMembership(gomock.Any(), "user-1", "org-1").Return(&types.Membership{OrgID: "org-1", UserID: "user-1", Role: types.RoleStaff}, nil)
			},
			expectedScope: Scope{UserID: "user-1", OrgID: "org-1", Role: types.RoleStaff},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := NewMockMembershipStoreInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "authz.Authorizer.ResolveScope").Return(ctx, trace.SpanFromContext(ctx))

			tt.setupMocks(mockStore, mockLogger, mockSecurity)

			authorizer := NewAuthorizer(mockStore, mockTracer, mockMonitor, mockLogger)

			scope, err := authorizer.ResolveScope(ctx, tt.userID, tt.orgRef)

			if tt.name == "storage failure is not a denial" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if errors.Is(err, ErrNoMembership) || errors.Is(err, ErrMissingOrgContext) {
					t.Errorf("storage failure must not map to a denial, got %v", err)
				}
				return
			}

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if scope != tt.expectedScope {
				t.Errorf("expected scope %+v, got %+v", tt.expectedScope, scope)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		resolved types.Role
		required types.Role
		allowed  bool
	}{
		{"owner passes admin", types.RoleOwner, types.RoleAdmin, true},
		{"admin passes admin", types.RoleAdmin, types.RoleAdmin, true},
		{"staff fails admin", types.RoleStaff, types.RoleAdmin, false},
		{"client fails staff", types.RoleClient, types.RoleStaff, false},
		{"client passes client", types.RoleClient, types.RoleClient, true},
		{"staff passes client", types.RoleStaff, types.RoleClient, true},
		{"admin fails owner", types.RoleAdmin, types.RoleOwner, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.resolved, tt.required)
			if tt.allowed && err != nil {
				t.Errorf("expected allow, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, ErrInsufficientRole) {
				t.Errorf("expected ErrInsufficientRole, got %v", err)
			}
		})
	}
}

func TestAuthorizer_EnforceRole(t *testing.T) {
	tests := []struct {
		name        string
		scope       Scope
		min         types.Role
		setupMocks  func(*MockLoggerInterface, *MockSecurityLoggerInterface)
		expectedErr error
	}{
		{
			name:       "sufficient role",
			scope:      Scope{UserID: "user-1", OrgID: "org-1", Role: types.RoleAdmin},
			min:        types.RoleStaff,
			setupMocks: func(logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {},
		},
		{
			name:  "denial is recorded",
			scope: Scope{UserID: "user-1", OrgID: "org-1", Role: types.RoleClient},
			min:   types.RoleAdmin,
			setupMocks: func(logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				logger.EXPECT().Security().Return(security)
				security.EXPECT().AuthzFailure("user-1", "require_role:org-1:admin")
			},
			expectedErr: ErrInsufficientRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := NewMockMembershipStoreInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "authz.Authorizer.EnforceRole").Return(ctx, trace.SpanFromContext(ctx))

			tt.setupMocks(mockLogger, mockSecurity)

			authorizer := NewAuthorizer(mockStore, mockTracer, mockMonitor, mockLogger)

			err := authorizer.EnforceRole(ctx, tt.scope, tt.min)
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestAuthorizer_CheckOwnership(t *testing.T) {
	task := &types.Task{ID: "task-1", OrgID: "org-1", OwnerUserID: "user-1"}

	tests := []struct {
		name        string
		scope       Scope
		setupMocks  func(*MockLoggerInterface, *MockSecurityLoggerInterface)
		expectedErr error
	}{
		{
			name:        "cross organization reads as not found",
			scope:       Scope{UserID: "user-1", OrgID: "org-2", Role: types.RoleOwner},
			setupMocks:  func(logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {},
			expectedErr: ErrNotFound,
		},
		{
			name:       "owner of resource",
			scope:      Scope{UserID: "user-1", OrgID: "org-1", Role: types.RoleClient},
			setupMocks: func(logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {},
		},
		{
			name:       "admin acts on another member's resource",
			scope:      Scope{UserID: "user-2", OrgID: "org-1", Role: types.RoleAdmin},
			setupMocks: func(logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {},
		},
		{
			name:  "staff blocked on another member's resource",
			scope: Scope{UserID: "user-2", OrgID: "org-1", Role: types.RoleStaff},
			setupMocks: func(logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				logger.EXPECT().Security().Return(security)
				security.EXPECT().AuthzFailure("user-2", "resource_ownership:org-1")
			},
			expectedErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := NewMockMembershipStoreInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "authz.Authorizer.CheckOwnership").Return(ctx, trace.SpanFromContext(ctx))

			tt.setupMocks(mockLogger, mockSecurity)

			authorizer := NewAuthorizer(mockStore, mockTracer, mockMonitor, mockLogger)

			err := authorizer.CheckOwnership(ctx, task, tt.scope)
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{ErrMissingOrgContext, 400},
		{ErrNoMembership, 403},
		{ErrInsufficientRole, 403},
		{ErrForbidden, 403},
		{ErrCannotModifyOwner, 403},
		{ErrNotFound, 404},
		{errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}
