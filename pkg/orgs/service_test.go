// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package orgs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/tempoworks/tempo/internal/storage"
	"github.com/tempoworks/tempo/internal/types"
	"github.com/tempoworks/tempo/pkg/authz"
)

//go:generate mockgen -build_flags=--mod=mod -package orgs -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package orgs -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package orgs -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package orgs -destination ./mock_db.go -source=../../internal/db/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package orgs -destination ./mock_orgs.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package orgs -destination ./mock_authorizer.go -source=../authz/interfaces.go

type serviceMocks struct {
	storage  *MockStorageInterface
	db       *MockDBClientInterface
	identity *MockIdentityClientInterface
	logger   *MockLoggerInterface
	security *MockSecurityLoggerInterface
}

func newTestService(t *testing.T, ctrl *gomock.Controller, span, superUserID string) (*Service, *serviceMocks) {
	t.Helper()

	mocks := &serviceMocks{
		storage:  NewMockStorageInterface(ctrl),
		db:       NewMockDBClientInterface(ctrl),
		identity: NewMockIdentityClientInterface(ctrl),
		logger:   NewMockLoggerInterface(ctrl),
		security: NewMockSecurityLoggerInterface(ctrl),
	}

	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	ctx := context.Background()
	mockTracer.EXPECT().Start(gomock.Any(), span).Return(ctx, trace.SpanFromContext(ctx))

	service := NewService(mocks.storage, mocks.db, mocks.identity, superUserID, mockTracer, mockMonitor, mocks.logger)
	return service, mocks
}

func passthroughTx(db *MockDBClientInterface) {
	db.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestService_Create(t *testing.T) {
	identity := types.Identity{UserID: "user-1", Email: "founder@example.com"}

	tests := []struct {
		name        string
		orgName     string
		setupMocks  func(*serviceMocks)
		expectedErr error
	}{
		{
			name:       "empty name",
			orgName:    "   ",
			setupMocks: func(m *serviceMocks) {},
		},
		{
			name:    "slug collision",
			orgName: "Acme Inc",
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m.db)
				m.storage.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
			},
			expectedErr: ErrSlugTaken,
		},
		{
			name:    "owner membership failure rolls the creation back",
			orgName: "Acme Inc",
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m.db)
				m.storage.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, org *types.Organization) (*types.Organization, error) {
						org.ID = "org-1"
						return org, nil
					})
				m.storage.EXPECT().AddMember(gomock.Any(), "org-1", "user-1", types.RoleOwner).Return("", fmt.Errorf("connection reset"))
			},
		},
		{
			name:    "creator becomes owner",
			orgName: "  Acme Inc  ",
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m.db)
				m.storage.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, org *types.Organization) (*types.Organization, error) {
						if org.Name != "Acme Inc" {
							t.Errorf("expected trimmed name, got %q", org.Name)
						}
						if org.Slug != "acme-inc" {
							t.Errorf("expected slug acme-inc, got %q", org.Slug)
						}
						if org.CreatedBy != "user-1" {
							t.Errorf("expected creator user-1, got %q", org.CreatedBy)
						}
						org.ID = "org-1"
						return org, nil
					})
				m.storage.EXPECT().AddMember(gomock.Any(), "org-1", "user-1", types.RoleOwner).Return("member-1", nil)
				m.logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, mocks := newTestService(t, ctrl, "orgs.Service.Create", "")
			tt.setupMocks(mocks)

			org, err := service.Create(context.Background(), identity, tt.orgName)

			switch tt.name {
			case "empty name", "owner membership failure rolls the creation back":
				if err == nil {
					t.Fatal("expected error, got nil")
				}
			case "slug collision":
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if org.ID != "org-1" {
					t.Errorf("expected org-1, got %q", org.ID)
				}
			}
		})
	}
}

func TestService_ListMembers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mocks := newTestService(t, ctrl, "orgs.Service.ListMembers", "super-1")

	scope := authz.Scope{UserID: "user-1", OrgID: "org-1", Role: types.RoleAdmin}
	mocks.storage.EXPECT().ListMembersByOrgID(gomock.Any(), "org-1").Return([]*types.Membership{
		{UserID: "user-1", Role: types.RoleOwner},
		{UserID: "super-1", Role: types.RoleAdmin},
		{UserID: "user-2", Role: types.RoleStaff},
	}, nil)
	mocks.identity.EXPECT().GetIdentityEmail(gomock.Any(), "user-1").Return("founder@example.com", nil)
	mocks.identity.EXPECT().GetIdentityEmail(gomock.Any(), "user-2").Return("", fmt.Errorf("identity deleted"))
	mocks.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	members, err := service.ListMembers(context.Background(), scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(members) != 2 {
		t.Fatalf("expected 2 members after filtering, got %d", len(members))
	}
	if members[0].UserID != "user-1" || members[0].Email != "founder@example.com" {
		t.Errorf("unexpected first member %+v", members[0])
	}
	if members[1].UserID != "user-2" || members[1].Email != "unknown" {
		t.Errorf("unexpected second member %+v", members[1])
	}
}

func TestService_UpdateMemberRole(t *testing.T) {
	scope := authz.Scope{UserID: "admin-1", OrgID: "org-1", Role: types.RoleAdmin}

	tests := []struct {
		name        string
		setupMocks  func(*serviceMocks)
		expectedErr error
	}{
		{
			name: "target is not a member",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "user-2", "org-1").Return(nil, storage.ErrNotFound)
			},
			expectedErr: authz.ErrNotFound,
		},
		{
			name: "owner membership is immutable",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "user-2", "org-1").Return(&types.Membership{
					OrgID: "org-1", UserID: "user-2", Role: types.RoleOwner,
				}, nil)
				m.logger.EXPECT().Security().Return(m.security)
				m.security.EXPECT().AuthzFailure("admin-1", "modify_owner:org-1")
			},
			expectedErr: authz.ErrCannotModifyOwner,
		},
		{
			name: "role updated",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "user-2", "org-1").Return(&types.Membership{
					OrgID: "org-1", UserID: "user-2", Role: types.RoleClient,
				}, nil)
				m.storage.EXPECT().UpdateMemberRole(gomock.Any(), "org-1", "user-2", types.RoleStaff).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, mocks := newTestService(t, ctrl, "orgs.Service.UpdateMemberRole", "")
			tt.setupMocks(mocks)

			membership, err := service.UpdateMemberRole(context.Background(), scope, "user-2", types.RoleStaff)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if membership.Role != types.RoleStaff {
				t.Errorf("expected role staff, got %s", membership.Role)
			}
		})
	}
}

func TestService_RemoveMember(t *testing.T) {
	scope := authz.Scope{UserID: "admin-1", OrgID: "org-1", Role: types.RoleAdmin}

	tests := []struct {
		name        string
		setupMocks  func(*serviceMocks)
		expectedErr error
	}{
		{
			name: "target is not a member",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "user-2", "org-1").Return(nil, storage.ErrNotFound)
			},
			expectedErr: authz.ErrNotFound,
		},
		{
			name: "owner cannot be removed",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "user-2", "org-1").Return(&types.Membership{
					OrgID: "org-1", UserID: "user-2", Role: types.RoleOwner,
				}, nil)
				m.logger.EXPECT().Security().Return(m.security)
				m.security.EXPECT().AuthzFailure("admin-1", "modify_owner:org-1")
			},
			expectedErr: authz.ErrCannotModifyOwner,
		},
		{
			name: "member removed",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "user-2", "org-1").Return(&types.Membership{
					OrgID: "org-1", UserID: "user-2", Role: types.RoleStaff,
				}, nil)
				m.storage.EXPECT().RemoveMember(gomock.Any(), "org-1", "user-2").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, mocks := newTestService(t, ctrl, "orgs.Service.RemoveMember", "")
			tt.setupMocks(mocks)

			err := service.RemoveMember(context.Background(), scope, "user-2")
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestService_Leave(t *testing.T) {
	tests := []struct {
		name        string
		scope       authz.Scope
		setupMocks  func(*serviceMocks)
		expectedErr error
	}{
		{
			name:        "owners cannot leave",
			scope:       authz.Scope{UserID: "user-1", OrgID: "org-1", Role: types.RoleOwner},
			setupMocks:  func(m *serviceMocks) {},
			expectedErr: authz.ErrCannotModifyOwner,
		},
		{
			name:  "member leaves",
			scope: authz.Scope{UserID: "user-2", OrgID: "org-1", Role: types.RoleStaff},
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().RemoveMember(gomock.Any(), "org-1", "user-2").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, mocks := newTestService(t, ctrl, "orgs.Service.Leave", "")
			tt.setupMocks(mocks)

			err := service.Leave(context.Background(), tt.scope)
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Acme Inc", "acme-inc"},
		{"  Spaced   Out  ", "spaced-out"},
		{"Already-Slugged", "already-slugged"},
		{"Symbols & Co.", "symbols-co"},
		{"123 Numbers", "123-numbers"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := slugify(tt.in); got != tt.expected {
				t.Errorf("slugify(%q): expected %q, got %q", tt.in, tt.expected, got)
			}
		})
	}
}
