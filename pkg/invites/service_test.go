// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/tempoworks/tempo/internal/storage"
	"github.com/tempoworks/tempo/internal/types"
	"github.com/tempoworks/tempo/pkg/authz"
)

//go:generate mockgen -build_flags=--mod=mod -package invites -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invites -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invites -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invites -destination ./mock_db.go -source=../../internal/db/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invites -destination ./mock_invites.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invites -destination ./mock_authorizer.go -source=../authz/interfaces.go

type serviceMocks struct {
	storage  *MockStorageInterface
	db       *MockDBClientInterface
	identity *MockIdentityClientInterface
	logger   *MockLoggerInterface
	security *MockSecurityLoggerInterface
}

func newTestService(t *testing.T, ctrl *gomock.Controller, span string, lifetime time.Duration) (*Service, *serviceMocks) {
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

	service := NewService(mocks.storage, mocks.db, mocks.identity, lifetime, mockTracer, mockMonitor, mocks.logger)
	return service, mocks
}

// passthroughTx runs the transaction body with the given context, the way the
// real client does once a transaction is open.
func passthroughTx(db *MockDBClientInterface) {
	db.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestService_Create(t *testing.T) {
	scope := authz.Scope{UserID: "admin-1", OrgID: "org-1", Role: types.RoleAdmin}
	lifetime := 168 * time.Hour

	tests := []struct {
		name        string
		email       string
		setupMocks  func(*serviceMocks)
		expectedErr error
	}{
		{
			name:  "invited user already a member",
			email: "member@example.com",
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m.db)
				m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), "member@example.com").Return("user-2", nil)
				m.storage.EXPECT().GetMembership(gomock.Any(), "user-2", "org-1").Return(&types.Membership{}, nil)
			},
			expectedErr: ErrUserAlreadyMember,
		},
		{
			name:  "live pending invitation exists",
			email: "pending@example.com",
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m.db)
				m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), "pending@example.com").Return("", nil)
				m.storage.EXPECT().GetPendingInvitation(gomock.Any(), "org-1", "pending@example.com").Return(&types.Invitation{
					ID:        "inv-1",
					Status:    types.InvitePending,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil)
			},
			expectedErr: ErrInviteAlreadyExists,
		},
		{
			name:  "stale pending invitation is expired then replaced",
			email: "stale@example.com",
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m.db)
				m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), "stale@example.com").Return("", nil)
				m.storage.EXPECT().GetPendingInvitation(gomock.Any(), "org-1", "stale@example.com").Return(&types.Invitation{
					ID:        "inv-old",
					Status:    types.InvitePending,
					ExpiresAt: time.Now().Add(-time.Hour),
				}, nil)
				m.storage.EXPECT().ExpireInvitation(gomock.Any(), "inv-old").Return(nil)
				m.storage.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, invite *types.Invitation) (*types.Invitation, error) {
						invite.ID = "inv-new"
						return invite, nil
					})
				m.logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
			},
		},
		{
			name:  "no prior invitation",
			email: "  Fresh@Example.COM ",
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m.db)
				m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), "fresh@example.com").Return("", nil)
				m.storage.EXPECT().GetPendingInvitation(gomock.Any(), "org-1", "fresh@example.com").Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, invite *types.Invitation) (*types.Invitation, error) {
						if invite.Email != "fresh@example.com" {
							t.Errorf("expected normalized email, got %q", invite.Email)
						}
						if invite.InvitedBy != "admin-1" {
							t.Errorf("expected inviter admin-1, got %q", invite.InvitedBy)
						}
						if invite.Token == "" {
							t.Error("expected a token")
						}
						if remaining := time.Until(invite.ExpiresAt); remaining < lifetime-time.Minute || remaining > lifetime {
							t.Errorf("expected expiry about %v out, got %v", lifetime, remaining)
						}
						invite.ID = "inv-new"
						return invite, nil
					})
				m.logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
			},
		},
		{
			name:  "unique index backstop on racing creates",
			email: "race@example.com",
			setupMocks: func(m *serviceMocks) {
				passthroughTx(m.db)
				m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), "race@example.com").Return("", nil)
				m.storage.EXPECT().GetPendingInvitation(gomock.Any(), "org-1", "race@example.com").Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
			},
			expectedErr: ErrInviteAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, mocks := newTestService(t, ctrl, "invites.Service.Create", lifetime)
			tt.setupMocks(mocks)

			invite, err := service.Create(context.Background(), scope, tt.email, types.RoleStaff)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if invite == nil || invite.ID == "" {
				t.Fatal("expected a created invitation")
			}
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mocks := newTestService(t, ctrl, "invites.Service.List", time.Hour)

	scope := authz.Scope{UserID: "admin-1", OrgID: "org-1", Role: types.RoleAdmin}
	mocks.storage.EXPECT().ListInvitationsByOrgID(gomock.Any(), "org-1").Return([]*types.Invitation{
		{ID: "inv-1", Status: types.InvitePending, ExpiresAt: time.Now().Add(time.Hour)},
		{ID: "inv-2", Status: types.InvitePending, ExpiresAt: time.Now().Add(-time.Hour)},
		{ID: "inv-3", Status: types.InviteRevoked, ExpiresAt: time.Now().Add(-time.Hour)},
	}, nil)

	invitations, err := service.List(context.Background(), scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []types.InviteStatus{types.InvitePending, types.InviteExpired, types.InviteRevoked}
	for i, inv := range invitations {
		if inv.Status != expected[i] {
			t.Errorf("invitation %s: expected status %s, got %s", inv.ID, expected[i], inv.Status)
		}
	}
}

func TestService_Revoke(t *testing.T) {
	scope := authz.Scope{UserID: "admin-1", OrgID: "org-1", Role: types.RoleAdmin}

	tests := []struct {
		name        string
		setupMocks  func(*serviceMocks)
		expectedErr error
	}{
		{
			name: "unknown invitation",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").Return(nil, storage.ErrNotFound)
			},
			expectedErr: authz.ErrNotFound,
		},
		{
			name: "invitation of another organization reads as not found",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").Return(&types.Invitation{
					ID: "inv-1", OrgID: "org-2", Status: types.InvitePending, ExpiresAt: time.Now().Add(time.Hour),
				}, nil)
			},
			expectedErr: authz.ErrNotFound,
		},
		{
			name: "already accepted",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").Return(&types.Invitation{
					ID: "inv-1", OrgID: "org-1", Status: types.InviteAccepted, ExpiresAt: time.Now().Add(time.Hour),
				}, nil)
			},
			expectedErr: ErrInvalidInviteStatus,
		},
		{
			name: "expired pending",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").Return(&types.Invitation{
					ID: "inv-1", OrgID: "org-1", Status: types.InvitePending, ExpiresAt: time.Now().Add(-time.Hour),
				}, nil)
			},
			expectedErr: ErrInvalidInviteStatus,
		},
		{
			name: "concurrent transition wins the CAS",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").Return(&types.Invitation{
					ID: "inv-1", OrgID: "org-1", Status: types.InvitePending, ExpiresAt: time.Now().Add(time.Hour),
				}, nil)
				m.storage.EXPECT().RevokeInvitation(gomock.Any(), "inv-1").Return(storage.ErrNotFound)
			},
			expectedErr: ErrInvalidInviteStatus,
		},
		{
			name: "pending invitation revoked",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByID(gomock.Any(), "inv-1").Return(&types.Invitation{
					ID: "inv-1", OrgID: "org-1", Status: types.InvitePending, ExpiresAt: time.Now().Add(time.Hour),
				}, nil)
				m.storage.EXPECT().RevokeInvitation(gomock.Any(), "inv-1").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, mocks := newTestService(t, ctrl, "invites.Service.Revoke", time.Hour)
			tt.setupMocks(mocks)

			err := service.Revoke(context.Background(), scope, "inv-1")
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestService_Accept(t *testing.T) {
	identity := types.Identity{UserID: "user-2", Email: "invitee@example.com"}

	pendingInvite := func() *types.Invitation {
		return &types.Invitation{
			ID:        "inv-1",
			OrgID:     "org-1",
			Email:     "invitee@example.com",
			Role:      types.RoleStaff,
			Status:    types.InvitePending,
			ExpiresAt: time.Now().Add(time.Hour),
		}
	}

	tests := []struct {
		name        string
		setupMocks  func(*serviceMocks)
		expectedErr error
	}{
		{
			name: "unknown token",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrInviteNotFound,
		},
		{
			name: "already accepted",
			setupMocks: func(m *serviceMocks) {
				invite := pendingInvite()
				invite.Status = types.InviteAccepted
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(invite, nil)
			},
			expectedErr: ErrInvalidInviteStatus,
		},
		{
			name: "expired",
			setupMocks: func(m *serviceMocks) {
				invite := pendingInvite()
				invite.ExpiresAt = time.Now().Add(-time.Hour)
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(invite, nil)
			},
			expectedErr: ErrInviteExpired,
		},
		{
			name: "email mismatch is a recorded denial",
			setupMocks: func(m *serviceMocks) {
				invite := pendingInvite()
				invite.Email = "someone-else@example.com"
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(invite, nil)
				m.logger.EXPECT().Security().Return(m.security)
				m.security.EXPECT().AuthzFailure("user-2", "invite_accept:org-1")
			},
			expectedErr: ErrEmailMismatch,
		},
		{
			name: "concurrent accept wins the CAS",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(pendingInvite(), nil)
				passthroughTx(m.db)
				m.storage.EXPECT().AcceptInvitation(gomock.Any(), "inv-1", "user-2").Return(storage.ErrNotFound)
			},
			expectedErr: ErrInvalidInviteStatus,
		},
		{
			name: "invitee joined by other means since the invite",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(pendingInvite(), nil)
				passthroughTx(m.db)
				m.storage.EXPECT().AcceptInvitation(gomock.Any(), "inv-1", "user-2").Return(nil)
				m.storage.EXPECT().AddMember(gomock.Any(), "org-1", "user-2", types.RoleStaff).Return("", storage.ErrDuplicateKey)
			},
			expectedErr: ErrUserAlreadyMember,
		},
		{
			name: "accept grants the invited role",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(pendingInvite(), nil)
				passthroughTx(m.db)
				m.storage.EXPECT().AcceptInvitation(gomock.Any(), "inv-1", "user-2").Return(nil)
				m.storage.EXPECT().AddMember(gomock.Any(), "org-1", "user-2", types.RoleStaff).Return("member-1", nil)
				m.logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, mocks := newTestService(t, ctrl, "invites.Service.Accept", time.Hour)
			tt.setupMocks(mocks)

			membership, err := service.Accept(context.Background(), "tok", identity)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if membership.ID != "member-1" || membership.OrgID != "org-1" || membership.UserID != "user-2" || membership.Role != types.RoleStaff {
				t.Errorf("unexpected membership %+v", membership)
			}
		})
	}
}
