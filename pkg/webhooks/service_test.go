// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/tempoworks/tempo/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_webhooks.go -source=./interfaces.go

func TestService_HandleRegistration(t *testing.T) {
	tests := []struct {
		name       string
		identityID string
		email      string
		setupMocks func(*MockOrgProvisionerInterface)
		wantErr    bool
	}{
		{
			name:       "empty identity ID",
			identityID: "",
			email:      "new@example.com",
			setupMocks: func(orgs *MockOrgProvisionerInterface) {},
			wantErr:    true,
		},
		{
			name:       "empty email",
			identityID: "user-1",
			email:      "",
			setupMocks: func(orgs *MockOrgProvisionerInterface) {},
			wantErr:    true,
		},
		{
			name:       "provisioning failure",
			identityID: "user-1",
			email:      "new@example.com",
			setupMocks: func(orgs *MockOrgProvisionerInterface) {
				orgs.EXPECT().Create(gomock.Any(), types.Identity{UserID: "user-1", Email: "new@example.com"}, "new@example.com's Org").
					Return(nil, fmt.Errorf("connection reset"))
			},
			wantErr: true,
		},
		{
			name:       "personal organization provisioned",
			identityID: "user-1",
			email:      "new@example.com",
			setupMocks: func(orgs *MockOrgProvisionerInterface) {
				orgs.EXPECT().Create(gomock.Any(), types.Identity{UserID: "user-1", Email: "new@example.com"}, "new@example.com's Org").
					Return(&types.Organization{ID: "org-1"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockOrgs := NewMockOrgProvisionerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "webhooks.Service.HandleRegistration").Return(ctx, trace.SpanFromContext(ctx))
			mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
			mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()

			tt.setupMocks(mockOrgs)

			service := NewService(mockOrgs, mockTracer, mockMonitor, mockLogger)

			err := service.HandleRegistration(ctx, tt.identityID, tt.email)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
