// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"testing"
	"time"
)

func TestInvitation_Expired(t *testing.T) {
	expiresAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	invite := &Invitation{Status: InvitePending, ExpiresAt: expiresAt}

	tests := []struct {
		name     string
		now      time.Time
		expected bool
	}{
		{"before expiry", expiresAt.Add(-time.Second), false},
		{"exactly at expiry", expiresAt, true},
		{"after expiry", expiresAt.Add(time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := invite.Expired(tt.now); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestInvitation_Acceptable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		invite   Invitation
		expected bool
	}{
		{"pending and live", Invitation{Status: InvitePending, ExpiresAt: now.Add(time.Hour)}, true},
		{"pending but expired", Invitation{Status: InvitePending, ExpiresAt: now.Add(-time.Hour)}, false},
		{"accepted", Invitation{Status: InviteAccepted, ExpiresAt: now.Add(time.Hour)}, false},
		{"revoked", Invitation{Status: InviteRevoked, ExpiresAt: now.Add(time.Hour)}, false},
		{"persisted expired", Invitation{Status: InviteExpired, ExpiresAt: now.Add(time.Hour)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.invite.Acceptable(now); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestInvitation_EffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		invite   Invitation
		expected InviteStatus
	}{
		{"pending and live", Invitation{Status: InvitePending, ExpiresAt: now.Add(time.Hour)}, InvitePending},
		{"pending past expiry", Invitation{Status: InvitePending, ExpiresAt: now.Add(-time.Hour)}, InviteExpired},
		{"accepted is terminal", Invitation{Status: InviteAccepted, ExpiresAt: now.Add(-time.Hour)}, InviteAccepted},
		{"revoked is terminal", Invitation{Status: InviteRevoked, ExpiresAt: now.Add(-time.Hour)}, InviteRevoked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.invite.EffectiveStatus(now); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestTask_ResourceContract(t *testing.T) {
	task := &Task{OrgID: "org-1", OwnerUserID: "user-1"}
	if task.ResourceOrgID() != "org-1" {
		t.Errorf("expected org-1, got %s", task.ResourceOrgID())
	}
	if task.ResourceOwnerID() != "user-1" {
		t.Errorf("expected user-1, got %s", task.ResourceOwnerID())
	}
}
