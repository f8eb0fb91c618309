// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package superadmin

import (
	"errors"
	"strings"
	"testing"
	"time"
)

//go:generate mockgen -build_flags=--mod=mod -package superadmin -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package superadmin -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package superadmin -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package superadmin -destination ./mock_superadmin.go -source=./interfaces.go

func TestNewVerifier(t *testing.T) {
	if _, err := NewVerifier("", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}

	if _, err := NewVerifier("secret", time.Hour); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestVerifier_MintAndVerify(t *testing.T) {
	verifier, err := NewVerifier("secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	token, err := verifier.Mint(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name        string
		token       string
		at          time.Time
		expectedErr error
	}{
		{"fresh token", token, now.Add(time.Minute), nil},
		{"at the issue instant", token, now, nil},
		{"just inside the window", token, now.Add(time.Hour), nil},
		{"past the window", token, now.Add(time.Hour + time.Second), ErrTokenExpired},
		{"issued in the future", token, now.Add(-time.Minute), ErrInvalidToken},
		{"missing separator", strings.ReplaceAll(token, ".", ""), now, ErrInvalidToken},
		{"non-numeric timestamp", "notatime." + strings.SplitN(token, ".", 2)[1], now, ErrInvalidToken},
		{"tampered mac", strings.SplitN(token, ".", 2)[0] + ".deadbeef", now, ErrInvalidToken},
		{"empty token", "", now, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifier.Verify(tt.token, tt.at)
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestVerifier_RejectsForeignSecret(t *testing.T) {
	minter, _ := NewVerifier("secret-a", time.Hour)
	verifier, _ := NewVerifier("secret-b", time.Hour)

	now := time.Now()
	token, err := minter.Mint(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := verifier.Verify(token, now); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
