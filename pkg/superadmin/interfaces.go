// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package superadmin

import (
	"context"
	"time"

	"github.com/tempoworks/tempo/internal/types"
)

type VerifierInterface interface {
	Mint(now time.Time) (string, error)
	Verify(token string, now time.Time) error
}

// StorageInterface is the subset of the storage layer the super channel
// needs. Lookups here deliberately cross organization boundaries.
type StorageInterface interface {
	ListOrganizations(ctx context.Context) ([]*types.Organization, error)
}
