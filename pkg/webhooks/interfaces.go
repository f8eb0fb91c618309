// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/tempoworks/tempo/internal/types"
)

// OrgProvisionerInterface is the subset of the organization service used
// to provision a personal organization for a new identity.
type OrgProvisionerInterface interface {
	Create(ctx context.Context, identity types.Identity, name string) (*types.Organization, error)
}

// ServiceInterface defines the webhook service operations.
type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identityID, email string) error
}
