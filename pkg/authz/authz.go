// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/tempoworks/tempo/internal/logging"
	"github.com/tempoworks/tempo/internal/monitoring"
	"github.com/tempoworks/tempo/internal/storage"
	"github.com/tempoworks/tempo/internal/tracing"
	"github.com/tempoworks/tempo/internal/types"
)

var _ AuthorizerInterface = (*Authorizer)(nil)

type Authorizer struct {
	store MembershipStoreInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAuthorizer(store MembershipStoreInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	a := new(Authorizer)

	a.store = store
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}

// ResolveScope establishes the tenant boundary for a request. It is the sole
// place the active organization is derived; downstream code receives the
// returned Scope and must not re-derive it.
func (a *Authorizer) ResolveScope(ctx context.Context, userID, orgRef string) (Scope, error) {
	ctx, span := a.tracer.Start(ctx, "authz.Authorizer.ResolveScope")
	defer span.End()

	if orgRef == "" {
		return Scope{}, ErrMissingOrgContext
	}

	membership, err := a.store.GetMembership(ctx, userID, orgRef)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.logger.Security().AuthzFailure(userID, "org_scope:"+orgRef)
			return Scope{}, ErrNoMembership
		}
		return Scope{}, fmt.Errorf("failed to resolve scope: %w", err)
	}

	return Scope{
		UserID: userID,
		OrgID:  membership.OrgID,
		Role:   membership.Role,
	}, nil
}

// RequireRole is the pure ordinal comparison over the closed role set.
func RequireRole(resolved, required types.Role) error {
	if resolved.AtLeast(required) {
		return nil
	}
	return ErrInsufficientRole
}

// RequireAdmin is RequireRole with the privileged threshold.
func RequireAdmin(resolved types.Role) error {
	return RequireRole(resolved, types.RoleAdmin)
}

// EnforceRole applies RequireRole for a resolved scope, recording denials on
// the security channel.
func (a *Authorizer) EnforceRole(ctx context.Context, scope Scope, min types.Role) error {
	_, span := a.tracer.Start(ctx, "authz.Authorizer.EnforceRole")
	defer span.End()

	if err := RequireRole(scope.Role, min); err != nil {
		a.logger.Security().AuthzFailure(scope.UserID, fmt.Sprintf("require_role:%s:%s", scope.OrgID, min))
		return err
	}
	return nil
}

// CheckOwnership rules on a resource already loaded through an org-filtered
// query. Privileged roles may act on any in-org resource; everyone else only
// on resources they own. An org mismatch means the caller skipped the tenant
// filter and is reported as not found.
func (a *Authorizer) CheckOwnership(ctx context.Context, resource Resource, scope Scope) error {
	_, span := a.tracer.Start(ctx, "authz.Authorizer.CheckOwnership")
	defer span.End()

	if resource.ResourceOrgID() != scope.OrgID {
		return ErrNotFound
	}

	if scope.Role.Privileged() || resource.ResourceOwnerID() == scope.UserID {
		return nil
	}

	a.logger.Security().AuthzFailure(scope.UserID, "resource_ownership:"+scope.OrgID)
	return ErrForbidden
}
