// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"fmt"

	"github.com/tempoworks/tempo/internal/logging"
	"github.com/tempoworks/tempo/internal/monitoring"
	"github.com/tempoworks/tempo/internal/tracing"
	"github.com/tempoworks/tempo/internal/types"
)

type Service struct {
	orgs OrgProvisionerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	orgs OrgProvisionerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		orgs:    orgs,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// HandleRegistration provisions a personal organization for a freshly
// registered identity, with the identity as its owner.
func (s *Service) HandleRegistration(ctx context.Context, identityID, email string) error {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	s.logger.Debugf("Handling registration for identity %s with email %s", identityID, email)

	if identityID == "" || email == "" {
		return fmt.Errorf("identity ID or email is empty")
	}

	orgName := fmt.Sprintf("%s's Org", email)
	identity := types.Identity{UserID: identityID, Email: email}

	org, err := s.orgs.Create(ctx, identity, orgName)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	s.logger.Infof("Successfully provisioned organization %s for user %s", org.ID, identityID)
	return nil
}
