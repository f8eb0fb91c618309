// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/tempoworks/tempo/internal/config"
	"github.com/tempoworks/tempo/internal/db"
	"github.com/tempoworks/tempo/internal/identity"
	"github.com/tempoworks/tempo/internal/kratos"
	"github.com/tempoworks/tempo/internal/logging"
	"github.com/tempoworks/tempo/internal/monitoring/prometheus"
	"github.com/tempoworks/tempo/internal/storage"
	"github.com/tempoworks/tempo/internal/tracing"
	"github.com/tempoworks/tempo/pkg/authentication"
	"github.com/tempoworks/tempo/pkg/authz"
	"github.com/tempoworks/tempo/pkg/invites"
	"github.com/tempoworks/tempo/pkg/orgs"
	"github.com/tempoworks/tempo/pkg/superadmin"
	"github.com/tempoworks/tempo/pkg/tasks"
	"github.com/tempoworks/tempo/pkg/web"
	"github.com/tempoworks/tempo/pkg/webhooks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("tempo", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	kratosClient := kratos.NewClient(
		specs.KratosAdminURL,
		tracer,
		monitor,
		logger,
	)

	authorizer := authz.NewAuthorizer(s, tracer, monitor, logger)
	authzMiddleware := authz.NewMiddleware(authorizer, tracer, monitor, logger)

	orgsService := orgs.NewService(s, dbClient, kratosClient, specs.SuperUserID, tracer, monitor, logger)
	invitesService := invites.NewService(s, dbClient, kratosClient, specs.InvitationLifetime, tracer, monitor, logger)
	tasksService := tasks.NewService(s, authorizer, tracer, monitor, logger)
	webhooksService := webhooks.NewService(orgsService, tracer, monitor, logger)

	superVerifier, err := superadmin.NewVerifier(specs.SuperTokenSecret, specs.SuperTokenMaxAge)
	if err != nil {
		return fmt.Errorf("failed to create super token verifier: %v", err)
	}

	var jwtVerifier authentication.TokenVerifierInterface
	if specs.AuthenticationEnabled {
		jwtVerifier, err = authentication.NewJWTAuthenticator(
			context.Background(),
			specs.OIDCIssuer,
			specs.OIDCJWKSURL,
			specs.AllowedSubjects,
			specs.RequiredScope,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to create JWT authenticator: %v", err)
		}
	}
	superMiddleware := superadmin.NewMiddleware(superVerifier, jwtVerifier, logger)

	identityMiddleware := identity.NewMiddleware(tracer, monitor, logger)

	router := web.NewRouter(
		orgs.NewAPI(orgsService, authzMiddleware, tracer, monitor, logger),
		invites.NewAPI(invitesService, authzMiddleware, tracer, monitor, logger),
		tasks.NewAPI(tasksService, authzMiddleware, tracer, monitor, logger),
		superadmin.NewAPI(s, superMiddleware, tracer, monitor, logger),
		webhooks.NewAPI(webhooksService, logger),
		identityMiddleware,
		dbClient,
		specs.CORSAllowedOrigins,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
