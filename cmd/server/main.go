// Package main initializes and starts the inspektor HTTP server, setting up
// configuration, logging, the database connection, repositories, services
// and handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/inspektor-hq/inspektor/internal/config"
	"github.com/inspektor-hq/inspektor/internal/db"
	"github.com/inspektor-hq/inspektor/internal/logger"
	"github.com/inspektor-hq/inspektor/internal/repository"
	"github.com/inspektor-hq/inspektor/internal/server/handler/http"
	"github.com/inspektor-hq/inspektor/internal/service"
	"github.com/inspektor-hq/inspektor/internal/token"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	// Token issuer for login and bearer-auth verification.
	tokenTTL, err := time.ParseDuration(options.TokenTTL)
	if err != nil {
		zapLogger.Fatal("invalid token ttl", zap.Error(err))
	}
	issuer, err := token.NewIssuer(options.JWTSecret, tokenTTL)
	if err != nil {
		zapLogger.Fatal("cannot init token issuer", zap.Error(err))
	}

	// Initialize repositories for users, cases and the home view.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	caseRepo := repository.NewPostgresCaseRepository(postgresDB)
	homeRepo := repository.NewPostgresHomeRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, issuer)
	caseService := service.NewCaseService(caseRepo, homeRepo)

	// Create HTTP handlers for auth and case endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	casesHandler := &http.CasesHandler{CaseService: caseService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, casesHandler, issuer, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	errs := make(chan error, 1)
	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
		errs <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	case sig := <-quit:
		zapLogger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zapLogger.Error("shutdown failed", zap.Error(err))
		}
	}
}
