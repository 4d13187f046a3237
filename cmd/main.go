/*
Package main is the entry point for the user registration server.

It is responsible for loading configuration, building the logger, opening the user store
(running its migrations once), setting up the HTTP server and gracefully handling operating
system interrupt signals (SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"usergraph/internal/app/account"
	"usergraph/internal/app/db"
	"usergraph/internal/configs"
	"usergraph/internal/handler"
	"usergraph/internal/pkg/auth/jwt"
	"usergraph/internal/pkg/logx"
	"usergraph/internal/pkg/passwd"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, logFiles, err := logx.New(logx.Options{
		Development: cfg.IsDevelopment(),
		Level:       cfg.LogLevel,
		Dir:         cfg.LogDir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	err = run(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Server stopped with error")
	}

	if closeErr := logFiles.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Failed to close log files: %v\n", closeErr)
	}

	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *configs.AppConfig, logger zerolog.Logger) error {
	logger.Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("store_driver", cfg.StoreDriver).
		Str("password_hasher", cfg.PasswordHasher).
		Dur("token_ttl", cfg.TokenTTL).
		Bool("graphiql", cfg.GraphiQLEnabled).
		Msg("Configuration loaded successfully")

	if cfg.GeneratedSecret {
		logger.Warn().Msg("JWT_SECRET not set; using a random secret. Tokens will not survive a restart.")
	}
	if cfg.ExposePasswordHash {
		logger.Warn().Msg("EXPOSE_PASSWORD_HASH is enabled; User.password returns stored hashes.")
	}

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, db.Options{
		Driver:     cfg.StoreDriver,
		DSN:        cfg.DatabaseDSN,
		SQLitePath: cfg.SQLitePath,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to open user store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close user store")
		}
	}()

	hasher, err := passwd.New(cfg.PasswordHasher)
	if err != nil {
		return err
	}

	issuer := jwt.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	router := handler.Router(&handler.AppDeps{
		Config:   cfg,
		Logger:   logger,
		Accounts: account.NewService(store, hasher, issuer, logger),
		Store:    store,
		Issuer:   issuer,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Msgf("usergraph server starting on http://localhost%s/graphql", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("Server gracefully stopped.")
	return nil
}
