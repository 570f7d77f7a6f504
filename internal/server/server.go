// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

// Package server wires the configuration, storage, services and routes
// into a running HTTP API.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/lesgardiens/boardclub/internal/config"
	"codeberg.org/lesgardiens/boardclub/internal/database"
	"codeberg.org/lesgardiens/boardclub/internal/handlers"
	"codeberg.org/lesgardiens/boardclub/internal/repository"
	"codeberg.org/lesgardiens/boardclub/internal/services/auth"
	"codeberg.org/lesgardiens/boardclub/internal/services/email"
	"codeberg.org/lesgardiens/boardclub/internal/services/session"
	"codeberg.org/lesgardiens/boardclub/internal/services/token"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	repo := repository.New(db)

	if count, countErr := repo.CountUsers(ctx); countErr == nil {
		slog.Info("database ready", "users", count)
		if count == 0 {
			slog.Warn("no accounts registered yet")
		}
	}

	// Services
	tokens := token.NewService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTL)*time.Hour,
		time.Duration(cfg.Auth.VerificationTTL)*time.Hour,
	)

	sessions, err := session.NewManager(&cfg.Session, isHTTPS(cfg))
	if err != nil {
		return fmt.Errorf("failed to set up sessions: %w", err)
	}

	// Outgoing mail is optional: without an SMTP host the queue drops
	// messages with a log line instead of failing requests.
	var sender email.Sender
	if cfg.SMTP.Host != "" {
		mailService, mailErr := email.NewService(&cfg.SMTP, cfg.Server.BaseURL)
		if mailErr != nil {
			return fmt.Errorf("failed to set up mail: %w", mailErr)
		}
		sender = mailService
	} else {
		slog.Warn("SMTP not configured, outgoing mail disabled")
	}
	queue := email.NewQueue(sender, 64)

	authService := auth.NewService(repo, tokens, queue, cfg.Server.BaseURL, cfg.Auth.RequireVerifiedEmail)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg)
	setupRoutes(e, handlers.New(repo, authService, sessions), tokens, repo)

	return startWithGracefulShutdown(e, cfg, queue)
}

func isHTTPS(cfg *config.Config) bool {
	return len(cfg.Server.BaseURL) >= 8 && cfg.Server.BaseURL[:8] == "https://"
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config, queue *email.Queue) error {
	tlsResult, err := setupTLS(cfg)
	if err != nil {
		return fmt.Errorf("TLS setup failed: %w", err)
	}

	errChan := make(chan error, 2)
	var httpServer *http.Server

	switch tlsResult.Mode {
	case tlsModeOff:
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		go func() {
			slog.Info("server running", "url", cfg.Server.BaseURL)
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

	case tlsModeACME:
		go func() {
			slog.Info("server running", "url", cfg.Server.BaseURL)
			if err := startTLSServer(e, ":443", tlsResult.TLSConfig); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

		// HTTP server on :80 answers ACME challenges and redirects to HTTPS.
		httpServer = &http.Server{
			Addr:              ":80",
			Handler:           tlsResult.HTTPHandler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

	case tlsModeManual:
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		go func() {
			slog.Info("server running", "url", cfg.Server.BaseURL)
			if err := startTLSServer(e, addr, tlsResult.TLSConfig); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}
	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown redirect server", "error", err)
		}
	}

	// Deliver what is still queued before exiting.
	queue.Close(shutdownCtx)

	slog.Info("server stopped")
	return nil
}

// startTLSServer starts the Echo server with a custom TLS configuration.
func startTLSServer(e *echo.Echo, addr string, tlsConfig *tls.Config) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return err
	}
	e.TLSListener = tls.NewListener(ln, tlsConfig)
	e.TLSServer.TLSConfig = tlsConfig
	return e.Server.Serve(e.TLSListener)
}
