package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/sectool/internal/domain"
	"github.com/kailas-cloud/sectool/internal/metrics"
	chiTransport "github.com/kailas-cloud/sectool/internal/transport/chi"
	"github.com/kailas-cloud/sectool/internal/version"
)

func newServeCmd(apiKey *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the sec_api tool over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, *apiKey)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.serve(ctx)
		},
	}
}

// authKeys returns the inbound bearer keys, warning when prod runs without any.
func (a *app) authKeys() []domain.Credential {
	keys := a.cfg.Auth.Credentials()
	if len(keys) == 0 && a.env == "prod" {
		a.logger.Warn("Bearer auth disabled: no auth.api_keys configured",
			zap.String("env", a.env),
		)
	}
	return keys
}

func (a *app) serve(ctx context.Context) error {
	a.logger.Info("Starting sectool API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", a.env),
		zap.Int("http_port", a.cfg.HTTP.Port),
		zap.Bool("cache_enabled", a.cfg.Cache.Enabled),
	)

	server := chiTransport.NewServer(a.tool, a.health, a.logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(a.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(a.logger))
	r.Use(chiTransport.BearerAuthMiddleware(a.authKeys()))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", a.cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	a.logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Error during shutdown", zap.Error(err))
	}

	a.logger.Info("Server stopped gracefully")
	return nil
}
