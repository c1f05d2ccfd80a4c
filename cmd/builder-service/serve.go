package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"canon-builder/internal/common/config"
	"canon-builder/internal/common/logger"
	"canon-builder/internal/common/observability"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting builder service...", zap.String("config", cfg.String()))
	if config.EnvFileLoaded != "" {
		zapLog.Info("Loaded environment file", zap.String("path", config.EnvFileLoaded))
	}

	var obsOpts []observability.Option
	if cfg.Tracing.Enabled {
		obsOpts = append(obsOpts, observability.WithJaeger(cfg.Tracing.JaegerEndpoint, cfg.Tracing.SampleRatio))
	}
	obs := observability.New(cfg.App.Name, obsOpts...)
	defer obs.Shutdown()

	a, err := newApp(cfg, log, obs)
	if err != nil {
		return err
	}
	handler, err := a.apiHandler()
	if err != nil {
		return err
	}

	// The port may still be held by a previous instance during a rolling restart.
	var ln net.Listener
	err = retryWithBackoff(ctx, func() error {
		var err error
		ln, err = net.Listen("tcp", cfg.Server.Address())
		return err
	}, 5, 500*time.Millisecond, log, "HTTP listener bind")
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      handler.Routes(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.GetDuration(cfg.Server.IdleTimeout),
	}
	return serve(ctx, srv, ln, config.GetDuration(cfg.Server.ShutdownTimeout), log)
}

// serve runs srv on ln until ctx is cancelled, then drains in-flight
// requests for at most shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration, log logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"address": ln.Addr().String()})
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received, draining requests...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", map[string]interface{}{"error": err})
		return err
	}

	log.Info("Builder service stopped gracefully", nil)
	return nil
}
