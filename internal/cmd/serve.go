package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/citelens/citelens/internal/config"
	errwrap "github.com/citelens/citelens/internal/errors"
	"github.com/citelens/citelens/internal/metrics"
	"github.com/citelens/citelens/internal/observability"
	"github.com/citelens/citelens/internal/search"
	"github.com/citelens/citelens/internal/server"
	"github.com/citelens/citelens/internal/server/handlers"
)

// signalHealthChecker reports ready once shutdown and reload handlers are registered.
type signalHealthChecker struct{}

func (signalHealthChecker) CheckHealth(ctx context.Context) error {
	return nil
}

// telemetryHealthChecker ensures telemetry system and exporter are available
type telemetryHealthChecker struct{}

func (telemetryHealthChecker) CheckHealth(ctx context.Context) error {
	if observability.TelemetrySystem == nil || observability.PrometheusExporter == nil {
		return errwrap.NewInternalError("telemetry system not initialized")
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server with graceful shutdown support.

Routes:
  POST /api/search     resolve {"title": "..."} to OpenAlex works
  GET  /check-health   plain liveness ping
  GET  /public/*       web client assets from static.dir

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Re-read and validate the config file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		observability.InitServerLogger(config.AppName, cfg.Logging.Level, "")
		logger := observability.ServerLogger

		if cfg.Metrics.Enabled {
			if err := observability.InitMetrics(config.AppName, cfg.Metrics.Port); err != nil {
				logger.Error("Failed to initialize metrics", zap.Error(err))
				return errwrap.WrapInternal(cmd.Context(), err, "metrics initialization failed")
			}
			metrics.SetServerStartTime(time.Now().Unix())
		}

		client, err := search.NewClient(search.ClientOptions{
			BaseURL:   cfg.Upstream.BaseURL,
			Timeout:   cfg.Upstream.Timeout,
			Mailto:    cfg.Upstream.Mailto,
			UserAgent: cfg.Upstream.UserAgent,
			Logger:    logger,
		})
		if err != nil {
			return errwrap.WrapConfigInvalid(cmd.Context(), err, "invalid upstream configuration")
		}

		logger.Info("Initializing server",
			zap.String("service", config.AppName),
			zap.String("version", versionInfo.Version),
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
			zap.String("upstream", client.BaseURL.String()),
			zap.Duration("upstream_timeout", client.HTTPClient.Timeout),
			zap.Bool("metrics_enabled", cfg.Metrics.Enabled),
			zap.Int("metrics_port", observability.GetMetricsPort()))

		handlers.InitHealthManager(versionInfo.Version)
		hm := handlers.GetHealthManager()
		if !cfg.Health.Enabled {
			logger.Info("Health probes disabled; only /check-health is served")
		}
		hm.RegisterChecker("upstream_client", client)
		hm.RegisterChecker("signal_handlers", signalHealthChecker{})
		if cfg.Metrics.Enabled {
			hm.RegisterChecker("telemetry", telemetryHealthChecker{})
		}

		srv := server.New(server.Options{
			Host:           cfg.Server.Host,
			Port:           cfg.Server.Port,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			IdleTimeout:    cfg.Server.IdleTimeout,
			Resolver:       search.NewResolver(client, logger),
			StaticDir:      cfg.Static.Dir,
			AllowedOrigins: cfg.CORS.AllowedOrigins,

			DisableHealthProbes: !cfg.Health.Enabled,
		})

		shutdownTimeout := cfg.Server.ShutdownTimeout
		if shutdownTimeout == 0 {
			shutdownTimeout = 10 * time.Second
		}

		// Shutdown handlers run LIFO: server, then metrics, then logger.
		signals.OnShutdown(func(ctx context.Context) error {
			if err := logger.Sync(); err != nil {
				logger.Warn("Logger sync returned error (may be benign)", zap.Error(err))
			}
			return nil
		})

		signals.OnShutdown(func(ctx context.Context) error {
			if err := observability.ShutdownMetrics(); err != nil {
				logger.Warn("Failed to stop metrics exporter", zap.Error(err))
			}
			return nil
		})

		signals.OnShutdown(func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return errwrap.WrapInternal(ctx, err, "server shutdown failed")
			}
			logger.Info("HTTP server stopped gracefully")
			return nil
		})

		signals.OnReload(func(ctx context.Context) error {
			logger.Info("Received SIGHUP: attempting config reload")

			if err := viper.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if errors.As(err, &notFound) {
					logger.Info("No config file found - using defaults and environment variables")
					return nil
				}
				logger.Error("Failed to reload config file",
					zap.String("file", viper.ConfigFileUsed()),
					zap.Error(err))
				return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
			}

			if _, err := config.Load(viper.GetViper()); err != nil {
				logger.Error("Reloaded configuration is invalid", zap.Error(err))
				return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
			}

			// Listeners and the upstream client keep their settings until restart.
			logger.Info("Configuration reloaded; restart to apply server and upstream changes",
				zap.String("file", viper.ConfigFileUsed()))
			return nil
		})

		if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
			Window:  2 * time.Second,
			Message: "Press Ctrl+C again within 2 seconds to force quit",
		}); err != nil {
			logger.Warn("Failed to enable double-tap force quit", zap.Error(err))
		}

		errChan := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

		go func() {
			if err := signals.Listen(cmd.Context()); err != nil {
				logger.Error("Signal handler error", zap.Error(err))
				errChan <- err
			}
		}()

		if err := <-errChan; err != nil {
			return errwrap.WrapInternal(cmd.Context(), err, "server error")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")
	serveCmd.Flags().String("static-dir", "public", "directory served under /public/")
	serveCmd.Flags().String("upstream-url", "https://api.openalex.org", "OpenAlex API base URL")
	serveCmd.Flags().StringSlice("cors-origin", nil, "allowed CORS origin (repeatable; default any)")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("static.dir", serveCmd.Flags().Lookup("static-dir"))
	_ = viper.BindPFlag("upstream.base_url", serveCmd.Flags().Lookup("upstream-url"))
	_ = viper.BindPFlag("cors.allowed_origins", serveCmd.Flags().Lookup("cors-origin"))
}
