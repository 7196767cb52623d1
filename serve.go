package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"emi-calculator/config"
	httpLayer "emi-calculator/http"
	"emi-calculator/logger"
	"emi-calculator/repository"
	"emi-calculator/service"
)

func newServeCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format))
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (default is ./config.yaml)")
	return cmd
}

// serve runs the API until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	cache, closeCache := newCache(ctx, cfg, log)
	defer closeCache()

	loanService := service.NewLoanService(cache, log, cfg.Cache.TTL)
	loanHandler := httpLayer.NewLoanHandler(loanService, log)

	var limiter *httpLayer.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillInterval)
		defer limiter.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      httpLayer.NewRouter(loanHandler, limiter, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("api listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("error starting server: %w", err)
	case <-ctx.Done():
		log.Info("shutting down server", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}

	log.Info("server exited", nil)
	return nil
}

// newCache builds the configured cache backend. An unreachable Redis is
// logged but not fatal; lookups then fail over to computing directly.
func newCache(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.CacheRepository, func()) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		rc := repository.NewRedisCache(cfg.Redis)

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			log.WithError(err).Warn("redis unavailable, continuing without warm cache", map[string]interface{}{
				"address": cfg.Redis.Address,
			})
		}

		return rc, func() {
			if err := rc.Close(); err != nil {
				log.WithError(err).Warn("error closing redis", nil)
			}
		}
	case config.CacheBackendMemory:
		mc := repository.NewMemoryCache()
		return mc, mc.Stop
	}
	return nil, func() {}
}
