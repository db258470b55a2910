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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"loan-payment/config"
	httpLayer "loan-payment/http"
	"loan-payment/logger"
	"loan-payment/metrics"
	"loan-payment/repository"
	"loan-payment/service"
)

func newServeCmd() *cobra.Command {
	var cfgFile string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the loan calculator over HTTP",
		Long: `Starts the HTTP API.

Endpoints:
  POST /loan/calculate      monthly payment, total payment and total interest
  POST /loan/compare-terms  ranks whole-year terms by preference
  GET  /health              liveness
  GET  /metrics             Prometheus metrics

Settings come from the optional TOML file, a .env file and LOAN_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}

	serveCmd.Flags().StringVar(&cfgFile, "config", "", "TOML config file")
	return serveCmd
}

func runServe(cfg *config.Config) error {
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	calculator, err := service.Strategy(cfg.PowerStrategy)
	if err != nil {
		return err
	}

	ttl, err := cfg.CacheTTLDuration()
	if err != nil {
		return err
	}

	cache, closeCache, err := newCache(cfg.RedisAddr, ttl, log)
	if err != nil {
		return err
	}
	defer closeCache()

	m := metrics.New()
	loanService := service.NewLoanService(calculator, cache, m, log)
	termComparisonService := service.NewTermComparisonService(loanService, log)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr: cfg.Addr,
		Handler: httpLayer.NewRouter(httpLayer.RouterConfig{
			LoanService:           loanService,
			TermComparisonService: termComparisonService,
			RateLimiter:           rateLimiter,
			Metrics:               m,
			CORSOrigins:           cfg.CORSOrigins,
			Log:                   log,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("strategy", calculator.Name()).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-quit:
		log.Info().Msg("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("Server exited")
	return nil
}

// newCache returns a Redis cache when addr is set, otherwise an in-memory one.
func newCache(addr string, ttl time.Duration, log zerolog.Logger) (repository.CacheRepository, func(), error) {
	if addr == "" {
		log.Info().Dur("ttl", ttl).Msg("using in-memory result cache")
		return repository.NewMemoryCache(ttl), func() {}, nil
	}

	rc := repository.NewRedisCache(addr, ttl)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	log.Info().Str("addr", addr).Dur("ttl", ttl).Msg("using redis result cache")
	return rc, func() {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("closing redis client")
		}
	}, nil
}
