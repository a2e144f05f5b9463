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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/cache"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/clients"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/config"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/events"
	httpapi "github.com/AgustinVitali/Frontend-Cafeteria/internal/http"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/identity"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/metrics"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/session"
)

func main() {
	cfg := config.Load()

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("cafeteria-web stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Base HTTP client (shared)
	sharedHTTP := &http.Client{
		Timeout:   cfg.UpstreamTimeout,
		Transport: m.InstrumentTransport(http.DefaultTransport),
	}
	base := clients.NewClient("cafeteria-api", cfg.APIBaseURL, sharedHTTP)
	catalog := clients.NewCatalogClient(base)

	deps := httpapi.Deps{
		Logger:    logger,
		Cfg:       cfg,
		Verifier:  verifier,
		Sessions:  session.NewStore(),
		Menu:      catalog,
		Catalog:   catalog,
		Orders:    clients.NewOrderClient(base),
		Users:     clients.NewUserClient(base),
		Publisher: events.NopPublisher{},
		Metrics:   m,
		HealthProbes: []clients.HealthProbe{
			{Name: "cafeteria-api", Client: base, Path: "/public/menu"},
		},
	}

	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		defer rdb.Close()

		menuCache := cache.NewMenuCache(rdb, catalog, cfg.MenuCacheTTL, logger.Named("menu-cache"))
		deps.Menu = menuCache
		deps.MenuCache = menuCache
		logger.Info("menu cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.MenuCacheTTL))
	}

	if cfg.RabbitMQURL != "" {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		pub, err := events.NewRabbitPublisher(conn, events.WithCounter(m.Events))
		if err != nil {
			return err
		}
		defer pub.Close()
		deps.Publisher = pub
		logger.Info("order events enabled", zap.String("exchange", events.EventsExchange))
	}

	go deps.Sessions.RunJanitor(ctx, cfg.SessionSweepInterval, cfg.SessionIdleTimeout, logger.Named("sessions"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

func newVerifier(cfg config.Config) (*identity.Verifier, error) {
	vc := identity.VerifierConfig{
		Issuer:     cfg.AuthIssuer,
		Audience:   cfg.AuthAudience,
		RolesClaim: cfg.AuthRolesClaim,
	}
	if cfg.AuthRSAPublicKeyFile != "" {
		pem, err := os.ReadFile(cfg.AuthRSAPublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read AUTH_RSA_PUBLIC_KEY_FILE: %w", err)
		}
		key, err := identity.ParseRSAPublicKey(pem)
		if err != nil {
			return nil, fmt.Errorf("parse AUTH_RSA_PUBLIC_KEY_FILE: %w", err)
		}
		vc.RSAPublicKey = key
	} else {
		vc.HMACSecret = []byte(cfg.AuthHS256Secret)
	}
	return identity.NewVerifier(vc)
}
