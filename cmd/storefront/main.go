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

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/httpapi"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/memcommerce"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/shopify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("commerce_backend", cfg.Commerce.Backend),
		zap.String("session_backend", cfg.Session.Backend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Storefront stopped with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}

	log.Info("Server exited gracefully")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	reg := prometheus.NewRegistry()

	platform, err := newPlatform(cfg, reg, log)
	if err != nil {
		return err
	}

	sessions, closeSessions, err := newSessions(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	httpMetrics, err := httpapi.NewHTTPMetrics(reg)
	if err != nil {
		return fmt.Errorf("httpapi.NewHTTPMetrics: %w", err)
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := httpapi.NewHandler(platform, sessions,
		httpapi.WithPickerConfig(cfg.PickerViewConfig()),
		httpapi.WithSessionCookie(cfg.Session.CookieName, cfg.Session.TTL, cfg.App.Env == "production"),
	)

	srv := &http.Server{
		Addr: ":" + cfg.App.Port,
		Handler: httpapi.NewRouter(handler, httpapi.RouterConfig{
			Logger:   log,
			Metrics:  httpMetrics,
			Gatherer: reg,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("srv.ListenAndServe: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}
	return nil
}

func newPlatform(cfg *config.Config, reg prometheus.Registerer, log *zap.Logger) (port.CommercePlatform, error) {
	if cfg.Commerce.Backend == config.CommerceMemory {
		log.Warn("Serving the in-memory demo catalog")
		return memcommerce.New(memcommerce.DemoCatalog()...), nil
	}

	metrics, err := shopify.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("shopify.NewMetrics: %w", err)
	}

	client, err := shopify.New(cfg.ShopifyClientConfig(),
		shopify.WithMetrics(metrics),
		shopify.WithLogger(log.Named("shopify")),
	)
	if err != nil {
		return nil, fmt.Errorf("shopify.New: %w", err)
	}
	return client, nil
}

func newSessions(ctx context.Context, cfg *config.Config) (port.CartSessionRepository, func(), error) {
	switch cfg.Session.Backend {
	case config.SessionPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}

		repo, err := repository.NewCartSession(pool, cfg.Session.TTL)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("repository.NewCartSession: %w", err)
		}
		return repo, pool.Close, nil

	case config.SessionRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("client.Ping: %w", err)
		}

		repo, err := repository.NewRedisCartSession(client, cfg.Session.TTL)
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("repository.NewRedisCartSession: %w", err)
		}
		return repo, func() { _ = client.Close() }, nil
	}

	return repository.NewMemoryCartSession(cfg.Session.TTL), func() {}, nil
}
