package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Cheertaboi/cart-pricing-service/internal/api"
	"github.com/Cheertaboi/cart-pricing-service/internal/api/middleware"
	"github.com/Cheertaboi/cart-pricing-service/internal/cache"
	"github.com/Cheertaboi/cart-pricing-service/internal/config"
	"github.com/Cheertaboi/cart-pricing-service/internal/observability"
	"github.com/Cheertaboi/cart-pricing-service/internal/repository"
	"github.com/Cheertaboi/cart-pricing-service/internal/service"
	"github.com/Cheertaboi/cart-pricing-service/pkg/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("service stopped with error", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var conn *sql.DB
	if cfg.Postgres.Enabled() {
		var err error
		conn, err = db.NewPostgresConnection(ctx, cfg.Postgres)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer conn.Close()
	}

	// Redis is shared between instances; without it loyalty balances are
	// cached in process.
	var redisStore *cache.RedisStore
	if conn != nil && cfg.Redis.Addr != "" {
		var err error
		redisStore, err = cache.NewRedisStore(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				logger.Warn("close redis", zap.Error(err))
			}
		}()
	}

	doc, err := catalogSource(cfg, conn, redisStore, logger).Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	cat, err := doc.Build()
	if err != nil {
		return err
	}
	campaign, err := cfg.Campaign.Resolve(cat.Campaign())
	if err != nil {
		return err
	}
	cat = cat.WithCampaign(campaign)

	deps := service.RegistryDeps{
		Catalog:       cat,
		DefaultPoints: cfg.Points.Default,
		Logger:        logger.Named("sessions"),
	}
	if conn != nil {
		var pointsStore cache.Store = cache.NewMemoryStore()
		if redisStore != nil {
			pointsStore = redisStore
		}
		deps.Points = repository.NewCachedPoints(repository.NewPointsRepo(conn), pointsStore, cfg.Redis.TTL, logger.Named("points"))
	}
	sessions, err := service.NewRegistry(deps)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(logger))
	r.Mount("/", api.NewRouter(sessions))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	logger.Info("starting cart-pricing-service",
		zap.String("addr", srv.Addr),
		zap.Int("products", len(cat.Products())),
		zap.Int("coupons", len(cat.Coupons())),
		zap.Bool("campaign_active", cat.Campaign().Active),
		zap.Bool("postgres", conn != nil),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	<-idleConnsClosed
	logger.Info("server stopped")
	return nil
}

// catalogSource picks Postgres when a database is configured, fronted by the
// Redis snapshot cache when one is connected. Otherwise the YAML file is used.
func catalogSource(cfg config.Config, conn *sql.DB, redisStore *cache.RedisStore, logger *zap.Logger) repository.CatalogSource {
	if conn == nil {
		return repository.FileSource{Path: cfg.Catalog.File}
	}
	var source repository.CatalogSource = repository.NewPostgresSource(conn)
	if redisStore == nil {
		return source
	}
	return repository.NewCachedSource(source, redisStore, cfg.Redis.TTL, logger.Named("catalog"))
}
