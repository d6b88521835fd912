// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seller-onboarding/internal/config"
	"seller-onboarding/internal/infra/api"
	pg "seller-onboarding/internal/infra/db/postgres"
	"seller-onboarding/internal/infra/db/postgres/migrations"
	"seller-onboarding/internal/infra/logging"
	"seller-onboarding/internal/infra/metrics"
	red "seller-onboarding/internal/infra/redis"
	"seller-onboarding/internal/infra/storage"
	"seller-onboarding/internal/infra/web"
	"seller-onboarding/internal/usecase"
)

// Set at build time with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (verbose logs, unredacted PII)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	if cfg.Database.Migrate {
		m, err := migrations.NewMigrator(cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("migrator")
		}
		if err := m.Up(); err != nil {
			logger.Fatal().Err(err).Msg("migrations")
		}
	}
	go pg.ReportPoolStats(ctx, pool, 15*time.Second)

	// ---- Redis (optional, rate limiting only) ----
	var limiter api.Limiter
	if cfg.Redis.RateLimit > 0 {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		limiter = red.NewRateLimiter(redisClient, cfg.Redis.RateLimit, cfg.Redis.Window)
		logger.Info().Int("limit", cfg.Redis.RateLimit).Dur("window", cfg.Redis.Window).Msg("registration rate limit enabled")
	}

	// ---- Object storage ----
	uploader, err := storage.NewS3Uploader(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("s3 uploader")
	}

	// ---- Repositories ----
	taskerRepo := pg.NewPostgresTaskerRepo(pool)
	sellerRepo := pg.NewPostgresSellerRepo(pool)
	collectionRepo := pg.NewPostgresCollectionRepo(pool)
	productRepo := pg.NewPostgresProductRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Use cases ----
	registrationUC := usecase.NewRegistrationUseCase(
		taskerRepo, sellerRepo, collectionRepo, productRepo,
		uploader, txManager, cfg.Registration.ProductConcurrency, cfg.Runtime.Dev, logger,
	)

	// ---- Admin API (optional) ----
	var admin api.AdminRoutes
	if cfg.Admin.Enabled() {
		adminUC := usecase.NewAdminUseCase(taskerRepo, sellerRepo, collectionRepo, productRepo)
		auth := web.NewAuthManager(cfg.Admin.JWTSecret, !cfg.Runtime.Dev, cfg.Admin.SessionTTL)
		admin = web.NewServer(adminUC, cfg.Admin.APIKey, auth, logger, cfg.Runtime.Dev)
	} else {
		logger.Info().Msg("admin api disabled: admin.api_key or admin.jwt_secret not set")
	}

	// ---- HTTP server ----
	router := api.NewRouter(api.Options{
		Registration:   registrationUC,
		Admin:          admin,
		Limiter:        limiter,
		DB:             pool,
		BodyLimit:      cfg.Server.BodyLimitBytes,
		RequestTimeout: cfg.Server.RequestTimeout,
		Logger:         logger,
	})
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Str("version", version).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
		logger.Info().Msg("shutdown requested")
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
