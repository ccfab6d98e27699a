// Package main implements the KratoLib promo service: the REST backend for
// the promotional creative editor, the public landing pages and PNG exports.
package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	app "github.com/KratoLib/promo_service/internal/app"
	"github.com/KratoLib/promo_service/internal/app/httpapi"
	"github.com/KratoLib/promo_service/internal/app/metrics"
	"github.com/KratoLib/promo_service/internal/app/services/media"
	"github.com/KratoLib/promo_service/internal/app/storage/postgres"
	"github.com/KratoLib/promo_service/internal/config"
	"github.com/KratoLib/promo_service/internal/middleware"
	"github.com/KratoLib/promo_service/internal/platform/migrations"
	"github.com/KratoLib/promo_service/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/promo.yaml", "Path to config file")
	flag.Parse()

	log := logger.NewDefault("promoserver")
	cfg := config.LoadOrDefault(*configPath)

	stores := app.Stores{}
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.WithError(err).Error("open database")
			os.Exit(1)
		}
		defer db.Close()

		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := migrations.Apply(migrateCtx, db); err != nil {
			cancel()
			log.WithError(err).Error("apply migrations")
			os.Exit(1)
		}
		cancel()

		store := postgres.New(db)
		stores = app.Stores{Templates: store, Promotions: store, Releases: store}
		log.Info("using postgres storage")
	} else {
		log.Warn("DATABASE_URL not set; using in-memory storage")
	}

	var cache media.Cache
	if cfg.Redis.Addr != "" {
		cache = media.NewRedisCache(media.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB))
		log.WithField("addr", cfg.Redis.Addr).Info("using redis media cache")
	}

	application, err := app.New(stores, app.Options{
		MediaBaseURL: cfg.Media.BaseURL,
		MediaAPIKey:  cfg.Media.APIKey,
		MediaCache:   cache,
		MediaStats:   metrics.MediaStats{},
		FontPath:     cfg.Export.FontPath,
	}, log)
	if err != nil {
		log.WithError(err).Error("build application")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := application.Start(ctx); err != nil {
		log.WithError(err).Error("start application")
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/", httpapi.NewHandler(application))

	var handler http.Handler = mux
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		limiter.StartCleanup(time.Minute)
		handler = limiter.Handler(handler)
	}
	handler = middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins).Handler(handler)
	handler = metrics.InstrumentHandler(handler)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("promo service listening")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Error("server error")
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("server shutdown")
	}
	if err := application.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("application shutdown")
	}
}
