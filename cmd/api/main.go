package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nmalet/blog-backend/internal/api"
	"github.com/nmalet/blog-backend/internal/auth"
	"github.com/nmalet/blog-backend/internal/config"
	"github.com/nmalet/blog-backend/internal/db"
	"github.com/nmalet/blog-backend/internal/logger"
	"github.com/nmalet/blog-backend/internal/media"
	"github.com/nmalet/blog-backend/internal/metrics"
	"github.com/nmalet/blog-backend/internal/repository/postgres"
	"github.com/nmalet/blog-backend/internal/services"
	"github.com/nmalet/blog-backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	mediaStore, err := media.NewS3Store(ctx, cfg)
	if err != nil {
		log.Error("media store", "err", err)
		os.Exit(1)
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTSecret)
	userSvc := services.NewUserService(repos.Users, repos.Activity, wp)
	progression := services.NewProgressionService(repos.Users, repos.Activity, wp)
	postSvc := services.NewPostService(repos.Posts, progression, repos.Activity, wp)

	r := api.NewRouter(api.RouterDeps{
		Cfg:     cfg,
		TM:      tm,
		Users:   repos.Users,
		UserSvc: userSvc,
		PostSvc: postSvc,
		Media:   mediaStore,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
