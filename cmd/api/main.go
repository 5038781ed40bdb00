package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jadeniji/ideaboard-backend/internal/api"
	"github.com/jadeniji/ideaboard-backend/internal/auth"
	"github.com/jadeniji/ideaboard-backend/internal/config"
	"github.com/jadeniji/ideaboard-backend/internal/db"
	"github.com/jadeniji/ideaboard-backend/internal/logger"
	"github.com/jadeniji/ideaboard-backend/internal/metrics"
	"github.com/jadeniji/ideaboard-backend/internal/middleware"
	"github.com/jadeniji/ideaboard-backend/internal/models"
	"github.com/jadeniji/ideaboard-backend/internal/repository"
	"github.com/jadeniji/ideaboard-backend/internal/repository/memory"
	"github.com/jadeniji/ideaboard-backend/internal/repository/postgres"
	"github.com/jadeniji/ideaboard-backend/internal/seed"
	"github.com/jadeniji/ideaboard-backend/internal/services"
	"github.com/jadeniji/ideaboard-backend/internal/session"
	"github.com/jadeniji/ideaboard-backend/internal/worker"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		ideas      repository.Ideas
		users      repository.Users
		activities repository.Activities
	)
	switch cfg.StoreBackend {
	case "postgres":
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("db connect", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if os.Getenv("APP_MIGRATE") == "true" {
			if err := db.RunMigrations(ctx, pool); err != nil {
				log.Error("migrations", "err", err)
				os.Exit(1)
			}
		}
		repos := postgres.NewRepositories(pool)
		ideas, users, activities = repos.Ideas, repos.Users, repos.Activities
	default:
		repos := memory.NewRepositories()
		if err := seed.Apply(repos.Ideas, repos.Users, time.Now()); err != nil {
			log.Error("seed", "err", err)
			os.Exit(1)
		}
		ideas, users, activities = repos.Ideas, repos.Users, repos.Activities
	}

	var sessions session.Store
	if cfg.RedisURL != "" {
		rs, err := session.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Error("redis connect", "err", err)
			os.Exit(1)
		}
		defer rs.Close()
		sessions = rs
	} else {
		sessions = session.NewMemoryStore()
	}

	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, accessTTL, refreshTTL)

	ideaSvc := services.NewIdeaService(ideas, activities, wp, log)
	userSvc := services.NewUserService(users, sessions, tm, log)
	statsSvc := services.NewStatsService(ideas, activities)
	modSvc := services.NewModerationService(ideaSvc)

	now := time.Now()
	mine := staticSource(seed.MyIdeas(now))
	adminPicks := staticSource(seed.AdminIdeas(now))
	popular := staticSource(seed.PopularIdeas(now))
	feedSvc := services.NewFeedService(ideaSvc, mine, adminPicks, popular, log)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:        cfg,
		Ideas:      ideaSvc,
		Feed:       feedSvc,
		Stats:      statsSvc,
		Moderation: modSvc,
		Users:      userSvc,
		AuthMW:     middleware.NewAuthMiddleware(tm),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "backend", cfg.StoreBackend)
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

// staticSource adapts a fixture dataset into a feed source.
func staticSource(data []models.Idea) func(context.Context, string) ([]models.Idea, error) {
	return func(_ context.Context, _ string) ([]models.Idea, error) {
		return models.CloneIdeas(data), nil
	}
}
