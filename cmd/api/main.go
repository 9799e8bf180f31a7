package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yamdb/yamdb-backend/internal/api"
	"github.com/yamdb/yamdb-backend/internal/auth"
	"github.com/yamdb/yamdb-backend/internal/config"
	"github.com/yamdb/yamdb-backend/internal/db"
	"github.com/yamdb/yamdb-backend/internal/logger"
	"github.com/yamdb/yamdb-backend/internal/mailer"
	"github.com/yamdb/yamdb-backend/internal/metrics"
	"github.com/yamdb/yamdb-backend/internal/repository/postgres"
	"github.com/yamdb/yamdb-backend/internal/services"
	"github.com/yamdb/yamdb-backend/internal/worker"
)

func main() {
	cfg := config.Load()
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

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(cfg.MailWorkers)
	defer wp.Stop()

	var mail mailer.Mailer
	if cfg.AMQPURL != "" {
		mail = mailer.NewAMQPMailer(cfg.AMQPURL, cfg.MailQueue)
	} else {
		mail = &mailer.LogMailer{Log: log}
	}

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	r := api.NewRouter(api.RouterDeps{
		Cfg:        cfg,
		TM:         tm,
		AuthSvc:    services.NewAuthService(repos.Users, tm, mail, wp, cfg.MailFrom, log),
		UserSvc:    services.NewUserService(repos.Users),
		CatalogSvc: services.NewCatalogService(repos.Categories, repos.Genres, repos.Titles, repos.Reviews),
		ReviewSvc:  services.NewReviewService(repos.Reviews, repos.Comments, repos.Titles),
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
