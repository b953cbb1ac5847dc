package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roadready/driving-school-api/internal/api"
	"github.com/roadready/driving-school-api/internal/appointment"
	"github.com/roadready/driving-school-api/internal/config"
	"github.com/roadready/driving-school-api/internal/db"
	redisclient "github.com/roadready/driving-school-api/internal/redis"
	"github.com/roadready/driving-school-api/internal/roster"
)

const version = "1.0.0"

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	slog.Info("api-server starting up", slog.String("version", version))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load error", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.HTTPPort),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		slog.Error("postgres connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pgPool.Close()
	slog.Info("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		slog.Error("redis connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			slog.Warn("error closing redis", slog.Any("error", err))
		}
	}()
	slog.Info("connected to Redis")

	rosterRepo := roster.NewPgRepository(pgPool)
	rosterSvc := roster.NewService(rosterRepo)

	apptRepo := appointment.NewPgRepository(pgPool)
	locker := redisclient.NewRedisInstructorLocker(rdb, cfg.LockTTL)
	apptSvc := appointment.NewService(apptRepo, locker)

	router := api.NewRouter(api.RouterConfig{
		Appointments:   apptSvc,
		Roster:         rosterSvc,
		PgPool:         pgPool,
		Redis:          rdb,
		JWTSecret:      cfg.JWTSecret,
		AccessTokenTTL: cfg.AccessTokenTTL,
		LoginLimiter:   api.NewRateLimiter(cfg.LoginRateRPS, cfg.LoginRateBurst),
		Env:            cfg.Env,
		Version:        version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("listening", slog.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
		slog.Info("shutdown signal received")
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.Any("error", err))
	}

	slog.Info("api-server stopped")
}
