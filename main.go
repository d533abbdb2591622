package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/windeesel365/slab-tax/history"
	"github.com/windeesel365/slab-tax/ratelimit"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := setupLogging(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, closeStore := openHistoryStore(ctx, cfg)
	limiter, stopLimiter := openLimiter(ctx, cfg)
	cancel()
	defer closeStore()
	defer stopLimiter()

	if !cfg.adminEnabled() {
		log.Info("ADMIN_USERNAME, ADMIN_PASSWORD or JWT_SECRET not set, admin routes disabled")
	}

	e, err := newServer(NewHandler(cfg, store), limiter)
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Errorf("server stopped: %v", err)
		return
	case <-quit:
		log.Info("shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	log.Info("server exited")
}

// openHistoryStore prefers Postgres and falls back to memory when it is not
// configured or not reachable.
func openHistoryStore(ctx context.Context, cfg Config) (history.Store, func()) {
	if cfg.DatabaseURL == "" {
		log.Info("DATABASE_URL not set, keeping comparison history in memory")
		return history.NewMemoryStore(cfg.HistoryCapacity), func() {}
	}

	pg, err := history.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Warn("postgres unavailable, keeping comparison history in memory")
		return history.NewMemoryStore(cfg.HistoryCapacity), func() {}
	}
	log.Info("comparison history stored in postgres")
	return pg, func() {
		if err := pg.Close(); err != nil {
			log.WithError(err).Warn("close postgres")
		}
	}
}

// openLimiter returns nil when RATE_LIMIT is 0.
func openLimiter(ctx context.Context, cfg Config) (ratelimit.Limiter, func()) {
	if cfg.RateLimit == 0 {
		log.Info("rate limiting disabled")
		return nil, func() {}
	}

	if cfg.RedisAddr != "" {
		rdb, err := ratelimit.ConnectRedis(ctx, cfg.RedisAddr)
		if err == nil {
			log.Infof("rate limiting via redis at %s, %d requests/minute", cfg.RedisAddr, cfg.RateLimit)
			return ratelimit.NewRedisLimiter(rdb, cfg.RateLimit, time.Minute), func() { rdb.Close() }
		}
		log.WithError(err).Warn("redis unavailable, rate limiting in memory")
	}

	rl := ratelimit.NewMemoryLimiter(cfg.RateLimit, time.Minute)
	return rl, rl.Stop
}
