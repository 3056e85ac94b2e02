package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deadlyfingers/ARStudioGame/internal/config"
	"github.com/deadlyfingers/ARStudioGame/internal/logger"
	"github.com/deadlyfingers/ARStudioGame/internal/server"
)

func main() {
	cfg := config.LoadServer()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	store := openStore(cfg)
	r := server.Router(cfg, store)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("match service started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down match service")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", "error", err)
	}
}

// openStore picks postgres, redis or memory depending on what is configured.
func openStore(cfg *config.ServerConfig) server.Store {
	if cfg.DatabaseURL != "" {
		store, err := server.NewPGStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("postgres connect failed", "error", err)
		}
		logger.Info("using postgres store")
		return store
	}
	if cfg.RedisAddr != "" {
		store := server.NewRedisStore(cfg.RedisAddr)
		if err := store.Ping(context.Background()); err != nil {
			logger.Fatal("redis connect failed", "addr", cfg.RedisAddr, "error", err)
		}
		logger.Info("using redis store", "addr", cfg.RedisAddr)
		return store
	}
	logger.Info("using in-memory store")
	return server.NewMemoryStore()
}
