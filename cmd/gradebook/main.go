package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gradebook/internal/auth"
	"gradebook/internal/config"
	internalhttp "gradebook/internal/http"
	"gradebook/internal/repository"
	"gradebook/internal/session"
	"gradebook/internal/storage"
)

func main() {
	addr := flag.String("addr", "", "host:port to listen on (overrides HTTP_ADDR)")
	flag.Parse()

	cfg := config.Load()
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("db open failed", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer db.Close()

	var sessions session.Store
	switch cfg.SessionBackend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			logger.Fatal("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close error", zap.Error(err))
			}
		}()
		sessions = session.NewRedisStore(redisClient, cfg.SessionTTL, logger)
	case "memory":
		sessions = session.NewMemoryStore(logger)
	default:
		logger.Fatal("unknown session backend", zap.String("backend", cfg.SessionBackend))
	}

	store := repository.NewStore(db.SQL)
	authenticator := auth.NewAuthenticator(store, sessions, logger)
	server, err := internalhttp.NewServer(cfg, store, authenticator, logger)
	if err != nil {
		logger.Fatal("server init failed", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("gradebook listening", zap.String("addr", cfg.HTTPAddr), zap.String("sessions", cfg.SessionBackend))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
}
