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

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/Dalfonso062004/gestion-productos/internal/app/di"
	"github.com/Dalfonso062004/gestion-productos/internal/app/router"
	infradb "github.com/Dalfonso062004/gestion-productos/internal/platform/db"
	jwtmw "github.com/Dalfonso062004/gestion-productos/internal/platform/jwt"
	"github.com/Dalfonso062004/gestion-productos/internal/platform/logger"
	infraredis "github.com/Dalfonso062004/gestion-productos/internal/platform/redis"
)

const defaultPort = "3000"

func main() {
	// .envがあれば読み込む（本番では環境変数を直接使用）
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
	logger.Setup(logger.LoadConfig())

	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// JWT
	jwtCfg, err := jwtmw.LoadConfigFromEnv()
	if err != nil {
		return err
	}

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	// Redis
	redisCfg := infraredis.LoadConfig()
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(context.Background(), redisCfg); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}()
	}

	// ルータ生成
	engine, err := di.NewEngine(di.Deps{
		DB:       db,
		Redis:    rdb,
		JWT:      jwtCfg,
		CacheTTL: redisCfg.CacheTTL,
		Router:   router.LoadConfig(),
	})
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 終了シグナル（CTRL+Cなど）を待つ
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	slog.Info("Shutting down the server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	slog.Info("Server shut down successfully")
	return nil
}
