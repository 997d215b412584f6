// Command ember-gateway starts the websocket gateway.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/emberchat/ember/internal/bus"
	"github.com/emberchat/ember/internal/gateway"
	"github.com/emberchat/ember/internal/repository/postgres"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration and starts the websocket gateway. Schema
// migrations are owned by the API server; the gateway only reads.
func main() {
	// Flags
	addr := flag.String("addr", ":14703", "listen address")
	dsn := flag.String("dsn", "", "PostgreSQL DSN (required)")
	jwtKey := flag.String("jwt-key", "", "HS256 signing key (required)")
	redisAddr := flag.String("redis", "127.0.0.1:6379", "Redis address")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", *addr),
	)

	if *dsn == "" {
		logger.Fatal("missing PostgreSQL DSN (--dsn)")
	}
	if *jwtKey == "" {
		logger.Fatal("missing jwt signing key (--jwt-key)")
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB pool
	db, err := postgres.New(ctx, *dsn)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	// Event bus
	rdb := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis ping", zap.Error(err))
	}
	eventBus := bus.NewRedis(rdb)

	serverRepo := postgres.NewServerRepo(db)
	memberRepo := postgres.NewMemberRepo(db)

	gw := gateway.New(eventBus, serverRepo, memberRepo, []byte(*jwtKey), logger)
	srv := &http.Server{Addr: *addr, Handler: gw}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", *addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
