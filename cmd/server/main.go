// Command ember-server starts the HTTP API server.
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
	"github.com/emberchat/ember/internal/migrate"
	"github.com/emberchat/ember/internal/repository/postgres"
	"github.com/emberchat/ember/internal/server/rest"
	"github.com/emberchat/ember/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, runs migrations, and starts the HTTP API.
func main() {
	// Flags
	addr := flag.String("addr", ":14702", "listen address")
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

	if err := migrate.Up(ctx, *dsn); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

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

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	serverRepo := postgres.NewServerRepo(db)
	channelRepo := postgres.NewChannelRepo(db)
	memberRepo := postgres.NewMemberRepo(db)
	messageRepo := postgres.NewMessageRepo(db)
	inviteRepo := postgres.NewInviteRepo(db)

	// Services
	sessionSvc := service.NewSessionService(userRepo, sessionRepo, []byte(*jwtKey))
	chatSvc := service.NewChatService(
		serverRepo, channelRepo, memberRepo, messageRepo, inviteRepo,
		bus.NewPublisher(eventBus, logger),
	)

	api := rest.New(sessionSvc, chatSvc, []byte(*jwtKey), logger)
	srv := &http.Server{Addr: *addr, Handler: api}

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
