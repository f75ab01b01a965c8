package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fareline/fareline/config"
	"github.com/fareline/fareline/internal/adapter/bookingstream"
	httpserver "github.com/fareline/fareline/internal/adapter/http/server"
	"github.com/fareline/fareline/internal/adapter/postgres"
	"github.com/fareline/fareline/internal/adapter/quotecache"
	"github.com/fareline/fareline/internal/provider"
	"github.com/fareline/fareline/internal/service/auth"
	"github.com/fareline/fareline/internal/service/booking"
	"github.com/fareline/fareline/internal/service/quotes"
	"github.com/fareline/fareline/pkg/logger"
	postgresclient "github.com/fareline/fareline/pkg/postgres"
	rabbitclient "github.com/fareline/fareline/pkg/rabbit"
	redisclient "github.com/fareline/fareline/pkg/redis"
	"github.com/fareline/fareline/pkg/trm"
)

// App wires every adapter and service together and owns their lifecycle.
type App struct {
	postgresDB *postgresclient.PostgreDB
	rabbitMQ   *rabbitclient.RabbitMQ
	httpServer *httpserver.API

	cfg config.Config
	log logger.Logger
}

func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	// storage
	db, err := postgresclient.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := postgresclient.Migrate("file://"+cfg.Migrations.Path, cfg.Database.GetDSN()); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	redisClient, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	rabbitMQ, err := rabbitclient.New(ctx, cfg.RabbitMQ.GetDSN(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	txManager := trm.New(db.Pool)

	// repositories
	userRepo := postgres.NewUserRepo(db.Pool)
	refreshRepo := postgres.NewRefreshTokenRepo(db.Pool)
	bookingRepo := postgres.NewBookingRepo(db.Pool)
	eventRepo := postgres.NewBookingEventRepo(db.Pool)
	quoteCache := quotecache.NewStore(redisClient, cfg.Redis.QuoteTTL)

	// messaging
	producer, err := bookingstream.NewProducer(rabbitMQ, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init booking producer: %w", err)
	}

	// services
	tokenSvc := auth.NewTokenService(cfg.Auth.JWTSecret, userRepo, refreshRepo, txManager, cfg.Auth.RefreshTokenTTL, cfg.Auth.AccessTokenTTL, log)
	authSvc := auth.NewAuthService(userRepo, tokenSvc, log)
	quoteSvc := quotes.NewService(provider.DefaultSources(), quoteCache, cfg.Providers.Timeout, log)
	bookingSvc := booking.NewService(bookingRepo, eventRepo, quoteCache, producer, txManager, log)

	server, err := httpserver.New(cfg, quoteSvc, bookingSvc, authSvc, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init http server: %w", err)
	}

	return &App{
		postgresDB: db,
		rabbitMQ:   rabbitMQ,
		httpServer: server,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "application closed")
	}()

	errCh := make(chan error, 1)
	a.httpServer.Run(ctx, errCh)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "service started")
	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to shutdown HTTP server", err)
	}

	if err := a.rabbitMQ.Close(ctx); err != nil {
		a.log.Error(ctx, "failed to close rabbitmq connection", err)
	}

	a.postgresDB.Pool.Close()
}
