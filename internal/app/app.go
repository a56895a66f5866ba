package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/queue"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/usecase"
	"github.com/polkiloo/storefront/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStorefrontFacade,
		func(f *StorefrontFacade) handlers.StorefrontFacade { return f },
		newHTTPServer,
		newSessionSweeper,
		newReceiptServer,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type sweeperParams struct {
	fx.In

	Sessions repository.SessionStore
	Config   *config.Config
	Logger   *zap.Logger
}

func newSessionSweeper(p sweeperParams) *worker.SessionSweeper {
	return worker.NewSessionSweeper(p.Sessions, p.Config.SessionTTL, p.Config.SweepInterval, p.Logger.Named("sweeper"))
}

type receiptParams struct {
	fx.In

	Orders repository.OrderRepository
	Config *config.Config
	Logger *zap.Logger
}

func newReceiptServer(p receiptParams) *worker.ReceiptServer {
	logger := p.Logger.Named("receipts")
	cfg := queue.ServerConfig(p.Config)
	cfg.Logger = logger.Sugar()
	consumer := worker.NewReceiptConsumer(p.Orders, logger)
	return worker.NewReceiptServer(p.Config.QueueEnabled, queue.RedisOpt(p.Config), cfg, consumer)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *zap.Logger
	Server     *http.Server
	Sweeper    *worker.SessionSweeper
	Receipts   *worker.ReceiptServer
	Auth       *usecase.AuthUseCase
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Auth.EnsureAdmin(ctx, p.Config.AdminEmail, p.Config.AdminPassword); err != nil {
				return fmt.Errorf("seed admin account: %w", err)
			}
			if err := p.Receipts.Start(); err != nil {
				return fmt.Errorf("start receipt worker: %w", err)
			}
			p.Sweeper.Start(ctx)

			p.Logger.Info("starting storefront",
				zap.String("addr", p.Server.Addr),
				zap.String("storage", p.Config.StorageDriver),
				zap.Bool("queue", p.Receipts.Enabled()),
			)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", zap.Error(err))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			p.Sweeper.Stop()
			p.Receipts.Stop()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("storefront stopped")
			return nil
		},
	})
}
