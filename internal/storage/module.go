package storage

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/storage/memory"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/storage/redis"
	"github.com/polkiloo/storefront/internal/storage/sqlite"
)

// Backend is a repository factory that owns closable resources.
type Backend interface {
	repository.Factory
	Close() error
}

// Module wires the configured storage backend, the checkout session store and the catalog.
var Module = fx.Options(
	fx.Provide(
		newBackend,
		newSessionStore,
		func() repository.ProductCatalog { return memory.NewCatalog() },
	),
	fx.Provide(
		func(b Backend) repository.CustomerRepository { return b.Customers() },
		func(b Backend) repository.OrderRepository { return b.Orders() },
		func(b Backend) repository.CartRepository { return b.Carts() },
	),
	fx.Invoke(registerLifecycle),
)

type backendParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *zap.Logger
}

func newBackend(p backendParams) (Backend, error) {
	return Open(p.Ctx, p.Config, p.Logger)
}

// Open connects the backend selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		s, err := postgres.New(ctx, cfg.DatabaseURI, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverSQLite:
		s, err := sqlite.New(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMemory, "":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// sessionStore is a repository.SessionStore that may hold a connection.
type sessionStore interface {
	repository.SessionStore
	Close() error
}

func newSessionStore(cfg *config.Config) (repository.SessionStore, sessionStore) {
	var store sessionStore
	if cfg.RedisAddr != "" {
		store = redis.NewSessionStore(redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SessionTTL,
		})
	} else {
		store = memory.NewSessionStore()
	}
	return store, store
}

type lifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Backend   Backend
	Sessions  sessionStore
	Logger    *zap.Logger
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			if err := p.Sessions.Close(); err != nil {
				p.Logger.Warn("close session store", zap.Error(err))
			}
			return p.Backend.Close()
		},
	})
}
