package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/authz"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/logger"
	"github.com/polkiloo/storefront/internal/payment"
	"github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/queue"
	"github.com/polkiloo/storefront/internal/server/http/router"
	"github.com/polkiloo/storefront/internal/storage"
	"github.com/polkiloo/storefront/internal/usecase"
)

// Module assembles the storefront graph. Extra options are appended, so tests can fx.Replace parts.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		queue.Module,
		payment.Module,
		authz.Module,
		usecase.Module,
		fx.Provide(
			func(s *payment.Simulator) usecase.PaymentProcessor { return s },
			func(c *queue.Client) usecase.ReceiptPublisher { return c },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
