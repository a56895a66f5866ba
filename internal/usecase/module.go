package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/pricing"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	pricing.NewCalculatorFromConfig,
	NewOrderIDGenerator,
	NewAuthUseCase,
	NewCatalogUseCase,
	NewCartUseCase,
	NewCheckoutUseCase,
	NewOrderUseCase,
)
