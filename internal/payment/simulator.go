package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// Module provides the payment simulator.
var Module = fx.Provide(func(cfg *config.Config) *Simulator { return NewSimulator(cfg.PaymentDelay) })

// Charge is a request to collect amount with the given method.
type Charge struct {
	Amount decimal.Decimal
	Method model.PaymentMethod
}

// Simulator stands in for a payment provider: every charge succeeds after a fixed delay.
type Simulator struct {
	delay time.Duration
	sleep func(time.Duration)
}

// NewSimulator creates a simulator waiting delay per charge.
func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{delay: delay, sleep: time.Sleep}
}

// Process waits out the provider delay. The wait is not interrupted by ctx: once started a
// charge runs to completion.
func (s *Simulator) Process(_ context.Context, charge Charge) error {
	if !charge.Amount.IsPositive() {
		return fmt.Errorf("%w: amount %s", domainErrors.ErrPaymentDeclined, charge.Amount.StringFixed(2))
	}
	if s.delay > 0 {
		s.sleep(s.delay)
	}
	return nil
}
