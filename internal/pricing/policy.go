package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/config"
)

// Policy holds the rates and fees used to price a cart.
type Policy struct {
	TaxRate               decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
	StandardDeliveryFee   decimal.Decimal
	ExpressDeliveryFee    decimal.Decimal
	// PromoCodes maps an upper-case code to its discount rate.
	PromoCodes map[string]decimal.Decimal
}

// DefaultPolicy returns the built-in pricing policy.
func DefaultPolicy() Policy {
	return NewPolicy(config.DefaultPricing())
}

// NewPolicy converts loaded configuration into a Policy.
func NewPolicy(cfg config.PricingConfig) Policy {
	p := Policy{
		TaxRate:               decimal.NewFromFloat(cfg.TaxRate),
		FreeDeliveryThreshold: decimal.NewFromFloat(cfg.FreeDeliveryThreshold),
		StandardDeliveryFee:   decimal.NewFromFloat(cfg.StandardDeliveryFee),
		ExpressDeliveryFee:    decimal.NewFromFloat(cfg.ExpressDeliveryFee),
		PromoCodes:            make(map[string]decimal.Decimal, len(cfg.PromoCodes)),
	}
	for code, rate := range cfg.PromoCodes {
		p.PromoCodes[normalizeCode(code)] = decimal.NewFromFloat(rate)
	}
	return p
}

// PromoRate looks up code case-insensitively.
func (p Policy) PromoRate(code string) (decimal.Decimal, bool) {
	rate, ok := p.PromoCodes[normalizeCode(code)]
	return rate, ok
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
