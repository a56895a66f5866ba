package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// Calculator prices carts. It holds no state besides its policy and is safe for concurrent use.
type Calculator struct {
	policy Policy
}

// NewCalculator constructs Calculator.
func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy}
}

// NewCalculatorFromConfig builds a calculator from the loaded pricing configuration.
func NewCalculatorFromConfig(cfg *config.Config) *Calculator {
	return NewCalculator(NewPolicy(cfg.Pricing))
}

// Policy returns the active policy.
func (c *Calculator) Policy() Policy {
	return c.policy
}

// Quote prices items for the delivery method. An empty or unknown promo code applies no discount.
func (c *Calculator) Quote(items []model.CartItem, method model.DeliveryMethod, promoCode string) model.Quote {
	subtotal := Subtotal(items)

	discount := decimal.Zero
	if rate, ok := c.policy.PromoRate(promoCode); ok && promoCode != "" {
		discount = subtotal.Mul(rate).Round(2)
	}

	fee := c.DeliveryFee(subtotal, method)
	tax := subtotal.Sub(discount).Mul(c.policy.TaxRate).Round(2)

	return model.Quote{
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal.Sub(discount).Add(fee).Add(tax),
	}
}

// DeliveryFee applies the flat express fee, or free standard delivery above the threshold.
func (c *Calculator) DeliveryFee(subtotal decimal.Decimal, method model.DeliveryMethod) decimal.Decimal {
	if method == model.DeliveryExpress {
		return c.policy.ExpressDeliveryFee
	}
	if subtotal.GreaterThan(c.policy.FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return c.policy.StandardDeliveryFee
}

// Subtotal sums unit price times quantity, ignoring lines without a positive quantity.
func Subtotal(items []model.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		sum = sum.Add(item.LineTotal())
	}
	return sum
}
