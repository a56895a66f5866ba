package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order lifecycle.
type OrderStatus string

const OrderStatusConfirmed OrderStatus = "confirmed"

// Order is an immutable record of a completed checkout.
type Order struct {
	ID          int64           `json:"id"`
	CustomerID  int64           `json:"customerId"`
	Items       []CartItem      `json:"items"`
	Customer    CheckoutForm    `json:"customer"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}
