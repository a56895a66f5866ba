package dto

import (
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderResponse describes order information for API consumers.
type OrderResponse struct {
	ID          int64              `json:"id"`
	CustomerID  int64              `json:"customerId"`
	Items       []CartItemResponse `json:"items"`
	Customer    model.CheckoutForm `json:"customer"`
	Subtotal    string             `json:"subtotal"`
	Discount    string             `json:"discount"`
	DeliveryFee string             `json:"deliveryFee"`
	Tax         string             `json:"tax"`
	Total       string             `json:"total"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
}
