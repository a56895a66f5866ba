package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one cart line. A line is identified by product id, color and size.
type CartItem struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
}

// LineKey identifies a cart line.
type LineKey struct {
	ID    int64  `json:"id"`
	Color string `json:"color"`
	Size  string `json:"size"`
}

// Key returns the identity of the line.
func (i CartItem) Key() LineKey {
	return LineKey{ID: i.ID, Color: i.Color, Size: i.Size}
}

// LineTotal returns unit price times quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (k LineKey) matches(item CartItem) bool {
	return k.ID == item.ID && strings.EqualFold(k.Color, item.Color) && strings.EqualFold(k.Size, item.Size)
}

// Cart holds the lines a customer intends to buy.
type Cart struct {
	CustomerID int64      `json:"customerId"`
	Items      []CartItem `json:"items"`
	PromoCode  string     `json:"promoCode,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NewCart returns an empty cart for the customer.
func NewCart(customerID int64) *Cart {
	return &Cart{CustomerID: customerID, Items: []CartItem{}}
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// Add merges item into an existing line or appends a new one.
func (c *Cart) Add(item CartItem) {
	key := item.Key()
	for i := range c.Items {
		if key.matches(c.Items[i]) {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// SetQuantity updates a line. Quantity at or below zero removes it.
// Returns false when the line does not exist.
func (c *Cart) SetQuantity(key LineKey, quantity int) bool {
	if quantity <= 0 {
		return c.Remove(key)
	}
	for i := range c.Items {
		if key.matches(c.Items[i]) {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Remove drops a line. Returns false when the line does not exist.
func (c *Cart) Remove(key LineKey) bool {
	for i := range c.Items {
		if key.matches(c.Items[i]) {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the lines.
func (c *Cart) Snapshot() []CartItem {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return items
}
