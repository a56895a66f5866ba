package model

import "github.com/shopspring/decimal"

// CartView is a cart with its price breakdown.
type CartView struct {
	Cart  *Cart
	Quote Quote
}

// CheckoutView is a session with the cart it will order and the current price breakdown.
type CheckoutView struct {
	Session *CheckoutSession
	Items   []CartItem
	Quote   Quote
}

// Registration is the sign-up form.
type Registration struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// CartLineInput selects a product variant to put in the cart.
type CartLineInput struct {
	ProductID int64
	Color     string
	Size      string
	Quantity  int
}

// Product orderings.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
	SortNewest    = "newest"
)

// ProductQuery filters and orders the catalog. Zero values do not filter.
type ProductQuery struct {
	Query       string
	Category    string
	InStockOnly bool
	OnSaleOnly  bool
	NewOnly     bool
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Sort        string
}
