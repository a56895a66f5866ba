package dto

// AddCartItemRequest puts a product variant into the cart.
type AddCartItemRequest struct {
	ProductID int64  `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// CartLineRequest addresses an existing cart line. Quantity is used by updates only.
type CartLineRequest struct {
	ID       int64  `json:"id"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// PromoRequest applies a promo code.
type PromoRequest struct {
	Code string `json:"code"`
}

// CartItemResponse is one cart line.
type CartItemResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

// QuoteResponse is a price breakdown with two decimals.
type QuoteResponse struct {
	Subtotal    string `json:"subtotal"`
	Discount    string `json:"discount"`
	DeliveryFee string `json:"deliveryFee"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
}

// CartResponse is the cart with its current quote.
type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"itemCount"`
	PromoCode string             `json:"promoCode,omitempty"`
	Quote     QuoteResponse      `json:"quote"`
}
