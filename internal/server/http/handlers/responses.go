package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toCustomerResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
		Role:  string(c.Role),
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	colors := make([]dto.ColorResponse, 0, len(p.Colors))
	for _, c := range p.Colors {
		colors = append(colors, dto.ColorResponse{Name: c.Name, Value: c.Value, Hex: c.Hex})
	}
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	resp := dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       money(p.Price),
		Category:    p.Category,
		Colors:      colors,
		Sizes:       sizes,
		Description: p.Description,
		IsNew:       p.IsNew,
		IsSale:      p.IsSale,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
	}
	if p.OriginalPrice != nil {
		resp.OriginalPrice = money(*p.OriginalPrice)
	}
	return resp
}

func toCartItems(items []model.CartItem) []dto.CartItemResponse {
	out := make([]dto.CartItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.CartItemResponse{
			ID:        it.ID,
			Name:      it.Name,
			UnitPrice: money(it.UnitPrice),
			Color:     it.Color,
			Size:      it.Size,
			Quantity:  it.Quantity,
			LineTotal: money(it.LineTotal()),
		})
	}
	return out
}

func toQuoteResponse(q model.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		Subtotal:    money(q.Subtotal),
		Discount:    money(q.Discount),
		DeliveryFee: money(q.DeliveryFee),
		Tax:         money(q.Tax),
		Total:       money(q.Total),
	}
}

func toCartResponse(v *model.CartView) dto.CartResponse {
	count := 0
	for _, it := range v.Cart.Items {
		count += it.Quantity
	}
	return dto.CartResponse{
		Items:     toCartItems(v.Cart.Items),
		ItemCount: count,
		PromoCode: v.Cart.PromoCode,
		Quote:     toQuoteResponse(v.Quote),
	}
}

func toCheckoutResponse(v *model.CheckoutView) dto.CheckoutResponse {
	s := v.Session
	errs := map[string]string(s.Errors)
	if errs == nil {
		errs = map[string]string{}
	}
	return dto.CheckoutResponse{
		ID:         s.ID,
		Step:       int(s.Step),
		StepName:   s.Step.String(),
		Form:       s.Form,
		Errors:     errs,
		Processing: s.Processing,
		Items:      toCartItems(v.Items),
		Quote:      toQuoteResponse(v.Quote),
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		Items:       toCartItems(o.Items),
		Customer:    o.Customer,
		Subtotal:    money(o.Subtotal),
		Discount:    money(o.Discount),
		DeliveryFee: money(o.DeliveryFee),
		Tax:         money(o.Tax),
		Total:       money(o.Total),
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}
