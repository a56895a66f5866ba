package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func referenceCartView(customerID int64) *model.CartView {
	cart := model.NewCart(customerID)
	cart.Add(model.CartItem{ID: 1, Name: "Essential Cotton Tee", UnitPrice: decimal.NewFromInt(32), Color: "White", Size: "M", Quantity: 2})
	cart.Add(model.CartItem{ID: 2, Name: "Organic Denim Jacket", UnitPrice: decimal.NewFromInt(128), Color: "Classic Blue", Size: "M", Quantity: 1})
	return &model.CartView{Cart: cart, Quote: model.Quote{
		Subtotal:    decimal.NewFromInt(192),
		Discount:    decimal.Zero,
		DeliveryFee: decimal.Zero,
		Tax:         decimal.RequireFromString("15.36"),
		Total:       decimal.RequireFromString("207.36"),
	}}
}

func TestCatalogHandlerListParsesQuery(t *testing.T) {
	var got model.ProductQuery
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{ProductsFn: func(_ context.Context, q model.ProductQuery) ([]model.Product, error) {
		got = q
		original := decimal.NewFromInt(110)
		return []model.Product{{ID: 3, Name: "Linen Wide-Leg Trousers", Price: decimal.NewFromInt(89), OriginalPrice: &original, IsSale: true, InStock: true}}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/products", "/products?q=linen&category=women&inStock=true&sale=1&minPrice=40&maxPrice=100.5&sort=price_asc", handler.List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got.Query != "linen" || got.Category != "women" || !got.InStockOnly || !got.OnSaleOnly || got.NewOnly || got.Sort != model.SortPriceAsc {
		t.Fatalf("unexpected query %+v", got)
	}
	if got.MinPrice == nil || got.MinPrice.String() != "40" || got.MaxPrice == nil || got.MaxPrice.String() != "100.5" {
		t.Fatalf("unexpected price bounds %v %v", got.MinPrice, got.MaxPrice)
	}

	products := decode[[]dto.ProductResponse](t, resp)
	if len(products) != 1 || products[0].Price != "89.00" || products[0].OriginalPrice != "110.00" || products[0].Sizes == nil {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestCatalogHandlerListRejectsBadQuery(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{})
	for _, target := range []string{"/products?inStock=maybe", "/products?minPrice=abc", "/products?maxPrice=-1"} {
		resp := performRequest(t, http.MethodGet, "/products", target, handler.List, nil, nil, nil)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", target, resp.Code)
		}
	}
}

func TestCatalogHandlerGet(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{ProductFn: func(_ context.Context, id int64) (*model.Product, error) {
		if id == 99 {
			return nil, domainErrors.ErrNotFound
		}
		return &model.Product{ID: id, Name: "Merino Crew Sweater", Price: decimal.NewFromInt(96)}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/products/:id", "/products/4", handler.Get, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := decode[dto.ProductResponse](t, resp); got.ID != 4 || got.Price != "96.00" {
		t.Fatalf("unexpected product %+v", got)
	}

	resp = performRequest(t, http.MethodGet, "/products/:id", "/products/99", handler.Get, nil, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/products/:id", "/products/abc", handler.Get, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCartHandlerGet(t *testing.T) {
	handler := NewCartHandler(testhelpers.CartFacadeStub{CartFn: func(_ context.Context, customerID int64) (*model.CartView, error) {
		return referenceCartView(customerID), nil
	}})
	resp := performRequest(t, http.MethodGet, "/cart", "/cart", handler.Get, signedIn(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	got := decode[dto.CartResponse](t, resp)
	if got.ItemCount != 3 || len(got.Items) != 2 || got.Items[0].LineTotal != "64.00" {
		t.Fatalf("unexpected cart %+v", got)
	}
	if got.Quote.Subtotal != "192.00" || got.Quote.DeliveryFee != "0.00" || got.Quote.Tax != "15.36" || got.Quote.Total != "207.36" {
		t.Fatalf("unexpected quote %+v", got.Quote)
	}
}

func TestCartHandlerMutations(t *testing.T) {
	var (
		added   model.CartLineInput
		updated model.LineKey
		qty     int
		removed model.LineKey
		promo   string
	)
	facade := testhelpers.CartFacadeStub{
		AddFn: func(_ context.Context, _ int64, in model.CartLineInput) (*model.CartView, error) {
			added = in
			return referenceCartView(1), nil
		},
		UpdateFn: func(_ context.Context, _ int64, key model.LineKey, quantity int) (*model.CartView, error) {
			updated, qty = key, quantity
			return referenceCartView(1), nil
		},
		RemoveFn: func(_ context.Context, _ int64, key model.LineKey) (*model.CartView, error) {
			removed = key
			return referenceCartView(1), nil
		},
		ApplyPromoFn: func(_ context.Context, _ int64, code string) (*model.CartView, error) {
			promo = code
			return referenceCartView(1), nil
		},
	}
	handler := NewCartHandler(facade)

	resp := performRequest(t, http.MethodPost, "/cart/items", "/cart/items", handler.AddItem, signedIn(1),
		[]byte(`{"productId":1,"color":"white","size":"m","quantity":2}`), jsonHeaders)
	if resp.Code != http.StatusOK || added != (model.CartLineInput{ProductID: 1, Color: "white", Size: "m", Quantity: 2}) {
		t.Fatalf("add: status %d input %+v", resp.Code, added)
	}

	resp = performRequest(t, http.MethodPatch, "/cart/items", "/cart/items", handler.UpdateItem, signedIn(1),
		[]byte(`{"id":1,"color":"White","size":"M","quantity":0}`), jsonHeaders)
	if resp.Code != http.StatusOK || updated != (model.LineKey{ID: 1, Color: "White", Size: "M"}) || qty != 0 {
		t.Fatalf("update: status %d key %+v qty %d", resp.Code, updated, qty)
	}

	resp = performRequest(t, http.MethodDelete, "/cart/items", "/cart/items", handler.RemoveItem, signedIn(1),
		[]byte(`{"id":2,"color":"Classic Blue","size":"M"}`), jsonHeaders)
	if resp.Code != http.StatusOK || removed.ID != 2 {
		t.Fatalf("remove: status %d key %+v", resp.Code, removed)
	}

	resp = performRequest(t, http.MethodPost, "/cart/promo", "/cart/promo", handler.ApplyPromo, signedIn(1),
		[]byte(`{"code":"welcome10"}`), jsonHeaders)
	if resp.Code != http.StatusOK || promo != "welcome10" {
		t.Fatalf("promo: status %d code %q", resp.Code, promo)
	}

	resp = performRequest(t, http.MethodDelete, "/cart/promo", "/cart/promo", handler.RemovePromo, signedIn(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("remove promo: status %d", resp.Code)
	}
}

func TestCartHandlerFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.CartFacadeStub
		body   string
		status int
	}{
		{name: "bad json", body: "nope", status: http.StatusBadRequest},
		{name: "quantity", body: `{"productId":1,"quantity":0}`, facade: testhelpers.CartFacadeStub{AddFn: func(context.Context, int64, model.CartLineInput) (*model.CartView, error) {
			return nil, domainErrors.ErrInvalidQuantity
		}}, status: http.StatusBadRequest},
		{name: "unknown product", body: `{"productId":99,"quantity":1}`, facade: testhelpers.CartFacadeStub{AddFn: func(context.Context, int64, model.CartLineInput) (*model.CartView, error) {
			return nil, domainErrors.ErrNotFound
		}}, status: http.StatusNotFound},
		{name: "out of stock", body: `{"productId":5,"quantity":1}`, facade: testhelpers.CartFacadeStub{AddFn: func(context.Context, int64, model.CartLineInput) (*model.CartView, error) {
			return nil, domainErrors.ErrOutOfStock
		}}, status: http.StatusConflict},
		{name: "storage", body: `{"productId":1,"quantity":1}`, facade: testhelpers.CartFacadeStub{AddFn: func(context.Context, int64, model.CartLineInput) (*model.CartView, error) {
			return nil, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/cart/items", "/cart/items", NewCartHandler(tt.facade).AddItem, signedIn(1), []byte(tt.body), jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}

	invalidPromo := testhelpers.CartFacadeStub{ApplyPromoFn: func(context.Context, int64, string) (*model.CartView, error) {
		return nil, domainErrors.ErrInvalidPromoCode
	}}
	resp := performRequest(t, http.MethodPost, "/cart/promo", "/cart/promo", NewCartHandler(invalidPromo).ApplyPromo, signedIn(1), []byte(`{"code":"BOGUS"}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if got := decode[dto.ErrorResponse](t, resp); got.Error != "Invalid promo code" {
		t.Fatalf("unexpected message %q", got.Error)
	}
}

func TestOrderHandlerList(t *testing.T) {
	created := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	var gotCustomer int64
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{OrdersFn: func(_ context.Context, customerID int64) ([]model.Order, error) {
		gotCustomer = customerID
		return []model.Order{{ID: 1749547800000, CustomerID: customerID, Total: decimal.RequireFromString("207.36"), Status: model.OrderStatusConfirmed, CreatedAt: created}}, nil
	}})
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", handler.List, signedIn(5), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotCustomer != 5 {
		t.Fatalf("expected orders of customer 5, got %d", gotCustomer)
	}
	orders := decode[[]dto.OrderResponse](t, resp)
	if len(orders) != 1 || orders[0].Total != "207.36" || orders[0].Status != "confirmed" || !orders[0].CreatedAt.Equal(created) {
		t.Fatalf("unexpected orders %+v", orders)
	}

	empty := NewOrderHandler(testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, int64) ([]model.Order, error) { return nil, nil }})
	resp = performRequest(t, http.MethodGet, "/orders", "/orders", empty.List, signedIn(5), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{OrderFn: func(_ context.Context, customerID, orderID int64) (*model.Order, error) {
		if customerID != 1 {
			return nil, domainErrors.ErrNotFound
		}
		return &model.Order{ID: orderID, CustomerID: customerID, Status: model.OrderStatusConfirmed}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/1749547800000", handler.Get, signedIn(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := decode[dto.OrderResponse](t, resp); got.ID != 1749547800000 {
		t.Fatalf("unexpected order %+v", got)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/1749547800000", handler.Get, signedIn(2), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for another customer's order, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/0", handler.Get, signedIn(1), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAdminHandlerOrders(t *testing.T) {
	var gotLimit int
	handler := NewAdminHandler(testhelpers.AdminFacadeStub{AllOrdersFn: func(_ context.Context, limit int) ([]model.Order, error) {
		gotLimit = limit
		return []model.Order{{ID: 2}, {ID: 1}}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/admin/orders", "/admin/orders?limit=20", handler.Orders, nil, nil, nil)
	if resp.Code != http.StatusOK || gotLimit != 20 {
		t.Fatalf("expected 200 with limit 20, got %d limit %d", resp.Code, gotLimit)
	}
	if orders := decode[[]dto.OrderResponse](t, resp); len(orders) != 2 || orders[0].ID != 2 {
		t.Fatalf("unexpected orders %+v", orders)
	}

	resp = performRequest(t, http.MethodGet, "/admin/orders", "/admin/orders?limit=x", handler.Orders, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/admin/orders/:id", "/admin/orders/9", handler.Order, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := decode[dto.OrderResponse](t, resp); got.ID != 9 {
		t.Fatalf("unexpected order %+v", got)
	}
}
