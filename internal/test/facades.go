package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// AuthFacadeStub controls authentication endpoints.
type AuthFacadeStub struct {
	RegisterFn   func(context.Context, model.Registration) (*model.Customer, string, error)
	LoginFn      func(context.Context, string, string) (*model.Customer, string, error)
	AdminLoginFn func(context.Context, string, string) (*model.Customer, string, error)
	ParseFn      func(string) (pkgAuth.Principal, error)
}

// Register delegates to RegisterFn or signs the new customer in.
func (s AuthFacadeStub) Register(ctx context.Context, in model.Registration) (*model.Customer, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.Customer{ID: 1, Name: in.Name, Email: in.Email, Phone: in.Phone, Role: model.RoleCustomer}, "token", nil
}

// Login delegates to LoginFn or accepts any credentials.
func (s AuthFacadeStub) Login(ctx context.Context, email, password string) (*model.Customer, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return &model.Customer{ID: 1, Email: email, Role: model.RoleCustomer}, "token", nil
}

// AdminLogin delegates to AdminLoginFn or returns an admin.
func (s AuthFacadeStub) AdminLogin(ctx context.Context, email, password string) (*model.Customer, string, error) {
	if s.AdminLoginFn != nil {
		return s.AdminLoginFn(ctx, email, password)
	}
	return &model.Customer{ID: 2, Email: email, Role: model.RoleAdmin}, "admin-token", nil
}

// ParseToken delegates to ParseFn or returns customer 1.
func (s AuthFacadeStub) ParseToken(token string) (pkgAuth.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Principal{CustomerID: 1, Role: model.RoleCustomer}, nil
}

// CatalogFacadeStub controls product endpoints.
type CatalogFacadeStub struct {
	ProductsFn func(context.Context, model.ProductQuery) ([]model.Product, error)
	ProductFn  func(context.Context, int64) (*model.Product, error)
}

// Products delegates to ProductsFn or returns a single tee.
func (s CatalogFacadeStub) Products(ctx context.Context, q model.ProductQuery) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, q)
	}
	return []model.Product{{ID: 1, Name: "Essential Cotton Tee", Price: decimal.NewFromInt(32), InStock: true}}, nil
}

// Product delegates to ProductFn or echoes the id.
func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Essential Cotton Tee", Price: decimal.NewFromInt(32), InStock: true}, nil
}

// CartFacadeStub controls cart endpoints.
type CartFacadeStub struct {
	CartFn        func(context.Context, int64) (*model.CartView, error)
	AddFn         func(context.Context, int64, model.CartLineInput) (*model.CartView, error)
	UpdateFn      func(context.Context, int64, model.LineKey, int) (*model.CartView, error)
	RemoveFn      func(context.Context, int64, model.LineKey) (*model.CartView, error)
	ApplyPromoFn  func(context.Context, int64, string) (*model.CartView, error)
	RemovePromoFn func(context.Context, int64) (*model.CartView, error)
}

func emptyCartView(customerID int64) *model.CartView {
	return &model.CartView{Cart: model.NewCart(customerID)}
}

// Cart delegates to CartFn or returns an empty cart.
func (s CartFacadeStub) Cart(ctx context.Context, customerID int64) (*model.CartView, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, customerID)
	}
	return emptyCartView(customerID), nil
}

// AddCartItem delegates to AddFn or returns an empty cart.
func (s CartFacadeStub) AddCartItem(ctx context.Context, customerID int64, in model.CartLineInput) (*model.CartView, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, customerID, in)
	}
	return emptyCartView(customerID), nil
}

// UpdateCartItem delegates to UpdateFn or returns an empty cart.
func (s CartFacadeStub) UpdateCartItem(ctx context.Context, customerID int64, key model.LineKey, quantity int) (*model.CartView, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, customerID, key, quantity)
	}
	return emptyCartView(customerID), nil
}

// RemoveCartItem delegates to RemoveFn or returns an empty cart.
func (s CartFacadeStub) RemoveCartItem(ctx context.Context, customerID int64, key model.LineKey) (*model.CartView, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, customerID, key)
	}
	return emptyCartView(customerID), nil
}

// ApplyPromo delegates to ApplyPromoFn or returns an empty cart.
func (s CartFacadeStub) ApplyPromo(ctx context.Context, customerID int64, code string) (*model.CartView, error) {
	if s.ApplyPromoFn != nil {
		return s.ApplyPromoFn(ctx, customerID, code)
	}
	return emptyCartView(customerID), nil
}

// RemovePromo delegates to RemovePromoFn or returns an empty cart.
func (s CartFacadeStub) RemovePromo(ctx context.Context, customerID int64) (*model.CartView, error) {
	if s.RemovePromoFn != nil {
		return s.RemovePromoFn(ctx, customerID)
	}
	return emptyCartView(customerID), nil
}

// CheckoutFacadeStub controls checkout endpoints.
type CheckoutFacadeStub struct {
	StartFn  func(context.Context, int64) (*model.CheckoutView, error)
	ViewFn   func(context.Context, int64, string) (*model.CheckoutView, error)
	EditFn   func(context.Context, int64, string, map[string]string) (*model.CheckoutView, error)
	MethodFn func(context.Context, int64, string, model.PaymentMethod) (*model.CheckoutView, error)
	NextFn   func(context.Context, int64, string) (*model.CheckoutView, error)
	BackFn   func(context.Context, int64, string) (*model.CheckoutView, error)
	SubmitFn func(context.Context, int64, string) (*model.Order, error)
}

// CheckoutView builds a view of a fresh session on the delivery step.
func CheckoutView(customerID int64, sessionID string) *model.CheckoutView {
	return &model.CheckoutView{
		Session: &model.CheckoutSession{
			ID:         sessionID,
			CustomerID: customerID,
			Step:       model.StepDelivery,
			Form:       model.NewCheckoutForm(nil),
			Errors:     model.FieldErrors{},
		},
	}
}

// StartCheckout delegates to StartFn or opens session "sess-1".
func (s CheckoutFacadeStub) StartCheckout(ctx context.Context, customerID int64) (*model.CheckoutView, error) {
	if s.StartFn != nil {
		return s.StartFn(ctx, customerID)
	}
	return CheckoutView(customerID, "sess-1"), nil
}

// Checkout delegates to ViewFn or returns a fresh view.
func (s CheckoutFacadeStub) Checkout(ctx context.Context, customerID int64, sessionID string) (*model.CheckoutView, error) {
	if s.ViewFn != nil {
		return s.ViewFn(ctx, customerID, sessionID)
	}
	return CheckoutView(customerID, sessionID), nil
}

// EditCheckout delegates to EditFn or returns a fresh view.
func (s CheckoutFacadeStub) EditCheckout(ctx context.Context, customerID int64, sessionID string, values map[string]string) (*model.CheckoutView, error) {
	if s.EditFn != nil {
		return s.EditFn(ctx, customerID, sessionID, values)
	}
	return CheckoutView(customerID, sessionID), nil
}

// SelectPaymentMethod delegates to MethodFn or returns a fresh view.
func (s CheckoutFacadeStub) SelectPaymentMethod(ctx context.Context, customerID int64, sessionID string, method model.PaymentMethod) (*model.CheckoutView, error) {
	if s.MethodFn != nil {
		return s.MethodFn(ctx, customerID, sessionID, method)
	}
	return CheckoutView(customerID, sessionID), nil
}

// NextStep delegates to NextFn or returns a fresh view.
func (s CheckoutFacadeStub) NextStep(ctx context.Context, customerID int64, sessionID string) (*model.CheckoutView, error) {
	if s.NextFn != nil {
		return s.NextFn(ctx, customerID, sessionID)
	}
	return CheckoutView(customerID, sessionID), nil
}

// PreviousStep delegates to BackFn or returns a fresh view.
func (s CheckoutFacadeStub) PreviousStep(ctx context.Context, customerID int64, sessionID string) (*model.CheckoutView, error) {
	if s.BackFn != nil {
		return s.BackFn(ctx, customerID, sessionID)
	}
	return CheckoutView(customerID, sessionID), nil
}

// SubmitOrder delegates to SubmitFn or confirms order 1718000000123.
func (s CheckoutFacadeStub) SubmitOrder(ctx context.Context, customerID int64, sessionID string) (*model.Order, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, customerID, sessionID)
	}
	return &model.Order{ID: 1718000000123, CustomerID: customerID, Status: model.OrderStatusConfirmed, CreatedAt: time.Unix(0, 0).UTC()}, nil
}

// OrderFacadeStub controls customer order endpoints.
type OrderFacadeStub struct {
	OrdersFn func(context.Context, int64) ([]model.Order, error)
	OrderFn  func(context.Context, int64, int64) (*model.Order, error)
}

// Orders delegates to OrdersFn or returns one confirmed order.
func (s OrderFacadeStub) Orders(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, customerID)
	}
	return []model.Order{{ID: 1, CustomerID: customerID, Status: model.OrderStatusConfirmed}}, nil
}

// Order delegates to OrderFn or echoes the id.
func (s OrderFacadeStub) Order(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, customerID, orderID)
	}
	return &model.Order{ID: orderID, CustomerID: customerID, Status: model.OrderStatusConfirmed}, nil
}

// AdminFacadeStub controls back-office endpoints.
type AdminFacadeStub struct {
	AllOrdersFn func(context.Context, int) ([]model.Order, error)
	AnyOrderFn  func(context.Context, int64) (*model.Order, error)
	AuthorizeFn func(model.Role, string, string) (bool, error)
}

// AllOrders delegates to AllOrdersFn or returns one order.
func (s AdminFacadeStub) AllOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, limit)
	}
	return []model.Order{{ID: 1, Status: model.OrderStatusConfirmed}}, nil
}

// AnyOrder delegates to AnyOrderFn or echoes the id.
func (s AdminFacadeStub) AnyOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.AnyOrderFn != nil {
		return s.AnyOrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusConfirmed}, nil
}

// Authorize delegates to AuthorizeFn or allows admins only.
func (s AdminFacadeStub) Authorize(role model.Role, path, method string) (bool, error) {
	if s.AuthorizeFn != nil {
		return s.AuthorizeFn(role, path, method)
	}
	return role == model.RoleAdmin, nil
}

// StorefrontFacadeStub combines all facade stubs.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	CheckoutFacadeStub
	OrderFacadeStub
	AdminFacadeStub
}
