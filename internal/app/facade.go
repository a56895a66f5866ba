package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/authz"
	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/usecase"
)

// FacadeParams lists the use cases exposed over HTTP.
type FacadeParams struct {
	fx.In

	Auth     *usecase.AuthUseCase
	Catalog  *usecase.CatalogUseCase
	Carts    *usecase.CartUseCase
	Checkout *usecase.CheckoutUseCase
	Orders   *usecase.OrderUseCase
	Authz    *authz.Service
}

// StorefrontFacade adapts the use cases to the operations handlers call.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	carts    *usecase.CartUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
	authz    *authz.Service
}

func NewStorefrontFacade(p FacadeParams) *StorefrontFacade {
	return &StorefrontFacade{
		auth:     p.Auth,
		catalog:  p.Catalog,
		carts:    p.Carts,
		checkout: p.Checkout,
		orders:   p.Orders,
		authz:    p.Authz,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, in model.Registration) (*model.Customer, string, error) {
	return f.auth.Register(ctx, in)
}

func (f *StorefrontFacade) Login(ctx context.Context, email, password string) (*model.Customer, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StorefrontFacade) AdminLogin(ctx context.Context, email, password string) (*model.Customer, string, error) {
	return f.auth.AuthenticateAdmin(ctx, email, password)
}

func (f *StorefrontFacade) ParseToken(token string) (pkgAuth.Principal, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Products(ctx context.Context, q model.ProductQuery) ([]model.Product, error) {
	return f.catalog.List(ctx, q)
}

func (f *StorefrontFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StorefrontFacade) Cart(ctx context.Context, customerID int64) (*model.CartView, error) {
	return f.carts.Get(ctx, customerID)
}

func (f *StorefrontFacade) AddCartItem(ctx context.Context, customerID int64, in model.CartLineInput) (*model.CartView, error) {
	return f.carts.AddItem(ctx, customerID, in)
}

func (f *StorefrontFacade) UpdateCartItem(ctx context.Context, customerID int64, key model.LineKey, quantity int) (*model.CartView, error) {
	return f.carts.UpdateQuantity(ctx, customerID, key, quantity)
}

func (f *StorefrontFacade) RemoveCartItem(ctx context.Context, customerID int64, key model.LineKey) (*model.CartView, error) {
	return f.carts.RemoveItem(ctx, customerID, key)
}

func (f *StorefrontFacade) ApplyPromo(ctx context.Context, customerID int64, code string) (*model.CartView, error) {
	return f.carts.ApplyPromo(ctx, customerID, code)
}

func (f *StorefrontFacade) RemovePromo(ctx context.Context, customerID int64) (*model.CartView, error) {
	return f.carts.RemovePromo(ctx, customerID)
}

func (f *StorefrontFacade) StartCheckout(ctx context.Context, customerID int64) (*model.CheckoutView, error) {
	return f.checkout.Start(ctx, customerID)
}

func (f *StorefrontFacade) Checkout(ctx context.Context, customerID int64, sessionID string) (*model.CheckoutView, error) {
	return f.checkout.View(ctx, customerID, sessionID)
}

func (f *StorefrontFacade) EditCheckout(ctx context.Context, customerID int64, sessionID string, values map[string]string) (*model.CheckoutView, error) {
	return f.checkout.EditFields(ctx, customerID, sessionID, values)
}

func (f *StorefrontFacade) SelectPaymentMethod(ctx context.Context, customerID int64, sessionID string, method model.PaymentMethod) (*model.CheckoutView, error) {
	return f.checkout.SelectPaymentMethod(ctx, customerID, sessionID, method)
}

func (f *StorefrontFacade) NextStep(ctx context.Context, customerID int64, sessionID string) (*model.CheckoutView, error) {
	return f.checkout.Next(ctx, customerID, sessionID)
}

func (f *StorefrontFacade) PreviousStep(ctx context.Context, customerID int64, sessionID string) (*model.CheckoutView, error) {
	return f.checkout.Back(ctx, customerID, sessionID)
}

func (f *StorefrontFacade) SubmitOrder(ctx context.Context, customerID int64, sessionID string) (*model.Order, error) {
	return f.checkout.Submit(ctx, customerID, sessionID)
}

func (f *StorefrontFacade) Orders(ctx context.Context, customerID int64) ([]model.Order, error) {
	return f.orders.ListByCustomer(ctx, customerID)
}

func (f *StorefrontFacade) Order(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, customerID, orderID)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.ListAll(ctx, limit)
}

func (f *StorefrontFacade) AnyOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.orders.GetAny(ctx, orderID)
}

func (f *StorefrontFacade) Authorize(role model.Role, path, method string) (bool, error) {
	return f.authz.Allowed(role, path, method)
}
