package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in model.Registration) (*model.Customer, string, error)
	Login(ctx context.Context, email, password string) (*model.Customer, string, error)
	AdminLogin(ctx context.Context, email, password string) (*model.Customer, string, error)
	ParseToken(token string) (pkgAuth.Principal, error)
}

// CatalogFacade exposes product browsing.
type CatalogFacade interface {
	Products(ctx context.Context, q model.ProductQuery) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
}

// CartFacade manages the signed-in customer's cart.
type CartFacade interface {
	Cart(ctx context.Context, customerID int64) (*model.CartView, error)
	AddCartItem(ctx context.Context, customerID int64, in model.CartLineInput) (*model.CartView, error)
	UpdateCartItem(ctx context.Context, customerID int64, key model.LineKey, quantity int) (*model.CartView, error)
	RemoveCartItem(ctx context.Context, customerID int64, key model.LineKey) (*model.CartView, error)
	ApplyPromo(ctx context.Context, customerID int64, code string) (*model.CartView, error)
	RemovePromo(ctx context.Context, customerID int64) (*model.CartView, error)
}

// CheckoutFacade drives the checkout steps of a session.
type CheckoutFacade interface {
	StartCheckout(ctx context.Context, customerID int64) (*model.CheckoutView, error)
	Checkout(ctx context.Context, customerID int64, sessionID string) (*model.CheckoutView, error)
	EditCheckout(ctx context.Context, customerID int64, sessionID string, values map[string]string) (*model.CheckoutView, error)
	SelectPaymentMethod(ctx context.Context, customerID int64, sessionID string, method model.PaymentMethod) (*model.CheckoutView, error)
	NextStep(ctx context.Context, customerID int64, sessionID string) (*model.CheckoutView, error)
	PreviousStep(ctx context.Context, customerID int64, sessionID string) (*model.CheckoutView, error)
	SubmitOrder(ctx context.Context, customerID int64, sessionID string) (*model.Order, error)
}

// OrderFacade lists a customer's own orders.
type OrderFacade interface {
	Orders(ctx context.Context, customerID int64) ([]model.Order, error)
	Order(ctx context.Context, customerID, orderID int64) (*model.Order, error)
}

// AdminFacade exposes back-office operations.
type AdminFacade interface {
	AllOrders(ctx context.Context, limit int) ([]model.Order, error)
	AnyOrder(ctx context.Context, orderID int64) (*model.Order, error)
	Authorize(role model.Role, path, method string) (bool, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	CheckoutFacade
	OrderFacade
	AdminFacade
}
