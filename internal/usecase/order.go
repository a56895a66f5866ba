package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const defaultAdminOrderLimit = 100

// OrderUseCase exposes placed orders to their owners and to admins.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// Get returns an order of customerID. Orders of other customers are reported as not found.
func (u *OrderUseCase) Get(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListByCustomer returns the customer's orders, newest first.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID)
}

// ListAll returns up to limit orders of every customer, newest first.
func (u *OrderUseCase) ListAll(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = defaultAdminOrderLimit
	}
	return u.orders.List(ctx, limit)
}

// GetAny returns an order regardless of its owner.
func (u *OrderUseCase) GetAny(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}
