package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository is the append-only order list.
type OrderRepository interface {
	Append(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	// List returns up to limit orders, newest first.
	List(ctx context.Context, limit int) ([]model.Order, error)
}
