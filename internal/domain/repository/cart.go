package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// CartRepository stores one cart per customer. Get returns an empty cart when none is stored.
type CartRepository interface {
	Get(ctx context.Context, customerID int64) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
	Clear(ctx context.Context, customerID int64) error
}
