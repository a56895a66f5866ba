package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ProductCatalog provides read access to products.
type ProductCatalog interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
}
