package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// CatalogUseCase serves product listings.
type CatalogUseCase struct {
	catalog repository.ProductCatalog
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(catalog repository.ProductCatalog) *CatalogUseCase {
	return &CatalogUseCase{catalog: catalog}
}

// List returns the products matching q.
func (u *CatalogUseCase) List(ctx context.Context, q model.ProductQuery) ([]model.Product, error) {
	products, err := u.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matches(q, p) {
			result = append(result, p)
		}
	}
	sortProducts(result, q.Sort)
	return result, nil
}

// Get returns a single product.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.catalog.Get(ctx, id)
}

func matches(q model.ProductQuery, p model.Product) bool {
	if text := strings.ToLower(strings.TrimSpace(q.Query)); text != "" {
		if !strings.Contains(strings.ToLower(p.Name), text) && !strings.Contains(strings.ToLower(p.Description), text) {
			return false
		}
	}
	if q.Category != "" && !strings.EqualFold(q.Category, p.Category) {
		return false
	}
	if q.InStockOnly && !p.InStock {
		return false
	}
	if q.OnSaleOnly && !p.IsSale {
		return false
	}
	if q.NewOnly && !p.IsNew {
		return false
	}
	if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
		return false
	}
	return true
}

func sortProducts(products []model.Product, order string) {
	var less func(a, b model.Product) bool
	switch order {
	case model.SortPriceAsc:
		less = func(a, b model.Product) bool { return a.Price.LessThan(b.Price) }
	case model.SortPriceDesc:
		less = func(a, b model.Product) bool { return a.Price.GreaterThan(b.Price) }
	case model.SortName:
		less = func(a, b model.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case model.SortNewest:
		less = func(a, b model.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}
