package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// Catalog serves a fixed product list.
type Catalog struct {
	products []model.Product
}

// NewCatalog returns the storefront's seeded catalog.
func NewCatalog() *Catalog {
	return NewCatalogWith(seedProducts())
}

// NewCatalogWith serves products in the given order.
func NewCatalogWith(products []model.Product) *Catalog {
	return &Catalog{products: products}
}

func (c *Catalog) List(context.Context) ([]model.Product, error) {
	return append([]model.Product(nil), c.products...), nil
}

func (c *Catalog) Get(_ context.Context, id int64) (*model.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

var (
	white  = model.ProductColor{Name: "White", Value: "white", Hex: "#ffffff"}
	black  = model.ProductColor{Name: "Black", Value: "black", Hex: "#000000"}
	gray   = model.ProductColor{Name: "Gray", Value: "gray", Hex: "#6b7280"}
	blue   = model.ProductColor{Name: "Classic Blue", Value: "blue", Hex: "#3b82f6"}
	sand   = model.ProductColor{Name: "Sand", Value: "sand", Hex: "#d6c7a1"}
	forest = model.ProductColor{Name: "Forest", Value: "forest", Hex: "#2f5d3a"}
)

func seedProducts() []model.Product {
	launched := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	original := decimal.NewFromInt(110)
	return []model.Product{
		{
			ID:          1,
			Name:        "Essential Cotton Tee",
			Price:       decimal.NewFromInt(32),
			Category:    "women",
			Colors:      []model.ProductColor{white, black, gray},
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
			Description: "Crafted from 100% organic cotton with a relaxed fit and classic crew neckline.",
			IsNew:       true,
			InStock:     true,
			CreatedAt:   launched.AddDate(0, 2, 0),
		},
		{
			ID:          2,
			Name:        "Organic Denim Jacket",
			Price:       decimal.NewFromInt(128),
			Category:    "women",
			Colors:      []model.ProductColor{blue, black},
			Sizes:       []string{"XS", "S", "M", "L"},
			Description: "A timeless denim jacket crafted from organic cotton denim.",
			InStock:     true,
			CreatedAt:   launched,
		},
		{
			ID:            3,
			Name:          "Linen Wide-Leg Trousers",
			Price:         decimal.NewFromInt(89),
			OriginalPrice: &original,
			Category:      "women",
			Colors:        []model.ProductColor{sand, black},
			Sizes:         []string{"XS", "S", "M", "L"},
			Description:   "Breathable European linen trousers with a high waist.",
			IsSale:        true,
			InStock:       true,
			CreatedAt:     launched.AddDate(0, 1, 0),
		},
		{
			ID:          4,
			Name:        "Merino Crew Sweater",
			Price:       decimal.NewFromInt(96),
			Category:    "men",
			Colors:      []model.ProductColor{gray, forest},
			Sizes:       []string{"S", "M", "L", "XL"},
			Description: "Fine-gauge merino wool sweater for everyday layering.",
			IsNew:       true,
			InStock:     true,
			CreatedAt:   launched.AddDate(0, 3, 0),
		},
		{
			ID:          5,
			Name:        "Recycled Canvas Tote",
			Price:       decimal.NewFromInt(45),
			Category:    "accessories",
			Colors:      []model.ProductColor{sand},
			Sizes:       []string{"One Size"},
			Description: "Sturdy tote made from recycled cotton canvas.",
			InStock:     false,
			CreatedAt:   launched.AddDate(0, -1, 0),
		},
	}
}
