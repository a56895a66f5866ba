package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/pricing"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func testCatalog() testhelpers.CatalogStub {
	white := model.ProductColor{Name: "White", Value: "white", Hex: "#ffffff"}
	blue := model.ProductColor{Name: "Classic Blue", Value: "blue", Hex: "#3b82f6"}
	return testhelpers.CatalogStub{Products: []model.Product{
		{ID: 1, Name: "Essential Cotton Tee", Price: decimal.NewFromInt(32), Colors: []model.ProductColor{white}, Sizes: []string{"S", "M", "L"}, InStock: true},
		{ID: 2, Name: "Organic Denim Jacket", Price: decimal.NewFromInt(128), Colors: []model.ProductColor{blue}, Sizes: []string{"M"}, InStock: true},
		{ID: 5, Name: "Recycled Canvas Tote", Price: decimal.NewFromInt(45), Sizes: []string{"One Size"}},
	}}
}

func referenceCart(customerID int64) *model.Cart {
	cart := model.NewCart(customerID)
	cart.Add(model.CartItem{ID: 1, Name: "Essential Cotton Tee", UnitPrice: decimal.NewFromInt(32), Color: "White", Size: "M", Quantity: 2})
	cart.Add(model.CartItem{ID: 2, Name: "Organic Denim Jacket", UnitPrice: decimal.NewFromInt(128), Color: "Classic Blue", Size: "M", Quantity: 1})
	return cart
}

func defaultCalculator() *pricing.Calculator {
	return pricing.NewCalculator(pricing.DefaultPolicy())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
