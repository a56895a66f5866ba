package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductColor is a selectable color option.
type ProductColor struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Hex   string `json:"hex"`
}

// Product is a catalog entry.
type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Category      string           `json:"category"`
	Colors        []ProductColor   `json:"colors"`
	Sizes         []string         `json:"sizes"`
	Description   string           `json:"description"`
	IsNew         bool             `json:"isNew"`
	IsSale        bool             `json:"isSale"`
	InStock       bool             `json:"inStock"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// Color resolves a color option by name or value.
func (p Product) Color(v string) (ProductColor, bool) {
	for _, c := range p.Colors {
		if strings.EqualFold(c.Name, v) || strings.EqualFold(c.Value, v) {
			return c, true
		}
	}
	return ProductColor{}, false
}

// HasSize reports whether size is offered.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if strings.EqualFold(s, size) {
			return true
		}
	}
	return false
}
