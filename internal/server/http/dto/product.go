package dto

import "time"

// ColorResponse is a selectable product color.
type ColorResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Hex   string `json:"hex,omitempty"`
}

// ProductResponse is a catalog entry.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Price         string          `json:"price"`
	OriginalPrice string          `json:"originalPrice,omitempty"`
	Category      string          `json:"category"`
	Colors        []ColorResponse `json:"colors"`
	Sizes         []string        `json:"sizes"`
	Description   string          `json:"description"`
	IsNew         bool            `json:"isNew"`
	IsSale        bool            `json:"isSale"`
	InStock       bool            `json:"inStock"`
	CreatedAt     time.Time       `json:"createdAt"`
}
