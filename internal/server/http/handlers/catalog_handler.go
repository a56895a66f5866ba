package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// CatalogHandler serves product listings.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/products.
// Query parameters: q, category, inStock, sale, new, minPrice, maxPrice, sort.
func (h *CatalogHandler) List(c *gin.Context) {
	query, ok := parseProductQuery(c)
	if !ok {
		return
	}

	products, err := h.facade.Products(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/products/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

func parseProductQuery(c *gin.Context) (model.ProductQuery, bool) {
	q := model.ProductQuery{
		Query:    strings.TrimSpace(c.Query("q")),
		Category: strings.TrimSpace(c.Query("category")),
		Sort:     strings.TrimSpace(c.Query("sort")),
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"inStock", &q.InStockOnly},
		{"sale", &q.OnSaleOnly},
		{"new", &q.NewOnly},
	}
	for _, f := range flags {
		raw := c.Query(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "invalid "+f.name)
			return q, false
		}
		*f.dst = v
	}

	prices := []struct {
		name string
		dst  **decimal.Decimal
	}{
		{"minPrice", &q.MinPrice},
		{"maxPrice", &q.MaxPrice},
	}
	for _, p := range prices {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil || v.IsNegative() {
			badRequest(c, "invalid "+p.name)
			return q, false
		}
		*p.dst = &v
	}
	return q, true
}
