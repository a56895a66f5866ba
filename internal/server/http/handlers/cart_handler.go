package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// CartHandler manages the signed-in customer's cart.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.facade.Cart(c.Request.Context(), CurrentCustomerID(c))
	h.respond(c, view, err)
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	view, err := h.facade.AddCartItem(c.Request.Context(), CurrentCustomerID(c), model.CartLineInput{
		ProductID: req.ProductID,
		Color:     req.Color,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	h.respond(c, view, err)
}

// UpdateItem handles PATCH /api/cart/items. A quantity of zero or less removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.CartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	view, err := h.facade.UpdateCartItem(c.Request.Context(), CurrentCustomerID(c), lineKey(req), req.Quantity)
	h.respond(c, view, err)
}

// RemoveItem handles DELETE /api/cart/items.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req dto.CartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	view, err := h.facade.RemoveCartItem(c.Request.Context(), CurrentCustomerID(c), lineKey(req))
	h.respond(c, view, err)
}

// ApplyPromo handles POST /api/cart/promo.
func (h *CartHandler) ApplyPromo(c *gin.Context) {
	var req dto.PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	view, err := h.facade.ApplyPromo(c.Request.Context(), CurrentCustomerID(c), req.Code)
	h.respond(c, view, err)
}

// RemovePromo handles DELETE /api/cart/promo.
func (h *CartHandler) RemovePromo(c *gin.Context) {
	view, err := h.facade.RemovePromo(c.Request.Context(), CurrentCustomerID(c))
	h.respond(c, view, err)
}

func (h *CartHandler) respond(c *gin.Context, view *model.CartView, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(view))
}

func lineKey(req dto.CartLineRequest) model.LineKey {
	return model.LineKey{ID: req.ID, Color: req.Color, Size: req.Size}
}
