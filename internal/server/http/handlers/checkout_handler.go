package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// SuccessPath is the confirmation page a placed order redirects to.
const SuccessPath = "/checkout/success"

// CheckoutHandler drives the checkout steps.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Start handles POST /api/checkout.
func (h *CheckoutHandler) Start(c *gin.Context) {
	view, err := h.facade.StartCheckout(c.Request.Context(), CurrentCustomerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", "/api/checkout/"+view.Session.ID)
	c.JSON(http.StatusCreated, toCheckoutResponse(view))
}

// Get handles GET /api/checkout/:id.
func (h *CheckoutHandler) Get(c *gin.Context) {
	view, err := h.facade.Checkout(c.Request.Context(), CurrentCustomerID(c), c.Param("id"))
	respondCheckout(c, view, err)
}

// EditFields handles PATCH /api/checkout/:id/fields.
func (h *CheckoutHandler) EditFields(c *gin.Context) {
	var req dto.EditFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}
	values := make(map[string]string, len(req))
	for field, raw := range req {
		v, ok := fieldValue(raw)
		if !ok {
			badRequest(c, "invalid value for "+field)
			return
		}
		values[field] = v
	}

	view, err := h.facade.EditCheckout(c.Request.Context(), CurrentCustomerID(c), c.Param("id"), values)
	respondCheckout(c, view, err)
}

// SelectPaymentMethod handles PUT /api/checkout/:id/payment-method.
func (h *CheckoutHandler) SelectPaymentMethod(c *gin.Context) {
	var req dto.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	view, err := h.facade.SelectPaymentMethod(c.Request.Context(), CurrentCustomerID(c), c.Param("id"), model.PaymentMethod(req.PaymentMethod))
	respondCheckout(c, view, err)
}

// Next handles POST /api/checkout/:id/next.
func (h *CheckoutHandler) Next(c *gin.Context) {
	view, err := h.facade.NextStep(c.Request.Context(), CurrentCustomerID(c), c.Param("id"))
	respondCheckout(c, view, err)
}

// Back handles POST /api/checkout/:id/back.
func (h *CheckoutHandler) Back(c *gin.Context) {
	view, err := h.facade.PreviousStep(c.Request.Context(), CurrentCustomerID(c), c.Param("id"))
	respondCheckout(c, view, err)
}

// Submit handles POST /api/checkout/:id/submit. The response is sent once the simulated
// payment has finished.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	order, err := h.facade.SubmitOrder(c.Request.Context(), CurrentCustomerID(c), c.Param("id"))
	if err != nil {
		var fieldErrs model.FieldErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Step: int(model.StepPayment), Errors: fieldErrs})
			return
		}
		writeError(c, err)
		return
	}

	redirect := SuccessPath + "?orderId=" + strconv.FormatInt(order.ID, 10)
	c.Header("Location", redirect)
	c.JSON(http.StatusCreated, dto.SubmitResponse{
		OrderID:  order.ID,
		Total:    money(order.Total),
		Status:   string(order.Status),
		Redirect: redirect,
	})
}

func respondCheckout(c *gin.Context, view *model.CheckoutView, err error) {
	if err != nil {
		var fieldErrs model.FieldErrors
		if errors.As(err, &fieldErrs) && view != nil {
			c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Step: int(view.Session.Step), Errors: fieldErrs})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCheckoutResponse(view))
}

func fieldValue(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}
