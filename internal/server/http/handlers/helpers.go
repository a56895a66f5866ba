package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// CurrentCustomerID extracts authenticated customer identifier from context.
func CurrentCustomerID(c *gin.Context) int64 {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return 0
	}
	return principal.CustomerID
}

var statusByError = []struct {
	err    error
	status int
}{
	{domainErrors.ErrNotFound, http.StatusNotFound},
	{domainErrors.ErrInvalidQuantity, http.StatusBadRequest},
	{domainErrors.ErrInvalidOption, http.StatusBadRequest},
	{domainErrors.ErrInvalidPromoCode, http.StatusBadRequest},
	{domainErrors.ErrUnknownField, http.StatusBadRequest},
	{domainErrors.ErrInvalidPaymentMethod, http.StatusBadRequest},
	{domainErrors.ErrInvalidDelivery, http.StatusBadRequest},
	{domainErrors.ErrPasswordMismatch, http.StatusBadRequest},
	{domainErrors.ErrPasswordTooShort, http.StatusBadRequest},
	{domainErrors.ErrOutOfStock, http.StatusConflict},
	{domainErrors.ErrEmptyCart, http.StatusConflict},
	{domainErrors.ErrEmailTaken, http.StatusConflict},
	{domainErrors.ErrAlreadyExists, http.StatusConflict},
	{domainErrors.ErrInvalidTransition, http.StatusConflict},
	{domainErrors.ErrSubmissionInProgress, http.StatusConflict},
	{domainErrors.ErrSessionConflict, http.StatusConflict},
	{domainErrors.ErrSubmissionFailed, http.StatusBadGateway},
	{domainErrors.ErrForbidden, http.StatusForbidden},
}

// writeError maps a use case error to a response. Server errors carry no body.
func writeError(c *gin.Context, err error) {
	if errors.Is(err, domainErrors.ErrUnauthorized) {
		c.Header("Location", middleware.LoginPath)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			msg := domainErrors.Message(err)
			if msg == "" {
				msg = err.Error()
			}
			c.AbortWithStatusJSON(m.status, dto.ErrorResponse{Error: msg})
			return
		}
	}
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
