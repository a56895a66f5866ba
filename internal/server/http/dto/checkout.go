package dto

import "github.com/polkiloo/storefront/internal/domain/model"

// EditFieldsRequest maps form field names to new values. Values may be strings,
// booleans or numbers.
type EditFieldsRequest map[string]any

// PaymentMethodRequest selects the payment variant.
type PaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// CheckoutResponse is the state of a checkout session.
type CheckoutResponse struct {
	ID         string             `json:"id"`
	Step       int                `json:"step"`
	StepName   string             `json:"stepName"`
	Form       model.CheckoutForm `json:"form"`
	Errors     map[string]string  `json:"errors"`
	Processing bool               `json:"processing"`
	Items      []CartItemResponse `json:"items"`
	Quote      QuoteResponse      `json:"quote"`
}

// ValidationErrorResponse lists the field errors that block a step.
type ValidationErrorResponse struct {
	Step   int               `json:"step"`
	Errors map[string]string `json:"errors"`
}

// SubmitResponse confirms a placed order.
type SubmitResponse struct {
	OrderID  int64  `json:"orderId"`
	Total    string `json:"total"`
	Status   string `json:"status"`
	Redirect string `json:"redirect"`
}
