package errors

import "errors"

var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidOption        = errors.New("invalid product option")
	ErrOutOfStock           = errors.New("product is out of stock")
	ErrInvalidPromoCode     = errors.New("invalid promo code")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrUnknownField         = errors.New("unknown checkout field")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidDelivery      = errors.New("invalid delivery method")
	ErrInvalidTransition    = errors.New("invalid step transition")
	ErrSubmissionInProgress = errors.New("submission in progress")
	ErrSubmissionFailed     = errors.New("submission failed")
	ErrSessionConflict      = errors.New("checkout session changed concurrently")
	ErrPaymentDeclined      = errors.New("payment declined")
)

var messages = []struct {
	err  error
	text string
}{
	{ErrPasswordMismatch, "Passwords do not match"},
	{ErrPasswordTooShort, "Password must be at least 6 characters"},
	{ErrEmailTaken, "An account with this email already exists"},
	{ErrInvalidCredentials, "Invalid email or password"},
	{ErrInvalidPromoCode, "Invalid promo code"},
	{ErrEmptyCart, "Your cart is empty"},
	{ErrSubmissionFailed, "Payment failed. Please try again."},
	{ErrSessionConflict, "Your checkout was updated in another request. Please try again."},
}

// Message returns the text shown to customers for err, or an empty string.
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.text
		}
	}
	return ""
}
