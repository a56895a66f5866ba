package model

import "time"

// Step is a position in the checkout flow.
type Step int

const (
	StepDelivery Step = 1
	StepPayment  Step = 2
	StepReview   Step = 3
)

func (s Step) String() string {
	switch s {
	case StepDelivery:
		return "delivery"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// CheckoutSession keeps the form state of one checkout between requests. Version counts
// successful saves and is checked by the session store on every save.
type CheckoutSession struct {
	ID         string       `json:"id"`
	CustomerID int64        `json:"customerId"`
	Step       Step         `json:"step"`
	Form       CheckoutForm `json:"form"`
	Errors     FieldErrors  `json:"errors"`
	Processing bool         `json:"processing"`
	Version    int64        `json:"version"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
