package checkout

import (
	"fmt"
	"sort"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// NewSession starts a checkout at the delivery step with a form prefilled from customer.
func NewSession(id string, customer *model.Customer) *model.CheckoutSession {
	s := &model.CheckoutSession{
		ID:     id,
		Step:   model.StepDelivery,
		Form:   model.NewCheckoutForm(customer),
		Errors: model.FieldErrors{},
	}
	if customer != nil {
		s.CustomerID = customer.ID
	}
	return s
}

// Next validates the current step, replacing the session's error map, and advances when it passes.
// Leaving the review step is only possible through submission.
func Next(s *model.CheckoutSession) error {
	if s.Step >= model.StepReview {
		return fmt.Errorf("%w: next from %s", domainErrors.ErrInvalidTransition, s.Step)
	}
	s.Errors = Validate(s.Step, s.Form)
	if len(s.Errors) > 0 {
		return s.Errors
	}
	s.Step++
	return nil
}

// Back moves one step back without validation. It stays on the first step.
func Back(s *model.CheckoutSession) {
	if s.Step > model.StepDelivery {
		s.Step--
	}
}

// Edit applies field values and clears the error entry of every edited field. A payment method
// change is applied first, the remaining fields in name order. Values applied before a failing
// field are kept.
func Edit(s *model.CheckoutSession, values map[string]string) error {
	if method, ok := values[model.FieldPaymentMethod]; ok {
		if err := SelectPaymentMethod(s, model.PaymentMethod(method)); err != nil {
			return err
		}
	}

	fields := make([]string, 0, len(values))
	for f := range values {
		if f != model.FieldPaymentMethod {
			fields = append(fields, f)
		}
	}
	sort.Strings(fields)

	if s.Errors == nil {
		s.Errors = model.FieldErrors{}
	}
	for _, f := range fields {
		if err := s.Form.Set(f, values[f]); err != nil {
			return err
		}
		s.Errors.Clear(f)
	}
	return nil
}

// SelectPaymentMethod switches the payment variant. Details of the previous variant are
// discarded together with their error entries. Selecting the current method keeps its details.
func SelectPaymentMethod(s *model.CheckoutSession, method model.PaymentMethod) error {
	if s.Form.PaymentMethod() == method {
		return nil
	}
	next, ok := model.NewPayment(method)
	if !ok {
		return fmt.Errorf("%w: %q", domainErrors.ErrInvalidPaymentMethod, method)
	}
	if s.Errors == nil {
		s.Errors = model.FieldErrors{}
	}
	if s.Form.Payment != nil {
		s.Errors.Clear(s.Form.Payment.Fields()...)
	}
	s.Errors.Clear(model.FieldPaymentMethod)
	s.Form.Payment = next
	return nil
}

// ReadyToSubmit checks that the session is on the review step, is not already being
// submitted, and that its payment details still validate.
func ReadyToSubmit(s *model.CheckoutSession) error {
	if s.Step != model.StepReview {
		return fmt.Errorf("%w: submit from %s", domainErrors.ErrInvalidTransition, s.Step)
	}
	if s.Processing {
		return domainErrors.ErrSubmissionInProgress
	}
	s.Errors = Validate(model.StepPayment, s.Form)
	if len(s.Errors) > 0 {
		return s.Errors
	}
	return nil
}
