package checkout

import (
	"strings"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type requirement struct {
	field   string
	value   string
	message string
}

// Validate checks the required fields of step and returns the complete error map for it.
// An empty map means the step may be left. The review step has no requirements.
func Validate(step model.Step, form model.CheckoutForm) model.FieldErrors {
	errs := model.FieldErrors{}
	switch step {
	case model.StepDelivery:
		collect(errs, deliveryRequirements(form.Delivery))
	case model.StepPayment:
		collect(errs, paymentRequirements(form.Payment))
	}
	return errs
}

func collect(errs model.FieldErrors, reqs []requirement) {
	for _, r := range reqs {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = r.message
		}
	}
}

func deliveryRequirements(d model.DeliveryDetails) []requirement {
	return []requirement{
		{model.FieldFirstName, d.FirstName, "First name is required"},
		{model.FieldLastName, d.LastName, "Last name is required"},
		{model.FieldPhone, d.Phone, "Phone number is required"},
		{model.FieldEmail, d.Email, "Email is required"},
		{model.FieldAddress, d.Address, "Address is required"},
		{model.FieldCity, d.City, "City is required"},
		{model.FieldState, d.State, "State is required"},
	}
}

func paymentRequirements(p model.Payment) []requirement {
	switch p := p.(type) {
	case model.CardPayment:
		return []requirement{
			{model.FieldCardNumber, p.CardNumber, "Card number is required"},
			{model.FieldExpiryDate, p.ExpiryDate, "Expiry date is required"},
			{model.FieldCVV, p.CVV, "CVV is required"},
			{model.FieldNameOnCard, p.NameOnCard, "Name on card is required"},
		}
	case model.MobileMoneyPayment:
		return []requirement{
			{model.FieldMobileMoneyProvider, p.Provider, "Provider is required"},
			{model.FieldMobileMoneyNumber, p.Number, "Mobile number is required"},
		}
	case model.BankTransferPayment:
		return []requirement{
			{model.FieldBankName, p.BankName, "Bank name is required"},
			{model.FieldAccountNumber, p.AccountNumber, "Account number is required"},
		}
	default:
		return []requirement{{model.FieldPaymentMethod, "", "Payment method is required"}}
	}
}
