package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
)

// Checkout form field names.
const (
	FieldFirstName            = "firstName"
	FieldLastName             = "lastName"
	FieldPhone                = "phone"
	FieldEmail                = "email"
	FieldAddress              = "address"
	FieldCity                 = "city"
	FieldState                = "state"
	FieldZipCode              = "zipCode"
	FieldDeliveryInstructions = "deliveryInstructions"
	FieldDeliveryMethod       = "deliveryMethod"
	FieldPaymentMethod        = "paymentMethod"
	FieldCardNumber           = "cardNumber"
	FieldExpiryDate           = "expiryDate"
	FieldCVV                  = "cvv"
	FieldNameOnCard           = "nameOnCard"
	FieldMobileMoneyProvider  = "mobileMoneyProvider"
	FieldMobileMoneyNumber    = "mobileMoneyNumber"
	FieldBankName             = "bankName"
	FieldAccountNumber        = "accountNumber"
	FieldSaveInfo             = "saveInfo"
)

// DeliveryMethod selects shipping speed.
type DeliveryMethod string

const (
	DeliveryStandard DeliveryMethod = "standard"
	DeliveryExpress  DeliveryMethod = "express"
)

// DeliveryDetails is the shipping address block of the form.
type DeliveryDetails struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Instructions string `json:"deliveryInstructions"`
}

// CheckoutForm is the mutable record edited across the checkout steps.
type CheckoutForm struct {
	Delivery       DeliveryDetails
	DeliveryMethod DeliveryMethod
	Payment        Payment
	SaveInfo       bool
}

// NewCheckoutForm returns a form prefilled from the customer profile.
func NewCheckoutForm(c *Customer) CheckoutForm {
	form := CheckoutForm{DeliveryMethod: DeliveryStandard, Payment: CardPayment{}}
	if c == nil {
		return form
	}
	form.Delivery.FirstName, form.Delivery.LastName = c.SplitName()
	form.Delivery.Email = c.Email
	form.Delivery.Phone = c.Phone
	return form
}

// PaymentMethod returns the tag of the selected variant.
func (f CheckoutForm) PaymentMethod() PaymentMethod {
	if f.Payment == nil {
		return ""
	}
	return f.Payment.Method()
}

// Set assigns value to the named field.
func (f *CheckoutForm) Set(field, value string) error {
	d := &f.Delivery
	switch field {
	case FieldFirstName:
		d.FirstName = value
	case FieldLastName:
		d.LastName = value
	case FieldPhone:
		d.Phone = value
	case FieldEmail:
		d.Email = value
	case FieldAddress:
		d.Address = value
	case FieldCity:
		d.City = value
	case FieldState:
		d.State = value
	case FieldZipCode:
		d.ZipCode = value
	case FieldDeliveryInstructions:
		d.Instructions = value
	case FieldDeliveryMethod:
		switch m := DeliveryMethod(value); m {
		case DeliveryStandard, DeliveryExpress:
			f.DeliveryMethod = m
		default:
			return fmt.Errorf("%w: %q", domainErrors.ErrInvalidDelivery, value)
		}
	case FieldSaveInfo:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean", domainErrors.ErrUnknownField, field)
		}
		f.SaveInfo = v
	default:
		if f.Payment == nil {
			return fmt.Errorf("%w: %s", domainErrors.ErrUnknownField, field)
		}
		next, ok := f.Payment.with(field, value)
		if !ok {
			return fmt.Errorf("%w: %s", domainErrors.ErrUnknownField, field)
		}
		f.Payment = next
	}
	return nil
}

// Redacted returns a copy safe to keep on an order.
func (f CheckoutForm) Redacted() CheckoutForm {
	if card, ok := f.Payment.(CardPayment); ok {
		f.Payment = card.Masked()
	}
	return f
}

type checkoutFormJSON struct {
	Delivery       DeliveryDetails `json:"delivery"`
	DeliveryMethod DeliveryMethod  `json:"deliveryMethod"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	Payment        json.RawMessage `json:"payment,omitempty"`
	SaveInfo       bool            `json:"saveInfo"`
}

// MarshalJSON encodes the payment variant next to its tag.
func (f CheckoutForm) MarshalJSON() ([]byte, error) {
	out := checkoutFormJSON{
		Delivery:       f.Delivery,
		DeliveryMethod: f.DeliveryMethod,
		PaymentMethod:  f.PaymentMethod(),
		SaveInfo:       f.SaveInfo,
	}
	if f.Payment != nil {
		raw, err := json.Marshal(f.Payment)
		if err != nil {
			return nil, err
		}
		out.Payment = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the payment variant selected by its tag.
func (f *CheckoutForm) UnmarshalJSON(data []byte) error {
	var in checkoutFormJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	f.Delivery = in.Delivery
	f.DeliveryMethod = in.DeliveryMethod
	f.SaveInfo = in.SaveInfo
	f.Payment = nil
	if in.PaymentMethod == "" {
		return nil
	}

	var (
		payment Payment
		err     error
	)
	switch in.PaymentMethod {
	case PaymentCard:
		var p CardPayment
		err = decodePayment(in.Payment, &p)
		payment = p
	case PaymentMobileMoney:
		var p MobileMoneyPayment
		err = decodePayment(in.Payment, &p)
		payment = p
	case PaymentBankTransfer:
		var p BankTransferPayment
		err = decodePayment(in.Payment, &p)
		payment = p
	default:
		return fmt.Errorf("%w: %q", domainErrors.ErrInvalidPaymentMethod, in.PaymentMethod)
	}
	if err != nil {
		return err
	}
	f.Payment = payment
	return nil
}

func decodePayment(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
