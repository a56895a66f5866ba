package model

import "strings"

// PaymentMethod tags the payment variant of a checkout form.
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentMobileMoney  PaymentMethod = "mobile_money"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// Payment is the closed set of payment details a form can carry:
// CardPayment, MobileMoneyPayment and BankTransferPayment.
type Payment interface {
	Method() PaymentMethod
	// Fields lists the form fields owned by the variant.
	Fields() []string
	with(field, value string) (Payment, bool)
}

// NewPayment returns empty details for method.
func NewPayment(method PaymentMethod) (Payment, bool) {
	switch method {
	case PaymentCard:
		return CardPayment{}, true
	case PaymentMobileMoney:
		return MobileMoneyPayment{}, true
	case PaymentBankTransfer:
		return BankTransferPayment{}, true
	default:
		return nil, false
	}
}

// CardPayment holds card details.
type CardPayment struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv,omitempty"`
	NameOnCard string `json:"nameOnCard"`
}

func (CardPayment) Method() PaymentMethod { return PaymentCard }

func (CardPayment) Fields() []string {
	return []string{FieldCardNumber, FieldExpiryDate, FieldCVV, FieldNameOnCard}
}

func (p CardPayment) with(field, value string) (Payment, bool) {
	switch field {
	case FieldCardNumber:
		p.CardNumber = value
	case FieldExpiryDate:
		p.ExpiryDate = value
	case FieldCVV:
		p.CVV = value
	case FieldNameOnCard:
		p.NameOnCard = value
	default:
		return p, false
	}
	return p, true
}

// Masked keeps the last four digits of the card number and drops the CVV.
func (p CardPayment) Masked() CardPayment {
	var digits strings.Builder
	for _, r := range p.CardNumber {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	masked := "****"
	if len(d) >= 4 {
		masked += " " + d[len(d)-4:]
	}
	p.CardNumber = masked
	p.CVV = ""
	return p
}

// MobileMoneyPayment holds mobile wallet details.
type MobileMoneyPayment struct {
	Provider string `json:"mobileMoneyProvider"`
	Number   string `json:"mobileMoneyNumber"`
}

func (MobileMoneyPayment) Method() PaymentMethod { return PaymentMobileMoney }

func (MobileMoneyPayment) Fields() []string {
	return []string{FieldMobileMoneyProvider, FieldMobileMoneyNumber}
}

func (p MobileMoneyPayment) with(field, value string) (Payment, bool) {
	switch field {
	case FieldMobileMoneyProvider:
		p.Provider = value
	case FieldMobileMoneyNumber:
		p.Number = value
	default:
		return p, false
	}
	return p, true
}

// BankTransferPayment holds bank account details.
type BankTransferPayment struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
}

func (BankTransferPayment) Method() PaymentMethod { return PaymentBankTransfer }

func (BankTransferPayment) Fields() []string {
	return []string{FieldBankName, FieldAccountNumber}
}

func (p BankTransferPayment) with(field, value string) (Payment, bool) {
	switch field {
	case FieldBankName:
		p.BankName = value
	case FieldAccountNumber:
		p.AccountNumber = value
	default:
		return p, false
	}
	return p, true
}
