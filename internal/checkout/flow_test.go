package checkout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

func readySession() *model.CheckoutSession {
	s := NewSession("s-1", &model.Customer{ID: 7, Name: "Ada Lovelace", Email: "ada@example.com"})
	s.Form.Delivery = completeDelivery()
	s.Form.Payment = completeCard()
	return s
}

func TestNewSessionPrefill(t *testing.T) {
	s := NewSession("s-1", &model.Customer{ID: 7, Name: "Ada Lovelace", Email: "ada@example.com", Phone: "080"})

	assert.Equal(t, int64(7), s.CustomerID)
	assert.Equal(t, model.StepDelivery, s.Step)
	assert.Equal(t, "Ada", s.Form.Delivery.FirstName)
	assert.Equal(t, "Lovelace", s.Form.Delivery.LastName)
	assert.Equal(t, model.PaymentCard, s.Form.PaymentMethod())
	assert.Empty(t, s.Errors)
}

func TestNextWalksAllSteps(t *testing.T) {
	s := readySession()

	require.NoError(t, Next(s))
	assert.Equal(t, model.StepPayment, s.Step)
	require.NoError(t, Next(s))
	assert.Equal(t, model.StepReview, s.Step)

	err := Next(s)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
	assert.Equal(t, model.StepReview, s.Step)
}

func TestNextBlockedByValidation(t *testing.T) {
	s := readySession()
	s.Form.Delivery.Address = ""

	err := Next(s)
	var fieldErrs model.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, model.FieldErrors{model.FieldAddress: "Address is required"}, fieldErrs)
	assert.Equal(t, model.StepDelivery, s.Step)
	assert.Equal(t, fieldErrs, s.Errors)

	require.NoError(t, Edit(s, map[string]string{model.FieldAddress: "1 Marina Road"}))
	assert.Empty(t, s.Errors)
	require.NoError(t, Next(s))
	assert.Equal(t, model.StepPayment, s.Step)
}

func TestNextOnPaymentBlockedByMissingCardNumber(t *testing.T) {
	s := readySession()
	s.Step = model.StepPayment
	card := completeCard()
	card.CardNumber = ""
	s.Form.Payment = card

	err := Next(s)
	require.Error(t, err)
	assert.Equal(t, model.StepPayment, s.Step)
	assert.Equal(t, model.FieldErrors{model.FieldCardNumber: "Card number is required"}, s.Errors)
}

func TestValidationReplacesErrorMapWholesale(t *testing.T) {
	s := readySession()
	s.Errors = model.FieldErrors{"stale": "left over"}

	require.NoError(t, Next(s))
	assert.Empty(t, s.Errors)
}

func TestBackIsUnconditionalWithFloor(t *testing.T) {
	s := readySession()
	s.Step = model.StepReview
	s.Form.Payment = model.CardPayment{}

	Back(s)
	assert.Equal(t, model.StepPayment, s.Step)
	Back(s)
	assert.Equal(t, model.StepDelivery, s.Step)
	Back(s)
	assert.Equal(t, model.StepDelivery, s.Step)
}

func TestEditClearsOnlyEditedFields(t *testing.T) {
	s := NewSession("s-1", nil)
	require.Error(t, Next(s))
	require.Len(t, s.Errors, 7)

	require.NoError(t, Edit(s, map[string]string{model.FieldFirstName: "Ada", model.FieldCity: "Lagos"}))
	assert.Len(t, s.Errors, 5)
	assert.NotContains(t, s.Errors, model.FieldFirstName)
	assert.NotContains(t, s.Errors, model.FieldCity)
	assert.Contains(t, s.Errors, model.FieldLastName)
}

func TestEditRejectsUnknownField(t *testing.T) {
	s := NewSession("s-1", nil)

	err := Edit(s, map[string]string{model.FieldCity: "Lagos", "nickname": "x"})
	assert.ErrorIs(t, err, domainErrors.ErrUnknownField)
	assert.Equal(t, "Lagos", s.Form.Delivery.City)
}

func TestSelectPaymentMethodDropsAbandonedVariantErrors(t *testing.T) {
	s := readySession()
	s.Step = model.StepPayment
	s.Form.Payment = model.CardPayment{}
	require.Error(t, Next(s))
	require.Len(t, s.Errors, 4)

	require.NoError(t, SelectPaymentMethod(s, model.PaymentMobileMoney))
	assert.Empty(t, s.Errors)
	assert.Equal(t, model.MobileMoneyPayment{}, s.Form.Payment)

	err := Next(s)
	require.Error(t, err)
	assert.Equal(t, model.FieldErrors{
		model.FieldMobileMoneyProvider: "Provider is required",
		model.FieldMobileMoneyNumber:   "Mobile number is required",
	}, s.Errors)
}

func TestSelectPaymentMethodKeepsDetailsForSameMethod(t *testing.T) {
	s := readySession()

	require.NoError(t, SelectPaymentMethod(s, model.PaymentCard))
	assert.Equal(t, completeCard(), s.Form.Payment)

	err := SelectPaymentMethod(s, "cash")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidPaymentMethod)
	assert.Equal(t, completeCard(), s.Form.Payment)
}

func TestEditSwitchesPaymentMethodBeforeVariantFields(t *testing.T) {
	s := readySession()

	err := Edit(s, map[string]string{
		model.FieldPaymentMethod: string(model.PaymentBankTransfer),
		model.FieldBankName:      "zenith",
	})
	require.NoError(t, err)
	assert.Equal(t, model.BankTransferPayment{BankName: "zenith"}, s.Form.Payment)
}

func TestReadyToSubmit(t *testing.T) {
	s := readySession()
	assert.ErrorIs(t, ReadyToSubmit(s), domainErrors.ErrInvalidTransition)

	s.Step = model.StepReview
	require.NoError(t, ReadyToSubmit(s))

	s.Processing = true
	assert.ErrorIs(t, ReadyToSubmit(s), domainErrors.ErrSubmissionInProgress)

	s.Processing = false
	s.Form.Payment = model.CardPayment{NameOnCard: "Ada"}
	err := ReadyToSubmit(s)
	var fieldErrs model.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Len(t, fieldErrs, 3)
}
