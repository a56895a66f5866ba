package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/storefront/internal/checkout"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/payment"
	"github.com/polkiloo/storefront/internal/pricing"
)

// PaymentProcessor collects a charge.
type PaymentProcessor interface {
	Process(ctx context.Context, charge payment.Charge) error
}

// ReceiptPublisher schedules the receipt of a placed order.
type ReceiptPublisher interface {
	EnqueueOrderReceipt(ctx context.Context, orderID int64) error
}

// CheckoutParams lists CheckoutUseCase dependencies.
type CheckoutParams struct {
	fx.In

	Sessions  repository.SessionStore
	Carts     repository.CartRepository
	Orders    repository.OrderRepository
	Customers repository.CustomerRepository
	Pricing   *pricing.Calculator
	Payments  PaymentProcessor
	Receipts  ReceiptPublisher
	IDs       *OrderIDGenerator
	Logger    *zap.Logger
}

// CheckoutUseCase drives checkout sessions from delivery details to a placed order.
type CheckoutUseCase struct {
	sessions  repository.SessionStore
	carts     repository.CartRepository
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	pricing   *pricing.Calculator
	payments  PaymentProcessor
	receipts  ReceiptPublisher
	ids       *OrderIDGenerator
	logger    *zap.Logger

	now       func() time.Time
	sessionID func() string
	inflight  sync.Map
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(p CheckoutParams) *CheckoutUseCase {
	ids := p.IDs
	if ids == nil {
		ids = NewOrderIDGenerator()
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutUseCase{
		sessions:  p.Sessions,
		carts:     p.Carts,
		orders:    p.Orders,
		customers: p.Customers,
		pricing:   p.Pricing,
		payments:  p.Payments,
		receipts:  p.Receipts,
		ids:       ids,
		logger:    logger,
		now:       time.Now,
		sessionID: uuid.NewString,
	}
}

// Start opens a checkout for the customer's cart with the form prefilled from the profile.
func (u *CheckoutUseCase) Start(ctx context.Context, customerID int64) (*model.CheckoutView, error) {
	cart, err := u.carts.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return nil, domainErrors.ErrEmptyCart
	}
	customer, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}

	s := checkout.NewSession(u.sessionID(), customer)
	s.CreatedAt = u.now()
	s.UpdatedAt = s.CreatedAt
	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, err
	}
	return u.view(s, cart), nil
}

// View returns a session of the customer.
func (u *CheckoutUseCase) View(ctx context.Context, customerID int64, sessionID string) (*model.CheckoutView, error) {
	s, err := u.load(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}
	return u.viewWithCart(ctx, s)
}

// EditFields applies form edits. Edited fields lose their error entries.
func (u *CheckoutUseCase) EditFields(ctx context.Context, customerID int64, sessionID string, values map[string]string) (*model.CheckoutView, error) {
	return u.mutate(ctx, customerID, sessionID, func(s *model.CheckoutSession) error {
		return checkout.Edit(s, values)
	})
}

// SelectPaymentMethod switches the payment variant.
func (u *CheckoutUseCase) SelectPaymentMethod(ctx context.Context, customerID int64, sessionID string, method model.PaymentMethod) (*model.CheckoutView, error) {
	return u.mutate(ctx, customerID, sessionID, func(s *model.CheckoutSession) error {
		return checkout.SelectPaymentMethod(s, method)
	})
}

// Next validates the current step and advances. Validation failures are stored on the session
// and returned as model.FieldErrors together with the view.
func (u *CheckoutUseCase) Next(ctx context.Context, customerID int64, sessionID string) (*model.CheckoutView, error) {
	return u.mutate(ctx, customerID, sessionID, checkout.Next)
}

// Back returns to the previous step.
func (u *CheckoutUseCase) Back(ctx context.Context, customerID int64, sessionID string) (*model.CheckoutView, error) {
	return u.mutate(ctx, customerID, sessionID, func(s *model.CheckoutSession) error {
		checkout.Back(s)
		return nil
	})
}

// Submit charges the cart total and records the order. A second submit of the same session
// while one is running fails with ErrSubmissionInProgress, or with ErrSessionConflict when
// it races the first on another instance. Once the charge has started the submission is not
// cancelled by ctx. Any failure after that point is reported as ErrSubmissionFailed and
// leaves the session as it was.
func (u *CheckoutUseCase) Submit(ctx context.Context, customerID int64, sessionID string) (*model.Order, error) {
	s, err := u.load(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}
	if _, busy := u.inflight.LoadOrStore(sessionID, struct{}{}); busy {
		return nil, domainErrors.ErrSubmissionInProgress
	}
	defer u.inflight.Delete(sessionID)

	if err := checkout.ReadyToSubmit(s); err != nil {
		var fieldErrs model.FieldErrors
		if errors.As(err, &fieldErrs) {
			if saveErr := u.save(ctx, s); saveErr != nil {
				return nil, saveErr
			}
		}
		return nil, err
	}

	cart, err := u.carts.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return nil, domainErrors.ErrEmptyCart
	}

	s.Processing = true
	if err := u.save(ctx, s); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	quote := u.pricing.Quote(cart.Items, s.Form.DeliveryMethod, cart.PromoCode)
	order, err := u.place(ctx, s, cart, quote)
	if err != nil {
		s.Processing = false
		if saveErr := u.save(ctx, s); saveErr != nil {
			u.logger.Error("reset checkout session failed", zap.String("session_id", s.ID), zap.Error(saveErr))
		}
		u.logger.Warn("checkout submission failed", zap.String("session_id", s.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrSubmissionFailed, err)
	}

	u.finish(ctx, s, order)
	return order, nil
}

func (u *CheckoutUseCase) place(ctx context.Context, s *model.CheckoutSession, cart *model.Cart, quote model.Quote) (*model.Order, error) {
	charge := payment.Charge{Amount: quote.Total, Method: s.Form.PaymentMethod()}
	if err := u.payments.Process(ctx, charge); err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:          u.ids.Next(),
		CustomerID:  s.CustomerID,
		Items:       cart.Snapshot(),
		Customer:    s.Form.Redacted(),
		Subtotal:    quote.Subtotal,
		Discount:    quote.Discount,
		DeliveryFee: quote.DeliveryFee,
		Tax:         quote.Tax,
		Total:       quote.Total,
		Status:      model.OrderStatusConfirmed,
		CreatedAt:   u.now(),
	}
	if err := u.orders.Append(ctx, order); err != nil {
		return nil, fmt.Errorf("append order: %w", err)
	}
	return order, nil
}

// finish runs the follow-ups of a placed order. Their failures do not undo the order.
func (u *CheckoutUseCase) finish(ctx context.Context, s *model.CheckoutSession, order *model.Order) {
	log := u.logger.With(zap.Int64("order_id", order.ID), zap.String("session_id", s.ID))
	log.Info("order placed", zap.String("total", order.Total.StringFixed(2)))

	if err := u.carts.Clear(ctx, s.CustomerID); err != nil {
		log.Warn("clear cart failed", zap.Error(err))
	}
	if u.receipts != nil {
		if err := u.receipts.EnqueueOrderReceipt(ctx, order.ID); err != nil {
			log.Warn("enqueue receipt failed", zap.Error(err))
		}
	}
	if err := u.sessions.Delete(ctx, s.ID); err != nil {
		log.Warn("delete checkout session failed", zap.Error(err))
	}
}

// mutate loads, edits and saves a session. The save fails with ErrSessionConflict when the
// session was saved or deleted by someone else after the load.
func (u *CheckoutUseCase) mutate(ctx context.Context, customerID int64, sessionID string, apply func(*model.CheckoutSession) error) (*model.CheckoutView, error) {
	s, err := u.load(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}
	if s.Processing {
		return nil, domainErrors.ErrSubmissionInProgress
	}

	applyErr := apply(s)
	var fieldErrs model.FieldErrors
	if applyErr != nil && !errors.As(applyErr, &fieldErrs) {
		return nil, applyErr
	}
	if err := u.save(ctx, s); err != nil {
		return nil, err
	}
	view, err := u.viewWithCart(ctx, s)
	if err != nil {
		return nil, err
	}
	return view, applyErr
}

func (u *CheckoutUseCase) load(ctx context.Context, customerID int64, sessionID string) (*model.CheckoutSession, error) {
	s, err := u.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.CustomerID != customerID {
		return nil, domainErrors.ErrNotFound
	}
	if s.Errors == nil {
		s.Errors = model.FieldErrors{}
	}
	return s, nil
}

func (u *CheckoutUseCase) save(ctx context.Context, s *model.CheckoutSession) error {
	s.UpdatedAt = u.now()
	return u.sessions.Save(ctx, s)
}

func (u *CheckoutUseCase) viewWithCart(ctx context.Context, s *model.CheckoutSession) (*model.CheckoutView, error) {
	cart, err := u.carts.Get(ctx, s.CustomerID)
	if err != nil {
		return nil, err
	}
	return u.view(s, cart), nil
}

func (u *CheckoutUseCase) view(s *model.CheckoutSession, cart *model.Cart) *model.CheckoutView {
	return &model.CheckoutView{
		Session: s,
		Items:   cart.Snapshot(),
		Quote:   u.pricing.Quote(cart.Items, s.Form.DeliveryMethod, cart.PromoCode),
	}
}
