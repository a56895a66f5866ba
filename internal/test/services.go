package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/payment"
)

// PaymentStub records charges and optionally blocks until Release is closed.
type PaymentStub struct {
	Err     error
	Release chan struct{}
	Started chan struct{}

	mu      sync.Mutex
	Charges []payment.Charge
	CtxErrs []error
}

// Process records charge, signals Started and waits for Release when set.
func (s *PaymentStub) Process(ctx context.Context, charge payment.Charge) error {
	s.mu.Lock()
	s.Charges = append(s.Charges, charge)
	s.CtxErrs = append(s.CtxErrs, ctx.Err())
	s.mu.Unlock()
	if s.Started != nil {
		select {
		case s.Started <- struct{}{}:
		default:
		}
	}
	if s.Release != nil {
		select {
		case <-s.Release:
		case <-time.After(5 * time.Second):
		}
	}
	return s.Err
}

// ChargeCount reports how many charges were processed.
func (s *PaymentStub) ChargeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Charges)
}

// ReceiptQueueStub records enqueued receipts.
type ReceiptQueueStub struct {
	Err error

	mu     sync.Mutex
	Orders []int64
}

// EnqueueOrderReceipt records orderID.
func (s *ReceiptQueueStub) EnqueueOrderReceipt(ctx context.Context, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Orders = append(s.Orders, orderID)
	return s.Err
}
