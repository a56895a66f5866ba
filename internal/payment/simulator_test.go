package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

func TestSimulatorWaitsDelay(t *testing.T) {
	s := NewSimulator(3 * time.Second)
	var slept time.Duration
	s.sleep = func(d time.Duration) { slept += d }

	if err := s.Process(context.Background(), Charge{Amount: decimal.NewFromInt(10), Method: model.PaymentCard}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slept != 3*time.Second {
		t.Fatalf("expected 3s delay, got %v", slept)
	}
}

func TestSimulatorIgnoresCancellation(t *testing.T) {
	s := NewSimulator(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Process(ctx, Charge{Amount: decimal.NewFromInt(1)}); err != nil {
		t.Fatalf("expected charge to complete, got %v", err)
	}
}

func TestSimulatorDeclinesNonPositiveAmounts(t *testing.T) {
	s := NewSimulator(0)
	s.sleep = func(time.Duration) { t.Fatal("declined charge must not wait") }
	err := s.Process(context.Background(), Charge{Amount: decimal.Zero})
	if !errors.Is(err, domainErrors.ErrPaymentDeclined) {
		t.Fatalf("expected decline, got %v", err)
	}
}
