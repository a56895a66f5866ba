package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/queue"
)

// OrderReader loads persisted orders.
type OrderReader interface {
	GetByID(ctx context.Context, id int64) (*model.Order, error)
}

// ReceiptConsumer handles order receipt tasks.
type ReceiptConsumer struct {
	orders OrderReader
	logger *zap.Logger
}

// NewReceiptConsumer creates a consumer reading orders from orders.
func NewReceiptConsumer(orders OrderReader, logger *zap.Logger) *ReceiptConsumer {
	return &ReceiptConsumer{orders: orders, logger: logger}
}

// Register binds the consumer's handlers to mux.
func (c *ReceiptConsumer) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TaskOrderReceipt, c.handleOrderReceipt)
}

func (c *ReceiptConsumer) handleOrderReceipt(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseOrderReceipt(task)
	if err != nil {
		c.logger.Warn("decode receipt task failed", zap.Error(err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if payload.OrderID == 0 {
		c.logger.Debug("skip receipt without order id")
		return nil
	}

	order, err := c.orders.GetByID(ctx, payload.OrderID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		c.logger.Warn("receipt order not found", zap.Int64("order_id", payload.OrderID))
		return nil
	}
	if err != nil {
		return err
	}

	c.logger.Info("order receipt",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", order.CustomerID),
		zap.String("email", order.Customer.Delivery.Email),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Total.StringFixed(2)),
		zap.String("payment_method", string(order.Customer.PaymentMethod())),
	)
	return nil
}

// ReceiptServer runs the asynq server consuming receipt tasks. A server built without a queue
// does nothing.
type ReceiptServer struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewReceiptServer creates a server for opt/cfg, or a disabled one when enabled is false.
func NewReceiptServer(enabled bool, opt asynq.RedisConnOpt, cfg asynq.Config, consumer *ReceiptConsumer) *ReceiptServer {
	if !enabled {
		return &ReceiptServer{}
	}
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &ReceiptServer{server: asynq.NewServer(opt, cfg), mux: mux}
}

// Enabled reports whether the server consumes tasks.
func (s *ReceiptServer) Enabled() bool {
	return s.server != nil
}

// Start begins processing in background goroutines.
func (s *ReceiptServer) Start() error {
	if !s.Enabled() {
		return nil
	}
	return s.server.Start(s.mux)
}

// Stop waits for active tasks and shuts the server down.
func (s *ReceiptServer) Stop() {
	if !s.Enabled() {
		return
	}
	s.server.Shutdown()
}
