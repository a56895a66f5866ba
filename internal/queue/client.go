package queue

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"github.com/polkiloo/storefront/internal/config"
)

// DefaultQueue is the queue receipts are published to.
const DefaultQueue = "default"

// Client publishes background tasks. A disabled client accepts and drops every task.
type Client struct {
	client  *asynq.Client
	enabled bool
	queue   string
}

// NewClient creates a client for cfg. The queue is disabled unless cfg enables it.
func NewClient(cfg *config.Config) *Client {
	if cfg == nil || !cfg.QueueEnabled {
		return &Client{queue: DefaultQueue}
	}
	return &Client{
		client:  asynq.NewClient(RedisOpt(cfg)),
		enabled: true,
		queue:   DefaultQueue,
	}
}

// Enabled reports whether tasks reach Redis.
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close releases the Redis connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueOrderReceipt schedules the receipt of orderID.
func (c *Client) EnqueueOrderReceipt(ctx context.Context, orderID int64) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderReceiptTask(OrderReceiptPayload{OrderID: orderID})
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(3), asynq.Timeout(30*time.Second))
	return err
}

// RedisOpt builds asynq connection options from cfg.
func RedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// ServerConfig builds the asynq server configuration for cfg.
func ServerConfig(cfg *config.Config) asynq.Config {
	concurrency := cfg.QueueConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{DefaultQueue: 1},
	}
}
