package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const defaultPrefix = "storefront:checkout"

// Options configure the Redis connection used for checkout sessions.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// SessionStore keeps checkout sessions in Redis. Keys expire after the idle TTL and every
// save refreshes it.
type SessionStore struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore creates a store backed by a new Redis client.
func NewSessionStore(opts Options) *SessionStore {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return newSessionStore(client, opts.Prefix, opts.TTL)
}

func newSessionStore(client *goredis.Client, prefix string, ttl time.Duration) *SessionStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SessionStore{client: client, prefix: prefix, ttl: ttl}
}

// Save writes session under WATCH so a concurrent writer of the same key makes it fail
// with ErrSessionConflict instead of being overwritten.
func (s *SessionStore) Save(ctx context.Context, session *model.CheckoutSession) error {
	next := *session
	next.Version++
	payload, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	key := s.key(session.ID)
	err = s.client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		if current != session.Version {
			return domainErrors.ErrSessionConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, goredis.TxFailedErr) {
		return domainErrors.ErrSessionConflict
	}
	if err != nil {
		return err
	}
	session.Version = next.Version
	return nil
}

func storedVersion(ctx context.Context, tx *goredis.Tx, key string) (int64, error) {
	val, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var stored struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(val, &stored); err != nil {
		return 0, fmt.Errorf("decode session: %w", err)
	}
	return stored.Version, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*model.CheckoutSession, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domainErrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var session model.CheckoutSession
	if err := json.Unmarshal(val, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// PurgeIdle is a no-op: Redis expires idle sessions itself.
func (s *SessionStore) PurgeIdle(context.Context, time.Time) (int, error) {
	return 0, nil
}

// Ping checks connectivity.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client.
func (s *SessionStore) Close() error {
	return s.client.Close()
}

func (s *SessionStore) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, strings.TrimSpace(id))
}
