package repository

import (
	"context"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// SessionStore keeps checkout sessions between requests.
type SessionStore interface {
	// Save writes session only if the stored copy still has session.Version, a missing
	// session counting as version 0, and then advances session.Version. A mismatch fails
	// with errors.ErrSessionConflict.
	Save(ctx context.Context, session *model.CheckoutSession) error
	Get(ctx context.Context, id string) (*model.CheckoutSession, error)
	Delete(ctx context.Context, id string) error
	// PurgeIdle drops sessions not updated since before and reports how many were removed.
	PurgeIdle(ctx context.Context, before time.Time) (int, error)
}
