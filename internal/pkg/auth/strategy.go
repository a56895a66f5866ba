package auth

import (
	"errors"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Principal is the identity carried by a token.
type Principal struct {
	CustomerID int64
	Role       model.Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == model.RoleAdmin
}

type Strategy interface {
	IssueToken(p Principal) (string, error)
	ParseToken(token string) (Principal, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	Now func() time.Time
}

const defaultTTL = 24 * time.Hour

func (o Options) normalize() Options {
	if o.TTL <= 0 {
		o.TTL = defaultTTL
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
