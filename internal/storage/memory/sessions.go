package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// SessionStore keeps checkout sessions in process memory. Sessions are stored as
// encoded snapshots so callers never share mutable state.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]storedSession
}

type storedSession struct {
	data      []byte
	version   int64
	updatedAt time.Time
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]storedSession)}
}

func (s *SessionStore) Save(_ context.Context, session *model.CheckoutSession) error {
	next := *session
	next.Version++
	data, err := json.Marshal(&next)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[session.ID].version != session.Version {
		return domainErrors.ErrSessionConflict
	}
	s.sessions[session.ID] = storedSession{data: data, version: next.Version, updatedAt: session.UpdatedAt}
	session.Version = next.Version
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*model.CheckoutSession, error) {
	s.mu.Lock()
	stored, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	var session model.CheckoutSession
	if err := json.Unmarshal(stored.data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) PurgeIdle(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, stored := range s.sessions {
		if stored.updatedAt.Before(before) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Close is a no-op.
func (s *SessionStore) Close() error { return nil }
