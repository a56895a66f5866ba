package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionPurger drops checkout sessions idle since before a cutoff.
type SessionPurger interface {
	PurgeIdle(ctx context.Context, before time.Time) (int, error)
}

// SessionSweeper periodically removes abandoned checkout sessions.
type SessionSweeper struct {
	store    SessionPurger
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSessionSweeper constructs a sweeper removing sessions idle longer than ttl every interval.
func NewSessionSweeper(store SessionPurger, ttl, interval time.Duration, logger *zap.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionSweeper{
		store:    store,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start launches the sweep loop. Calling Start on a running sweeper does nothing.
func (s *SessionSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop ends the loop and waits for an in-progress sweep.
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *SessionSweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one purge pass.
func (s *SessionSweeper) Sweep(ctx context.Context) {
	removed, err := s.store.PurgeIdle(ctx, s.now().Add(-s.ttl))
	if err != nil {
		s.logger.Error("purge idle checkout sessions failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("purged idle checkout sessions", zap.Int("count", removed))
	}
}
