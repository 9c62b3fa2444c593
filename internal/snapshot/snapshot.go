// Package snapshot holds the latest upstream snapshot and keeps it fresh
// on a fixed polling cadence. There is no streaming: a new snapshot
// simply supersedes the previous one, and every read sees a consistent
// products/orders pair.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jekabolt/storefront-insights/internal/entity"
)

type Fetcher interface {
	FetchSnapshot(ctx context.Context) (*entity.Snapshot, error)
}

type Config struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type Store struct {
	c       *Config
	fetcher Fetcher

	mu  sync.RWMutex
	cur *entity.Snapshot

	stopCh chan struct{}
	doneCh chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

func New(c *Config, f Fetcher) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		c:       c,
		fetcher: f,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start performs the initial fetch and launches the polling loop. The
// initial fetch must succeed; without at least one snapshot the service
// has nothing to serve.
func (s *Store) Start() error {
	if err := s.Refresh(s.ctx); err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}

	interval := s.c.PollInterval
	if interval == 0 {
		interval = 30 * time.Second
	}

	go func() {
		defer close(s.doneCh)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.Refresh(s.ctx); err != nil {
					// Keep serving the stale snapshot; the next tick retries.
					slog.Default().Error("snapshot refresh failed", "err", err)
				}
			case <-s.stopCh:
				return
			}
		}
	}()
	return nil
}

func (s *Store) Stop() {
	s.cancel()
	close(s.stopCh)
	<-s.doneCh
}

// Refresh fetches a snapshot now and swaps it in atomically.
func (s *Store) Refresh(ctx context.Context) error {
	snap, err := s.fetcher.FetchSnapshot(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cur = snap
	s.mu.Unlock()

	slog.Default().Info("snapshot refreshed",
		"products", len(snap.Products),
		"orders", len(snap.Orders))
	return nil
}

// Current returns the latest snapshot. Before the first successful fetch
// it returns an empty snapshot, which renders as zero-valued stats.
func (s *Store) Current() *entity.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return &entity.Snapshot{}
	}
	return s.cur
}
