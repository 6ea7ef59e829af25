// internal/app/system/livesync/synchronizer.go
package livesync

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Query recomputes the full visible, sorted sequence for a collection.
// Ordering (createdAt descending, backend order on ties) is the query's
// responsibility; the synchronizer treats the result as opaque.
type Query[T any] func(ctx context.Context) ([]T, error)

// Synchronizer produces snapshot streams for one collection key.
// Subscriptions are independent: each has its own lifecycle and closing
// one never affects another.
type Synchronizer[T any] struct {
	hub   *Hub
	key   string
	query Query[T]
	log   *zap.Logger
}

// NewSynchronizer binds a collection key to its snapshot query.
func NewSynchronizer[T any](hub *Hub, key string, query Query[T], logger *zap.Logger) *Synchronizer[T] {
	return &Synchronizer[T]{hub: hub, key: key, query: query, log: logger}
}

// Subscription is one open snapshot stream. Snapshots are delivered
// latest-wins: a consumer that falls behind skips intermediate
// snapshots instead of back-pressuring the hub.
type Subscription[T any] struct {
	snaps chan []T
	stale atomic.Bool

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Snapshots returns the stream. The channel is closed once the
// subscription ends; after Close returns, nothing more is delivered.
func (s *Subscription[T]) Snapshots() <-chan []T {
	return s.snaps
}

// Stale reports whether the most recent resync failed, leaving the
// last-known snapshot in place. It clears on the next successful
// resync.
func (s *Subscription[T]) Stale() bool {
	return s.stale.Load()
}

// Close tears the subscription down. It is safe to call any number of
// times and from any goroutine; when it returns, the snapshot channel
// is closed and no further snapshot will be delivered.
func (s *Subscription[T]) Close() {
	s.once.Do(s.cancel)
	<-s.done
}

// Subscribe opens a snapshot stream. The first snapshot is computed
// immediately; afterwards every hub notification for the key triggers a
// full recompute. Canceling ctx is equivalent to Close.
func (s *Synchronizer[T]) Subscribe(ctx context.Context) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription[T]{
		snaps:  make(chan []T, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	id, signal := s.hub.listen(s.key)

	go func() {
		defer close(sub.done)
		defer close(sub.snaps)
		defer s.hub.drop(s.key, id)

		s.resync(ctx, sub)
		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				s.resync(ctx, sub)
			}
		}
	}()

	return sub
}

func (s *Synchronizer[T]) resync(ctx context.Context, sub *Subscription[T]) {
	snap, err := s.query(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		// Recoverable: keep the last-known snapshot, flag staleness,
		// and wait for the next notification.
		sub.stale.Store(true)
		s.log.Warn("livesync resync failed",
			zap.String("collection", s.key),
			zap.Error(err))
		return
	}
	sub.stale.Store(false)

	// Latest-wins delivery: replace a pending snapshot rather than
	// blocking the loop.
	select {
	case sub.snaps <- snap:
	default:
		select {
		case <-sub.snaps:
		default:
		}
		select {
		case sub.snaps <- snap:
		default:
		}
	}
}
