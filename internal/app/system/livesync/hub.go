// internal/app/system/livesync/hub.go

// Package livesync keeps connected clients consistent with the shared
// collections without polling. A Hub fans change notifications in per
// collection key; a Synchronizer turns them into ordered snapshot
// streams. Notifications only ever invalidate (every snapshot is a
// full re-query), so a duplicated or dropped notification can never
// corrupt a subscriber's view, it can only cost one extra resync.
package livesync

import (
	"sync"

	"go.uber.org/zap"
)

// Notifier is anything that accepts a collection-changed signal.
// The Hub is the in-process implementation; the redis bridge layers
// cross-instance delivery on top of it.
type Notifier interface {
	Notify(key string)
}

// Hub routes change notifications for collection keys to the
// subscriptions currently listening on them. Listener channels have
// capacity one and pending signals coalesce: ten rapid changes cost a
// listener at most two resyncs.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan struct{}
	log    *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs: make(map[string]map[int]chan struct{}),
		log:  logger,
	}
}

// Notify signals every listener on key that the collection changed.
// It never blocks: a listener with a signal already pending is skipped.
func (h *Hub) Notify(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// listen registers a listener for key and returns its id and channel.
func (h *Hub) listen(key string) (int, chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	if h.subs[key] == nil {
		h.subs[key] = make(map[int]chan struct{})
	}
	ch := make(chan struct{}, 1)
	h.subs[key][id] = ch
	return id, ch
}

// drop removes a listener. After drop returns no further signal reaches
// the listener's channel; dropping an already-dropped id is a no-op.
func (h *Hub) drop(key string, id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m := h.subs[key]; m != nil {
		delete(m, id)
		if len(m) == 0 {
			delete(h.subs, key)
		}
	}
}
