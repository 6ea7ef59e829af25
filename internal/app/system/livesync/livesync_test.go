package livesync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func waitSnap(t *testing.T, sub *Subscription[int]) []int {
	t.Helper()
	select {
	case snap, ok := <-sub.Snapshots():
		if !ok {
			t.Fatal("snapshot channel closed unexpectedly")
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

// fakeSource is a mutable backing sequence for synchronizer tests.
type fakeSource struct {
	mu   sync.Mutex
	data []int
	err  error
}

func (f *fakeSource) set(data []int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = data
	f.err = err
}

func (f *fakeSource) query(ctx context.Context) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]int, len(f.data))
	copy(out, f.data)
	return out, nil
}

func newTestSync(t *testing.T, src *fakeSource) (*Hub, *Synchronizer[int]) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	return hub, NewSynchronizer(hub, "posts", src.query, zap.NewNop())
}

func TestSubscribe_InitialSnapshot(t *testing.T) {
	src := &fakeSource{data: []int{3, 2, 1}}
	_, sync := newTestSync(t, src)

	sub := sync.Subscribe(context.Background())
	defer sub.Close()

	snap := waitSnap(t, sub)
	if len(snap) != 3 || snap[0] != 3 {
		t.Errorf("initial snapshot = %v, want [3 2 1]", snap)
	}
}

func TestNotify_TriggersFullResync(t *testing.T) {
	src := &fakeSource{data: []int{1}}
	hub, sync := newTestSync(t, src)

	sub := sync.Subscribe(context.Background())
	defer sub.Close()
	waitSnap(t, sub)

	src.set([]int{2, 1}, nil)
	hub.Notify("posts")

	snap := waitSnap(t, sub)
	if len(snap) != 2 || snap[0] != 2 {
		t.Errorf("snapshot after notify = %v, want [2 1]", snap)
	}
}

func TestNotify_OtherKeyIgnored(t *testing.T) {
	src := &fakeSource{data: []int{1}}
	hub, sync := newTestSync(t, src)

	sub := sync.Subscribe(context.Background())
	defer sub.Close()
	waitSnap(t, sub)

	hub.Notify("sugerencias")

	select {
	case snap := <-sub.Snapshots():
		t.Errorf("unexpected snapshot %v for unrelated key", snap)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestClose_Idempotent(t *testing.T) {
	src := &fakeSource{data: []int{1}}
	_, sync := newTestSync(t, src)

	sub := sync.Subscribe(context.Background())
	sub.Close()
	sub.Close() // must not panic or hang

	if _, ok := <-sub.Snapshots(); ok {
		// Draining a snapshot buffered before Close is fine, but the
		// channel must be closed behind it.
		if _, ok := <-sub.Snapshots(); ok {
			t.Error("snapshot channel still open after Close")
		}
	}
}

func TestClose_StopsDelivery(t *testing.T) {
	src := &fakeSource{data: []int{1}}
	hub, sync := newTestSync(t, src)

	sub := sync.Subscribe(context.Background())
	waitSnap(t, sub)
	sub.Close()

	// A notification emitted immediately after teardown must not reach
	// the defunct subscription.
	hub.Notify("posts")

	for snap := range sub.Snapshots() {
		t.Errorf("snapshot %v delivered after Close", snap)
	}
}

func TestSubscriptions_Independent(t *testing.T) {
	src := &fakeSource{data: []int{1}}
	hub, sync := newTestSync(t, src)

	a := sync.Subscribe(context.Background())
	b := sync.Subscribe(context.Background())
	defer b.Close()
	waitSnap(t, a)
	waitSnap(t, b)

	a.Close()

	src.set([]int{2, 1}, nil)
	hub.Notify("posts")

	snap := waitSnap(t, b)
	if len(snap) != 2 {
		t.Errorf("surviving subscription got %v, want 2 entries", snap)
	}
}

func TestResyncError_KeepsLastSnapshotAndFlagsStale(t *testing.T) {
	src := &fakeSource{data: []int{1}}
	hub, sync := newTestSync(t, src)

	sub := sync.Subscribe(context.Background())
	defer sub.Close()
	waitSnap(t, sub)

	src.set(nil, errors.New("connection reset"))
	hub.Notify("posts")

	deadline := time.After(2 * time.Second)
	for !sub.Stale() {
		select {
		case <-deadline:
			t.Fatal("subscription never flagged stale")
		case <-time.After(10 * time.Millisecond):
		}
	}

	select {
	case snap := <-sub.Snapshots():
		t.Errorf("unexpected snapshot %v from failed resync", snap)
	case <-time.After(100 * time.Millisecond):
	}

	// Recovery on the next notification clears the flag.
	src.set([]int{5}, nil)
	hub.Notify("posts")
	snap := waitSnap(t, sub)
	if len(snap) != 1 || snap[0] != 5 {
		t.Errorf("recovered snapshot = %v, want [5]", snap)
	}
	if sub.Stale() {
		t.Error("stale flag not cleared after successful resync")
	}
}

func TestNotify_Coalesces(t *testing.T) {
	src := &fakeSource{data: []int{1}}
	hub, sync := newTestSync(t, src)

	sub := sync.Subscribe(context.Background())
	defer sub.Close()

	// A burst from a slow consumer's perspective must never block the
	// hub; the consumer simply observes the latest state.
	for i := 0; i < 100; i++ {
		hub.Notify("posts")
	}
	src.set([]int{9}, nil)
	hub.Notify("posts")

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-sub.Snapshots():
			if len(snap) == 1 && snap[0] == 9 {
				return
			}
		case <-deadline:
			t.Fatal("never observed the final snapshot")
		}
	}
}

func TestSubscribe_ContextCancelEndsStream(t *testing.T) {
	src := &fakeSource{data: []int{1}}
	_, sync := newTestSync(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	sub := sync.Subscribe(ctx)
	waitSnap(t, sub)

	cancel()
	sub.Close() // also exercises Close after ctx cancellation

	for range sub.Snapshots() {
	}
}
