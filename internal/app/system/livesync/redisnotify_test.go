package livesync

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestBridge(t *testing.T) (*RedisBridge, *miniredis.Miniredis, *Hub) {
	t.Helper()
	mr := miniredis.RunT(t)
	hub := NewHub(zap.NewNop())
	bridge, err := NewRedisBridge(fmt.Sprintf("redis://%s", mr.Addr()), hub, zap.NewNop())
	if err != nil {
		t.Fatalf("NewRedisBridge failed: %v", err)
	}
	return bridge, mr, hub
}

func TestBridgeRejectsBadURL(t *testing.T) {
	hub := NewHub(zap.NewNop())
	if _, err := NewRedisBridge("not-a-url", hub, zap.NewNop()); err == nil {
		t.Fatal("bad URL accepted")
	}
}

func TestBridgeRejectsDeadServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	hub := NewHub(zap.NewNop())
	if _, err := NewRedisBridge(fmt.Sprintf("redis://%s", addr), hub, zap.NewNop()); err == nil {
		t.Fatal("dead server accepted")
	}
}

func TestBridgeNotifySignalsLocalHub(t *testing.T) {
	bridge, _, hub := newTestBridge(t)
	defer bridge.Stop()

	id, ch := hub.listen("posts")
	defer hub.drop("posts", id)

	bridge.Notify("posts")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("local hub not notified")
	}
}

func TestBridgeReceivesRemotePublish(t *testing.T) {
	bridge, mr, hub := newTestBridge(t)
	bridge.Start()
	defer bridge.Stop()

	id, ch := hub.listen("sugerencias")
	defer hub.drop("sugerencias", id)

	// Another instance publishing on the shared channel.
	other := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer other.Close()

	deadline := time.After(2 * time.Second)
	for {
		// Re-publish until the subscribe loop is attached; pubsub has
		// no delivery guarantee for messages sent before subscribing.
		if err := other.Publish(context.Background(), channel, "sugerencias").Err(); err != nil {
			t.Fatalf("publish: %v", err)
		}
		select {
		case <-ch:
			return
		case <-deadline:
			t.Fatal("remote publish never reached the hub")
		case <-time.After(50 * time.Millisecond):
		}
	}
}
