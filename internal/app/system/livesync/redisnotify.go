// internal/app/system/livesync/redisnotify.go
package livesync

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channel = "cartelera:changed"

// RedisBridge extends the hub across service instances. Notify signals
// the local hub immediately and publishes the collection key on a redis
// channel; a background loop feeds received keys (including our own
// echoes, which coalesce harmlessly) back into the hub.
type RedisBridge struct {
	client *redis.Client
	hub    *Hub
	log    *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRedisBridge connects to redis and verifies the connection with a
// ping before returning.
func NewRedisBridge(url string, hub *Hub, logger *zap.Logger) (*RedisBridge, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisBridge{client: client, hub: hub, log: logger}, nil
}

// Notify implements Notifier: local fan-out plus cross-instance
// publish. A publish failure is logged and otherwise ignored; the
// local hub already fired, and remote instances recover on their next
// notification since every resync is a full re-query.
func (b *RedisBridge) Notify(key string) {
	b.hub.Notify(key)
	if err := b.client.Publish(context.Background(), channel, key).Err(); err != nil {
		b.log.Warn("redis publish failed", zap.String("collection", key), zap.Error(err))
	}
}

// Start launches the subscribe loop.
func (b *RedisBridge) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	pubsub := b.client.Subscribe(ctx, channel)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				b.hub.Notify(msg.Payload)
			}
		}
	}()
	b.log.Info("redis change bridge started", zap.String("channel", channel))
}

// Stop ends the subscribe loop and closes the client.
func (b *RedisBridge) Stop() {
	if b.cancel != nil {
		b.cancel()
		b.wg.Wait()
	}
	if err := b.client.Close(); err != nil {
		b.log.Warn("redis close failed", zap.Error(err))
	}
	b.log.Info("redis change bridge stopped")
}
