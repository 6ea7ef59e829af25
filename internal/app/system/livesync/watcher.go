// internal/app/system/livesync/watcher.go
package livesync

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Watcher is a background worker that feeds backend-originated changes
// into the hub. It opens one Mongo change stream per watched collection
// and turns every insert/update/delete event into a hub notification.
//
// Change streams need a replica set; on standalone deployments the
// stream fails to open and the watcher retries in the background while
// the hub keeps working on local-mutation and redis notifications
// alone.
type Watcher struct {
	db          *mongo.Database
	hub         *Hub
	collections []string
	retry       time.Duration
	log         *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher for the given collections.
func NewWatcher(db *mongo.Database, hub *Hub, collections []string, logger *zap.Logger) *Watcher {
	return &Watcher{
		db:          db,
		hub:         hub,
		collections: collections,
		retry:       5 * time.Second,
		log:         logger,
	}
}

// Start launches one watch loop per collection.
func (w *Watcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	for _, name := range w.collections {
		w.wg.Add(1)
		go w.run(ctx, name)
	}
	w.log.Info("change stream watcher started",
		zap.Strings("collections", w.collections))
}

// Stop signals the watch loops to exit and waits for them.
func (w *Watcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.wg.Wait()
	w.log.Info("change stream watcher stopped")
}

func (w *Watcher) run(ctx context.Context, name string) {
	defer w.wg.Done()

	for {
		if err := w.watch(ctx, name); err != nil && ctx.Err() == nil {
			w.log.Warn("change stream unavailable, retrying",
				zap.String("collection", name),
				zap.Duration("retry", w.retry),
				zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retry):
		}
		// A stream gap (disconnect, failover) may have swallowed
		// events, so force a resync before resuming: subscribers must
		// not assume gapless delivery across a reconnect.
		w.hub.Notify(name)
	}
}

func (w *Watcher) watch(ctx context.Context, name string) error {
	stream, err := w.db.Collection(name).Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return err
	}
	defer stream.Close(ctx)

	w.log.Info("change stream open", zap.String("collection", name))
	for stream.Next(ctx) {
		w.hub.Notify(name)
	}
	return stream.Err()
}
