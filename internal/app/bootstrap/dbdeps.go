// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/redescolar/cartelera/internal/app/system/livesync"
)

// DBDeps holds database and fan-out dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Hub is the in-process change fan-out every snapshot stream hangs
	// off. Notifier is what mutations signal through: the hub directly,
	// or the Redis bridge when cross-instance fan-out is configured.
	Hub      *livesync.Hub
	Notifier livesync.Notifier

	Watcher *livesync.Watcher
	Bridge  *livesync.RedisBridge
}
