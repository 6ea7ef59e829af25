// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	boardcore "github.com/redescolar/cartelera/internal/app/system/board"
	"github.com/redescolar/cartelera/internal/app/system/indexes"
	"github.com/redescolar/cartelera/internal/app/system/livesync"
	"github.com/redescolar/cartelera/internal/app/system/timeouts"
)

// ConnectDB establishes the MongoDB connection and builds the change
// fan-out machinery around it. The watcher and bridge are constructed
// here but not started; Startup does that once schema setup is done.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	connectCtx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	hub := livesync.NewHub(logger)

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Hub:           hub,
		Notifier:      hub,
	}

	if appCfg.WatchChangeStreams {
		deps.Watcher = livesync.NewWatcher(db, hub, []string{
			boardcore.PostsKey,
			boardcore.SuggestionsKey,
			boardcore.ProfilesKey,
		}, logger)
	}

	if appCfg.NotifyRedisURL != "" {
		bridge, err := livesync.NewRedisBridge(appCfg.NotifyRedisURL, hub, logger)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return DBDeps{}, fmt.Errorf("redis bridge: %w", err)
		}
		deps.Bridge = bridge
		deps.Notifier = bridge
	}

	return deps, nil
}

// EnsureSchema creates the indexes the queries depend on. It is
// idempotent and safe to run on every startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return indexes.EnsureAll(ctx, deps.MongoDatabase)
}
