// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// The change-stream watcher and the Redis bridge start here so the
// first snapshot subscriptions already see external writes.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Watcher != nil {
		deps.Watcher.Start()
		logger.Info("change-stream watcher started")
	}
	if deps.Bridge != nil {
		deps.Bridge.Start()
		logger.Info("redis notify bridge started")
	}
	return nil
}
