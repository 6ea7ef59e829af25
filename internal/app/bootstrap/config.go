// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the cartelera
// service. These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_key, etc.
//   - Environment variables: CARTELERA_MONGO_URI, CARTELERA_SESSION_KEY, etc.
//   - Command-line flags: --mongo_uri, --session_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "cartelera", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "teacher_code", Default: "INELI2026", Desc: "Shared code required to register as teacher"},

	// Profile photo storage
	{Name: "media_upload_url", Default: "", Desc: "Unsigned-preset image upload endpoint (blank disables photo changes)"},
	{Name: "media_upload_preset", Default: "", Desc: "Unsigned upload preset name"},

	// Change fan-out
	{Name: "watch_change_streams", Default: true, Desc: "Tail Mongo change streams for external writes (requires replica set)"},
	{Name: "notify_redis_url", Default: "", Desc: "Redis URL for cross-instance change fan-out (blank disables)"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL this service is served at"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// environment variables (WAFFLE_* for core, CARTELERA_* for app) and
// command-line flags, with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CARTELERA", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionDomain: appValues.String("session_domain"),

		TeacherCode: appValues.String("teacher_code"),

		MediaUploadURL:    appValues.String("media_upload_url"),
		MediaUploadPreset: appValues.String("media_upload_preset"),

		WatchChangeStreams: appValues.Bool("watch_change_streams"),
		NotifyRedisURL:     appValues.String("notify_redis_url"),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI format is checked here to catch configuration errors
// before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.TeacherCode == "" {
		return fmt.Errorf("teacher_code must not be empty")
	}

	// Photo changes need both halves of the upload config or neither.
	if (appCfg.MediaUploadURL == "") != (appCfg.MediaUploadPreset == "") {
		return fmt.Errorf("media_upload_url and media_upload_preset must be set together")
	}

	return nil
}
