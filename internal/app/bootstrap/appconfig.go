// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: WAFFLE's CoreConfig
// already covers ports, TLS, logging level, CORS and the like.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Registration gate
	TeacherCode string // Shared secret required to register with the teacher role

	// Profile photo storage (unsigned-preset upload endpoint)
	MediaUploadURL    string // Upload endpoint, e.g. https://api.cloudinary.com/v1_1/<cloud>/image/upload
	MediaUploadPreset string // Unsigned upload preset name

	// Change fan-out
	WatchChangeStreams bool   // Tail Mongo change streams (requires a replica set)
	NotifyRedisURL     string // Optional Redis URL for cross-instance invalidation (blank disables)

	// Base URL this service is reachable at (used in logs and checks)
	BaseURL string
}
