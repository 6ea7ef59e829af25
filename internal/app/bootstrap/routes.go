// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	boardfeature "github.com/redescolar/cartelera/internal/app/features/board"
	buzonfeature "github.com/redescolar/cartelera/internal/app/features/buzon"
	healthfeature "github.com/redescolar/cartelera/internal/app/features/health"
	heartbeatfeature "github.com/redescolar/cartelera/internal/app/features/heartbeat"
	loginfeature "github.com/redescolar/cartelera/internal/app/features/login"
	logoutfeature "github.com/redescolar/cartelera/internal/app/features/logout"
	profilefeature "github.com/redescolar/cartelera/internal/app/features/profile"
	registerfeature "github.com/redescolar/cartelera/internal/app/features/register"
	credentialstore "github.com/redescolar/cartelera/internal/app/store/credentials"
	poststore "github.com/redescolar/cartelera/internal/app/store/posts"
	profilestore "github.com/redescolar/cartelera/internal/app/store/profiles"
	suggestionstore "github.com/redescolar/cartelera/internal/app/store/suggestions"
	"github.com/redescolar/cartelera/internal/app/system/auth"
	boardcore "github.com/redescolar/cartelera/internal/app/system/board"
	"github.com/redescolar/cartelera/internal/app/system/identity"
	"github.com/redescolar/cartelera/internal/app/system/media"
	"github.com/redescolar/cartelera/internal/app/system/policy"
	"github.com/redescolar/cartelera/internal/app/system/timeouts"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. It wires the stores, the
// identity layer, the mutation coordinator and the feature routers
// together, and installs the session middleware globally so
// auth.CurrentIdentity works in every handler.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Stores
	credentials := credentialstore.New(deps.MongoDatabase)
	profiles := profilestore.New(deps.MongoDatabase)
	posts := poststore.New(deps.MongoDatabase)
	suggestions := suggestionstore.New(deps.MongoDatabase)

	// The session cookie only carries the credential id; the identity
	// is re-fetched per request so cargo changes take effect without a
	// new login. A credential whose profile is missing resolves to
	// "not signed in", matching the conjunctive identity rule.
	auth.SetIdentityFetcher(func(ctx context.Context, uid string) (policy.Identity, bool) {
		ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
		defer cancel()
		u, err := profiles.GetByID(ctx, uid)
		if err != nil {
			return policy.Identity{}, false
		}
		return profilestore.Identity(u), true
	})

	// Identity layer
	provider := identity.NewProvider(credentials)
	registrar := identity.NewRegistrar(provider, profiles, appCfg.TeacherCode, logger)

	// Mutation coordinator; every write funnels through here and
	// signals the notifier on success.
	coordinator := boardcore.NewCoordinator(posts, suggestions, profiles, deps.Notifier, logger)

	// Photo updater, only when an upload endpoint is configured.
	var updater *media.Updater
	if appCfg.MediaUploadURL != "" {
		uploader := media.NewHTTPUploader(appCfg.MediaUploadURL, appCfg.MediaUploadPreset, nil)
		updater = media.NewUpdater(uploader, coordinatorPhotos{coordinator}, logger)
	} else {
		logger.Info("media upload endpoint not configured; photo changes disabled")
	}

	r := chi.NewRouter()

	// Global auth middleware: resolves the session cookie into an
	// identity in context on every request.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	heartbeatHandler := heartbeatfeature.NewHandler(logger)
	r.Mount("/heartbeat", heartbeatfeature.Routes(heartbeatHandler))

	// Authentication
	registerHandler := registerfeature.NewHandler(registrar, logger)
	r.Mount("/registro", registerfeature.Routes(registerHandler))

	loginHandler := loginfeature.NewHandler(provider, profiles, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// The board and the suggestion inbox
	boardHandler := boardfeature.NewHandler(coordinator, posts, deps.Hub, logger)
	r.Mount("/posts", boardfeature.Routes(boardHandler))

	buzonHandler := buzonfeature.NewHandler(coordinator, suggestions, deps.Hub, logger)
	r.Mount("/sugerencias", buzonfeature.Routes(buzonHandler))

	// Own profile
	profileHandler := profilefeature.NewHandler(updater, logger)
	r.Mount("/me", profilefeature.Routes(profileHandler))

	return r, nil
}

// coordinatorPhotos adapts the mutation coordinator to the media
// updater's ProfileWriter. The photo always lands on the caller's own
// profile.
type coordinatorPhotos struct {
	coord *boardcore.Coordinator
}

func (c coordinatorPhotos) SetPhoto(ctx context.Context, caller policy.Identity, url string) error {
	return c.coord.SetPhotoURL(ctx, caller, caller.UID, url)
}
