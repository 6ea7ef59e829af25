// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/redescolar/cartelera/internal/app/system/httpjson"
	"github.com/redescolar/cartelera/internal/app/system/policy"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants & globals                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	SessionName = "cartelera-session"

	isAuthKey = "is_authenticated"
	uidKey    = "uid"
)

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

// IdentityFetcher resolves a credential id into a fresh identity on
// every request, so cargo grants and revocations take effect
// immediately instead of living in the cookie until re-login. The
// second return is false when no matching profile exists; a session
// whose profile vanished is treated as signed out.
type IdentityFetcher func(ctx context.Context, uid string) (policy.Identity, bool)

var fetcher IdentityFetcher

// SetIdentityFetcher installs the profile lookup used by
// LoadSessionUser. Must be called during startup, before the router is
// built.
func SetIdentityFetcher(f IdentityFetcher) {
	fetcher = f
}

/*─────────────────────────────────────────────────────────────────────────────*
| Current-identity helper                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentIdentityKey ctxKey = "currentIdentity"

// CurrentIdentity returns the resolved identity & "found?" flag.
func CurrentIdentity(r *http.Request) (policy.Identity, bool) {
	id, ok := r.Context().Value(currentIdentityKey).(policy.Identity)
	return id, ok
}

// WithTestIdentity injects an identity directly into the request
// context, bypassing the session middleware. Only for handler tests.
func WithTestIdentity(r *http.Request, id policy.Identity) *http.Request {
	return withIdentity(r, id)
}

// LoadSessionUser resolves the session cookie into an identity in
// context. The cookie only carries the credential id; the profile is
// re-fetched so permissions are never stale. If the session store has
// not been initialized yet, it is a no-op.
func LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Store == nil || fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}

		sess, _ := Store.Get(r, SessionName)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			if uid := getString(sess, uidKey); uid != "" {
				if id, ok := fetcher(r.Context(), uid); ok {
					r = withIdentity(r, id)
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn binds the credential id to the caller's session cookie.
func SignIn(w http.ResponseWriter, r *http.Request, uid string) error {
	sess, _ := Store.Get(r, SessionName)
	sess.Values[isAuthKey] = true
	sess.Values[uidKey] = uid
	return sess.Save(r, w)
}

// SignOut clears the credential from the session cookie. Any open
// snapshot streams for this session are torn down by their handlers
// when the subscription's request context ends; no snapshot outlives
// the teardown (see livesync.Subscription.Close).
func SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := Store.Get(r, SessionName)
	sess.Values[isAuthKey] = false
	delete(sess.Values, uidKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// RequireSignedIn ensures there is a resolved identity in context (set
// by LoadSessionUser). API callers get a plain 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentIdentity(r); !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireModerator ensures the caller passes the board-moderation
// policy. This is the advisory HTTP gate; the mutation coordinator
// re-checks the same predicate at the write boundary so skipping the
// route never bypasses policy.
func RequireModerator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := CurrentIdentity(r)
		if !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !policy.CanModerateBoard(id) {
			httpjson.Error(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// InitSessionStore initializes the global session Store. The `secure`
// flag controls whether cookies are marked Secure and which SameSite
// mode is used: None for cross-site HTTPS in production, Lax for local
// dev over http.
func InitSessionStore(sessionKey, domain string, secure bool, logger *zap.Logger) error {
	if sessionKey == "" {
		return fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts
	Store = store

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))
	return nil
}

// helpers

func withIdentity(r *http.Request, id policy.Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentIdentityKey, id))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
