// internal/app/system/identity/resolver.go
package identity

import (
	"context"

	"go.uber.org/zap"

	profilestore "github.com/redescolar/cartelera/internal/app/store/profiles"
	"github.com/redescolar/cartelera/internal/app/system/livesync"
	"github.com/redescolar/cartelera/internal/app/system/policy"
	"github.com/redescolar/cartelera/internal/app/system/session"
	"github.com/redescolar/cartelera/internal/domain/models"
)

// State is the resolver's authentication state.
type State int

const (
	// StateUnauthenticated: no credential.
	StateUnauthenticated State = iota
	// StateResolving: credential present, profile document not yet
	// observed. The user is not "logged in" here.
	StateResolving
	// StateAuthenticated: credential and profile both present.
	StateAuthenticated
)

// Status is one resolver output: the state plus, when authenticated,
// the resolved identity.
type Status struct {
	State    State
	Identity policy.Identity
}

// CredentialEvent is a credential-change notification. An empty UID
// means the credential was cleared (sign-out or loss).
type CredentialEvent struct {
	UID string
}

// ProfileSource opens a snapshot stream over a single profile document.
type ProfileSource interface {
	Subscribe(ctx context.Context, uid string) *livesync.Subscription[models.User]
}

// Resolver couples credential state to profile data. A credential
// alone only reaches Resolving; Authenticated additionally requires the
// profile document to be observed, and profile changes (a cargo grant,
// a new photo) flow through as fresh Authenticated statuses. On
// credential loss the profile subscription is closed synchronously,
// before the Unauthenticated status is emitted, so a late snapshot can
// never leak another state into a stale view.
type Resolver struct {
	profiles ProfileSource
	log      *zap.Logger
	statuses chan Status
}

func NewResolver(profiles ProfileSource, logger *zap.Logger) *Resolver {
	return &Resolver{
		profiles: profiles,
		log:      logger,
		statuses: make(chan Status, 1),
	}
}

// Statuses returns the resolver output stream. Delivery is
// latest-wins: a consumer always observes the current status, not
// necessarily every intermediate one.
func (r *Resolver) Statuses() <-chan Status {
	return r.statuses
}

// Run processes credential events until ctx is canceled or the event
// channel closes. All state lives on this one goroutine; suspension
// happens only at the subscription boundary.
func (r *Resolver) Run(ctx context.Context, events <-chan CredentialEvent) {
	var (
		sess  *session.Session     // one per signed-in credential
		snaps <-chan []models.User // nil while signed out
	)
	endSession := func() {
		if sess != nil {
			sess.Teardown()
			sess = nil
			snaps = nil
		}
	}
	defer endSession()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			endSession()
			if ev.UID == "" {
				r.emit(Status{State: StateUnauthenticated})
				continue
			}
			r.emit(Status{State: StateResolving})
			sub := r.profiles.Subscribe(ctx, ev.UID)
			snaps = sub.Snapshots()
			// Teardown closes the profile stream before any other
			// status can be emitted; a late snapshot never leaks into
			// the next session's view.
			sess = session.New(policy.Identity{UID: ev.UID}, r.log)
			sess.OnTeardown(sub.Close)

		case snap, ok := <-snaps:
			if !ok {
				snaps = nil
				continue
			}
			if len(snap) == 0 {
				// Credential exists but the profile does not (a
				// partial registration, or not yet replicated): stay
				// in Resolving rather than authenticating on a
				// credential alone.
				r.emit(Status{State: StateResolving})
				continue
			}
			u := snap[0]
			r.emit(Status{State: StateAuthenticated, Identity: profilestore.Identity(&u)})
		}
	}
}

func (r *Resolver) emit(st Status) {
	select {
	case r.statuses <- st:
	default:
		select {
		case <-r.statuses:
		default:
		}
		select {
		case r.statuses <- st:
		default:
		}
	}
}

// NewProfileSource adapts the profile store and hub into a
// ProfileSource. Every subscription re-queries its own document when
// anything in the usuarios collection changes; the query returns a
// zero-or-one element snapshot.
func NewProfileSource(hub *livesync.Hub, profiles *profilestore.Store, logger *zap.Logger) ProfileSource {
	return &profileSource{hub: hub, profiles: profiles, log: logger}
}

type profileSource struct {
	hub      *livesync.Hub
	profiles *profilestore.Store
	log      *zap.Logger
}

func (s *profileSource) Subscribe(ctx context.Context, uid string) *livesync.Subscription[models.User] {
	sync := livesync.NewSynchronizer(s.hub, "usuarios", func(ctx context.Context) ([]models.User, error) {
		return s.profiles.FindByID(ctx, uid)
	}, s.log)
	return sync.Subscribe(ctx)
}
