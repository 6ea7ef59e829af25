// internal/app/system/session/session.go

// Package session ties per-login resources to an explicit object whose
// lifetime matches the sign-in. Anything opened on behalf of a signed-in
// user (profile subscriptions, streams) registers a closer here, and
// Teardown releases everything when the credential goes away.
package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/redescolar/cartelera/internal/app/system/policy"
)

// Session is one authenticated login. It is safe for concurrent use.
type Session struct {
	identity policy.Identity
	log      *zap.Logger

	mu      sync.Mutex
	closers []func()
	done    bool
}

func New(identity policy.Identity, logger *zap.Logger) *Session {
	return &Session{identity: identity, log: logger}
}

// Identity returns the identity this session was opened for.
func (s *Session) Identity() policy.Identity { return s.identity }

// OnTeardown registers a closer to run when the session ends. If the
// session is already torn down the closer runs immediately, so a
// resource opened during a racing sign-out still gets released.
func (s *Session) OnTeardown(fn func()) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		fn()
		return
	}
	s.closers = append(s.closers, fn)
	s.mu.Unlock()
}

// Teardown runs all registered closers, newest first, and marks the
// session ended. It is idempotent; closers run exactly once.
func (s *Session) Teardown() {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	s.log.Debug("session torn down",
		zap.String("uid", s.identity.UID),
		zap.Int("closers", len(closers)))
}
