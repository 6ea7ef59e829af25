package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/redescolar/cartelera/internal/app/system/auth"
	"github.com/redescolar/cartelera/internal/app/system/policy"
	"github.com/redescolar/cartelera/internal/testutil"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSignedIn(t *testing.T) {
	var called bool
	h := auth.RequireSignedIn(okHandler(&called))

	// No identity in context: 401, inner handler never runs.
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/posts"))
	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "unauthorized")
	if called {
		t.Fatal("handler ran without identity")
	}

	// With identity: passes through.
	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/posts", testutil.Estudiante()))
	rec.AssertStatus(t, http.StatusOK)
	if !called {
		t.Fatal("handler did not run with identity")
	}
}

func TestRequireModerator(t *testing.T) {
	cases := []struct {
		name   string
		id     *policy.Identity
		status int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"estudiante", ptr(testutil.Estudiante()), http.StatusForbidden},
		{"profe", ptr(testutil.Profe()), http.StatusOK},
		{"personero", ptr(testutil.Personero()), http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var called bool
			h := auth.RequireModerator(okHandler(&called))

			req := testutil.NewRequest(http.MethodPost, "/posts")
			if tc.id != nil {
				req = testutil.WithIdentity(req, *tc.id)
			}
			rec := testutil.NewRecorder()
			h.ServeHTTP(rec, req)
			rec.AssertStatus(t, tc.status)

			if (tc.status == http.StatusOK) != called {
				t.Errorf("handler called = %v with status %d", called, tc.status)
			}
		})
	}
}

func ptr(id policy.Identity) *policy.Identity { return &id }

func TestSessionRoundTrip(t *testing.T) {
	if err := auth.InitSessionStore(testutil.SessionKey(), "", false, zap.NewNop()); err != nil {
		t.Fatalf("InitSessionStore failed: %v", err)
	}

	want := testutil.Personero()
	auth.SetIdentityFetcher(func(ctx context.Context, uid string) (policy.Identity, bool) {
		if uid == want.UID {
			return want, true
		}
		return policy.Identity{}, false
	})

	// Sign in and capture the cookie.
	rec := httptest.NewRecorder()
	if err := auth.SignIn(rec, httptest.NewRequest(http.MethodPost, "/login", nil), want.UID); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn set no cookie")
	}

	// Replay the cookie through the middleware.
	var got policy.Identity
	var ok bool
	h := auth.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = auth.CurrentIdentity(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !ok {
		t.Fatal("no identity resolved from session cookie")
	}
	if got.UID != want.UID || got.Cargo != want.Cargo {
		t.Errorf("identity = %+v, want %+v", got, want)
	}
}

func TestSessionSignOut(t *testing.T) {
	if err := auth.InitSessionStore(testutil.SessionKey(), "", false, zap.NewNop()); err != nil {
		t.Fatalf("InitSessionStore failed: %v", err)
	}

	id := testutil.Estudiante()
	auth.SetIdentityFetcher(func(ctx context.Context, uid string) (policy.Identity, bool) {
		return id, true
	})

	rec := httptest.NewRecorder()
	if err := auth.SignOut(rec, httptest.NewRequest(http.MethodPost, "/logout", nil)); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	// The cleared cookie must not resolve to an identity.
	var ok bool
	h := auth.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = auth.CurrentIdentity(r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)

	if ok {
		t.Fatal("identity resolved after sign-out")
	}
}
