package buzon_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	buzonfeature "github.com/redescolar/cartelera/internal/app/features/buzon"
	boardcore "github.com/redescolar/cartelera/internal/app/system/board"
	"github.com/redescolar/cartelera/internal/app/system/livesync"
	"github.com/redescolar/cartelera/internal/app/system/policy"
	"github.com/redescolar/cartelera/internal/testutil"
)

func gateRouter(t *testing.T) http.Handler {
	t.Helper()
	hub := livesync.NewHub(zap.NewNop())
	coord := boardcore.NewCoordinator(nil, nil, nil, hub, zap.NewNop())
	return buzonfeature.Routes(buzonfeature.NewHandler(coord, nil, hub, zap.NewNop()))
}

func jsonRequest(method, target, body string, id policy.Identity) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return testutil.WithIdentity(req, id)
}

func TestBuzonRequiresSignIn(t *testing.T) {
	r := gateRouter(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodPost, "/"))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

// Reading the inbox is the private half: students cannot list or
// stream it even though they can submit to it.
func TestInboxReadIsModeratorOnly(t *testing.T) {
	r := gateRouter(t)

	for _, target := range []string{"/", "/stream"} {
		rec := testutil.NewRecorder()
		r.ServeHTTP(rec, testutil.NewAuthenticatedRequest(http.MethodGet, target, testutil.Estudiante()))
		rec.AssertStatus(t, http.StatusForbidden)
	}
}

func TestSubmitRejectsEmptyText(t *testing.T) {
	r := gateRouter(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(http.MethodPost, "/", `{"texto":""}`, testutil.Estudiante()))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestSubmitRejectsBadBody(t *testing.T) {
	r := gateRouter(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(http.MethodPost, "/", `no-json`, testutil.Estudiante()))
	rec.AssertStatus(t, http.StatusBadRequest)
}
