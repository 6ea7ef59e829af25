package board_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	boardfeature "github.com/redescolar/cartelera/internal/app/features/board"
	boardcore "github.com/redescolar/cartelera/internal/app/system/board"
	"github.com/redescolar/cartelera/internal/app/system/livesync"
	"github.com/redescolar/cartelera/internal/app/system/policy"
	"github.com/redescolar/cartelera/internal/testutil"
)

// Routes gate tests: none of these requests may reach a store, so the
// handler is built without one.
func gateRouter(t *testing.T) http.Handler {
	t.Helper()
	hub := livesync.NewHub(zap.NewNop())
	coord := boardcore.NewCoordinator(nil, nil, nil, hub, zap.NewNop())
	return boardfeature.Routes(boardfeature.NewHandler(coord, nil, hub, zap.NewNop()))
}

func jsonRequest(method, target, body string, id policy.Identity) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return testutil.WithIdentity(req, id)
}

func TestBoardRequiresSignIn(t *testing.T) {
	r := gateRouter(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestPublishForbiddenForStudents(t *testing.T) {
	r := gateRouter(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(http.MethodPost, "/", `{"texto":"hola"}`, testutil.Estudiante()))
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestDeleteForbiddenForStudents(t *testing.T) {
	r := gateRouter(t)

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/64b000000000000000000000", testutil.Estudiante())
	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestToggleLikeRejectsBadID(t *testing.T) {
	r := gateRouter(t)

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/no-es-un-id/like", testutil.Estudiante())
	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestAddCommentRejectsUnknownFields(t *testing.T) {
	r := gateRouter(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(http.MethodPost, "/64b000000000000000000000/comentarios",
		`{"texto":"hola","extra":true}`, testutil.Estudiante()))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestPublishRejectsEmptyText(t *testing.T) {
	r := gateRouter(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(http.MethodPost, "/", `{"texto":"   "}`, testutil.Profe()))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "vacío")
}
