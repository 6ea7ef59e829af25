// internal/app/features/login/handler.go

// Package login serves credential sign-in. Authentication only proves
// the credential; the response distinguishes a fully resolved account
// (profile present) from one still missing its profile document.
package login

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	profilestore "github.com/redescolar/cartelera/internal/app/store/profiles"
	"github.com/redescolar/cartelera/internal/app/system/auth"
	"github.com/redescolar/cartelera/internal/app/system/httpjson"
	"github.com/redescolar/cartelera/internal/app/system/identity"
	"github.com/redescolar/cartelera/internal/app/system/ratelimit"
	"github.com/redescolar/cartelera/internal/app/system/timeouts"
)

// Handler holds the login dependencies.
type Handler struct {
	Provider identity.Provider
	Profiles *profilestore.Store
	Limiter  *ratelimit.LoginLimiter
	Log      *zap.Logger
}

func NewHandler(provider identity.Provider, profiles *profilestore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Provider: provider,
		Profiles: profiles,
		Limiter:  ratelimit.NewLoginLimiter(),
		Log:      logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Estado   string `json:"estado"`
	UID      string `json:"uid"`
	Nombre   string `json:"nombre,omitempty"`
	Rol      string `json:"rol,omitempty"`
	Cargo    string `json:"cargo,omitempty"`
	PhotoURL string `json:"photoURL,omitempty"`
}

// ServeLogin handles POST /login. Wrong email and wrong password both
// answer 401, each with its own message.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}

	if ok, reason := h.Limiter.Check(r, req.Email); !ok {
		httpjson.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	uid, err := h.Provider.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		httpjson.Error(w, statusFor(err), identity.UserMessage(err))
		return
	}
	h.Limiter.ResetEmail(req.Email)

	if err := auth.SignIn(w, r, uid); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, identity.UserMessage(err))
		return
	}

	// The credential checks out but the account only counts as resolved
	// once the profile document is there too.
	u, err := h.Profiles.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Warn("credential without profile signed in", zap.String("uid", uid))
			httpjson.Write(w, http.StatusOK, loginResponse{Estado: "resolviendo", UID: uid})
			return
		}
		h.Log.Error("profile lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, identity.UserMessage(err))
		return
	}

	httpjson.Write(w, http.StatusOK, loginResponse{
		Estado:   "autenticado",
		UID:      u.ID,
		Nombre:   u.Nombre,
		Rol:      u.Rol,
		Cargo:    u.Cargo,
		PhotoURL: u.PhotoURL,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, identity.ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, identity.ErrUserNotFound),
		errors.Is(err, identity.ErrWrongPassword):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
