// internal/app/features/register/handler.go

// Package register serves account creation. Registration is the one
// two-step write in the system (credential, then profile); the handler
// surfaces a partial failure distinctly instead of pretending the
// account either exists or does not.
package register

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/redescolar/cartelera/internal/app/system/auth"
	"github.com/redescolar/cartelera/internal/app/system/httpjson"
	"github.com/redescolar/cartelera/internal/app/system/identity"
	"github.com/redescolar/cartelera/internal/app/system/policy"
	"github.com/redescolar/cartelera/internal/app/system/timeouts"
)

// Handler holds the registration dependencies.
type Handler struct {
	Registrar *identity.Registrar
	Log       *zap.Logger
}

func NewHandler(registrar *identity.Registrar, logger *zap.Logger) *Handler {
	return &Handler{Registrar: registrar, Log: logger}
}

type registerRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"`
	Codigo   string `json:"codigo"`
}

type identityResponse struct {
	UID      string `json:"uid"`
	Nombre   string `json:"nombre"`
	Rol      string `json:"rol"`
	Cargo    string `json:"cargo"`
	PhotoURL string `json:"photoURL,omitempty"`
}

func toResponse(id policy.Identity) identityResponse {
	return identityResponse{
		UID:      id.UID,
		Nombre:   id.Nombre,
		Rol:      string(id.Rol),
		Cargo:    string(id.Cargo),
		PhotoURL: id.PhotoURL,
	}
}

// ServeRegister handles POST /registro. On success the new account is
// signed in immediately.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}

	rol, err := policy.ParseRol(req.Rol)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "rol inválido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Registrar.Register(ctx, identity.RegisterInput{
		Nombre:     req.Nombre,
		Email:      req.Email,
		Password:   req.Password,
		Rol:        rol,
		SecretCode: req.Codigo,
	})
	if err != nil {
		httpjson.Error(w, statusFor(err), identity.UserMessage(err))
		return
	}

	if err := auth.SignIn(w, r, id.UID); err != nil {
		h.Log.Error("sign-in after registration failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, identity.UserMessage(err))
		return
	}

	httpjson.Write(w, http.StatusCreated, toResponse(id))
}

func statusFor(err error) int {
	var partial *identity.PartialRegistrationError
	switch {
	case errors.Is(err, identity.ErrEmailInUse):
		return http.StatusConflict
	case errors.Is(err, identity.ErrInvalidEmail),
		errors.Is(err, identity.ErrWeakPassword),
		errors.Is(err, identity.ErrInvalidTeacherCode):
		return http.StatusBadRequest
	case errors.As(err, &partial):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
