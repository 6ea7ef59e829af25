// internal/app/features/profile/handler.go

// Package profile serves the signed-in member's own profile and the
// photo change flow.
package profile

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/redescolar/cartelera/internal/app/system/auth"
	boardcore "github.com/redescolar/cartelera/internal/app/system/board"
	"github.com/redescolar/cartelera/internal/app/system/httpjson"
	"github.com/redescolar/cartelera/internal/app/system/media"
	"github.com/redescolar/cartelera/internal/app/system/timeouts"
)

// maxPhotoForm bounds the multipart form held in memory.
const maxPhotoForm = 10 << 20

// Handler holds the profile feature's dependencies.
type Handler struct {
	Updater *media.Updater
	Log     *zap.Logger
}

func NewHandler(updater *media.Updater, logger *zap.Logger) *Handler {
	return &Handler{Updater: updater, Log: logger}
}

type meResponse struct {
	UID      string `json:"uid"`
	Nombre   string `json:"nombre"`
	Rol      string `json:"rol"`
	Cargo    string `json:"cargo"`
	PhotoURL string `json:"photoURL,omitempty"`
}

// ServeMe handles GET /me. The identity in context is re-fetched per
// request by the session middleware, so this always reflects the
// current cargo and photo.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)
	httpjson.Write(w, http.StatusOK, meResponse{
		UID:      id.UID,
		Nombre:   id.Nombre,
		Rol:      string(id.Rol),
		Cargo:    string(id.Cargo),
		PhotoURL: id.PhotoURL,
	})
}

// ServePhoto handles POST /me/foto: multipart upload of a new profile
// photo, stored externally, URL recorded on the profile.
func (h *Handler) ServePhoto(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)

	if h.Updater == nil {
		httpjson.Error(w, http.StatusServiceUnavailable, "el cambio de foto no está configurado")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoForm); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "formulario inválido")
		return
	}
	file, header, err := r.FormFile("foto")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "falta el archivo 'foto'")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	url, err := h.Updater.UpdatePhoto(ctx, id, header.Filename, file)
	switch {
	case errors.Is(err, media.ErrUploadRejected):
		httpjson.Error(w, http.StatusBadGateway, "el servicio de imágenes rechazó el archivo")
	case errors.Is(err, boardcore.ErrPolicyDenied):
		httpjson.Error(w, http.StatusForbidden, "forbidden")
	case err != nil:
		h.Log.Error("photo update failed", zap.Error(err), zap.String("uid", id.UID))
		httpjson.Error(w, http.StatusInternalServerError, "no se pudo actualizar la foto")
	default:
		httpjson.Write(w, http.StatusOK, map[string]string{"photoURL": url})
	}
}
