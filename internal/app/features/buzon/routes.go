// internal/app/features/buzon/routes.go
package buzon

import (
	"github.com/go-chi/chi/v5"

	"github.com/redescolar/cartelera/internal/app/system/auth"
)

// Routes returns a subrouter for the suggestion inbox, mounted under
// /sugerencias. Submitting is open to any signed-in member; reading is
// moderator-only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/", h.ServeCreate)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireModerator)
		r.Get("/", h.ServeList)
		r.Get("/stream", h.ServeStream)
	})

	return r
}
