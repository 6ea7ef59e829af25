// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/redescolar/cartelera/internal/app/system/auth"
)

// Routes returns a subrouter for the member's own profile, mounted
// under /me.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeMe)
	r.Post("/foto", h.ServePhoto)
	return r
}
