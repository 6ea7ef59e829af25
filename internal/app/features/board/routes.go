// internal/app/features/board/routes.go
package board

import (
	"github.com/go-chi/chi/v5"

	"github.com/redescolar/cartelera/internal/app/system/auth"
)

// Routes returns a subrouter for the board endpoints. Reads are open to
// any signed-in member; publishing and deleting are gated to
// moderators. This is mounted under /posts.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/stream", h.ServeStream)
	r.Post("/{id}/like", h.ServeToggleLike)
	r.Post("/{id}/comentarios", h.ServeAddComment)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireModerator)
		r.Post("/", h.ServeCreate)
		r.Delete("/{id}", h.ServeDelete)
	})

	return r
}
