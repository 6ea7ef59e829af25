// internal/app/features/board/handler.go

// Package board serves the shared announcement board: the post list,
// the moderator-only mutations, and the live snapshot stream.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	poststore "github.com/redescolar/cartelera/internal/app/store/posts"
	"github.com/redescolar/cartelera/internal/app/system/auth"
	boardcore "github.com/redescolar/cartelera/internal/app/system/board"
	"github.com/redescolar/cartelera/internal/app/system/httpjson"
	"github.com/redescolar/cartelera/internal/app/system/livesync"
	"github.com/redescolar/cartelera/internal/app/system/timeouts"
	"github.com/redescolar/cartelera/internal/domain/models"
)

// Handler holds the board feature's dependencies.
type Handler struct {
	Coordinator *boardcore.Coordinator
	Posts       *poststore.Store
	Hub         *livesync.Hub
	Log         *zap.Logger
}

func NewHandler(coord *boardcore.Coordinator, posts *poststore.Store, hub *livesync.Hub, logger *zap.Logger) *Handler {
	return &Handler{Coordinator: coord, Posts: posts, Hub: hub, Log: logger}
}

// ServeList handles GET /posts. Newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Posts.List(ctx)
	if err != nil {
		h.Log.Error("list posts failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "no se pudo cargar la cartelera")
		return
	}
	httpjson.Write(w, http.StatusOK, posts)
}

type createPostRequest struct {
	Texto string `json:"texto"`
}

// ServeCreate handles POST /posts. Moderators only.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)

	var req createPostRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.Coordinator.PublishPost(ctx, id, req.Texto)
	switch {
	case errors.Is(err, boardcore.ErrPolicyDenied):
		httpjson.Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, boardcore.ErrEmptyText):
		httpjson.Error(w, http.StatusBadRequest, "el texto no puede estar vacío")
	case err != nil:
		h.Log.Error("publish post failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "no se pudo publicar")
	default:
		httpjson.Write(w, http.StatusCreated, post)
	}
}

// ServeToggleLike handles POST /posts/{id}/like.
func (h *Handler) ServeToggleLike(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "id inválido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	liked, err := h.Coordinator.ToggleLike(ctx, id, postID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Error(w, http.StatusNotFound, "la publicación no existe")
	case err != nil:
		h.Log.Error("toggle like failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "no se pudo registrar el like")
	default:
		httpjson.Write(w, http.StatusOK, map[string]bool{"liked": liked})
	}
}

type createCommentRequest struct {
	Texto string `json:"texto"`
}

// ServeAddComment handles POST /posts/{id}/comentarios.
func (h *Handler) ServeAddComment(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "id inválido")
		return
	}

	var req createCommentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Coordinator.AddComment(ctx, id, postID, req.Texto)
	switch {
	case errors.Is(err, boardcore.ErrEmptyText):
		httpjson.Error(w, http.StatusBadRequest, "el comentario no puede estar vacío")
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Error(w, http.StatusNotFound, "la publicación no existe")
	case err != nil:
		h.Log.Error("add comment failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "no se pudo comentar")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeDelete handles DELETE /posts/{id}. Moderators only. Deleting an
// id that is already gone still answers 204, so clients can retry.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "id inválido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Coordinator.DeletePost(ctx, id, postID)
	switch {
	case errors.Is(err, boardcore.ErrPolicyDenied):
		httpjson.Error(w, http.StatusForbidden, "forbidden")
	case err != nil:
		h.Log.Error("delete post failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "no se pudo eliminar")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeStream handles GET /posts/stream: a server-sent-events stream
// where every event carries the full current post list. Clients render
// each event wholesale instead of patching state, so missed events
// never leave them stale.
func (h *Handler) ServeStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sy := livesync.NewSynchronizer(h.Hub, boardcore.PostsKey, func(ctx context.Context) ([]models.Post, error) {
		return h.Posts.List(ctx)
	}, h.Log)

	sub := sy.Subscribe(r.Context())
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for snap := range sub.Snapshots() {
		if err := writeEvent(w, snap); err != nil {
			return
		}
		flusher.Flush()
	}
}

func writeEvent(w http.ResponseWriter, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
