// internal/app/features/buzon/handler.go

// Package buzon serves the private suggestion inbox. Any signed-in
// member can drop a suggestion in; only moderators can read the inbox
// or watch its stream. Submissions are one-way: there is no endpoint
// for an author to list their own suggestions.
package buzon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	suggestionstore "github.com/redescolar/cartelera/internal/app/store/suggestions"
	"github.com/redescolar/cartelera/internal/app/system/auth"
	boardcore "github.com/redescolar/cartelera/internal/app/system/board"
	"github.com/redescolar/cartelera/internal/app/system/httpjson"
	"github.com/redescolar/cartelera/internal/app/system/livesync"
	"github.com/redescolar/cartelera/internal/app/system/timeouts"
	"github.com/redescolar/cartelera/internal/domain/models"
)

// Handler holds the suggestion inbox dependencies.
type Handler struct {
	Coordinator *boardcore.Coordinator
	Suggestions *suggestionstore.Store
	Hub         *livesync.Hub
	Log         *zap.Logger
}

func NewHandler(coord *boardcore.Coordinator, suggestions *suggestionstore.Store, hub *livesync.Hub, logger *zap.Logger) *Handler {
	return &Handler{Coordinator: coord, Suggestions: suggestions, Hub: hub, Log: logger}
}

type createSuggestionRequest struct {
	Texto string `json:"texto"`
}

// ServeCreate handles POST /sugerencias.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)

	var req createSuggestionRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Coordinator.SubmitSuggestion(ctx, id, req.Texto)
	switch {
	case errors.Is(err, boardcore.ErrEmptyText):
		httpjson.Error(w, http.StatusBadRequest, "la sugerencia no puede estar vacía")
	case err != nil:
		h.Log.Error("submit suggestion failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "no se pudo enviar la sugerencia")
	default:
		w.WriteHeader(http.StatusCreated)
	}
}

// ServeList handles GET /sugerencias. Moderators only.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Suggestions.List(ctx)
	if err != nil {
		h.Log.Error("list suggestions failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "no se pudo cargar el buzón")
		return
	}
	httpjson.Write(w, http.StatusOK, items)
}

// ServeStream handles GET /sugerencias/stream. Moderators only; each
// event carries the full current inbox.
func (h *Handler) ServeStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sy := livesync.NewSynchronizer(h.Hub, boardcore.SuggestionsKey, func(ctx context.Context) ([]models.Suggestion, error) {
		return h.Suggestions.List(ctx)
	}, h.Log)

	sub := sy.Subscribe(r.Context())
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for snap := range sub.Snapshots() {
		data, err := json.Marshal(snap)
		if err != nil {
			return
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return
		}
		flusher.Flush()
	}
}
