// internal/app/features/heartbeat/handler.go

// Package heartbeat answers a tiny liveness ping. Clients holding an
// open snapshot stream poll it to tell a quiet board apart from a dead
// connection, and use the server time to decide whether to reconnect.
package heartbeat

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/redescolar/cartelera/internal/app/system/httpjson"
)

// Handler serves heartbeat requests.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type heartbeatResponse struct {
	Status     string `json:"status"`
	ServerTime string `json:"server_time"`
}

// Serve handles GET /heartbeat.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, heartbeatResponse{
		Status:     "ok",
		ServerTime: time.Now().UTC().Format(time.RFC3339),
	})
}
