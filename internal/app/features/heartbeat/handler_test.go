package heartbeat_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	heartbeatfeature "github.com/redescolar/cartelera/internal/app/features/heartbeat"
	"github.com/redescolar/cartelera/internal/testutil"
)

func TestHeartbeat(t *testing.T) {
	r := heartbeatfeature.Routes(heartbeatfeature.NewHandler(zap.NewNop()))

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)

	var got struct {
		Status     string `json:"status"`
		ServerTime string `json:"server_time"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != "ok" {
		t.Errorf("status = %q", got.Status)
	}
	if _, err := time.Parse(time.RFC3339, got.ServerTime); err != nil {
		t.Errorf("server_time %q not RFC3339: %v", got.ServerTime, err)
	}
}
