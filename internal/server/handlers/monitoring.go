package handlers

import (
	"log/slog"
	"net/http"
	"time"

	ierrors "github.com/inkwell/inkwell/internal/errors"
	"github.com/inkwell/inkwell/internal/server/responses"
)

// MonitoringHandlers contains liveness endpoints.
type MonitoringHandlers struct {
	startTime    time.Time
	errorAdapter *ierrors.HTTPErrorAdapter
}

// NewMonitoringHandlers creates the monitoring handlers.
func NewMonitoringHandlers() *MonitoringHandlers {
	return &MonitoringHandlers{
		startTime:    time.Now(),
		errorAdapter: ierrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleHealth handles GET /api/health.
func (h *MonitoringHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := ierrors.ValidationFailed("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed", http.MethodGet)
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	resp := responses.HealthResponse{
		Status:    "ok",
		Uptime:    time.Since(h.startTime).Seconds(),
		Timestamp: time.Now().UTC(),
	}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.InternalError("failed to encode health response", err))
	}
}
