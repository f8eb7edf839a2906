package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/inkwell/inkwell/internal/build"
	ierrors "github.com/inkwell/inkwell/internal/errors"
	"github.com/inkwell/inkwell/internal/history"
	"github.com/inkwell/inkwell/internal/server/responses"
)

// BuildRunner runs one publish cycle.
type BuildRunner interface {
	Run(ctx context.Context, force bool) (*build.Result, error)
}

// HistoryReader reads recent build runs. May be nil when history is disabled.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

// BuildHandlers contains the build trigger and history endpoints.
type BuildHandlers struct {
	runner       BuildRunner
	history      HistoryReader
	errorAdapter *ierrors.HTTPErrorAdapter
}

// NewBuildHandlers creates the build handlers.
func NewBuildHandlers(runner BuildRunner, history HistoryReader) *BuildHandlers {
	return &BuildHandlers{
		runner:       runner,
		history:      history,
		errorAdapter: ierrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleBuild handles POST /api/build. The build runs synchronously and the
// response reports its outcome. Pass force=1 to rebuild without change
// detection.
func (h *BuildHandlers) HandleBuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		err := ierrors.ValidationFailed("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed", http.MethodPost)
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	force := r.URL.Query().Get("force") == "1" || r.URL.Query().Get("force") == "true"
	// A client disconnect must not abort a build already in flight.
	result, err := h.runner.Run(context.WithoutCancel(r.Context()), force)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if err := writeJSONPretty(w, r, http.StatusOK, responses.FromResult(result)); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.InternalError("failed to encode build result", err))
	}
}

// HandleBuilds handles GET /api/builds.
func (h *BuildHandlers) HandleBuilds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := ierrors.ValidationFailed("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed", http.MethodGet)
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if h.history == nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			ierrors.New(ierrors.CategoryConfig, ierrors.SeverityWarning, "build history is not enabled"))
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			h.errorAdapter.WriteErrorResponse(w, r, ierrors.ValidationFailed("limit must be an integer between 1 and 500"))
			return
		}
		limit = n
	}

	entries, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.InternalError("failed to read build history", err))
		return
	}
	resp := responses.BuildListResponse{Builds: entries, Count: len(entries)}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.InternalError("failed to encode build history", err))
	}
}
