// Package responses defines the JSON payloads returned by the editor API.
package responses

import (
	"time"

	"github.com/inkwell/inkwell/internal/build"
	"github.com/inkwell/inkwell/internal/content"
	"github.com/inkwell/inkwell/internal/history"
)

// PostListResponse lists all post sources.
type PostListResponse struct {
	Posts []content.PostInfo `json:"posts"`
	Count int                `json:"count"`
}

// PostResponse carries one post's raw source.
type PostResponse struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// SavedResponse acknowledges a write.
type SavedResponse struct {
	Filename string `json:"filename"`
	Saved    bool   `json:"saved"`
}

// DeletedResponse acknowledges a delete.
type DeletedResponse struct {
	Filename string `json:"filename"`
	Deleted  bool   `json:"deleted"`
}

// NewPostRequest is the body of POST /api/new.
type NewPostRequest struct {
	Title string `json:"title"`
}

// NewPostResponse returns the created post's filename.
type NewPostResponse struct {
	Filename string `json:"filename"`
}

// ImageListResponse lists a post's uploaded images.
type ImageListResponse struct {
	Slug   string   `json:"slug"`
	Images []string `json:"images"`
}

// ImageUploadResponse acknowledges an upload.
type ImageUploadResponse struct {
	Slug     string `json:"slug"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// BuildResponse is the outcome of a synchronous publish run.
type BuildResponse struct {
	BuildID    string `json:"build_id"`
	Outcome    string `json:"outcome"`
	Posts      int    `json:"posts"`
	Pages      int    `json:"listing_pages"`
	Deployed   bool   `json:"deployed"`
	DurationMS int64  `json:"duration_ms"`
}

// FromResult converts a build result into its API shape.
func FromResult(r *build.Result) BuildResponse {
	return BuildResponse{
		BuildID:    r.BuildID,
		Outcome:    string(r.Outcome),
		Posts:      r.Posts,
		Pages:      r.Pages,
		Deployed:   r.Deployed,
		DurationMS: r.Duration.Milliseconds(),
	}
}

// BuildListResponse lists recent build runs.
type BuildListResponse struct {
	Builds []history.Entry `json:"builds"`
	Count  int             `json:"count"`
}

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	Uptime    float64   `json:"uptime_seconds"`
	Timestamp time.Time `json:"timestamp"`
}
