package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/inkwell/inkwell/internal/content"
	ierrors "github.com/inkwell/inkwell/internal/errors"
	"github.com/inkwell/inkwell/internal/server/responses"
)

// PostStore is the content surface the post handlers need.
type PostStore interface {
	ListPosts() ([]content.PostInfo, error)
	ReadPost(filename string) ([]byte, error)
	WritePost(filename string, data []byte) error
	DeletePost(filename string) error
	CreatePost(title string) (string, error)
}

// PostHandlers contains the post CRUD endpoints.
type PostHandlers struct {
	store        PostStore
	errorAdapter *ierrors.HTTPErrorAdapter
}

// NewPostHandlers creates the post handlers.
func NewPostHandlers(store PostStore) *PostHandlers {
	return &PostHandlers{
		store:        store,
		errorAdapter: ierrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleList handles GET /api/posts.
func (h *PostHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	posts, err := h.store.ListPosts()
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	resp := responses.PostListResponse{Posts: posts, Count: len(posts)}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.InternalError("failed to encode post list", err))
	}
}

// HandlePost handles GET, POST, and DELETE on /api/post/{filename}.
func (h *PostHandlers) HandlePost(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	if filename == "" {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.ValidationFailed("missing post filename"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.readPost(w, r, filename)
	case http.MethodPost:
		h.savePost(w, r, filename)
	case http.MethodDelete:
		h.deletePost(w, r, filename)
	default:
		h.methodNotAllowed(w, r, "GET, POST, DELETE")
	}
}

func (h *PostHandlers) readPost(w http.ResponseWriter, r *http.Request, filename string) {
	data, err := h.store.ReadPost(filename)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	resp := responses.PostResponse{Filename: filename, Content: string(data)}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.InternalError("failed to encode post", err))
	}
}

func (h *PostHandlers) savePost(w http.ResponseWriter, r *http.Request, filename string) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4<<20))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.ValidationFailed("request body unreadable or too large"))
		return
	}

	var payload responses.PostResponse
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := json.Unmarshal(body, &payload); err != nil {
			h.errorAdapter.WriteErrorResponse(w, r, ierrors.ValidationFailed("invalid JSON body"))
			return
		}
	} else {
		// Raw Markdown body is accepted too.
		payload.Content = string(body)
	}

	if err := h.store.WritePost(filename, []byte(payload.Content)); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, responses.SavedResponse{Filename: filename, Saved: true})
}

func (h *PostHandlers) deletePost(w http.ResponseWriter, r *http.Request, filename string) {
	if err := h.store.DeletePost(filename); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, responses.DeletedResponse{Filename: filename, Deleted: true})
}

// HandleNew handles POST /api/new.
func (h *PostHandlers) HandleNew(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req responses.NewPostRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.ValidationFailed("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.ValidationFailed("title is required"))
		return
	}

	filename, err := h.store.CreatePost(req.Title)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusCreated, responses.NewPostResponse{Filename: filename})
}

func (h *PostHandlers) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	err := ierrors.ValidationFailed("invalid HTTP method").
		WithContext("method", r.Method).
		WithContext("allowed", allowed)
	h.errorAdapter.WriteErrorResponse(w, r, err)
}
