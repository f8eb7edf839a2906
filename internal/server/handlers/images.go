package handlers

import (
	"io"
	"log/slog"
	"net/http"

	ierrors "github.com/inkwell/inkwell/internal/errors"
	"github.com/inkwell/inkwell/internal/server/responses"
)

// maxUploadBytes bounds a single image upload.
const maxUploadBytes = 20 << 20

// ImageStore is the content surface the image handlers need.
type ImageStore interface {
	SaveImage(slug, filename string, r io.Reader, maxWidth int) (string, error)
	ListImages(slug string) ([]string, error)
	DeleteImage(slug, filename string) error
	ImagePath(slug, filename string) (string, error)
}

// ImageHandlers contains the per-post image endpoints.
type ImageHandlers struct {
	store        ImageStore
	maxWidth     int
	errorAdapter *ierrors.HTTPErrorAdapter
}

// NewImageHandlers creates the image handlers. maxWidth bounds uploaded image
// width; wider uploads are scaled down on ingest.
func NewImageHandlers(store ImageStore, maxWidth int) *ImageHandlers {
	return &ImageHandlers{
		store:        store,
		maxWidth:     maxWidth,
		errorAdapter: ierrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleImages handles GET (list) and POST (upload) on /api/images/{slug}.
func (h *ImageHandlers) HandleImages(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.ValidationFailed("missing post slug"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.listImages(w, r, slug)
	case http.MethodPost:
		h.uploadImage(w, r, slug)
	default:
		err := ierrors.ValidationFailed("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed", "GET, POST")
		h.errorAdapter.WriteErrorResponse(w, r, err)
	}
}

func (h *ImageHandlers) listImages(w http.ResponseWriter, r *http.Request, slug string) {
	images, err := h.store.ListImages(slug)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	resp := responses.ImageListResponse{Slug: slug, Images: images}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.InternalError("failed to encode image list", err))
	}
}

func (h *ImageHandlers) uploadImage(w http.ResponseWriter, r *http.Request, slug string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.ValidationFailed("multipart field 'file' is required"))
		return
	}
	defer file.Close()

	saved, err := h.store.SaveImage(slug, header.Filename, file, h.maxWidth)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	resp := responses.ImageUploadResponse{
		Slug:     slug,
		Filename: saved,
		URL:      "images/" + saved,
	}
	_ = writeJSON(w, http.StatusCreated, resp)
}

// HandleImage handles GET (serve) and DELETE on /api/images/{slug}/{filename}.
func (h *ImageHandlers) HandleImage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	filename := r.PathValue("filename")
	if slug == "" || filename == "" {
		h.errorAdapter.WriteErrorResponse(w, r, ierrors.ValidationFailed("missing slug or filename"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		path, err := h.store.ImagePath(slug, filename)
		if err != nil {
			h.errorAdapter.WriteErrorResponse(w, r, err)
			return
		}
		http.ServeFile(w, r, path)
	case http.MethodDelete:
		if err := h.store.DeleteImage(slug, filename); err != nil {
			h.errorAdapter.WriteErrorResponse(w, r, err)
			return
		}
		_ = writeJSON(w, http.StatusOK, responses.DeletedResponse{Filename: filename, Deleted: true})
	default:
		err := ierrors.ValidationFailed("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed", "GET, DELETE")
		h.errorAdapter.WriteErrorResponse(w, r, err)
	}
}
