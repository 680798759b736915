package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tunehub/tunehub-server/pkg/catalog/storage"
)

// MediaHandler handles upload and download of media blobs (audio
// tracks, cover art). Object keys are server-assigned so clients cannot
// overwrite each other's files.
type MediaHandler struct {
	store storage.FileStore
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(store storage.FileStore) *MediaHandler {
	return &MediaHandler{store: store}
}

// Routes returns the routes for media.
func (h *MediaHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateUpload)
	r.Put("/{key}", h.Upload)
	r.Get("/{key}", h.Download)
	r.Get("/{key}/meta", h.GetMeta)
	r.Delete("/{key}", h.Delete)

	return r
}

// CreateUploadRequest is the request body for reserving an upload slot.
type CreateUploadRequest struct {
	FileName string `json:"file_name"`
}

// CreateUploadResponse carries the assigned object key and, when the
// backend supports it, a presigned URL the client can PUT the blob to.
type CreateUploadResponse struct {
	ObjectKey string    `json:"object_key"`
	UploadURL string    `json:"upload_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUpload assigns an object key and returns a presigned upload URL
// when available. Requires an authenticated caller.
func (h *MediaHandler) CreateUpload(w http.ResponseWriter, r *http.Request) {
	if ActorFromContext(r.Context()).IsAnonymous() {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "authentication required"})
		return
	}

	var req CreateUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if req.FileName == "" {
		badRequest(w, r, "file_name is required")
		return
	}

	objectKey := uuid.New().String() + path.Ext(req.FileName)

	uploadURL, err := h.store.GetUploadURL(r.Context(), objectKey)
	if err != nil {
		// Backend without presigned URLs; the client uploads through
		// the Upload endpoint instead.
		slog.Info("presigned upload unavailable", "error", err)
		uploadURL = ""
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, CreateUploadResponse{
		ObjectKey: objectKey,
		UploadURL: uploadURL,
		CreatedAt: time.Now().UTC(),
	})
}

// Upload streams the request body into the store under the given key.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if ActorFromContext(r.Context()).IsAnonymous() {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "authentication required"})
		return
	}

	key := chi.URLParam(r, "key")
	if err := h.store.Upload(r.Context(), key, r.Header.Get("Content-Type"), r.Body); err != nil {
		slog.Error("upload failed", "key", key, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "upload failed"})
		return
	}
	render.NoContent(w, r)
}

// Download redirects to a presigned URL when the backend provides one,
// otherwise streams the blob directly.
func (h *MediaHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if url, err := h.store.GetDownloadURL(r.Context(), key, r.URL.Query().Get("filename")); err == nil && url != "" {
		http.Redirect(w, r, url, http.StatusTemporaryRedirect)
		return
	}

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		h.respondStorageError(w, r, key, err)
		return
	}
	defer body.Close()

	if meta, err := h.store.GetObjectMeta(r.Context(), key); err == nil {
		w.Header().Set("Content-Type", meta.ContentType)
	}
	if _, err := io.Copy(w, body); err != nil {
		slog.Error("download stream interrupted", "key", key, "error", err)
	}
}

func (h *MediaHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	meta, err := h.store.GetObjectMeta(r.Context(), key)
	if err != nil {
		h.respondStorageError(w, r, key, err)
		return
	}
	render.JSON(w, r, meta)
}

func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !ActorFromContext(r.Context()).IsAdmin() {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: "admin role required"})
		return
	}

	key := chi.URLParam(r, "key")
	if err := h.store.Delete(r.Context(), key); err != nil {
		h.respondStorageError(w, r, key, err)
		return
	}
	render.NoContent(w, r)
}

func (h *MediaHandler) respondStorageError(w http.ResponseWriter, r *http.Request, key string, err error) {
	if errors.Is(err, storage.ErrObjectNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "object not found"})
		return
	}
	slog.Error("storage operation failed", "key", key, "error", err)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, ErrorResponse{Error: "internal server error"})
}
