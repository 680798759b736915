package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tunehub/tunehub-server/pkg/catalog"
)

// AlbumHandler handles HTTP requests for albums.
type AlbumHandler struct {
	service catalog.Service
}

// NewAlbumHandler creates a new album handler.
func NewAlbumHandler(service catalog.Service) *AlbumHandler {
	return &AlbumHandler{service: service}
}

// Routes returns the routes for albums.
func (h *AlbumHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateAlbum)
	r.Get("/", h.ListAlbums)
	r.Delete("/", h.DeleteAlbums)
	r.Get("/{id}", h.GetAlbum)
	r.Put("/{id}", h.UpdateAlbum)
	r.Delete("/{id}", h.DeleteAlbum)

	return r
}

// CreateAlbumRequest is the request body for creating an album.
type CreateAlbumRequest struct {
	ArtistID    string     `json:"artist_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug,omitempty"`
	Description string     `json:"description,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	IsPublished bool       `json:"is_published,omitempty"`
}

// UpdateAlbumRequest is the request body for updating an album. Absent
// fields are left unchanged.
type UpdateAlbumRequest struct {
	Title       *string    `json:"title,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
	Description *string    `json:"description,omitempty"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	IsPublished *bool      `json:"is_published,omitempty"`
}

func (h *AlbumHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req CreateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if req.Title == "" {
		badRequest(w, r, "title is required")
		return
	}
	artistID, err := uuid.Parse(req.ArtistID)
	if err != nil {
		badRequest(w, r, "invalid artist id")
		return
	}

	album, err := h.service.CreateAlbum(r.Context(), catalog.CreateAlbumRequest{
		ArtistID:    artistID,
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		ReleaseDate: req.ReleaseDate,
		IsPublished: req.IsPublished,
	}, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, album)
}

func (h *AlbumHandler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	album, err := h.service.GetAlbum(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, album)
}

func (h *AlbumHandler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	album, err := h.service.UpdateAlbum(r.Context(), id, catalog.UpdateAlbumRequest{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		ReleaseDate: req.ReleaseDate,
		IsPublished: req.IsPublished,
	}, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, album)
}

func (h *AlbumHandler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteAlbum(r.Context(), id, ActorFromContext(r.Context())); err != nil {
		respondError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// DeleteAlbums removes several albums in one atomic call.
func (h *AlbumHandler) DeleteAlbums(w http.ResponseWriter, r *http.Request) {
	deleteMany(w, r, h.service, catalog.KindAlbum)
}

func (h *AlbumHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPage(r)
	req := catalog.ListAlbumsRequest{
		Search:      r.URL.Query().Get("search"),
		ArtistID:    queryUUID(r, "artist_id"),
		IsPublished: queryBool(r, "is_published"),
		Page:        page,
		Limit:       limit,
	}

	result, err := h.service.ListAlbums(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}
