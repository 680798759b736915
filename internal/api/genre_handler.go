package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tunehub/tunehub-server/pkg/catalog"
)

// GenreHandler handles HTTP requests for genres. All mutations are
// admin only; reads are public.
type GenreHandler struct {
	service catalog.Service
}

// NewGenreHandler creates a new genre handler.
func NewGenreHandler(service catalog.Service) *GenreHandler {
	return &GenreHandler{service: service}
}

// Routes returns the routes for genres.
func (h *GenreHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateGenre)
	r.Get("/", h.ListGenres)
	r.Delete("/", h.DeleteGenres)
	r.Get("/{id}", h.GetGenre)
	r.Put("/{id}", h.UpdateGenre)
	r.Delete("/{id}", h.DeleteGenre)

	return r
}

// CreateGenreRequest is the request body for creating a genre.
type CreateGenreRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateGenreRequest is the request body for updating a genre. Absent
// fields are left unchanged.
type UpdateGenreRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (h *GenreHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req CreateGenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if req.Name == "" {
		badRequest(w, r, "name is required")
		return
	}

	genre, err := h.service.CreateGenre(r.Context(), catalog.CreateGenreRequest{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, genre)
}

func (h *GenreHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	genre, err := h.service.GetGenre(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, genre)
}

func (h *GenreHandler) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateGenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	genre, err := h.service.UpdateGenre(r.Context(), id, catalog.UpdateGenreRequest{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, genre)
}

func (h *GenreHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteGenre(r.Context(), id, ActorFromContext(r.Context())); err != nil {
		respondError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// DeleteGenres removes several genres in one atomic call.
func (h *GenreHandler) DeleteGenres(w http.ResponseWriter, r *http.Request) {
	deleteMany(w, r, h.service, catalog.KindGenre)
}

func (h *GenreHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPage(r)
	result, err := h.service.ListGenres(r.Context(), catalog.ListGenresRequest{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}
