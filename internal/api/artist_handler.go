package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tunehub/tunehub-server/pkg/catalog"
)

// ArtistHandler handles HTTP requests for artist profiles.
type ArtistHandler struct {
	service catalog.Service
}

// NewArtistHandler creates a new artist handler.
func NewArtistHandler(service catalog.Service) *ArtistHandler {
	return &ArtistHandler{service: service}
}

// Routes returns the routes for artists.
func (h *ArtistHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateArtist)
	r.Get("/", h.ListArtists)
	r.Delete("/", h.DeleteArtists)
	r.Get("/{id}", h.GetArtist)
	r.Put("/{id}", h.UpdateArtist)
	r.Delete("/{id}", h.DeleteArtist)

	return r
}

// CreateArtistRequest is the request body for creating an artist.
type CreateArtistRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	OwnerUserID string `json:"owner_user_id,omitempty"`
	Verified    bool   `json:"verified,omitempty"`
}

// UpdateArtistRequest is the request body for updating an artist. Absent
// fields are left unchanged.
type UpdateArtistRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	OwnerUserID *string `json:"owner_user_id,omitempty"`
	Verified    *bool   `json:"verified,omitempty"`
}

func (h *ArtistHandler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	var req CreateArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if req.Name == "" {
		badRequest(w, r, "name is required")
		return
	}

	create := catalog.CreateArtistRequest{
		Name:      req.Name,
		Slug:      req.Slug,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		Verified:  req.Verified,
	}
	if req.OwnerUserID != "" {
		ownerID, err := uuid.Parse(req.OwnerUserID)
		if err != nil {
			badRequest(w, r, "invalid owner user id")
			return
		}
		create.OwnerUserID = &ownerID
	}

	artist, err := h.service.CreateArtist(r.Context(), create, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, artist)
}

func (h *ArtistHandler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	artist, err := h.service.GetArtist(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, artist)
}

func (h *ArtistHandler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	update := catalog.UpdateArtistRequest{
		Name:      req.Name,
		Slug:      req.Slug,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		Verified:  req.Verified,
	}
	if req.OwnerUserID != nil {
		ownerID, err := uuid.Parse(*req.OwnerUserID)
		if err != nil {
			badRequest(w, r, "invalid owner user id")
			return
		}
		update.OwnerUserID = &ownerID
	}

	artist, err := h.service.UpdateArtist(r.Context(), id, update, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, artist)
}

func (h *ArtistHandler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteArtist(r.Context(), id, ActorFromContext(r.Context())); err != nil {
		respondError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// DeleteArtists removes several artists in one atomic call.
func (h *ArtistHandler) DeleteArtists(w http.ResponseWriter, r *http.Request) {
	deleteMany(w, r, h.service, catalog.KindArtist)
}

func (h *ArtistHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPage(r)
	req := catalog.ListArtistsRequest{
		Search:    r.URL.Query().Get("search"),
		Verified:  queryBool(r, "verified"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
		Page:      page,
		Limit:     limit,
	}

	result, err := h.service.ListArtists(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}
