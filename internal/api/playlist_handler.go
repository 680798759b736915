package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tunehub/tunehub-server/pkg/catalog"
)

// PlaylistHandler handles HTTP requests for playlists and their
// membership.
type PlaylistHandler struct {
	service catalog.Service
}

// NewPlaylistHandler creates a new playlist handler.
func NewPlaylistHandler(service catalog.Service) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

// Routes returns the routes for playlists.
func (h *PlaylistHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreatePlaylist)
	r.Get("/", h.ListPlaylists)
	r.Delete("/", h.DeletePlaylists)
	r.Get("/{id}", h.GetPlaylist)
	r.Put("/{id}", h.UpdatePlaylist)
	r.Delete("/{id}", h.DeletePlaylist)

	r.Get("/{id}/songs", h.ListPlaylistEntries)
	r.Post("/{id}/songs", h.AddSongs)
	r.Delete("/{id}/songs/{songID}", h.RemoveSong)

	return r
}

// CreatePlaylistRequest is the request body for creating a playlist.
type CreatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	IsPublic    bool   `json:"is_public,omitempty"`
}

// UpdatePlaylistRequest is the request body for updating a playlist.
// Absent fields are left unchanged.
type UpdatePlaylistRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CoverURL    *string `json:"cover_url,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// AddSongsRequest is the request body for adding songs to a playlist.
// Songs already present and unknown ids are skipped silently.
type AddSongsRequest struct {
	SongIDs []string `json:"song_ids"`
}

func (h *PlaylistHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if req.Name == "" {
		badRequest(w, r, "name is required")
		return
	}

	playlist, err := h.service.CreatePlaylist(r.Context(), catalog.CreatePlaylistRequest{
		Name:        req.Name,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		IsPublic:    req.IsPublic,
	}, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, playlist)
}

func (h *PlaylistHandler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	playlist, err := h.service.GetPlaylist(r.Context(), id, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, playlist)
}

func (h *PlaylistHandler) UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	playlist, err := h.service.UpdatePlaylist(r.Context(), id, catalog.UpdatePlaylistRequest{
		Name:        req.Name,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		IsPublic:    req.IsPublic,
	}, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, playlist)
}

func (h *PlaylistHandler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePlaylist(r.Context(), id, ActorFromContext(r.Context())); err != nil {
		respondError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// DeletePlaylists removes several playlists in one atomic call.
func (h *PlaylistHandler) DeletePlaylists(w http.ResponseWriter, r *http.Request) {
	deleteMany(w, r, h.service, catalog.KindPlaylist)
}

func (h *PlaylistHandler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPage(r)
	result, err := h.service.ListPlaylists(r.Context(), catalog.ListPlaylistsRequest{
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

func (h *PlaylistHandler) ListPlaylistEntries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entries, err := h.service.ListPlaylistEntries(r.Context(), id, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, entries)
}

// AddSongs appends a batch of songs to the playlist and returns the
// playlist with refreshed aggregates.
func (h *PlaylistHandler) AddSongs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req AddSongsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	songIDs, err := parseIDs(req.SongIDs)
	if err != nil {
		badRequest(w, r, "invalid song id")
		return
	}

	playlist, err := h.service.AddSongsToPlaylist(r.Context(), id, songIDs, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, playlist)
}

// RemoveSong removes one song from the playlist and returns the
// playlist with refreshed aggregates.
func (h *PlaylistHandler) RemoveSong(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	songID, err := uuid.Parse(chi.URLParam(r, "songID"))
	if err != nil {
		badRequest(w, r, "invalid song id")
		return
	}

	playlist, err := h.service.RemoveSongFromPlaylist(r.Context(), id, songID, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, playlist)
}
