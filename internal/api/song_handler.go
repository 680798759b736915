package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tunehub/tunehub-server/pkg/catalog"
)

// SongHandler handles HTTP requests for songs and the review lifecycle.
type SongHandler struct {
	service catalog.Service
}

// NewSongHandler creates a new song handler.
func NewSongHandler(service catalog.Service) *SongHandler {
	return &SongHandler{service: service}
}

// Routes returns the routes for songs.
func (h *SongHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateSong)
	r.Get("/", h.ListSongs)
	r.Delete("/", h.DeleteSongs)
	r.Get("/my", h.ListMySongs)
	r.Get("/pending", h.ListPendingSongs)
	r.Get("/{id}", h.GetSong)
	r.Put("/{id}", h.UpdateSong)
	r.Delete("/{id}", h.DeleteSong)
	r.Post("/{id}/approve", h.ApproveSong)
	r.Post("/{id}/reject", h.RejectSong)

	return r
}

// CreateSongRequest is the request body for creating a song.
type CreateSongRequest struct {
	Title             string   `json:"title"`
	PrimaryArtistID   string   `json:"primary_artist_id"`
	AlbumID           string   `json:"album_id,omitempty"`
	FeaturedArtistIDs []string `json:"featured_artist_ids,omitempty"`
	GenreIDs          []string `json:"genre_ids,omitempty"`
	DurationMs        int64    `json:"duration_ms"`
	AudioURL          string   `json:"audio_url,omitempty"`
	CoverURL          string   `json:"cover_url,omitempty"`
	IsExplicit        bool     `json:"is_explicit,omitempty"`
}

// UpdateSongRequest is the request body for updating a song. Absent
// fields are left unchanged; a present featured_artist_ids replaces the
// whole set.
type UpdateSongRequest struct {
	Title             *string   `json:"title,omitempty"`
	PrimaryArtistID   *string   `json:"primary_artist_id,omitempty"`
	AlbumID           *string   `json:"album_id,omitempty"`
	FeaturedArtistIDs *[]string `json:"featured_artist_ids,omitempty"`
	GenreIDs          *[]string `json:"genre_ids,omitempty"`
	DurationMs        *int64    `json:"duration_ms,omitempty"`
	AudioURL          *string   `json:"audio_url,omitempty"`
	CoverURL          *string   `json:"cover_url,omitempty"`
	IsExplicit        *bool     `json:"is_explicit,omitempty"`
}

// RejectSongRequest is the request body for rejecting a song.
type RejectSongRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h *SongHandler) CreateSong(w http.ResponseWriter, r *http.Request) {
	var req CreateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if req.Title == "" {
		badRequest(w, r, "title is required")
		return
	}
	artistID, err := uuid.Parse(req.PrimaryArtistID)
	if err != nil {
		badRequest(w, r, "invalid primary artist id")
		return
	}
	featured, err := parseIDs(req.FeaturedArtistIDs)
	if err != nil {
		badRequest(w, r, "invalid featured artist id")
		return
	}
	genres, err := parseIDs(req.GenreIDs)
	if err != nil {
		badRequest(w, r, "invalid genre id")
		return
	}

	create := catalog.CreateSongRequest{
		Title:             req.Title,
		PrimaryArtistID:   artistID,
		FeaturedArtistIDs: featured,
		GenreIDs:          genres,
		DurationMs:        req.DurationMs,
		AudioURL:          req.AudioURL,
		CoverURL:          req.CoverURL,
		IsExplicit:        req.IsExplicit,
	}
	if req.AlbumID != "" {
		albumID, err := uuid.Parse(req.AlbumID)
		if err != nil {
			badRequest(w, r, "invalid album id")
			return
		}
		create.AlbumID = &albumID
	}

	song, err := h.service.CreateSong(r.Context(), create, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, song)
}

func (h *SongHandler) GetSong(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	song, err := h.service.GetSong(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, song)
}

func (h *SongHandler) UpdateSong(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	update := catalog.UpdateSongRequest{
		Title:      req.Title,
		DurationMs: req.DurationMs,
		AudioURL:   req.AudioURL,
		CoverURL:   req.CoverURL,
		IsExplicit: req.IsExplicit,
	}
	if req.PrimaryArtistID != nil {
		artistID, err := uuid.Parse(*req.PrimaryArtistID)
		if err != nil {
			badRequest(w, r, "invalid primary artist id")
			return
		}
		update.PrimaryArtistID = &artistID
	}
	if req.AlbumID != nil {
		albumID, err := uuid.Parse(*req.AlbumID)
		if err != nil {
			badRequest(w, r, "invalid album id")
			return
		}
		update.AlbumID = &albumID
	}
	if req.FeaturedArtistIDs != nil {
		featured, err := parseIDs(*req.FeaturedArtistIDs)
		if err != nil {
			badRequest(w, r, "invalid featured artist id")
			return
		}
		update.FeaturedArtistIDs = &featured
	}
	if req.GenreIDs != nil {
		genres, err := parseIDs(*req.GenreIDs)
		if err != nil {
			badRequest(w, r, "invalid genre id")
			return
		}
		update.GenreIDs = &genres
	}

	song, err := h.service.UpdateSong(r.Context(), id, update, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, song)
}

func (h *SongHandler) DeleteSong(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSong(r.Context(), id, ActorFromContext(r.Context())); err != nil {
		respondError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// DeleteSongs removes several songs in one atomic call.
func (h *SongHandler) DeleteSongs(w http.ResponseWriter, r *http.Request) {
	deleteMany(w, r, h.service, catalog.KindSong)
}

// ApproveSong moves a pending or rejected song to approved. Admin only.
func (h *SongHandler) ApproveSong(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	song, err := h.service.ApproveSong(r.Context(), id, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, song)
}

// RejectSong moves a pending or approved song to rejected. Admin only.
func (h *SongHandler) RejectSong(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req RejectSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	song, err := h.service.RejectSong(r.Context(), id, req.Reason, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, song)
}

func (h *SongHandler) ListSongs(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPage(r)
	req := catalog.ListSongsRequest{
		Search:   r.URL.Query().Get("search"),
		ArtistID: queryUUID(r, "artist_id"),
		AlbumID:  queryUUID(r, "album_id"),
		GenreID:  queryUUID(r, "genre_id"),
		Page:     page,
		Limit:    limit,
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := catalog.SongStatus(raw)
		req.Status = &status
	}

	result, err := h.service.ListSongs(r.Context(), req, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// ListMySongs lists the caller's own songs regardless of status.
func (h *SongHandler) ListMySongs(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPage(r)
	result, err := h.service.ListMySongs(r.Context(), ActorFromContext(r.Context()), page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// ListPendingSongs lists the review queue. Admin only.
func (h *SongHandler) ListPendingSongs(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPage(r)
	result, err := h.service.ListPendingSongs(r.Context(), ActorFromContext(r.Context()), page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}
