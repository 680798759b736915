package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunehub/tunehub-server/pkg/catalog"
	memoryrepo "github.com/tunehub/tunehub-server/pkg/catalog/repo/memory"
)

// setupSongHandlerTest wires a SongHandler to a real service backed by
// the in-memory repository and returns the seeded artist plus acting
// identities for each role.
func setupSongHandlerTest(t *testing.T) (chi.Router, *catalog.Artist, catalog.Actor, catalog.Actor) {
	t.Helper()

	svc, err := catalog.New(catalog.WithRepository(memoryrepo.New()))
	require.NoError(t, err)

	admin := catalog.Actor{UserID: uuid.New(), Role: catalog.RoleAdmin}
	owner := uuid.New()
	artist, err := svc.CreateArtist(context.Background(), catalog.CreateArtistRequest{
		Name:        "Handler Test Artist",
		OwnerUserID: &owner,
	}, admin)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Mount("/songs", NewSongHandler(svc).Routes())
	return router, artist, catalog.Actor{UserID: owner, Role: catalog.RoleArtist}, admin
}

func doJSON(t *testing.T, router chi.Router, actor catalog.Actor, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if !actor.IsAnonymous() {
		req = req.WithContext(WithActor(req.Context(), actor))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSongHandler_CreateSong(t *testing.T) {
	router, artist, artistActor, _ := setupSongHandlerTest(t)

	rec := doJSON(t, router, artistActor, http.MethodPost, "/songs", CreateSongRequest{
		Title:           "First Single",
		PrimaryArtistID: artist.ID.String(),
		DurationMs:      180_000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var song catalog.Song
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&song))
	assert.Equal(t, "First Single", song.Title)
	assert.Equal(t, "first-single", song.Slug)
	assert.Equal(t, catalog.SongStatusPending, song.Status)
}

func TestSongHandler_CreateSong_BadRequest(t *testing.T) {
	router, artist, artistActor, _ := setupSongHandlerTest(t)

	tests := []struct {
		name string
		body CreateSongRequest
	}{
		{"missing title", CreateSongRequest{PrimaryArtistID: artist.ID.String(), DurationMs: 1000}},
		{"bad artist id", CreateSongRequest{Title: "x", PrimaryArtistID: "not-a-uuid", DurationMs: 1000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, artistActor, http.MethodPost, "/songs", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSongHandler_ReviewLifecycle(t *testing.T) {
	router, artist, artistActor, admin := setupSongHandlerTest(t)

	rec := doJSON(t, router, artistActor, http.MethodPost, "/songs", CreateSongRequest{
		Title:           "Needs Review",
		PrimaryArtistID: artist.ID.String(),
		DurationMs:      200_000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var song catalog.Song
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&song))

	// The uploading artist cannot review their own song.
	rec = doJSON(t, router, artistActor, http.MethodPost, fmt.Sprintf("/songs/%s/approve", song.ID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, admin, http.MethodPost, fmt.Sprintf("/songs/%s/approve", song.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var approved catalog.Song
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&approved))
	assert.Equal(t, catalog.SongStatusApproved, approved.Status)
	assert.NotNil(t, approved.ReviewedAt)

	// Approving twice is a conflict.
	rec = doJSON(t, router, admin, http.MethodPost, fmt.Sprintf("/songs/%s/approve", song.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, admin, http.MethodPost, fmt.Sprintf("/songs/%s/reject", song.ID), RejectSongRequest{Reason: "low bitrate"})
	require.Equal(t, http.StatusOK, rec.Code)
	var rejected catalog.Song
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rejected))
	assert.Equal(t, catalog.SongStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "low bitrate", *rejected.RejectionReason)
}

func TestSongHandler_ListSongs_AnonymousSeesApprovedOnly(t *testing.T) {
	router, artist, artistActor, admin := setupSongHandlerTest(t)

	rec := doJSON(t, router, artistActor, http.MethodPost, "/songs", CreateSongRequest{
		Title:           "Still Pending",
		PrimaryArtistID: artist.ID.String(),
		DurationMs:      150_000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, admin, http.MethodPost, "/songs", CreateSongRequest{
		Title:           "Already Live",
		PrimaryArtistID: artist.ID.String(),
		DurationMs:      150_000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, catalog.Actor{}, http.MethodGet, "/songs?status=pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page catalog.Page[*catalog.Song]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Already Live", page.Items[0].Title)
}

func TestSongHandler_ListPendingSongs_AdminOnly(t *testing.T) {
	router, _, artistActor, admin := setupSongHandlerTest(t)

	rec := doJSON(t, router, artistActor, http.MethodGet, "/songs/pending", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, admin, http.MethodGet, "/songs/pending", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSongHandler_GetSong_NotFound(t *testing.T) {
	router, _, _, _ := setupSongHandlerTest(t)

	rec := doJSON(t, router, catalog.Actor{}, http.MethodGet, "/songs/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, catalog.Actor{}, http.MethodGet, "/songs/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSongHandler_DeleteSongs_Bulk(t *testing.T) {
	router, artist, artistActor, _ := setupSongHandlerTest(t)

	ids := make([]string, 0, 2)
	for _, title := range []string{"One", "Two"} {
		rec := doJSON(t, router, artistActor, http.MethodPost, "/songs", CreateSongRequest{
			Title:           title,
			PrimaryArtistID: artist.ID.String(),
			DurationMs:      90_000,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		var song catalog.Song
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&song))
		ids = append(ids, song.ID.String())
	}

	rec := doJSON(t, router, artistActor, http.MethodDelete, "/songs", DeleteManyRequest{IDs: ids})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, artistActor, http.MethodGet, "/songs/"+ids[0], nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
