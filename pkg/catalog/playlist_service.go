package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Playlist operations.
//
// TotalTracks and DurationMs are always recomputed by rescanning the
// full membership inside the same transaction as the membership write,
// so callers never observe an entry change with stale aggregates.

func (s *service) CreatePlaylist(ctx context.Context, req CreatePlaylistRequest, actor Actor) (*Playlist, error) {
	if actor.IsAnonymous() {
		return nil, &ForbiddenError{Resource: "playlist"}
	}

	slug, err := s.allocateAutoSlug(ctx, req.Name, "", s.playlistSlugExists(uuid.Nil))
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	playlist := &Playlist{
		ID:          uuid.New(),
		OwnerUserID: actor.UserID,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		IsPublic:    req.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repository.CreatePlaylist(ctx, playlist); err != nil {
		return nil, &PlaylistError{PlaylistID: playlist.ID, Op: "create", Err: err}
	}
	return playlist, nil
}

func (s *service) GetPlaylist(ctx context.Context, id uuid.UUID, actor Actor) (*Playlist, error) {
	playlist, err := s.repository.GetPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}

	if !playlist.IsPublic {
		owner := playlist.OwnerUserID
		if err := Authorize(actor, Owned{Resource: "playlist", ID: playlist.ID, OwnerUserID: &owner}); err != nil {
			return nil, err
		}
	}
	return playlist, nil
}

func (s *service) UpdatePlaylist(ctx context.Context, id uuid.UUID, req UpdatePlaylistRequest, actor Actor) (*Playlist, error) {
	playlist, err := s.repository.GetPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}

	owner := playlist.OwnerUserID
	if err := Authorize(actor, Owned{Resource: "playlist", ID: playlist.ID, OwnerUserID: &owner}); err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != playlist.Name {
		slug, err := s.allocateAutoSlug(ctx, *req.Name, playlist.Slug, s.playlistSlugExists(playlist.ID))
		if err != nil {
			return nil, err
		}
		playlist.Name = *req.Name
		playlist.Slug = slug
	}
	if req.Description != nil {
		playlist.Description = *req.Description
	}
	if req.CoverURL != nil {
		playlist.CoverURL = *req.CoverURL
	}
	if req.IsPublic != nil {
		playlist.IsPublic = *req.IsPublic
	}

	playlist.UpdatedAt = s.now().UTC()
	if err := s.repository.UpdatePlaylist(ctx, playlist); err != nil {
		return nil, &PlaylistError{PlaylistID: id, Op: "update", Err: err}
	}
	return playlist, nil
}

func (s *service) DeletePlaylist(ctx context.Context, id uuid.UUID, actor Actor) error {
	playlist, err := s.repository.GetPlaylist(ctx, id)
	if err != nil {
		return err
	}

	owner := playlist.OwnerUserID
	if err := Authorize(actor, Owned{Resource: "playlist", ID: playlist.ID, OwnerUserID: &owner}); err != nil {
		return err
	}

	if err := s.repository.DeletePlaylists(ctx, []uuid.UUID{id}); err != nil {
		return &PlaylistError{PlaylistID: id, Op: "delete", Err: err}
	}
	return nil
}

func (s *service) ListPlaylists(ctx context.Context, req ListPlaylistsRequest) (Page[*Playlist], error) {
	page, limit := normalizePage(req.Page, req.Limit)
	public := true
	playlists, total, err := s.repository.ListPlaylists(ctx, PlaylistFilter{
		Search:   req.Search,
		IsPublic: &public,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return Page[*Playlist]{}, err
	}
	return NewPage(playlists, total, page, limit), nil
}

// AddSongsToPlaylist appends songs to a playlist. Unknown song ids and
// songs that are already members are skipped silently; the batch always
// completes. New entries take positions after the current member count,
// never reusing gaps left by removals.
func (s *service) AddSongsToPlaylist(ctx context.Context, playlistID uuid.UUID, songIDs []uuid.UUID, actor Actor) (*Playlist, error) {
	playlist, err := s.repository.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	owner := playlist.OwnerUserID
	if err := Authorize(actor, Owned{Resource: "playlist", ID: playlist.ID, OwnerUserID: &owner}); err != nil {
		return nil, err
	}

	err = s.repository.WithTx(ctx, func(tx Repository) error {
		entries, err := tx.ListPlaylistEntries(ctx, playlistID)
		if err != nil {
			return err
		}

		members := make(map[uuid.UUID]struct{}, len(entries))
		for _, e := range entries {
			members[e.SongID] = struct{}{}
		}

		nextPosition := len(entries) + 1
		now := s.now().UTC()
		for _, songID := range songIDs {
			if _, ok := members[songID]; ok {
				continue
			}
			if _, err := tx.GetSong(ctx, songID); err != nil {
				if IsNotFound(err) {
					continue
				}
				return err
			}
			entry := &PlaylistEntry{
				PlaylistID: playlistID,
				SongID:     songID,
				Position:   nextPosition,
				AddedAt:    now,
				AddedBy:    actor.UserID,
			}
			if err := tx.AddPlaylistEntry(ctx, entry); err != nil {
				return err
			}
			members[songID] = struct{}{}
			nextPosition++
		}

		return s.recomputeAggregates(ctx, tx, playlist)
	})
	if err != nil {
		return nil, &PlaylistError{PlaylistID: playlistID, Op: "add_songs", Err: err}
	}

	_ = s.eventSink.PlaylistChanged(ctx, playlist)
	return playlist, nil
}

// RemoveSongFromPlaylist removes one membership pair. Remaining entries
// keep their positions; gaps are not backfilled.
func (s *service) RemoveSongFromPlaylist(ctx context.Context, playlistID, songID uuid.UUID, actor Actor) (*Playlist, error) {
	playlist, err := s.repository.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	owner := playlist.OwnerUserID
	if err := Authorize(actor, Owned{Resource: "playlist", ID: playlist.ID, OwnerUserID: &owner}); err != nil {
		return nil, err
	}

	err = s.repository.WithTx(ctx, func(tx Repository) error {
		if err := tx.RemovePlaylistEntry(ctx, playlistID, songID); err != nil {
			return err
		}
		return s.recomputeAggregates(ctx, tx, playlist)
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, &PlaylistError{PlaylistID: playlistID, Op: "remove_song", Err: err}
	}

	_ = s.eventSink.PlaylistChanged(ctx, playlist)
	return playlist, nil
}

func (s *service) ListPlaylistEntries(ctx context.Context, playlistID uuid.UUID, actor Actor) ([]*PlaylistEntry, error) {
	playlist, err := s.repository.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if !playlist.IsPublic {
		owner := playlist.OwnerUserID
		if err := Authorize(actor, Owned{Resource: "playlist", ID: playlist.ID, OwnerUserID: &owner}); err != nil {
			return nil, err
		}
	}
	return s.repository.ListPlaylistEntries(ctx, playlistID)
}

// recomputeAggregates derives TotalTracks and DurationMs by rescanning
// the current membership within tx and persists them on the playlist.
// The rescan is O(n) per call; a full rescan cannot drift the way
// incremental counters can.
func (s *service) recomputeAggregates(ctx context.Context, tx Repository, playlist *Playlist) error {
	entries, err := tx.ListPlaylistEntries(ctx, playlist.ID)
	if err != nil {
		return err
	}

	var duration int64
	for _, entry := range entries {
		song, err := tx.GetSong(ctx, entry.SongID)
		if err != nil {
			return err
		}
		duration += song.DurationMs
	}

	playlist.TotalTracks = len(entries)
	playlist.DurationMs = duration
	playlist.UpdatedAt = s.now().UTC()
	return tx.UpdatePlaylist(ctx, playlist)
}

func (s *service) playlistSlugExists(self uuid.UUID) slugExistsFunc {
	return func(ctx context.Context, slug string) (bool, error) {
		existing, err := s.repository.GetPlaylistBySlug(ctx, slug)
		if err != nil {
			if IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		return existing.ID != self, nil
	}
}
