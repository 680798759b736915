package catalog

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

// Song lifecycle operations.
//
// The state machine is pending → approved/rejected with every transition
// re-enterable: an approved song can be rejected, a rejected song can be
// re-approved, and an artist edit to an approved song sends it back to
// pending for re-review.

func (s *service) CreateSong(ctx context.Context, req CreateSongRequest, actor Actor) (*Song, error) {
	artist, err := s.repository.GetArtist(ctx, req.PrimaryArtistID)
	if err != nil {
		return nil, err
	}

	if err := Authorize(actor, Owned{Resource: "artist", ID: artist.ID, OwnerUserID: artist.OwnerUserID}); err != nil {
		return nil, err
	}

	featured := dedupeIDs(req.FeaturedArtistIDs)
	if slices.Contains(featured, req.PrimaryArtistID) {
		return nil, ErrFeaturedArtistOverlap
	}

	genres := dedupeIDs(req.GenreIDs)
	if err := s.verifySongRefs(ctx, featured, genres); err != nil {
		return nil, err
	}

	if req.AlbumID != nil {
		if _, err := s.repository.GetAlbum(ctx, *req.AlbumID); err != nil {
			return nil, err
		}
	}

	slug, err := s.allocateAutoSlug(ctx, req.Title, "", s.songSlugExists(uuid.Nil))
	if err != nil {
		return nil, err
	}

	// Admin submissions go live immediately; artist submissions queue
	// for review.
	status := SongStatusPending
	if actor.IsAdmin() {
		status = SongStatusApproved
	}

	now := s.now().UTC()
	song := &Song{
		ID:                uuid.New(),
		PrimaryArtistID:   req.PrimaryArtistID,
		AlbumID:           req.AlbumID,
		FeaturedArtistIDs: featured,
		GenreIDs:          genres,
		Title:             req.Title,
		Slug:              slug,
		DurationMs:        req.DurationMs,
		AudioURL:          req.AudioURL,
		CoverURL:          req.CoverURL,
		IsExplicit:        req.IsExplicit,
		Status:            status,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// The song row and its featured/genre links must land together.
	err = s.repository.WithTx(ctx, func(tx Repository) error {
		return tx.CreateSong(ctx, song)
	})
	if err != nil {
		return nil, &SongError{SongID: song.ID, Op: "create", Err: err}
	}

	if song.Status == SongStatusPending {
		// Best effort; a failing sink never fails the operation.
		_ = s.eventSink.SongSubmitted(ctx, song)
	}

	return song, nil
}

func (s *service) GetSong(ctx context.Context, id uuid.UUID) (*Song, error) {
	return s.repository.GetSong(ctx, id)
}

func (s *service) UpdateSong(ctx context.Context, id uuid.UUID, req UpdateSongRequest, actor Actor) (*Song, error) {
	song, err := s.repository.GetSong(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		artist, err := s.repository.GetArtist(ctx, song.PrimaryArtistID)
		if err != nil {
			return nil, err
		}
		if err := Authorize(actor, Owned{Resource: "song", ID: song.ID, OwnerUserID: artist.OwnerUserID}); err != nil {
			return nil, err
		}
	}

	targetPrimary := song.PrimaryArtistID
	if req.PrimaryArtistID != nil && *req.PrimaryArtistID != song.PrimaryArtistID {
		newArtist, err := s.repository.GetArtist(ctx, *req.PrimaryArtistID)
		if err != nil {
			return nil, err
		}
		// Moving a song to another artist requires owning the target
		// artist too.
		if err := Authorize(actor, Owned{Resource: "artist", ID: newArtist.ID, OwnerUserID: newArtist.OwnerUserID}); err != nil {
			return nil, err
		}
		targetPrimary = newArtist.ID
	}

	featured := song.FeaturedArtistIDs
	if req.FeaturedArtistIDs != nil {
		featured = dedupeIDs(*req.FeaturedArtistIDs)
	}
	if slices.Contains(featured, targetPrimary) {
		return nil, ErrFeaturedArtistOverlap
	}
	if req.FeaturedArtistIDs != nil {
		if err := s.verifySongRefs(ctx, featured, nil); err != nil {
			return nil, err
		}
	}
	if req.GenreIDs != nil {
		if err := s.verifySongRefs(ctx, nil, dedupeIDs(*req.GenreIDs)); err != nil {
			return nil, err
		}
	}

	if req.AlbumID != nil {
		if _, err := s.repository.GetAlbum(ctx, *req.AlbumID); err != nil {
			return nil, err
		}
		song.AlbumID = req.AlbumID
	}

	if req.Title != nil && *req.Title != song.Title {
		slug, err := s.allocateAutoSlug(ctx, *req.Title, song.Slug, s.songSlugExists(song.ID))
		if err != nil {
			return nil, err
		}
		song.Title = *req.Title
		song.Slug = slug
	}

	song.PrimaryArtistID = targetPrimary
	song.FeaturedArtistIDs = featured
	if req.GenreIDs != nil {
		song.GenreIDs = dedupeIDs(*req.GenreIDs)
	}
	if req.DurationMs != nil {
		song.DurationMs = *req.DurationMs
	}
	if req.AudioURL != nil {
		song.AudioURL = *req.AudioURL
	}
	if req.CoverURL != nil {
		song.CoverURL = *req.CoverURL
	}
	if req.IsExplicit != nil {
		song.IsExplicit = *req.IsExplicit
	}

	// An artist edit to a live song always triggers re-review. Admin
	// edits never do.
	resubmitted := false
	if !actor.IsAdmin() && song.Status == SongStatusApproved {
		song.Status = SongStatusPending
		song.ReviewedAt = nil
		song.ReviewedBy = nil
		resubmitted = true
	}

	song.UpdatedAt = s.now().UTC()
	err = s.repository.WithTx(ctx, func(tx Repository) error {
		return tx.UpdateSong(ctx, song)
	})
	if err != nil {
		return nil, &SongError{SongID: song.ID, Op: "update", Err: err}
	}

	if resubmitted {
		_ = s.eventSink.SongSubmitted(ctx, song)
	}

	return song, nil
}

func (s *service) DeleteSong(ctx context.Context, id uuid.UUID, actor Actor) error {
	song, err := s.repository.GetSong(ctx, id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() {
		artist, err := s.repository.GetArtist(ctx, song.PrimaryArtistID)
		if err != nil {
			return err
		}
		if err := Authorize(actor, Owned{Resource: "song", ID: song.ID, OwnerUserID: artist.OwnerUserID}); err != nil {
			return err
		}
	}

	// Deletion has no status precondition; any state can be deleted.
	if err := s.repository.DeleteSongs(ctx, []uuid.UUID{id}); err != nil {
		return &SongError{SongID: id, Op: "delete", Err: err}
	}
	return nil
}

func (s *service) ApproveSong(ctx context.Context, id uuid.UUID, actor Actor) (*Song, error) {
	if !actor.IsAdmin() {
		return nil, &ForbiddenError{Resource: "song", ID: id}
	}

	song, err := s.repository.GetSong(ctx, id)
	if err != nil {
		return nil, err
	}

	if song.Status == SongStatusApproved {
		return nil, ErrSongAlreadyApproved
	}

	now := s.now().UTC()
	song.Status = SongStatusApproved
	song.RejectionReason = nil
	song.ReviewedAt = &now
	reviewer := actor.UserID
	song.ReviewedBy = &reviewer
	song.UpdatedAt = now

	err = s.repository.WithTx(ctx, func(tx Repository) error {
		return tx.UpdateSong(ctx, song)
	})
	if err != nil {
		return nil, &SongError{SongID: id, Op: "approve", Err: err}
	}

	_ = s.eventSink.SongApproved(ctx, song)
	return song, nil
}

func (s *service) RejectSong(ctx context.Context, id uuid.UUID, reason string, actor Actor) (*Song, error) {
	if !actor.IsAdmin() {
		return nil, &ForbiddenError{Resource: "song", ID: id}
	}

	song, err := s.repository.GetSong(ctx, id)
	if err != nil {
		return nil, err
	}

	if song.Status == SongStatusRejected {
		return nil, ErrSongAlreadyRejected
	}

	now := s.now().UTC()
	song.Status = SongStatusRejected
	if reason != "" {
		song.RejectionReason = &reason
	} else {
		song.RejectionReason = nil
	}
	song.ReviewedAt = &now
	reviewer := actor.UserID
	song.ReviewedBy = &reviewer
	song.UpdatedAt = now

	err = s.repository.WithTx(ctx, func(tx Repository) error {
		return tx.UpdateSong(ctx, song)
	})
	if err != nil {
		return nil, &SongError{SongID: id, Op: "reject", Err: err}
	}

	_ = s.eventSink.SongRejected(ctx, song)
	return song, nil
}

func (s *service) ListSongs(ctx context.Context, req ListSongsRequest, actor Actor) (Page[*Song], error) {
	page, limit := normalizePage(req.Page, req.Limit)

	// Visibility rules: anonymous callers and listeners only ever see
	// approved songs. Artists without an explicit status filter are also
	// forced to approved only; their own non-approved songs are reachable
	// through ListMySongs, not through the general listing. Admins see
	// whatever they ask for.
	effectiveStatus := req.Status
	switch {
	case actor.IsAnonymous() || actor.Role == RoleListener:
		approved := SongStatusApproved
		effectiveStatus = &approved
	case actor.Role == RoleArtist && req.Status == nil:
		approved := SongStatusApproved
		effectiveStatus = &approved
	}

	songs, total, err := s.repository.ListSongs(ctx, SongFilter{
		Search:   req.Search,
		ArtistID: req.ArtistID,
		AlbumID:  req.AlbumID,
		GenreID:  req.GenreID,
		Status:   effectiveStatus,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return Page[*Song]{}, err
	}
	return NewPage(songs, total, page, limit), nil
}

// ListMySongs returns the acting artist's own songs across all statuses.
// This deliberately bypasses the approved-only forcing of ListSongs.
func (s *service) ListMySongs(ctx context.Context, actor Actor, page, limit int) (Page[*Song], error) {
	if actor.Role != RoleArtist && actor.Role != RoleAdmin {
		return Page[*Song]{}, &ForbiddenError{Resource: "song"}
	}

	page, limit = normalizePage(page, limit)
	owner := actor.UserID
	songs, total, err := s.repository.ListSongs(ctx, SongFilter{
		ArtistOwnerID: &owner,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return Page[*Song]{}, err
	}
	return NewPage(songs, total, page, limit), nil
}

// ListPendingSongs is the admin review queue.
func (s *service) ListPendingSongs(ctx context.Context, actor Actor, page, limit int) (Page[*Song], error) {
	if !actor.IsAdmin() {
		return Page[*Song]{}, &ForbiddenError{Resource: "song"}
	}

	page, limit = normalizePage(page, limit)
	pending := SongStatusPending
	songs, total, err := s.repository.ListSongs(ctx, SongFilter{
		Status: &pending,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return Page[*Song]{}, err
	}
	return NewPage(songs, total, page, limit), nil
}

// verifySongRefs checks that every featured artist and genre id refers
// to an existing record. Backends differ on dangling join-table ids
// (the memory store would accept them, postgres rejects them), so the
// service settles it up front with a NotFound.
func (s *service) verifySongRefs(ctx context.Context, featured, genres []uuid.UUID) error {
	for _, id := range featured {
		if _, err := s.repository.GetArtist(ctx, id); err != nil {
			return err
		}
	}
	for _, id := range genres {
		if _, err := s.repository.GetGenre(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// songSlugExists builds the collision check for song slugs, ignoring the
// song identified by self (uuid.Nil on create).
func (s *service) songSlugExists(self uuid.UUID) slugExistsFunc {
	return func(ctx context.Context, slug string) (bool, error) {
		existing, err := s.repository.GetSongBySlug(ctx, slug)
		if err != nil {
			if IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		return existing.ID != self, nil
	}
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
