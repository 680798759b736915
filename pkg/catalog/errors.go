package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrArtistNotFound indicates an artist profile was not found
	ErrArtistNotFound = errors.New("artist not found")

	// ErrAlbumNotFound indicates an album was not found
	ErrAlbumNotFound = errors.New("album not found")

	// ErrSongNotFound indicates a song was not found
	ErrSongNotFound = errors.New("song not found")

	// ErrGenreNotFound indicates a genre was not found
	ErrGenreNotFound = errors.New("genre not found")

	// ErrPlaylistNotFound indicates a playlist was not found
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrSongNotInPlaylist indicates the (playlist, song) pair is not a member
	ErrSongNotInPlaylist = errors.New("song not in playlist")

	// ErrSlugExists indicates an explicitly supplied or derived slug is already taken
	ErrSlugExists = errors.New("slug already exists")

	// ErrSongAlreadyApproved indicates approve was called on an approved song
	ErrSongAlreadyApproved = errors.New("song already approved")

	// ErrSongAlreadyRejected indicates reject was called on a rejected song
	ErrSongAlreadyRejected = errors.New("song already rejected")

	// ErrFeaturedArtistOverlap indicates the primary artist appears in the
	// featured artist set
	ErrFeaturedArtistOverlap = errors.New("primary artist cannot also be a featured artist")

	// ErrInvalidKind indicates an unknown entity kind in a bulk operation
	ErrInvalidKind = errors.New("invalid entity kind")
)

// ForbiddenError indicates a role/ownership violation. For bulk
// operations ID names the first offending resource.
type ForbiddenError struct {
	Resource string
	ID       uuid.UUID
}

func (e *ForbiddenError) Error() string {
	if e.ID == uuid.Nil {
		return fmt.Sprintf("forbidden: not allowed to manage this %s", e.Resource)
	}
	return fmt.Sprintf("forbidden: not allowed to manage %s %s", e.Resource, e.ID)
}

// SongError represents an error related to song lifecycle operations
type SongError struct {
	SongID uuid.UUID
	Op     string
	Err    error
}

func (e *SongError) Error() string {
	return fmt.Sprintf("song operation %s failed for song %s: %v", e.Op, e.SongID, e.Err)
}

func (e *SongError) Unwrap() error {
	return e.Err
}

// PlaylistError represents an error related to playlist operations
type PlaylistError struct {
	PlaylistID uuid.UUID
	Op         string
	Err        error
}

func (e *PlaylistError) Error() string {
	return fmt.Sprintf("playlist operation %s failed for playlist %s: %v", e.Op, e.PlaylistID, e.Err)
}

func (e *PlaylistError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrArtistNotFound) ||
		errors.Is(err, ErrAlbumNotFound) ||
		errors.Is(err, ErrSongNotFound) ||
		errors.Is(err, ErrGenreNotFound) ||
		errors.Is(err, ErrPlaylistNotFound) ||
		errors.Is(err, ErrSongNotInPlaylist)
}

// IsConflict reports whether err is a state-machine or slug precondition
// violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSlugExists) ||
		errors.Is(err, ErrSongAlreadyApproved) ||
		errors.Is(err, ErrSongAlreadyRejected) ||
		errors.Is(err, ErrFeaturedArtistOverlap)
}

// IsForbidden reports whether err is an ownership/role violation.
func IsForbidden(err error) bool {
	var fe *ForbiddenError
	return errors.As(err, &fe)
}
