package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for the catalog. A
// Repository passed to WithTx sees its own prior writes (read-your-writes
// within the unit of work).
type Repository interface {
	// WithTx runs fn against a transactional view of the repository.
	// All writes made by fn become durable together, or not at all when
	// fn returns an error.
	WithTx(ctx context.Context, fn func(Repository) error) error

	// Artist operations
	CreateArtist(ctx context.Context, artist *Artist) error
	GetArtist(ctx context.Context, id uuid.UUID) (*Artist, error)
	GetArtistBySlug(ctx context.Context, slug string) (*Artist, error)
	UpdateArtist(ctx context.Context, artist *Artist) error
	DeleteArtists(ctx context.Context, ids []uuid.UUID) error
	ListArtists(ctx context.Context, filter ArtistFilter) ([]*Artist, int, error)

	// Album operations
	CreateAlbum(ctx context.Context, album *Album) error
	GetAlbum(ctx context.Context, id uuid.UUID) (*Album, error)
	GetAlbumBySlug(ctx context.Context, slug string) (*Album, error)
	UpdateAlbum(ctx context.Context, album *Album) error
	DeleteAlbums(ctx context.Context, ids []uuid.UUID) error
	ListAlbums(ctx context.Context, filter AlbumFilter) ([]*Album, int, error)

	// Song operations
	CreateSong(ctx context.Context, song *Song) error
	GetSong(ctx context.Context, id uuid.UUID) (*Song, error)
	GetSongBySlug(ctx context.Context, slug string) (*Song, error)
	UpdateSong(ctx context.Context, song *Song) error
	DeleteSongs(ctx context.Context, ids []uuid.UUID) error
	ListSongs(ctx context.Context, filter SongFilter) ([]*Song, int, error)

	// Genre operations
	CreateGenre(ctx context.Context, genre *Genre) error
	GetGenre(ctx context.Context, id uuid.UUID) (*Genre, error)
	GetGenreBySlug(ctx context.Context, slug string) (*Genre, error)
	UpdateGenre(ctx context.Context, genre *Genre) error
	DeleteGenres(ctx context.Context, ids []uuid.UUID) error
	ListGenres(ctx context.Context, filter GenreFilter) ([]*Genre, int, error)

	// Playlist operations
	CreatePlaylist(ctx context.Context, playlist *Playlist) error
	GetPlaylist(ctx context.Context, id uuid.UUID) (*Playlist, error)
	GetPlaylistBySlug(ctx context.Context, slug string) (*Playlist, error)
	UpdatePlaylist(ctx context.Context, playlist *Playlist) error
	DeletePlaylists(ctx context.Context, ids []uuid.UUID) error
	ListPlaylists(ctx context.Context, filter PlaylistFilter) ([]*Playlist, int, error)

	// Playlist membership operations
	AddPlaylistEntry(ctx context.Context, entry *PlaylistEntry) error
	RemovePlaylistEntry(ctx context.Context, playlistID, songID uuid.UUID) error
	ListPlaylistEntries(ctx context.Context, playlistID uuid.UUID) ([]*PlaylistEntry, error)
}

// ArtistFilter defines filtering options for listing artists.
type ArtistFilter struct {
	Search      string
	Verified    *bool
	OwnerUserID *uuid.UUID
	SortBy      string // "name" or "created_at" (default)
	SortOrder   string // "asc" or "desc" (default)
	Page        int
	Limit       int
}

// AlbumFilter defines filtering options for listing albums.
type AlbumFilter struct {
	Search      string
	ArtistID    *uuid.UUID
	IsPublished *bool
	Page        int
	Limit       int
}

// SongFilter defines filtering options for listing songs. Status is the
// effective status constraint; the service layer decides it from the
// actor role before the filter reaches the repository.
type SongFilter struct {
	Search          string
	ArtistID        *uuid.UUID
	AlbumID         *uuid.UUID
	GenreID         *uuid.UUID
	Status          *SongStatus
	ArtistOwnerID   *uuid.UUID // matches songs whose primary artist is owned by this user
	Page            int
	Limit           int
}

// GenreFilter defines filtering options for listing genres.
type GenreFilter struct {
	Search string
	Page   int
	Limit  int
}

// PlaylistFilter defines filtering options for listing playlists.
type PlaylistFilter struct {
	Search      string
	IsPublic    *bool
	OwnerUserID *uuid.UUID
	Page        int
	Limit       int
}

// EventSink defines the interface for publishing catalog events. Sinks
// are best-effort: a failing sink never fails the operation that fired
// the event.
type EventSink interface {
	// SongSubmitted is fired when a song enters the review queue
	SongSubmitted(ctx context.Context, song *Song) error

	// SongApproved is fired when an admin approves a song
	SongApproved(ctx context.Context, song *Song) error

	// SongRejected is fired when an admin rejects a song
	SongRejected(ctx context.Context, song *Song) error

	// PlaylistChanged is fired after playlist membership and aggregates change
	PlaylistChanged(ctx context.Context, playlist *Playlist) error
}
