package catalog

import (
	"time"

	"github.com/google/uuid"
)

// CreateArtistRequest contains parameters for creating an artist profile.
// Slug is optional; when supplied it must be free or the create fails
// with ErrSlugExists.
type CreateArtistRequest struct {
	Name        string
	Slug        string
	Bio         string
	AvatarURL   string
	OwnerUserID *uuid.UUID
	Verified    bool
}

// UpdateArtistRequest contains parameters for updating an artist
// profile. Nil fields are left unchanged.
type UpdateArtistRequest struct {
	Name        *string
	Slug        *string
	Bio         *string
	AvatarURL   *string
	OwnerUserID *uuid.UUID
	Verified    *bool
}

// CreateAlbumRequest contains parameters for creating an album.
type CreateAlbumRequest struct {
	ArtistID    uuid.UUID
	Title       string
	Slug        string
	Description string
	CoverURL    string
	ReleaseDate *time.Time
	IsPublished bool
}

// UpdateAlbumRequest contains parameters for updating an album. Nil
// fields are left unchanged.
type UpdateAlbumRequest struct {
	Title       *string
	Slug        *string
	Description *string
	CoverURL    *string
	ReleaseDate *time.Time
	IsPublished *bool
}

// CreateSongRequest contains parameters for creating a song.
type CreateSongRequest struct {
	Title             string
	PrimaryArtistID   uuid.UUID
	AlbumID           *uuid.UUID
	FeaturedArtistIDs []uuid.UUID
	GenreIDs          []uuid.UUID
	DurationMs        int64
	AudioURL          string
	CoverURL          string
	IsExplicit        bool
}

// UpdateSongRequest contains parameters for updating a song. Nil fields
// are left unchanged; a non-nil FeaturedArtistIDs replaces the whole set.
type UpdateSongRequest struct {
	Title             *string
	PrimaryArtistID   *uuid.UUID
	AlbumID           *uuid.UUID
	FeaturedArtistIDs *[]uuid.UUID
	GenreIDs          *[]uuid.UUID
	DurationMs        *int64
	AudioURL          *string
	CoverURL          *string
	IsExplicit        *bool
}

// CreateGenreRequest contains parameters for creating a genre.
type CreateGenreRequest struct {
	Name        string
	Slug        string
	Description string
}

// UpdateGenreRequest contains parameters for updating a genre. Nil
// fields are left unchanged.
type UpdateGenreRequest struct {
	Name        *string
	Slug        *string
	Description *string
}

// CreatePlaylistRequest contains parameters for creating a playlist.
type CreatePlaylistRequest struct {
	Name        string
	Description string
	CoverURL    string
	IsPublic    bool
}

// UpdatePlaylistRequest contains parameters for updating a playlist.
// Nil fields are left unchanged. Aggregates cannot be set directly.
type UpdatePlaylistRequest struct {
	Name        *string
	Description *string
	CoverURL    *string
	IsPublic    *bool
}

// ListSongsRequest contains parameters for the general song listing.
// Status is a requested filter; the effective filter additionally
// depends on the actor's role.
type ListSongsRequest struct {
	Search   string
	ArtistID *uuid.UUID
	AlbumID  *uuid.UUID
	GenreID  *uuid.UUID
	Status   *SongStatus
	Page     int
	Limit    int
}

// ListArtistsRequest contains parameters for listing artists.
type ListArtistsRequest struct {
	Search    string
	Verified  *bool
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// ListAlbumsRequest contains parameters for listing albums.
type ListAlbumsRequest struct {
	Search      string
	ArtistID    *uuid.UUID
	IsPublished *bool
	Page        int
	Limit       int
}

// ListGenresRequest contains parameters for listing genres.
type ListGenresRequest struct {
	Search string
	Page   int
	Limit  int
}

// ListPlaylistsRequest contains parameters for listing public playlists.
type ListPlaylistsRequest struct {
	Search string
	Page   int
	Limit  int
}
