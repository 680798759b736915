package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the catalog engine: the song
// lifecycle, ownership-checked mutations, slug allocation, and playlist
// membership with derived aggregates.
type Service interface {
	// Artist operations
	CreateArtist(ctx context.Context, req CreateArtistRequest, actor Actor) (*Artist, error)
	GetArtist(ctx context.Context, id uuid.UUID) (*Artist, error)
	UpdateArtist(ctx context.Context, id uuid.UUID, req UpdateArtistRequest, actor Actor) (*Artist, error)
	DeleteArtist(ctx context.Context, id uuid.UUID, actor Actor) error
	ListArtists(ctx context.Context, req ListArtistsRequest) (Page[*Artist], error)

	// Album operations
	CreateAlbum(ctx context.Context, req CreateAlbumRequest, actor Actor) (*Album, error)
	GetAlbum(ctx context.Context, id uuid.UUID) (*Album, error)
	UpdateAlbum(ctx context.Context, id uuid.UUID, req UpdateAlbumRequest, actor Actor) (*Album, error)
	DeleteAlbum(ctx context.Context, id uuid.UUID, actor Actor) error
	ListAlbums(ctx context.Context, req ListAlbumsRequest) (Page[*Album], error)

	// Song lifecycle operations
	CreateSong(ctx context.Context, req CreateSongRequest, actor Actor) (*Song, error)
	GetSong(ctx context.Context, id uuid.UUID) (*Song, error)
	UpdateSong(ctx context.Context, id uuid.UUID, req UpdateSongRequest, actor Actor) (*Song, error)
	DeleteSong(ctx context.Context, id uuid.UUID, actor Actor) error
	ApproveSong(ctx context.Context, id uuid.UUID, actor Actor) (*Song, error)
	RejectSong(ctx context.Context, id uuid.UUID, reason string, actor Actor) (*Song, error)
	ListSongs(ctx context.Context, req ListSongsRequest, actor Actor) (Page[*Song], error)
	ListMySongs(ctx context.Context, actor Actor, page, limit int) (Page[*Song], error)
	ListPendingSongs(ctx context.Context, actor Actor, page, limit int) (Page[*Song], error)

	// Genre operations
	CreateGenre(ctx context.Context, req CreateGenreRequest, actor Actor) (*Genre, error)
	GetGenre(ctx context.Context, id uuid.UUID) (*Genre, error)
	UpdateGenre(ctx context.Context, id uuid.UUID, req UpdateGenreRequest, actor Actor) (*Genre, error)
	DeleteGenre(ctx context.Context, id uuid.UUID, actor Actor) error
	ListGenres(ctx context.Context, req ListGenresRequest) (Page[*Genre], error)

	// Playlist operations
	CreatePlaylist(ctx context.Context, req CreatePlaylistRequest, actor Actor) (*Playlist, error)
	GetPlaylist(ctx context.Context, id uuid.UUID, actor Actor) (*Playlist, error)
	UpdatePlaylist(ctx context.Context, id uuid.UUID, req UpdatePlaylistRequest, actor Actor) (*Playlist, error)
	DeletePlaylist(ctx context.Context, id uuid.UUID, actor Actor) error
	ListPlaylists(ctx context.Context, req ListPlaylistsRequest) (Page[*Playlist], error)
	AddSongsToPlaylist(ctx context.Context, playlistID uuid.UUID, songIDs []uuid.UUID, actor Actor) (*Playlist, error)
	RemoveSongFromPlaylist(ctx context.Context, playlistID, songID uuid.UUID, actor Actor) (*Playlist, error)
	ListPlaylistEntries(ctx context.Context, playlistID uuid.UUID, actor Actor) ([]*PlaylistEntry, error)

	// Bulk operations
	DeleteMany(ctx context.Context, kind Kind, ids []uuid.UUID, actor Actor) error
}
