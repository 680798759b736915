package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/tunehub/tunehub-server/pkg/catalog"
)

// txRepository is the view of the store handed to WithTx callbacks. It
// skips locking (the outer WithTx holds the write lock) so the callback
// reads its own writes without deadlocking.
type txRepository struct {
	s *store
}

// WithTx on an already-transactional view joins the outer unit of work.
func (t *txRepository) WithTx(ctx context.Context, fn func(catalog.Repository) error) error {
	return fn(t)
}

func (t *txRepository) CreateArtist(ctx context.Context, artist *catalog.Artist) error {
	return t.s.createArtist(artist)
}

func (t *txRepository) GetArtist(ctx context.Context, id uuid.UUID) (*catalog.Artist, error) {
	return t.s.getArtist(id)
}

func (t *txRepository) GetArtistBySlug(ctx context.Context, slug string) (*catalog.Artist, error) {
	return t.s.getArtistBySlug(slug)
}

func (t *txRepository) UpdateArtist(ctx context.Context, artist *catalog.Artist) error {
	return t.s.updateArtist(artist)
}

func (t *txRepository) DeleteArtists(ctx context.Context, ids []uuid.UUID) error {
	return t.s.deleteArtists(ids)
}

func (t *txRepository) ListArtists(ctx context.Context, filter catalog.ArtistFilter) ([]*catalog.Artist, int, error) {
	return t.s.listArtists(filter)
}

func (t *txRepository) CreateAlbum(ctx context.Context, album *catalog.Album) error {
	return t.s.createAlbum(album)
}

func (t *txRepository) GetAlbum(ctx context.Context, id uuid.UUID) (*catalog.Album, error) {
	return t.s.getAlbum(id)
}

func (t *txRepository) GetAlbumBySlug(ctx context.Context, slug string) (*catalog.Album, error) {
	return t.s.getAlbumBySlug(slug)
}

func (t *txRepository) UpdateAlbum(ctx context.Context, album *catalog.Album) error {
	return t.s.updateAlbum(album)
}

func (t *txRepository) DeleteAlbums(ctx context.Context, ids []uuid.UUID) error {
	return t.s.deleteAlbums(ids)
}

func (t *txRepository) ListAlbums(ctx context.Context, filter catalog.AlbumFilter) ([]*catalog.Album, int, error) {
	return t.s.listAlbums(filter)
}

func (t *txRepository) CreateSong(ctx context.Context, song *catalog.Song) error {
	return t.s.createSong(song)
}

func (t *txRepository) GetSong(ctx context.Context, id uuid.UUID) (*catalog.Song, error) {
	return t.s.getSong(id)
}

func (t *txRepository) GetSongBySlug(ctx context.Context, slug string) (*catalog.Song, error) {
	return t.s.getSongBySlug(slug)
}

func (t *txRepository) UpdateSong(ctx context.Context, song *catalog.Song) error {
	return t.s.updateSong(song)
}

func (t *txRepository) DeleteSongs(ctx context.Context, ids []uuid.UUID) error {
	return t.s.deleteSongs(ids)
}

func (t *txRepository) ListSongs(ctx context.Context, filter catalog.SongFilter) ([]*catalog.Song, int, error) {
	return t.s.listSongs(filter)
}

func (t *txRepository) CreateGenre(ctx context.Context, genre *catalog.Genre) error {
	return t.s.createGenre(genre)
}

func (t *txRepository) GetGenre(ctx context.Context, id uuid.UUID) (*catalog.Genre, error) {
	return t.s.getGenre(id)
}

func (t *txRepository) GetGenreBySlug(ctx context.Context, slug string) (*catalog.Genre, error) {
	return t.s.getGenreBySlug(slug)
}

func (t *txRepository) UpdateGenre(ctx context.Context, genre *catalog.Genre) error {
	return t.s.updateGenre(genre)
}

func (t *txRepository) DeleteGenres(ctx context.Context, ids []uuid.UUID) error {
	return t.s.deleteGenres(ids)
}

func (t *txRepository) ListGenres(ctx context.Context, filter catalog.GenreFilter) ([]*catalog.Genre, int, error) {
	return t.s.listGenres(filter)
}

func (t *txRepository) CreatePlaylist(ctx context.Context, playlist *catalog.Playlist) error {
	return t.s.createPlaylist(playlist)
}

func (t *txRepository) GetPlaylist(ctx context.Context, id uuid.UUID) (*catalog.Playlist, error) {
	return t.s.getPlaylist(id)
}

func (t *txRepository) GetPlaylistBySlug(ctx context.Context, slug string) (*catalog.Playlist, error) {
	return t.s.getPlaylistBySlug(slug)
}

func (t *txRepository) UpdatePlaylist(ctx context.Context, playlist *catalog.Playlist) error {
	return t.s.updatePlaylist(playlist)
}

func (t *txRepository) DeletePlaylists(ctx context.Context, ids []uuid.UUID) error {
	return t.s.deletePlaylists(ids)
}

func (t *txRepository) ListPlaylists(ctx context.Context, filter catalog.PlaylistFilter) ([]*catalog.Playlist, int, error) {
	return t.s.listPlaylists(filter)
}

func (t *txRepository) AddPlaylistEntry(ctx context.Context, entry *catalog.PlaylistEntry) error {
	return t.s.addPlaylistEntry(entry)
}

func (t *txRepository) RemovePlaylistEntry(ctx context.Context, playlistID, songID uuid.UUID) error {
	return t.s.removePlaylistEntry(playlistID, songID)
}

func (t *txRepository) ListPlaylistEntries(ctx context.Context, playlistID uuid.UUID) ([]*catalog.PlaylistEntry, error) {
	return t.s.listPlaylistEntries(playlistID)
}
