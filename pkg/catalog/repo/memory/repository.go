package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tunehub/tunehub-server/pkg/catalog"
)

// Repository implements catalog.Repository using in-memory storage. It
// is safe for concurrent use; WithTx takes the write lock for the whole
// unit of work and restores a snapshot when the callback fails, so a
// failed transaction leaves no partial state behind.
type Repository struct {
	mu sync.RWMutex
	s  *store
}

type store struct {
	artists   map[uuid.UUID]*catalog.Artist
	albums    map[uuid.UUID]*catalog.Album
	songs     map[uuid.UUID]*catalog.Song
	genres    map[uuid.UUID]*catalog.Genre
	playlists map[uuid.UUID]*catalog.Playlist
	entries   map[uuid.UUID][]*catalog.PlaylistEntry // playlist_id -> entries in insertion order
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{s: newStore()}
}

func newStore() *store {
	return &store{
		artists:   make(map[uuid.UUID]*catalog.Artist),
		albums:    make(map[uuid.UUID]*catalog.Album),
		songs:     make(map[uuid.UUID]*catalog.Song),
		genres:    make(map[uuid.UUID]*catalog.Genre),
		playlists: make(map[uuid.UUID]*catalog.Playlist),
		entries:   make(map[uuid.UUID][]*catalog.PlaylistEntry),
	}
}

func (st *store) clone() *store {
	c := newStore()
	for id, a := range st.artists {
		cp := *a
		c.artists[id] = &cp
	}
	for id, a := range st.albums {
		cp := *a
		c.albums[id] = &cp
	}
	for id, s := range st.songs {
		cp := *s
		c.songs[id] = &cp
	}
	for id, g := range st.genres {
		cp := *g
		c.genres[id] = &cp
	}
	for id, p := range st.playlists {
		cp := *p
		c.playlists[id] = &cp
	}
	for id, list := range st.entries {
		entries := make([]*catalog.PlaylistEntry, len(list))
		for i, e := range list {
			cp := *e
			entries[i] = &cp
		}
		c.entries[id] = entries
	}
	return c
}

// WithTx runs fn against an unlocked view of the same store while
// holding the write lock, giving the callback read-your-writes and the
// caller all-or-nothing semantics.
func (r *Repository) WithTx(ctx context.Context, fn func(catalog.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.s.clone()
	if err := fn(&txRepository{s: r.s}); err != nil {
		r.s = snapshot
		return err
	}
	return nil
}

// Artist operations

func (r *Repository) CreateArtist(ctx context.Context, artist *catalog.Artist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.createArtist(artist)
}

func (r *Repository) GetArtist(ctx context.Context, id uuid.UUID) (*catalog.Artist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.getArtist(id)
}

func (r *Repository) GetArtistBySlug(ctx context.Context, slug string) (*catalog.Artist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.getArtistBySlug(slug)
}

func (r *Repository) UpdateArtist(ctx context.Context, artist *catalog.Artist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.updateArtist(artist)
}

func (r *Repository) DeleteArtists(ctx context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.deleteArtists(ids)
}

func (r *Repository) ListArtists(ctx context.Context, filter catalog.ArtistFilter) ([]*catalog.Artist, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.listArtists(filter)
}

// Album operations

func (r *Repository) CreateAlbum(ctx context.Context, album *catalog.Album) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.createAlbum(album)
}

func (r *Repository) GetAlbum(ctx context.Context, id uuid.UUID) (*catalog.Album, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.getAlbum(id)
}

func (r *Repository) GetAlbumBySlug(ctx context.Context, slug string) (*catalog.Album, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.getAlbumBySlug(slug)
}

func (r *Repository) UpdateAlbum(ctx context.Context, album *catalog.Album) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.updateAlbum(album)
}

func (r *Repository) DeleteAlbums(ctx context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.deleteAlbums(ids)
}

func (r *Repository) ListAlbums(ctx context.Context, filter catalog.AlbumFilter) ([]*catalog.Album, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.listAlbums(filter)
}

// Song operations

func (r *Repository) CreateSong(ctx context.Context, song *catalog.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.createSong(song)
}

func (r *Repository) GetSong(ctx context.Context, id uuid.UUID) (*catalog.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.getSong(id)
}

func (r *Repository) GetSongBySlug(ctx context.Context, slug string) (*catalog.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.getSongBySlug(slug)
}

func (r *Repository) UpdateSong(ctx context.Context, song *catalog.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.updateSong(song)
}

func (r *Repository) DeleteSongs(ctx context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.deleteSongs(ids)
}

func (r *Repository) ListSongs(ctx context.Context, filter catalog.SongFilter) ([]*catalog.Song, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.listSongs(filter)
}

// Genre operations

func (r *Repository) CreateGenre(ctx context.Context, genre *catalog.Genre) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.createGenre(genre)
}

func (r *Repository) GetGenre(ctx context.Context, id uuid.UUID) (*catalog.Genre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.getGenre(id)
}

func (r *Repository) GetGenreBySlug(ctx context.Context, slug string) (*catalog.Genre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.getGenreBySlug(slug)
}

func (r *Repository) UpdateGenre(ctx context.Context, genre *catalog.Genre) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.updateGenre(genre)
}

func (r *Repository) DeleteGenres(ctx context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.deleteGenres(ids)
}

func (r *Repository) ListGenres(ctx context.Context, filter catalog.GenreFilter) ([]*catalog.Genre, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.listGenres(filter)
}

// Playlist operations

func (r *Repository) CreatePlaylist(ctx context.Context, playlist *catalog.Playlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.createPlaylist(playlist)
}

func (r *Repository) GetPlaylist(ctx context.Context, id uuid.UUID) (*catalog.Playlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.getPlaylist(id)
}

func (r *Repository) GetPlaylistBySlug(ctx context.Context, slug string) (*catalog.Playlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.getPlaylistBySlug(slug)
}

func (r *Repository) UpdatePlaylist(ctx context.Context, playlist *catalog.Playlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.updatePlaylist(playlist)
}

func (r *Repository) DeletePlaylists(ctx context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.deletePlaylists(ids)
}

func (r *Repository) ListPlaylists(ctx context.Context, filter catalog.PlaylistFilter) ([]*catalog.Playlist, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.listPlaylists(filter)
}

// Playlist membership operations

func (r *Repository) AddPlaylistEntry(ctx context.Context, entry *catalog.PlaylistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.addPlaylistEntry(entry)
}

func (r *Repository) RemovePlaylistEntry(ctx context.Context, playlistID, songID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s.removePlaylistEntry(playlistID, songID)
}

func (r *Repository) ListPlaylistEntries(ctx context.Context, playlistID uuid.UUID) ([]*catalog.PlaylistEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.listPlaylistEntries(playlistID)
}

// store operations (lockless; callers hold the repository lock)

func (st *store) createArtist(artist *catalog.Artist) error {
	cp := *artist
	st.artists[artist.ID] = &cp
	return nil
}

func (st *store) getArtist(id uuid.UUID) (*catalog.Artist, error) {
	artist, ok := st.artists[id]
	if !ok {
		return nil, catalog.ErrArtistNotFound
	}
	cp := *artist
	return &cp, nil
}

func (st *store) getArtistBySlug(slug string) (*catalog.Artist, error) {
	for _, artist := range st.artists {
		if artist.Slug == slug {
			cp := *artist
			return &cp, nil
		}
	}
	return nil, catalog.ErrArtistNotFound
}

func (st *store) updateArtist(artist *catalog.Artist) error {
	if _, ok := st.artists[artist.ID]; !ok {
		return catalog.ErrArtistNotFound
	}
	cp := *artist
	st.artists[artist.ID] = &cp
	return nil
}

func (st *store) deleteArtists(ids []uuid.UUID) error {
	for _, id := range ids {
		if _, ok := st.artists[id]; !ok {
			return catalog.ErrArtistNotFound
		}
	}
	for _, id := range ids {
		delete(st.artists, id)
	}
	return nil
}

func (st *store) listArtists(filter catalog.ArtistFilter) ([]*catalog.Artist, int, error) {
	var result []*catalog.Artist
	for _, artist := range st.artists {
		if filter.Verified != nil && artist.Verified != *filter.Verified {
			continue
		}
		if filter.OwnerUserID != nil {
			if artist.OwnerUserID == nil || *artist.OwnerUserID != *filter.OwnerUserID {
				continue
			}
		}
		if filter.Search != "" && !containsFold(artist.Name, filter.Search) && !containsFold(artist.Bio, filter.Search) {
			continue
		}
		cp := *artist
		result = append(result, &cp)
	}

	asc := filter.SortOrder == "asc"
	sort.Slice(result, func(i, j int) bool {
		var less bool
		if filter.SortBy == "name" {
			less = result[i].Name < result[j].Name
		} else {
			less = result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := len(result)
	return paginate(result, filter.Page, filter.Limit), total, nil
}

func (st *store) createAlbum(album *catalog.Album) error {
	cp := *album
	st.albums[album.ID] = &cp
	return nil
}

func (st *store) getAlbum(id uuid.UUID) (*catalog.Album, error) {
	album, ok := st.albums[id]
	if !ok {
		return nil, catalog.ErrAlbumNotFound
	}
	cp := *album
	return &cp, nil
}

func (st *store) getAlbumBySlug(slug string) (*catalog.Album, error) {
	for _, album := range st.albums {
		if album.Slug == slug {
			cp := *album
			return &cp, nil
		}
	}
	return nil, catalog.ErrAlbumNotFound
}

func (st *store) updateAlbum(album *catalog.Album) error {
	if _, ok := st.albums[album.ID]; !ok {
		return catalog.ErrAlbumNotFound
	}
	cp := *album
	st.albums[album.ID] = &cp
	return nil
}

func (st *store) deleteAlbums(ids []uuid.UUID) error {
	for _, id := range ids {
		if _, ok := st.albums[id]; !ok {
			return catalog.ErrAlbumNotFound
		}
	}
	for _, id := range ids {
		delete(st.albums, id)
	}
	return nil
}

func (st *store) listAlbums(filter catalog.AlbumFilter) ([]*catalog.Album, int, error) {
	var result []*catalog.Album
	for _, album := range st.albums {
		if filter.ArtistID != nil && album.ArtistID != *filter.ArtistID {
			continue
		}
		if filter.IsPublished != nil && album.IsPublished != *filter.IsPublished {
			continue
		}
		if filter.Search != "" && !containsFold(album.Title, filter.Search) && !containsFold(album.Description, filter.Search) {
			continue
		}
		cp := *album
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	total := len(result)
	return paginate(result, filter.Page, filter.Limit), total, nil
}

func (st *store) createSong(song *catalog.Song) error {
	cp := *song
	cp.FeaturedArtistIDs = append([]uuid.UUID(nil), song.FeaturedArtistIDs...)
	cp.GenreIDs = append([]uuid.UUID(nil), song.GenreIDs...)
	st.songs[song.ID] = &cp
	return nil
}

func (st *store) getSong(id uuid.UUID) (*catalog.Song, error) {
	song, ok := st.songs[id]
	if !ok {
		return nil, catalog.ErrSongNotFound
	}
	return copySong(song), nil
}

func (st *store) getSongBySlug(slug string) (*catalog.Song, error) {
	for _, song := range st.songs {
		if song.Slug == slug {
			return copySong(song), nil
		}
	}
	return nil, catalog.ErrSongNotFound
}

func (st *store) updateSong(song *catalog.Song) error {
	if _, ok := st.songs[song.ID]; !ok {
		return catalog.ErrSongNotFound
	}
	st.songs[song.ID] = copySong(song)
	return nil
}

func (st *store) deleteSongs(ids []uuid.UUID) error {
	for _, id := range ids {
		if _, ok := st.songs[id]; !ok {
			return catalog.ErrSongNotFound
		}
	}
	for _, id := range ids {
		delete(st.songs, id)
		for playlistID, entries := range st.entries {
			kept := entries[:0]
			for _, e := range entries {
				if e.SongID != id {
					kept = append(kept, e)
				}
			}
			st.entries[playlistID] = kept
		}
	}
	return nil
}

func (st *store) listSongs(filter catalog.SongFilter) ([]*catalog.Song, int, error) {
	var result []*catalog.Song
	for _, song := range st.songs {
		if filter.ArtistID != nil && song.PrimaryArtistID != *filter.ArtistID {
			continue
		}
		if filter.AlbumID != nil && (song.AlbumID == nil || *song.AlbumID != *filter.AlbumID) {
			continue
		}
		if filter.GenreID != nil && !containsID(song.GenreIDs, *filter.GenreID) {
			continue
		}
		if filter.Status != nil && song.Status != *filter.Status {
			continue
		}
		if filter.ArtistOwnerID != nil {
			artist, ok := st.artists[song.PrimaryArtistID]
			if !ok || artist.OwnerUserID == nil || *artist.OwnerUserID != *filter.ArtistOwnerID {
				continue
			}
		}
		if filter.Search != "" && !containsFold(song.Title, filter.Search) {
			continue
		}
		result = append(result, copySong(song))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	total := len(result)
	return paginate(result, filter.Page, filter.Limit), total, nil
}

func (st *store) createGenre(genre *catalog.Genre) error {
	cp := *genre
	st.genres[genre.ID] = &cp
	return nil
}

func (st *store) getGenre(id uuid.UUID) (*catalog.Genre, error) {
	genre, ok := st.genres[id]
	if !ok {
		return nil, catalog.ErrGenreNotFound
	}
	cp := *genre
	return &cp, nil
}

func (st *store) getGenreBySlug(slug string) (*catalog.Genre, error) {
	for _, genre := range st.genres {
		if genre.Slug == slug {
			cp := *genre
			return &cp, nil
		}
	}
	return nil, catalog.ErrGenreNotFound
}

func (st *store) updateGenre(genre *catalog.Genre) error {
	if _, ok := st.genres[genre.ID]; !ok {
		return catalog.ErrGenreNotFound
	}
	cp := *genre
	st.genres[genre.ID] = &cp
	return nil
}

func (st *store) deleteGenres(ids []uuid.UUID) error {
	for _, id := range ids {
		if _, ok := st.genres[id]; !ok {
			return catalog.ErrGenreNotFound
		}
	}
	for _, id := range ids {
		delete(st.genres, id)
	}
	return nil
}

func (st *store) listGenres(filter catalog.GenreFilter) ([]*catalog.Genre, int, error) {
	var result []*catalog.Genre
	for _, genre := range st.genres {
		if filter.Search != "" && !containsFold(genre.Name, filter.Search) && !containsFold(genre.Description, filter.Search) {
			continue
		}
		cp := *genre
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	total := len(result)
	return paginate(result, filter.Page, filter.Limit), total, nil
}

func (st *store) createPlaylist(playlist *catalog.Playlist) error {
	cp := *playlist
	st.playlists[playlist.ID] = &cp
	return nil
}

func (st *store) getPlaylist(id uuid.UUID) (*catalog.Playlist, error) {
	playlist, ok := st.playlists[id]
	if !ok {
		return nil, catalog.ErrPlaylistNotFound
	}
	cp := *playlist
	return &cp, nil
}

func (st *store) getPlaylistBySlug(slug string) (*catalog.Playlist, error) {
	for _, playlist := range st.playlists {
		if playlist.Slug == slug {
			cp := *playlist
			return &cp, nil
		}
	}
	return nil, catalog.ErrPlaylistNotFound
}

func (st *store) updatePlaylist(playlist *catalog.Playlist) error {
	if _, ok := st.playlists[playlist.ID]; !ok {
		return catalog.ErrPlaylistNotFound
	}
	cp := *playlist
	st.playlists[playlist.ID] = &cp
	return nil
}

func (st *store) deletePlaylists(ids []uuid.UUID) error {
	for _, id := range ids {
		if _, ok := st.playlists[id]; !ok {
			return catalog.ErrPlaylistNotFound
		}
	}
	for _, id := range ids {
		delete(st.playlists, id)
		delete(st.entries, id)
	}
	return nil
}

func (st *store) listPlaylists(filter catalog.PlaylistFilter) ([]*catalog.Playlist, int, error) {
	var result []*catalog.Playlist
	for _, playlist := range st.playlists {
		if filter.IsPublic != nil && playlist.IsPublic != *filter.IsPublic {
			continue
		}
		if filter.OwnerUserID != nil && playlist.OwnerUserID != *filter.OwnerUserID {
			continue
		}
		if filter.Search != "" && !containsFold(playlist.Name, filter.Search) && !containsFold(playlist.Description, filter.Search) {
			continue
		}
		cp := *playlist
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	total := len(result)
	return paginate(result, filter.Page, filter.Limit), total, nil
}

func (st *store) addPlaylistEntry(entry *catalog.PlaylistEntry) error {
	if _, ok := st.playlists[entry.PlaylistID]; !ok {
		return catalog.ErrPlaylistNotFound
	}
	cp := *entry
	st.entries[entry.PlaylistID] = append(st.entries[entry.PlaylistID], &cp)
	return nil
}

func (st *store) removePlaylistEntry(playlistID, songID uuid.UUID) error {
	entries := st.entries[playlistID]
	for i, e := range entries {
		if e.SongID == songID {
			st.entries[playlistID] = append(entries[:i:i], entries[i+1:]...)
			return nil
		}
	}
	return catalog.ErrSongNotInPlaylist
}

func (st *store) listPlaylistEntries(playlistID uuid.UUID) ([]*catalog.PlaylistEntry, error) {
	entries := st.entries[playlistID]
	result := make([]*catalog.PlaylistEntry, len(entries))
	for i, e := range entries {
		cp := *e
		result[i] = &cp
	}
	return result, nil
}

// helpers

func copySong(song *catalog.Song) *catalog.Song {
	cp := *song
	cp.FeaturedArtistIDs = append([]uuid.UUID(nil), song.FeaturedArtistIDs...)
	cp.GenreIDs = append([]uuid.UUID(nil), song.GenreIDs...)
	return &cp
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return items
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
