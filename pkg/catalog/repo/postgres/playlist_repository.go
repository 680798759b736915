package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tunehub/tunehub-server/pkg/catalog"
)

// Genre operations

const genreColumns = `id, name, slug, description, created_at, updated_at`

func (r *Repository) CreateGenre(ctx context.Context, genre *catalog.Genre) error {
	query := `
		INSERT INTO genres (id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		genre.ID, genre.Name, genre.Slug, genre.Description, genre.CreatedAt, genre.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create genre", err)
	}
	return nil
}

func (r *Repository) scanGenre(row pgx.Row) (*catalog.Genre, error) {
	var genre catalog.Genre
	err := row.Scan(&genre.ID, &genre.Name, &genre.Slug, &genre.Description, &genre.CreatedAt, &genre.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrGenreNotFound
		}
		return nil, err
	}
	return &genre, nil
}

func (r *Repository) GetGenre(ctx context.Context, id uuid.UUID) (*catalog.Genre, error) {
	return r.scanGenre(r.db.QueryRow(ctx, `SELECT `+genreColumns+` FROM genres WHERE id = $1`, id))
}

func (r *Repository) GetGenreBySlug(ctx context.Context, slug string) (*catalog.Genre, error) {
	return r.scanGenre(r.db.QueryRow(ctx, `SELECT `+genreColumns+` FROM genres WHERE slug = $1`, slug))
}

func (r *Repository) UpdateGenre(ctx context.Context, genre *catalog.Genre) error {
	query := `UPDATE genres SET name = $2, slug = $3, description = $4, updated_at = $5 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, genre.ID, genre.Name, genre.Slug, genre.Description, genre.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update genre", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrGenreNotFound
	}
	return nil
}

func (r *Repository) DeleteGenres(ctx context.Context, ids []uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM genres WHERE id = ANY($1)`, ids)
	if err != nil {
		return r.handlePostgresError("delete genres", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return catalog.ErrGenreNotFound
	}
	return nil
}

func (r *Repository) ListGenres(ctx context.Context, filter catalog.GenreFilter) ([]*catalog.Genre, int, error) {
	where, args := buildWhere(func(w *whereBuilder) {
		if filter.Search != "" {
			w.add("(name ILIKE %s OR description ILIKE %s)", like(filter.Search), like(filter.Search))
		}
	})

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM genres`+where, args...).Scan(&total); err != nil {
		return nil, 0, r.handlePostgresError("count genres", err)
	}

	query := `SELECT ` + genreColumns + ` FROM genres` + where +
		` ORDER BY name ASC` + limitOffset(len(args), filter.Page, filter.Limit)
	args = appendPaging(args, filter.Page, filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, r.handlePostgresError("list genres", err)
	}
	defer rows.Close()

	var genres []*catalog.Genre
	for rows.Next() {
		genre, err := r.scanGenre(rows)
		if err != nil {
			return nil, 0, err
		}
		genres = append(genres, genre)
	}
	return genres, total, rows.Err()
}

// Playlist operations

const playlistColumns = `id, owner_user_id, name, slug, description, cover_url, is_public,
	total_tracks, duration_ms, created_at, updated_at`

func (r *Repository) CreatePlaylist(ctx context.Context, playlist *catalog.Playlist) error {
	query := `
		INSERT INTO playlists (id, owner_user_id, name, slug, description, cover_url, is_public,
			total_tracks, duration_ms, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		playlist.ID, playlist.OwnerUserID, playlist.Name, playlist.Slug, playlist.Description,
		playlist.CoverURL, playlist.IsPublic, playlist.TotalTracks, playlist.DurationMs,
		playlist.CreatedAt, playlist.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create playlist", err)
	}
	return nil
}

func (r *Repository) scanPlaylist(row pgx.Row) (*catalog.Playlist, error) {
	var playlist catalog.Playlist
	err := row.Scan(&playlist.ID, &playlist.OwnerUserID, &playlist.Name, &playlist.Slug,
		&playlist.Description, &playlist.CoverURL, &playlist.IsPublic,
		&playlist.TotalTracks, &playlist.DurationMs, &playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrPlaylistNotFound
		}
		return nil, err
	}
	return &playlist, nil
}

func (r *Repository) GetPlaylist(ctx context.Context, id uuid.UUID) (*catalog.Playlist, error) {
	return r.scanPlaylist(r.db.QueryRow(ctx, `SELECT `+playlistColumns+` FROM playlists WHERE id = $1`, id))
}

func (r *Repository) GetPlaylistBySlug(ctx context.Context, slug string) (*catalog.Playlist, error) {
	return r.scanPlaylist(r.db.QueryRow(ctx, `SELECT `+playlistColumns+` FROM playlists WHERE slug = $1`, slug))
}

func (r *Repository) UpdatePlaylist(ctx context.Context, playlist *catalog.Playlist) error {
	query := `
		UPDATE playlists SET
			name = $2, slug = $3, description = $4, cover_url = $5, is_public = $6,
			total_tracks = $7, duration_ms = $8, updated_at = $9
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		playlist.ID, playlist.Name, playlist.Slug, playlist.Description, playlist.CoverURL,
		playlist.IsPublic, playlist.TotalTracks, playlist.DurationMs, playlist.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update playlist", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrPlaylistNotFound
	}
	return nil
}

func (r *Repository) DeletePlaylists(ctx context.Context, ids []uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM playlists WHERE id = ANY($1)`, ids)
	if err != nil {
		return r.handlePostgresError("delete playlists", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return catalog.ErrPlaylistNotFound
	}
	return nil
}

func (r *Repository) ListPlaylists(ctx context.Context, filter catalog.PlaylistFilter) ([]*catalog.Playlist, int, error) {
	where, args := buildWhere(func(w *whereBuilder) {
		if filter.IsPublic != nil {
			w.add("is_public = %s", *filter.IsPublic)
		}
		if filter.OwnerUserID != nil {
			w.add("owner_user_id = %s", *filter.OwnerUserID)
		}
		if filter.Search != "" {
			w.add("(name ILIKE %s OR description ILIKE %s)", like(filter.Search), like(filter.Search))
		}
	})

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM playlists`+where, args...).Scan(&total); err != nil {
		return nil, 0, r.handlePostgresError("count playlists", err)
	}

	query := `SELECT ` + playlistColumns + ` FROM playlists` + where +
		` ORDER BY created_at DESC` + limitOffset(len(args), filter.Page, filter.Limit)
	args = appendPaging(args, filter.Page, filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, r.handlePostgresError("list playlists", err)
	}
	defer rows.Close()

	var playlists []*catalog.Playlist
	for rows.Next() {
		playlist, err := r.scanPlaylist(rows)
		if err != nil {
			return nil, 0, err
		}
		playlists = append(playlists, playlist)
	}
	return playlists, total, rows.Err()
}

// Playlist membership operations

func (r *Repository) AddPlaylistEntry(ctx context.Context, entry *catalog.PlaylistEntry) error {
	query := `
		INSERT INTO playlist_entries (playlist_id, song_id, position, added_at, added_by)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		entry.PlaylistID, entry.SongID, entry.Position, entry.AddedAt, entry.AddedBy)
	if err != nil {
		return r.handlePostgresError("add playlist entry", err)
	}
	return nil
}

func (r *Repository) RemovePlaylistEntry(ctx context.Context, playlistID, songID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM playlist_entries WHERE playlist_id = $1 AND song_id = $2`, playlistID, songID)
	if err != nil {
		return r.handlePostgresError("remove playlist entry", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrSongNotInPlaylist
	}
	return nil
}

func (r *Repository) ListPlaylistEntries(ctx context.Context, playlistID uuid.UUID) ([]*catalog.PlaylistEntry, error) {
	query := `
		SELECT playlist_id, song_id, position, added_at, added_by
		FROM playlist_entries WHERE playlist_id = $1 ORDER BY position ASC`

	rows, err := r.db.Query(ctx, query, playlistID)
	if err != nil {
		return nil, r.handlePostgresError("list playlist entries", err)
	}
	defer rows.Close()

	var entries []*catalog.PlaylistEntry
	for rows.Next() {
		var entry catalog.PlaylistEntry
		if err := rows.Scan(&entry.PlaylistID, &entry.SongID, &entry.Position, &entry.AddedAt, &entry.AddedBy); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
