package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tunehub/tunehub-server/pkg/catalog"
)

// Song operations. Featured artists and genres live in join tables
// (song_artists with role 'featured', song_genres) and are loaded
// alongside the song row.

const songColumns = `id, primary_artist_id, album_id, title, slug, duration_ms, audio_url, cover_url,
	is_explicit, status, rejection_reason, reviewed_at, reviewed_by, created_at, updated_at`

func (r *Repository) CreateSong(ctx context.Context, song *catalog.Song) error {
	query := `
		INSERT INTO songs (id, primary_artist_id, album_id, title, slug, duration_ms, audio_url, cover_url,
			is_explicit, status, rejection_reason, reviewed_at, reviewed_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.Exec(ctx, query,
		song.ID, song.PrimaryArtistID, song.AlbumID, song.Title, song.Slug,
		song.DurationMs, song.AudioURL, song.CoverURL, song.IsExplicit,
		song.Status, song.RejectionReason, song.ReviewedAt, song.ReviewedBy,
		song.CreatedAt, song.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create song", err)
	}

	if err := r.replaceSongArtists(ctx, song.ID, song.FeaturedArtistIDs); err != nil {
		return err
	}
	return r.replaceSongGenres(ctx, song.ID, song.GenreIDs)
}

func (r *Repository) scanSong(row pgx.Row) (*catalog.Song, error) {
	var song catalog.Song
	err := row.Scan(&song.ID, &song.PrimaryArtistID, &song.AlbumID, &song.Title, &song.Slug,
		&song.DurationMs, &song.AudioURL, &song.CoverURL, &song.IsExplicit,
		&song.Status, &song.RejectionReason, &song.ReviewedAt, &song.ReviewedBy,
		&song.CreatedAt, &song.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrSongNotFound
		}
		return nil, err
	}
	return &song, nil
}

func (r *Repository) GetSong(ctx context.Context, id uuid.UUID) (*catalog.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = $1`
	song, err := r.scanSong(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadSongRelations(ctx, song); err != nil {
		return nil, err
	}
	return song, nil
}

func (r *Repository) GetSongBySlug(ctx context.Context, slug string) (*catalog.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE slug = $1`
	song, err := r.scanSong(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, err
	}
	if err := r.loadSongRelations(ctx, song); err != nil {
		return nil, err
	}
	return song, nil
}

func (r *Repository) UpdateSong(ctx context.Context, song *catalog.Song) error {
	query := `
		UPDATE songs SET
			primary_artist_id = $2, album_id = $3, title = $4, slug = $5, duration_ms = $6,
			audio_url = $7, cover_url = $8, is_explicit = $9, status = $10,
			rejection_reason = $11, reviewed_at = $12, reviewed_by = $13, updated_at = $14
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		song.ID, song.PrimaryArtistID, song.AlbumID, song.Title, song.Slug,
		song.DurationMs, song.AudioURL, song.CoverURL, song.IsExplicit,
		song.Status, song.RejectionReason, song.ReviewedAt, song.ReviewedBy, song.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update song", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrSongNotFound
	}

	if err := r.replaceSongArtists(ctx, song.ID, song.FeaturedArtistIDs); err != nil {
		return err
	}
	return r.replaceSongGenres(ctx, song.ID, song.GenreIDs)
}

func (r *Repository) DeleteSongs(ctx context.Context, ids []uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM songs WHERE id = ANY($1)`, ids)
	if err != nil {
		return r.handlePostgresError("delete songs", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return catalog.ErrSongNotFound
	}
	return nil
}

func (r *Repository) ListSongs(ctx context.Context, filter catalog.SongFilter) ([]*catalog.Song, int, error) {
	where, args := buildWhere(func(w *whereBuilder) {
		if filter.ArtistID != nil {
			w.add("s.primary_artist_id = %s", *filter.ArtistID)
		}
		if filter.AlbumID != nil {
			w.add("s.album_id = %s", *filter.AlbumID)
		}
		if filter.GenreID != nil {
			w.add("EXISTS (SELECT 1 FROM song_genres sg WHERE sg.song_id = s.id AND sg.genre_id = %s)", *filter.GenreID)
		}
		if filter.Status != nil {
			w.add("s.status = %s", string(*filter.Status))
		}
		if filter.ArtistOwnerID != nil {
			w.add("EXISTS (SELECT 1 FROM artists a WHERE a.id = s.primary_artist_id AND a.owner_user_id = %s)", *filter.ArtistOwnerID)
		}
		if filter.Search != "" {
			w.add("s.title ILIKE %s", like(filter.Search))
		}
	})

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM songs s`+where, args...).Scan(&total); err != nil {
		return nil, 0, r.handlePostgresError("count songs", err)
	}

	query := `SELECT ` + songColumnsAliased + ` FROM songs s` + where +
		` ORDER BY s.created_at DESC` + limitOffset(len(args), filter.Page, filter.Limit)
	args = appendPaging(args, filter.Page, filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, r.handlePostgresError("list songs", err)
	}
	defer rows.Close()

	var songs []*catalog.Song
	for rows.Next() {
		song, err := r.scanSong(rows)
		if err != nil {
			return nil, 0, err
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, song := range songs {
		if err := r.loadSongRelations(ctx, song); err != nil {
			return nil, 0, err
		}
	}
	return songs, total, nil
}

const songColumnsAliased = `s.id, s.primary_artist_id, s.album_id, s.title, s.slug, s.duration_ms, s.audio_url,
	s.cover_url, s.is_explicit, s.status, s.rejection_reason, s.reviewed_at, s.reviewed_by, s.created_at, s.updated_at`

func (r *Repository) loadSongRelations(ctx context.Context, song *catalog.Song) error {
	featured, err := r.collectIDs(ctx,
		`SELECT artist_id FROM song_artists WHERE song_id = $1 AND role = 'featured' ORDER BY artist_id`, song.ID)
	if err != nil {
		return err
	}
	song.FeaturedArtistIDs = featured

	genres, err := r.collectIDs(ctx,
		`SELECT genre_id FROM song_genres WHERE song_id = $1 ORDER BY genre_id`, song.ID)
	if err != nil {
		return err
	}
	song.GenreIDs = genres
	return nil
}

func (r *Repository) collectIDs(ctx context.Context, query string, args ...interface{}) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repository) replaceSongArtists(ctx context.Context, songID uuid.UUID, artistIDs []uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM song_artists WHERE song_id = $1 AND role = 'featured'`, songID); err != nil {
		return r.handlePostgresError("clear song artists", err)
	}
	for _, artistID := range artistIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO song_artists (song_id, artist_id, role) VALUES ($1, $2, 'featured')`, songID, artistID)
		if err != nil {
			return r.handlePostgresError("add song artist", err)
		}
	}
	return nil
}

func (r *Repository) replaceSongGenres(ctx context.Context, songID uuid.UUID, genreIDs []uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM song_genres WHERE song_id = $1`, songID); err != nil {
		return r.handlePostgresError("clear song genres", err)
	}
	for _, genreID := range genreIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO song_genres (song_id, genre_id) VALUES ($1, $2)`, songID, genreID)
		if err != nil {
			return r.handlePostgresError("add song genre", err)
		}
	}
	return nil
}
