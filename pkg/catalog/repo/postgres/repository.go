package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tunehub/tunehub-server/pkg/catalog"
)

// DBTX is an interface that allows us to use either a connection pool or
// a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements catalog.Repository using PostgreSQL
type Repository struct {
	db   DBTX
	pool *pgxpool.Pool
}

// NewWithPool creates a new PostgreSQL repository with a connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool, pool: pool}
}

// New creates a repository over an existing connection or transaction.
// Such a repository cannot open its own transactions; WithTx joins the
// current one.
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// WithTx runs fn inside a database transaction. The callback receives a
// repository bound to the transaction, so its reads observe its own
// prior writes.
func (r *Repository) WithTx(ctx context.Context, fn func(catalog.Repository) error) error {
	if r.pool == nil {
		return fn(r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&Repository{db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "slug") {
				return catalog.ErrSlugExists
			}
			return fmt.Errorf("duplicate entry in %s", operation)
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found in %s", operation)
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Artist operations

const artistColumns = `id, owner_user_id, name, slug, bio, avatar_url, verified, created_at, updated_at`

func (r *Repository) CreateArtist(ctx context.Context, artist *catalog.Artist) error {
	query := `
		INSERT INTO artists (id, owner_user_id, name, slug, bio, avatar_url, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		artist.ID, artist.OwnerUserID, artist.Name, artist.Slug,
		artist.Bio, artist.AvatarURL, artist.Verified, artist.CreatedAt, artist.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create artist", err)
	}
	return nil
}

func (r *Repository) scanArtist(row pgx.Row) (*catalog.Artist, error) {
	var artist catalog.Artist
	err := row.Scan(&artist.ID, &artist.OwnerUserID, &artist.Name, &artist.Slug,
		&artist.Bio, &artist.AvatarURL, &artist.Verified, &artist.CreatedAt, &artist.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrArtistNotFound
		}
		return nil, err
	}
	return &artist, nil
}

func (r *Repository) GetArtist(ctx context.Context, id uuid.UUID) (*catalog.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists WHERE id = $1`
	return r.scanArtist(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) GetArtistBySlug(ctx context.Context, slug string) (*catalog.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists WHERE slug = $1`
	return r.scanArtist(r.db.QueryRow(ctx, query, slug))
}

func (r *Repository) UpdateArtist(ctx context.Context, artist *catalog.Artist) error {
	query := `
		UPDATE artists SET
			owner_user_id = $2, name = $3, slug = $4, bio = $5,
			avatar_url = $6, verified = $7, updated_at = $8
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		artist.ID, artist.OwnerUserID, artist.Name, artist.Slug,
		artist.Bio, artist.AvatarURL, artist.Verified, artist.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update artist", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrArtistNotFound
	}
	return nil
}

func (r *Repository) DeleteArtists(ctx context.Context, ids []uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM artists WHERE id = ANY($1)`, ids)
	if err != nil {
		return r.handlePostgresError("delete artists", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return catalog.ErrArtistNotFound
	}
	return nil
}

func (r *Repository) ListArtists(ctx context.Context, filter catalog.ArtistFilter) ([]*catalog.Artist, int, error) {
	where, args := buildWhere(func(w *whereBuilder) {
		if filter.Verified != nil {
			w.add("verified = %s", *filter.Verified)
		}
		if filter.OwnerUserID != nil {
			w.add("owner_user_id = %s", *filter.OwnerUserID)
		}
		if filter.Search != "" {
			w.add("(name ILIKE %s OR bio ILIKE %s)", like(filter.Search), like(filter.Search))
		}
	})

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM artists`+where, args...).Scan(&total); err != nil {
		return nil, 0, r.handlePostgresError("count artists", err)
	}

	orderBy := "created_at"
	if filter.SortBy == "name" {
		orderBy = "name"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	query := `SELECT ` + artistColumns + ` FROM artists` + where +
		fmt.Sprintf(" ORDER BY %s %s", orderBy, direction) + limitOffset(len(args), filter.Page, filter.Limit)
	args = appendPaging(args, filter.Page, filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, r.handlePostgresError("list artists", err)
	}
	defer rows.Close()

	var artists []*catalog.Artist
	for rows.Next() {
		artist, err := r.scanArtist(rows)
		if err != nil {
			return nil, 0, err
		}
		artists = append(artists, artist)
	}
	return artists, total, rows.Err()
}

// Album operations

const albumColumns = `id, artist_id, title, slug, description, cover_url, release_date, is_published, created_at, updated_at`

func (r *Repository) CreateAlbum(ctx context.Context, album *catalog.Album) error {
	query := `
		INSERT INTO albums (id, artist_id, title, slug, description, cover_url, release_date, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		album.ID, album.ArtistID, album.Title, album.Slug, album.Description,
		album.CoverURL, album.ReleaseDate, album.IsPublished, album.CreatedAt, album.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create album", err)
	}
	return nil
}

func (r *Repository) scanAlbum(row pgx.Row) (*catalog.Album, error) {
	var album catalog.Album
	err := row.Scan(&album.ID, &album.ArtistID, &album.Title, &album.Slug, &album.Description,
		&album.CoverURL, &album.ReleaseDate, &album.IsPublished, &album.CreatedAt, &album.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrAlbumNotFound
		}
		return nil, err
	}
	return &album, nil
}

func (r *Repository) GetAlbum(ctx context.Context, id uuid.UUID) (*catalog.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums WHERE id = $1`
	return r.scanAlbum(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) GetAlbumBySlug(ctx context.Context, slug string) (*catalog.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums WHERE slug = $1`
	return r.scanAlbum(r.db.QueryRow(ctx, query, slug))
}

func (r *Repository) UpdateAlbum(ctx context.Context, album *catalog.Album) error {
	query := `
		UPDATE albums SET
			artist_id = $2, title = $3, slug = $4, description = $5,
			cover_url = $6, release_date = $7, is_published = $8, updated_at = $9
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		album.ID, album.ArtistID, album.Title, album.Slug, album.Description,
		album.CoverURL, album.ReleaseDate, album.IsPublished, album.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update album", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrAlbumNotFound
	}
	return nil
}

func (r *Repository) DeleteAlbums(ctx context.Context, ids []uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM albums WHERE id = ANY($1)`, ids)
	if err != nil {
		return r.handlePostgresError("delete albums", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return catalog.ErrAlbumNotFound
	}
	return nil
}

func (r *Repository) ListAlbums(ctx context.Context, filter catalog.AlbumFilter) ([]*catalog.Album, int, error) {
	where, args := buildWhere(func(w *whereBuilder) {
		if filter.ArtistID != nil {
			w.add("artist_id = %s", *filter.ArtistID)
		}
		if filter.IsPublished != nil {
			w.add("is_published = %s", *filter.IsPublished)
		}
		if filter.Search != "" {
			w.add("(title ILIKE %s OR description ILIKE %s)", like(filter.Search), like(filter.Search))
		}
	})

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM albums`+where, args...).Scan(&total); err != nil {
		return nil, 0, r.handlePostgresError("count albums", err)
	}

	query := `SELECT ` + albumColumns + ` FROM albums` + where +
		` ORDER BY created_at DESC` + limitOffset(len(args), filter.Page, filter.Limit)
	args = appendPaging(args, filter.Page, filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, r.handlePostgresError("list albums", err)
	}
	defer rows.Close()

	var albums []*catalog.Album
	for rows.Next() {
		album, err := r.scanAlbum(rows)
		if err != nil {
			return nil, 0, err
		}
		albums = append(albums, album)
	}
	return albums, total, rows.Err()
}
