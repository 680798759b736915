package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Album operations. Ownership resolves through the album's artist.
// Albums are an explicit-slug kind like artists and genres.

func (s *service) CreateAlbum(ctx context.Context, req CreateAlbumRequest, actor Actor) (*Album, error) {
	artist, err := s.repository.GetArtist(ctx, req.ArtistID)
	if err != nil {
		return nil, err
	}

	if err := Authorize(actor, Owned{Resource: "artist", ID: artist.ID, OwnerUserID: artist.OwnerUserID}); err != nil {
		return nil, err
	}

	slug, err := resolveExplicitSlug(ctx, req.Slug, req.Title, "", s.albumSlugExists())
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	album := &Album{
		ID:          uuid.New(),
		ArtistID:    req.ArtistID,
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		ReleaseDate: req.ReleaseDate,
		IsPublished: req.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repository.CreateAlbum(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *service) GetAlbum(ctx context.Context, id uuid.UUID) (*Album, error) {
	return s.repository.GetAlbum(ctx, id)
}

func (s *service) UpdateAlbum(ctx context.Context, id uuid.UUID, req UpdateAlbumRequest, actor Actor) (*Album, error) {
	album, err := s.repository.GetAlbum(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.albumOwner(ctx, album)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, Owned{Resource: "album", ID: album.ID, OwnerUserID: owner}); err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != album.Slug {
		slug, err := resolveExplicitSlug(ctx, *req.Slug, "", album.Slug, s.albumSlugExists())
		if err != nil {
			return nil, err
		}
		album.Slug = slug
	}
	if req.Title != nil {
		album.Title = *req.Title
	}
	if req.Description != nil {
		album.Description = *req.Description
	}
	if req.CoverURL != nil {
		album.CoverURL = *req.CoverURL
	}
	if req.ReleaseDate != nil {
		album.ReleaseDate = req.ReleaseDate
	}
	if req.IsPublished != nil {
		album.IsPublished = *req.IsPublished
	}

	album.UpdatedAt = s.now().UTC()
	if err := s.repository.UpdateAlbum(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *service) DeleteAlbum(ctx context.Context, id uuid.UUID, actor Actor) error {
	album, err := s.repository.GetAlbum(ctx, id)
	if err != nil {
		return err
	}

	owner, err := s.albumOwner(ctx, album)
	if err != nil {
		return err
	}
	if err := Authorize(actor, Owned{Resource: "album", ID: album.ID, OwnerUserID: owner}); err != nil {
		return err
	}
	return s.repository.DeleteAlbums(ctx, []uuid.UUID{id})
}

func (s *service) ListAlbums(ctx context.Context, req ListAlbumsRequest) (Page[*Album], error) {
	page, limit := normalizePage(req.Page, req.Limit)
	albums, total, err := s.repository.ListAlbums(ctx, AlbumFilter{
		Search:      req.Search,
		ArtistID:    req.ArtistID,
		IsPublished: req.IsPublished,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return Page[*Album]{}, err
	}
	return NewPage(albums, total, page, limit), nil
}

// albumOwner walks the ownership chain album → artist → owner user id.
func (s *service) albumOwner(ctx context.Context, album *Album) (*uuid.UUID, error) {
	artist, err := s.repository.GetArtist(ctx, album.ArtistID)
	if err != nil {
		return nil, err
	}
	return artist.OwnerUserID, nil
}

func (s *service) albumSlugExists() slugExistsFunc {
	return func(ctx context.Context, slug string) (bool, error) {
		_, err := s.repository.GetAlbumBySlug(ctx, slug)
		if err != nil {
			if IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}
}
