package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Genre operations. Genres are admin-managed and an explicit-slug kind.

func (s *service) CreateGenre(ctx context.Context, req CreateGenreRequest, actor Actor) (*Genre, error) {
	if !actor.IsAdmin() {
		return nil, &ForbiddenError{Resource: "genre"}
	}

	slug, err := resolveExplicitSlug(ctx, req.Slug, req.Name, "", s.genreSlugExists())
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	genre := &Genre{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repository.CreateGenre(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *service) GetGenre(ctx context.Context, id uuid.UUID) (*Genre, error) {
	return s.repository.GetGenre(ctx, id)
}

func (s *service) UpdateGenre(ctx context.Context, id uuid.UUID, req UpdateGenreRequest, actor Actor) (*Genre, error) {
	if !actor.IsAdmin() {
		return nil, &ForbiddenError{Resource: "genre", ID: id}
	}

	genre, err := s.repository.GetGenre(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != genre.Slug {
		slug, err := resolveExplicitSlug(ctx, *req.Slug, "", genre.Slug, s.genreSlugExists())
		if err != nil {
			return nil, err
		}
		genre.Slug = slug
	}
	if req.Name != nil {
		genre.Name = *req.Name
	}
	if req.Description != nil {
		genre.Description = *req.Description
	}

	genre.UpdatedAt = s.now().UTC()
	if err := s.repository.UpdateGenre(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *service) DeleteGenre(ctx context.Context, id uuid.UUID, actor Actor) error {
	if !actor.IsAdmin() {
		return &ForbiddenError{Resource: "genre", ID: id}
	}

	if _, err := s.repository.GetGenre(ctx, id); err != nil {
		return err
	}
	return s.repository.DeleteGenres(ctx, []uuid.UUID{id})
}

func (s *service) ListGenres(ctx context.Context, req ListGenresRequest) (Page[*Genre], error) {
	page, limit := normalizePage(req.Page, req.Limit)
	genres, total, err := s.repository.ListGenres(ctx, GenreFilter{
		Search: req.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return Page[*Genre]{}, err
	}
	return NewPage(genres, total, page, limit), nil
}

func (s *service) genreSlugExists() slugExistsFunc {
	return func(ctx context.Context, slug string) (bool, error) {
		_, err := s.repository.GetGenreBySlug(ctx, slug)
		if err != nil {
			if IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}
}
