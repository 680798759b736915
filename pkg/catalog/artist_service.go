package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Artist profile operations. Profiles are an explicit-slug kind: a
// colliding slug is a conflict, never auto-disambiguated.

func (s *service) CreateArtist(ctx context.Context, req CreateArtistRequest, actor Actor) (*Artist, error) {
	// Only admins create profiles; ownership is assigned, not claimed.
	if !actor.IsAdmin() {
		return nil, &ForbiddenError{Resource: "artist"}
	}

	slug, err := resolveExplicitSlug(ctx, req.Slug, req.Name, "", s.artistSlugExists())
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	artist := &Artist{
		ID:          uuid.New(),
		OwnerUserID: req.OwnerUserID,
		Name:        req.Name,
		Slug:        slug,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		Verified:    req.Verified,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repository.CreateArtist(ctx, artist); err != nil {
		return nil, err
	}
	return artist, nil
}

func (s *service) GetArtist(ctx context.Context, id uuid.UUID) (*Artist, error) {
	return s.repository.GetArtist(ctx, id)
}

func (s *service) UpdateArtist(ctx context.Context, id uuid.UUID, req UpdateArtistRequest, actor Actor) (*Artist, error) {
	artist, err := s.repository.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := Authorize(actor, Owned{Resource: "artist", ID: artist.ID, OwnerUserID: artist.OwnerUserID}); err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != artist.Slug {
		slug, err := resolveExplicitSlug(ctx, *req.Slug, "", artist.Slug, s.artistSlugExists())
		if err != nil {
			return nil, err
		}
		artist.Slug = slug
	}
	if req.Name != nil {
		artist.Name = *req.Name
	}
	if req.Bio != nil {
		artist.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		artist.AvatarURL = *req.AvatarURL
	}

	// Verification and ownership reassignment are admin-only fields.
	if actor.IsAdmin() {
		if req.Verified != nil {
			artist.Verified = *req.Verified
		}
		if req.OwnerUserID != nil {
			artist.OwnerUserID = req.OwnerUserID
		}
	}

	artist.UpdatedAt = s.now().UTC()
	if err := s.repository.UpdateArtist(ctx, artist); err != nil {
		return nil, err
	}
	return artist, nil
}

func (s *service) DeleteArtist(ctx context.Context, id uuid.UUID, actor Actor) error {
	artist, err := s.repository.GetArtist(ctx, id)
	if err != nil {
		return err
	}

	if err := Authorize(actor, Owned{Resource: "artist", ID: artist.ID, OwnerUserID: artist.OwnerUserID}); err != nil {
		return err
	}
	return s.repository.DeleteArtists(ctx, []uuid.UUID{id})
}

func (s *service) ListArtists(ctx context.Context, req ListArtistsRequest) (Page[*Artist], error) {
	page, limit := normalizePage(req.Page, req.Limit)
	artists, total, err := s.repository.ListArtists(ctx, ArtistFilter{
		Search:    req.Search,
		Verified:  req.Verified,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return Page[*Artist]{}, err
	}
	return NewPage(artists, total, page, limit), nil
}

func (s *service) artistSlugExists() slugExistsFunc {
	return func(ctx context.Context, slug string) (bool, error) {
		_, err := s.repository.GetArtistBySlug(ctx, slug)
		if err != nil {
			if IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}
}
