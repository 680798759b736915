package catalog

import (
	"context"

	"github.com/google/uuid"
)

// DeleteMany removes a batch of entities of one kind. The batch is
// all-or-nothing: every id must exist and every target must pass the
// ownership rule before anything is deleted. The first offending id is
// carried in the Forbidden error and nothing is executed partially.
func (s *service) DeleteMany(ctx context.Context, kind Kind, ids []uuid.UUID, actor Actor) error {
	// Repeated ids would make the store's affected-row count disagree
	// with len(ids), so the batch is deduplicated up front.
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	targets, err := s.resolveOwners(ctx, kind, ids)
	if err != nil {
		return err
	}

	if err := AuthorizeAll(actor, targets); err != nil {
		return err
	}

	return s.repository.WithTx(ctx, func(tx Repository) error {
		switch kind {
		case KindArtist:
			return tx.DeleteArtists(ctx, ids)
		case KindAlbum:
			return tx.DeleteAlbums(ctx, ids)
		case KindSong:
			return tx.DeleteSongs(ctx, ids)
		case KindGenre:
			return tx.DeleteGenres(ctx, ids)
		case KindPlaylist:
			return tx.DeletePlaylists(ctx, ids)
		default:
			return ErrInvalidKind
		}
	})
}

// resolveOwners walks the ownership chain for every target id, in the
// caller's order so that the first offending id is deterministic.
func (s *service) resolveOwners(ctx context.Context, kind Kind, ids []uuid.UUID) ([]Owned, error) {
	targets := make([]Owned, 0, len(ids))
	for _, id := range ids {
		switch kind {
		case KindArtist:
			artist, err := s.repository.GetArtist(ctx, id)
			if err != nil {
				return nil, err
			}
			targets = append(targets, Owned{Resource: "artist", ID: id, OwnerUserID: artist.OwnerUserID})
		case KindAlbum:
			album, err := s.repository.GetAlbum(ctx, id)
			if err != nil {
				return nil, err
			}
			owner, err := s.albumOwner(ctx, album)
			if err != nil {
				return nil, err
			}
			targets = append(targets, Owned{Resource: "album", ID: id, OwnerUserID: owner})
		case KindSong:
			song, err := s.repository.GetSong(ctx, id)
			if err != nil {
				return nil, err
			}
			artist, err := s.repository.GetArtist(ctx, song.PrimaryArtistID)
			if err != nil {
				return nil, err
			}
			targets = append(targets, Owned{Resource: "song", ID: id, OwnerUserID: artist.OwnerUserID})
		case KindGenre:
			if _, err := s.repository.GetGenre(ctx, id); err != nil {
				return nil, err
			}
			// Genres have no owner; only admins pass the guard.
			targets = append(targets, Owned{Resource: "genre", ID: id})
		case KindPlaylist:
			playlist, err := s.repository.GetPlaylist(ctx, id)
			if err != nil {
				return nil, err
			}
			owner := playlist.OwnerUserID
			targets = append(targets, Owned{Resource: "playlist", ID: id, OwnerUserID: &owner})
		default:
			return nil, ErrInvalidKind
		}
	}
	return targets, nil
}
