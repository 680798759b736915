package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunehub/tunehub-server/pkg/catalog"
)

func TestDeleteManySongs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "Bulk Owner")
	foreignArtist, foreignOwner := env.newArtist(t, "Bulk Foreign")

	mineA := env.newSong(t, "Mine A", artist, owner)
	mineB := env.newSong(t, "Mine B", artist, owner)
	foreign := env.newSong(t, "Not Mine", foreignArtist, foreignOwner)

	t.Run("foreign id fails the whole batch", func(t *testing.T) {
		err := env.svc.DeleteMany(ctx, catalog.KindSong,
			[]uuid.UUID{mineA.ID, foreign.ID, mineB.ID}, owner)
		require.Error(t, err)

		var fe *catalog.ForbiddenError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, foreign.ID, fe.ID)

		// Nothing was deleted, including the ids the actor does own.
		for _, id := range []uuid.UUID{mineA.ID, mineB.ID, foreign.ID} {
			_, err := env.svc.GetSong(ctx, id)
			assert.NoError(t, err)
		}
	})

	t.Run("missing id fails the whole batch", func(t *testing.T) {
		err := env.svc.DeleteMany(ctx, catalog.KindSong,
			[]uuid.UUID{mineA.ID, uuid.New()}, owner)
		assert.ErrorIs(t, err, catalog.ErrSongNotFound)

		_, err = env.svc.GetSong(ctx, mineA.ID)
		assert.NoError(t, err)
	})

	t.Run("owner deletes own batch", func(t *testing.T) {
		err := env.svc.DeleteMany(ctx, catalog.KindSong,
			[]uuid.UUID{mineA.ID, mineB.ID}, owner)
		require.NoError(t, err)

		_, err = env.svc.GetSong(ctx, mineA.ID)
		assert.ErrorIs(t, err, catalog.ErrSongNotFound)
		_, err = env.svc.GetSong(ctx, mineB.ID)
		assert.ErrorIs(t, err, catalog.ErrSongNotFound)
		// The foreign song is untouched.
		_, err = env.svc.GetSong(ctx, foreign.ID)
		assert.NoError(t, err)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		assert.NoError(t, env.svc.DeleteMany(ctx, catalog.KindSong, nil, owner))
	})
}

func TestDeleteManyGenresAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	genre, err := env.svc.CreateGenre(ctx, catalog.CreateGenreRequest{Name: "Lo-Fi"}, env.admin)
	require.NoError(t, err)

	// Genres carry no owner, so only admins pass the guard.
	artistActor := catalog.Actor{UserID: uuid.New(), Role: catalog.RoleArtist}
	err = env.svc.DeleteMany(ctx, catalog.KindGenre, []uuid.UUID{genre.ID}, artistActor)
	assert.True(t, catalog.IsForbidden(err))

	require.NoError(t, env.svc.DeleteMany(ctx, catalog.KindGenre, []uuid.UUID{genre.ID}, env.admin))
	_, err = env.svc.GetGenre(ctx, genre.ID)
	assert.ErrorIs(t, err, catalog.ErrGenreNotFound)
}

func TestDeleteManyAlbumsThroughOwnershipChain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "Chain Owner")

	album, err := env.svc.CreateAlbum(ctx, catalog.CreateAlbumRequest{
		ArtistID: artist.ID,
		Title:    "Chained",
	}, owner)
	require.NoError(t, err)

	// Album ownership resolves through its artist's owner.
	require.NoError(t, env.svc.DeleteMany(ctx, catalog.KindAlbum, []uuid.UUID{album.ID}, owner))
	_, err = env.svc.GetAlbum(ctx, album.ID)
	assert.ErrorIs(t, err, catalog.ErrAlbumNotFound)
}

func TestDeleteManyInvalidKind(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.DeleteMany(context.Background(), catalog.Kind("station"),
		[]uuid.UUID{uuid.New()}, env.admin)
	assert.ErrorIs(t, err, catalog.ErrInvalidKind)
}
