package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunehub/tunehub-server/pkg/catalog"
)

func TestCreateArtistAdminOnly(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateArtist(context.Background(), catalog.CreateArtistRequest{
		Name: "Self Made",
	}, catalog.Actor{UserID: uuid.New(), Role: catalog.RoleArtist})
	assert.True(t, catalog.IsForbidden(err))
}

func TestArtistExplicitSlugPolicy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("supplied slug wins over derived", func(t *testing.T) {
		artist, err := env.svc.CreateArtist(ctx, catalog.CreateArtistRequest{
			Name: "The Longest Band Name",
			Slug: "tlbn",
		}, env.admin)
		require.NoError(t, err)
		assert.Equal(t, "tlbn", artist.Slug)
	})

	t.Run("collision is a hard conflict, never disambiguated", func(t *testing.T) {
		first, err := env.svc.CreateArtist(ctx, catalog.CreateArtistRequest{Name: "Twins"}, env.admin)
		require.NoError(t, err)
		require.Equal(t, "twins", first.Slug)

		_, err = env.svc.CreateArtist(ctx, catalog.CreateArtistRequest{Name: "Twins"}, env.admin)
		assert.ErrorIs(t, err, catalog.ErrSlugExists)
	})
}

func TestUpdateArtistAdminOnlyFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "Promotable")

	verified := true
	newOwner := uuid.New()

	// The owner can edit the profile but cannot self-verify or hand the
	// profile to someone else.
	updated, err := env.svc.UpdateArtist(ctx, artist.ID, catalog.UpdateArtistRequest{
		Verified:    &verified,
		OwnerUserID: &newOwner,
	}, owner)
	require.NoError(t, err)
	assert.False(t, updated.Verified)
	assert.Equal(t, owner.UserID, *updated.OwnerUserID)

	updated, err = env.svc.UpdateArtist(ctx, artist.ID, catalog.UpdateArtistRequest{
		Verified: &verified,
	}, env.admin)
	require.NoError(t, err)
	assert.True(t, updated.Verified)
}

func TestUnclaimedArtistAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	unclaimed, err := env.svc.CreateArtist(ctx, catalog.CreateArtistRequest{Name: "Legacy Act"}, env.admin)
	require.NoError(t, err)
	require.Nil(t, unclaimed.OwnerUserID)

	bio := "updated"
	_, err = env.svc.UpdateArtist(ctx, unclaimed.ID, catalog.UpdateArtistRequest{Bio: &bio},
		catalog.Actor{UserID: uuid.New(), Role: catalog.RoleArtist})
	assert.True(t, catalog.IsForbidden(err))

	_, err = env.svc.UpdateArtist(ctx, unclaimed.ID, catalog.UpdateArtistRequest{Bio: &bio}, env.admin)
	assert.NoError(t, err)
}

func TestAlbumOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "Album Owner")
	_, stranger := env.newArtist(t, "Album Stranger")

	t.Run("stranger cannot create under a foreign artist", func(t *testing.T) {
		_, err := env.svc.CreateAlbum(ctx, catalog.CreateAlbumRequest{
			ArtistID: artist.ID,
			Title:    "Hijack",
		}, stranger)
		assert.True(t, catalog.IsForbidden(err))
	})

	t.Run("owner creates and edits through the chain", func(t *testing.T) {
		album, err := env.svc.CreateAlbum(ctx, catalog.CreateAlbumRequest{
			ArtistID: artist.ID,
			Title:    "Legit",
		}, owner)
		require.NoError(t, err)
		assert.Equal(t, "legit", album.Slug)

		published := true
		updated, err := env.svc.UpdateAlbum(ctx, album.ID, catalog.UpdateAlbumRequest{
			IsPublished: &published,
		}, owner)
		require.NoError(t, err)
		assert.True(t, updated.IsPublished)

		_, err = env.svc.UpdateAlbum(ctx, album.ID, catalog.UpdateAlbumRequest{
			IsPublished: &published,
		}, stranger)
		assert.True(t, catalog.IsForbidden(err))
	})

	t.Run("album slug collision is a conflict", func(t *testing.T) {
		_, err := env.svc.CreateAlbum(ctx, catalog.CreateAlbumRequest{
			ArtistID: artist.ID,
			Title:    "Legit",
		}, owner)
		assert.ErrorIs(t, err, catalog.ErrSlugExists)
	})
}

func TestGenreAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artistActor := catalog.Actor{UserID: uuid.New(), Role: catalog.RoleArtist}

	_, err := env.svc.CreateGenre(ctx, catalog.CreateGenreRequest{Name: "Vaporwave"}, artistActor)
	assert.True(t, catalog.IsForbidden(err))

	genre, err := env.svc.CreateGenre(ctx, catalog.CreateGenreRequest{Name: "Vaporwave"}, env.admin)
	require.NoError(t, err)
	assert.Equal(t, "vaporwave", genre.Slug)

	_, err = env.svc.CreateGenre(ctx, catalog.CreateGenreRequest{Name: "Vaporwave"}, env.admin)
	assert.ErrorIs(t, err, catalog.ErrSlugExists)

	name := "Vapor Wave"
	_, err = env.svc.UpdateGenre(ctx, genre.ID, catalog.UpdateGenreRequest{Name: &name}, artistActor)
	assert.True(t, catalog.IsForbidden(err))

	err = env.svc.DeleteGenre(ctx, genre.ID, artistActor)
	assert.True(t, catalog.IsForbidden(err))
}
