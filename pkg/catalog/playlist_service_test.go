package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunehub/tunehub-server/pkg/catalog"
)

func (e *testEnv) newPlaylist(t *testing.T, name string, isPublic bool, actor catalog.Actor) *catalog.Playlist {
	t.Helper()

	playlist, err := e.svc.CreatePlaylist(context.Background(), catalog.CreatePlaylistRequest{
		Name:     name,
		IsPublic: isPublic,
	}, actor)
	require.NoError(t, err)
	return playlist
}

func TestCreatePlaylistRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreatePlaylist(context.Background(), catalog.CreatePlaylistRequest{
		Name: "Anonymous Mix",
	}, catalog.Actor{})
	assert.True(t, catalog.IsForbidden(err))
}

func TestPrivatePlaylistAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := catalog.Actor{UserID: uuid.New(), Role: catalog.RoleListener}
	stranger := catalog.Actor{UserID: uuid.New(), Role: catalog.RoleListener}

	private := env.newPlaylist(t, "Secret Stash", false, owner)

	t.Run("owner can read", func(t *testing.T) {
		got, err := env.svc.GetPlaylist(ctx, private.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, private.ID, got.ID)
	})

	t.Run("stranger cannot read", func(t *testing.T) {
		_, err := env.svc.GetPlaylist(ctx, private.ID, stranger)
		assert.True(t, catalog.IsForbidden(err))
	})

	t.Run("admin can read", func(t *testing.T) {
		_, err := env.svc.GetPlaylist(ctx, private.ID, env.admin)
		assert.NoError(t, err)
	})

	t.Run("public playlist is open to anonymous", func(t *testing.T) {
		public := env.newPlaylist(t, "Open Mix", true, owner)
		_, err := env.svc.GetPlaylist(ctx, public.ID, catalog.Actor{})
		assert.NoError(t, err)
	})
}

func TestListPlaylistsOnlyPublic(t *testing.T) {
	env := newTestEnv(t)
	owner := catalog.Actor{UserID: uuid.New(), Role: catalog.RoleListener}

	env.newPlaylist(t, "Hidden", false, owner)
	public := env.newPlaylist(t, "Published", true, owner)

	page, err := env.svc.ListPlaylists(context.Background(), catalog.ListPlaylistsRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, public.ID, page.Items[0].ID)
}

func TestAddSongsToPlaylist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, artistActor := env.newArtist(t, "Mix Source")
	owner := catalog.Actor{UserID: uuid.New(), Role: catalog.RoleListener}
	playlist := env.newPlaylist(t, "Road Trip", true, owner)

	songA := env.newSong(t, "Track A", artist, artistActor)
	songB := env.newSong(t, "Track B", artist, artistActor)
	unknown := uuid.New()

	updated, err := env.svc.AddSongsToPlaylist(ctx, playlist.ID,
		[]uuid.UUID{songA.ID, unknown, songB.ID, songA.ID}, owner)
	require.NoError(t, err)

	// Unknown ids and duplicates are skipped; the batch still completes.
	assert.Equal(t, 2, updated.TotalTracks)
	assert.Equal(t, songA.DurationMs+songB.DurationMs, updated.DurationMs)
	assert.Contains(t, env.sink.playlists, playlist.ID)

	entries, err := env.svc.ListPlaylistEntries(ctx, playlist.ID, owner)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, songA.ID, entries[0].SongID)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, songB.ID, entries[1].SongID)
	assert.Equal(t, 2, entries[1].Position)

	t.Run("re-adding members is a no-op", func(t *testing.T) {
		again, err := env.svc.AddSongsToPlaylist(ctx, playlist.ID, []uuid.UUID{songA.ID}, owner)
		require.NoError(t, err)
		assert.Equal(t, 2, again.TotalTracks)
	})

	t.Run("stranger cannot add", func(t *testing.T) {
		stranger := catalog.Actor{UserID: uuid.New(), Role: catalog.RoleListener}
		_, err := env.svc.AddSongsToPlaylist(ctx, playlist.ID, []uuid.UUID{songA.ID}, stranger)
		assert.True(t, catalog.IsForbidden(err))
	})
}

func TestRemoveSongFromPlaylist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, artistActor := env.newArtist(t, "Removal Source")
	owner := catalog.Actor{UserID: uuid.New(), Role: catalog.RoleListener}
	playlist := env.newPlaylist(t, "Shrinking", true, owner)

	songA := env.newSong(t, "Keep Me", artist, artistActor)
	songB := env.newSong(t, "Drop Me", artist, artistActor)
	songC := env.newSong(t, "Keep Me Too", artist, artistActor)

	_, err := env.svc.AddSongsToPlaylist(ctx, playlist.ID, []uuid.UUID{songA.ID, songB.ID, songC.ID}, owner)
	require.NoError(t, err)

	updated, err := env.svc.RemoveSongFromPlaylist(ctx, playlist.ID, songB.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.TotalTracks)
	assert.Equal(t, songA.DurationMs+songC.DurationMs, updated.DurationMs)

	// Survivors keep their positions; the gap is not backfilled.
	entries, err := env.svc.ListPlaylistEntries(ctx, playlist.ID, owner)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, 3, entries[1].Position)

	t.Run("removing a non-member fails loudly", func(t *testing.T) {
		_, err := env.svc.RemoveSongFromPlaylist(ctx, playlist.ID, songB.ID, owner)
		assert.ErrorIs(t, err, catalog.ErrSongNotInPlaylist)
		assert.True(t, catalog.IsNotFound(err))
	})

	t.Run("re-adding the removed song appends after the gap", func(t *testing.T) {
		// Two members remain at positions 1 and 3, so the re-add lands
		// at memberCount+1 = 3; the gap at 2 is never backfilled, even
		// when that repeats a survivor's position number.
		readded, err := env.svc.AddSongsToPlaylist(ctx, playlist.ID, []uuid.UUID{songB.ID}, owner)
		require.NoError(t, err)
		assert.Equal(t, 3, readded.TotalTracks)
		assert.Equal(t, songA.DurationMs+songB.DurationMs+songC.DurationMs, readded.DurationMs)

		entries, err := env.svc.ListPlaylistEntries(ctx, playlist.ID, owner)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, songB.ID, entries[2].SongID)
		assert.Equal(t, 3, entries[2].Position)
		assert.Equal(t, 1, entries[0].Position)
		assert.Equal(t, 3, entries[1].Position)
	})
}

func TestUpdatePlaylistRenameReslug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := catalog.Actor{UserID: uuid.New(), Role: catalog.RoleListener}
	playlist := env.newPlaylist(t, "Old Name", true, owner)
	require.Equal(t, "old-name", playlist.Slug)

	name := "New Name"
	updated, err := env.svc.UpdatePlaylist(ctx, playlist.ID, catalog.UpdatePlaylistRequest{Name: &name}, owner)
	require.NoError(t, err)
	assert.Equal(t, "new-name", updated.Slug)

	t.Run("stranger cannot update", func(t *testing.T) {
		stranger := catalog.Actor{UserID: uuid.New(), Role: catalog.RoleListener}
		_, err := env.svc.UpdatePlaylist(ctx, playlist.ID, catalog.UpdatePlaylistRequest{Name: &name}, stranger)
		assert.True(t, catalog.IsForbidden(err))
	})
}
