package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunehub/tunehub-server/pkg/catalog"
	"github.com/tunehub/tunehub-server/pkg/catalog/repo/memory"
)

// captureSink records fired events so tests can assert on them.
type captureSink struct {
	submitted []uuid.UUID
	approved  []uuid.UUID
	rejected  []uuid.UUID
	playlists []uuid.UUID
}

func (c *captureSink) SongSubmitted(_ context.Context, song *catalog.Song) error {
	c.submitted = append(c.submitted, song.ID)
	return nil
}

func (c *captureSink) SongApproved(_ context.Context, song *catalog.Song) error {
	c.approved = append(c.approved, song.ID)
	return nil
}

func (c *captureSink) SongRejected(_ context.Context, song *catalog.Song) error {
	c.rejected = append(c.rejected, song.ID)
	return nil
}

func (c *captureSink) PlaylistChanged(_ context.Context, playlist *catalog.Playlist) error {
	c.playlists = append(c.playlists, playlist.ID)
	return nil
}

type testEnv struct {
	svc   catalog.Service
	sink  *captureSink
	admin catalog.Actor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sink := &captureSink{}
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, err := catalog.New(
		catalog.WithRepository(memory.New()),
		catalog.WithEventSink(sink),
		catalog.WithClock(func() time.Time { return clock }),
	)
	require.NoError(t, err)

	return &testEnv{
		svc:   svc,
		sink:  sink,
		admin: catalog.Actor{UserID: uuid.New(), Role: catalog.RoleAdmin},
	}
}

// newArtist creates an artist profile owned by a fresh user and returns
// the profile together with the owning artist actor.
func (e *testEnv) newArtist(t *testing.T, name string) (*catalog.Artist, catalog.Actor) {
	t.Helper()

	ownerID := uuid.New()
	artist, err := e.svc.CreateArtist(context.Background(), catalog.CreateArtistRequest{
		Name:        name,
		OwnerUserID: &ownerID,
	}, e.admin)
	require.NoError(t, err)

	return artist, catalog.Actor{UserID: ownerID, Role: catalog.RoleArtist}
}

func (e *testEnv) newSong(t *testing.T, title string, artist *catalog.Artist, actor catalog.Actor) *catalog.Song {
	t.Helper()

	song, err := e.svc.CreateSong(context.Background(), catalog.CreateSongRequest{
		Title:           title,
		PrimaryArtistID: artist.ID,
		DurationMs:      180_000,
	}, actor)
	require.NoError(t, err)
	return song
}

func TestCreateSongStatusByRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "The Owls")

	t.Run("artist submission queues for review", func(t *testing.T) {
		song := env.newSong(t, "Night Flight", artist, owner)
		assert.Equal(t, catalog.SongStatusPending, song.Status)
		assert.Equal(t, "night-flight", song.Slug)
		assert.Contains(t, env.sink.submitted, song.ID)
	})

	t.Run("admin submission goes live immediately", func(t *testing.T) {
		song, err := env.svc.CreateSong(ctx, catalog.CreateSongRequest{
			Title:           "Day Flight",
			PrimaryArtistID: artist.ID,
		}, env.admin)
		require.NoError(t, err)
		assert.Equal(t, catalog.SongStatusApproved, song.Status)
		assert.NotContains(t, env.sink.submitted, song.ID)
	})
}

func TestCreateSongRejectsFeaturedOverlap(t *testing.T) {
	env := newTestEnv(t)
	artist, owner := env.newArtist(t, "Solo Act")

	_, err := env.svc.CreateSong(context.Background(), catalog.CreateSongRequest{
		Title:             "Duet With Myself",
		PrimaryArtistID:   artist.ID,
		FeaturedArtistIDs: []uuid.UUID{uuid.New(), artist.ID},
	}, owner)
	assert.ErrorIs(t, err, catalog.ErrFeaturedArtistOverlap)
	assert.True(t, catalog.IsConflict(err))
}

func TestCreateSongForeignArtistForbidden(t *testing.T) {
	env := newTestEnv(t)
	artist, _ := env.newArtist(t, "Band A")
	_, otherOwner := env.newArtist(t, "Band B")

	_, err := env.svc.CreateSong(context.Background(), catalog.CreateSongRequest{
		Title:           "Stolen Track",
		PrimaryArtistID: artist.ID,
	}, otherOwner)
	assert.True(t, catalog.IsForbidden(err))
}

func TestCreateSongUnknownArtist(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateSong(context.Background(), catalog.CreateSongRequest{
		Title:           "Orphan",
		PrimaryArtistID: uuid.New(),
	}, env.admin)
	assert.ErrorIs(t, err, catalog.ErrArtistNotFound)
}

func TestSongRejectsDanglingReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "Reference Check")

	t.Run("create with unknown featured artist", func(t *testing.T) {
		_, err := env.svc.CreateSong(ctx, catalog.CreateSongRequest{
			Title:             "Ghost Feature",
			PrimaryArtistID:   artist.ID,
			FeaturedArtistIDs: []uuid.UUID{uuid.New()},
		}, owner)
		assert.ErrorIs(t, err, catalog.ErrArtistNotFound)
		assert.True(t, catalog.IsNotFound(err))
	})

	t.Run("create with unknown genre", func(t *testing.T) {
		_, err := env.svc.CreateSong(ctx, catalog.CreateSongRequest{
			Title:           "Ghost Genre",
			PrimaryArtistID: artist.ID,
			GenreIDs:        []uuid.UUID{uuid.New()},
		}, owner)
		assert.ErrorIs(t, err, catalog.ErrGenreNotFound)
		assert.True(t, catalog.IsNotFound(err))
	})

	t.Run("update with unknown genre leaves the song untouched", func(t *testing.T) {
		song := env.newSong(t, "Stable Track", artist, owner)

		genres := []uuid.UUID{uuid.New()}
		_, err := env.svc.UpdateSong(ctx, song.ID, catalog.UpdateSongRequest{GenreIDs: &genres}, owner)
		assert.ErrorIs(t, err, catalog.ErrGenreNotFound)

		unchanged, err := env.svc.GetSong(ctx, song.ID)
		require.NoError(t, err)
		assert.Empty(t, unchanged.GenreIDs)
	})
}

func TestSongSlugCollisionGetsStamp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "Echoes")

	first := env.newSong(t, "Same Title", artist, owner)
	second := env.newSong(t, "Same Title", artist, owner)

	assert.Equal(t, "same-title", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Regexp(t, `^same-title-\d+$`, second.Slug)

	// A rename resolving to the song's own slug must not conflict with
	// itself. "Same Title!" slugifies to the same base, and with the
	// fixed clock disambiguation lands on the slug it already holds.
	title := "Same Title!"
	updated, err := env.svc.UpdateSong(ctx, second.ID, catalog.UpdateSongRequest{Title: &title}, env.admin)
	require.NoError(t, err)
	assert.Equal(t, second.Slug, updated.Slug)
}

func TestApproveSong(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "Pending Band")
	song := env.newSong(t, "Waiting Room", artist, owner)

	t.Run("non-admin cannot approve", func(t *testing.T) {
		_, err := env.svc.ApproveSong(ctx, song.ID, owner)
		assert.True(t, catalog.IsForbidden(err))
	})

	t.Run("admin approval sets review fields", func(t *testing.T) {
		approved, err := env.svc.ApproveSong(ctx, song.ID, env.admin)
		require.NoError(t, err)
		assert.Equal(t, catalog.SongStatusApproved, approved.Status)
		require.NotNil(t, approved.ReviewedAt)
		require.NotNil(t, approved.ReviewedBy)
		assert.Equal(t, env.admin.UserID, *approved.ReviewedBy)
		assert.Nil(t, approved.RejectionReason)
		assert.Contains(t, env.sink.approved, song.ID)
	})

	t.Run("double approval conflicts", func(t *testing.T) {
		_, err := env.svc.ApproveSong(ctx, song.ID, env.admin)
		assert.ErrorIs(t, err, catalog.ErrSongAlreadyApproved)
	})

	t.Run("rejected song can be re-approved", func(t *testing.T) {
		_, err := env.svc.RejectSong(ctx, song.ID, "bad mix", env.admin)
		require.NoError(t, err)

		reapproved, err := env.svc.ApproveSong(ctx, song.ID, env.admin)
		require.NoError(t, err)
		assert.Equal(t, catalog.SongStatusApproved, reapproved.Status)
		assert.Nil(t, reapproved.RejectionReason, "approval clears the rejection reason")
	})
}

func TestRejectSong(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "Reject Band")
	song := env.newSong(t, "Rough Cut", artist, owner)

	t.Run("rejection stores the reason", func(t *testing.T) {
		rejected, err := env.svc.RejectSong(ctx, song.ID, "clipping in the chorus", env.admin)
		require.NoError(t, err)
		assert.Equal(t, catalog.SongStatusRejected, rejected.Status)
		require.NotNil(t, rejected.RejectionReason)
		assert.Equal(t, "clipping in the chorus", *rejected.RejectionReason)
		assert.Contains(t, env.sink.rejected, song.ID)
	})

	t.Run("double rejection conflicts", func(t *testing.T) {
		_, err := env.svc.RejectSong(ctx, song.ID, "again", env.admin)
		assert.ErrorIs(t, err, catalog.ErrSongAlreadyRejected)
	})

	t.Run("empty reason stays nil", func(t *testing.T) {
		other := env.newSong(t, "Other Cut", artist, owner)
		rejected, err := env.svc.RejectSong(ctx, other.ID, "", env.admin)
		require.NoError(t, err)
		assert.Nil(t, rejected.RejectionReason)
	})
}

func TestArtistEditResubmitsApprovedSong(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "Revisions")
	song := env.newSong(t, "First Draft", artist, owner)

	_, err := env.svc.ApproveSong(ctx, song.ID, env.admin)
	require.NoError(t, err)

	title := "Second Draft"
	updated, err := env.svc.UpdateSong(ctx, song.ID, catalog.UpdateSongRequest{Title: &title}, owner)
	require.NoError(t, err)

	assert.Equal(t, catalog.SongStatusPending, updated.Status, "artist edit of a live song goes back to review")
	assert.Nil(t, updated.ReviewedAt)
	assert.Nil(t, updated.ReviewedBy)
	assert.Equal(t, "second-draft", updated.Slug)
	// One submission event at creation, one at resubmission.
	assert.Equal(t, 2, countID(env.sink.submitted, song.ID))
}

func TestAdminEditKeepsApprovedStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "Stable")
	song := env.newSong(t, "Steady", artist, owner)

	_, err := env.svc.ApproveSong(ctx, song.ID, env.admin)
	require.NoError(t, err)

	explicit := true
	updated, err := env.svc.UpdateSong(ctx, song.ID, catalog.UpdateSongRequest{IsExplicit: &explicit}, env.admin)
	require.NoError(t, err)

	assert.Equal(t, catalog.SongStatusApproved, updated.Status)
	assert.NotNil(t, updated.ReviewedAt)
}

func TestUpdateSongOverlapWithNewPrimary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, _ := env.newArtist(t, "Main")
	featured, _ := env.newArtist(t, "Guest")

	song, err := env.svc.CreateSong(ctx, catalog.CreateSongRequest{
		Title:             "Collab",
		PrimaryArtistID:   artist.ID,
		FeaturedArtistIDs: []uuid.UUID{featured.ID},
	}, env.admin)
	require.NoError(t, err)

	// Moving the song onto an artist already in the featured set must
	// fail even though the featured list itself is untouched.
	_, err = env.svc.UpdateSong(ctx, song.ID, catalog.UpdateSongRequest{
		PrimaryArtistID: &featured.ID,
	}, env.admin)
	assert.ErrorIs(t, err, catalog.ErrFeaturedArtistOverlap)
}

func TestListSongsVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "Visible")

	pending := env.newSong(t, "Unreviewed", artist, owner)
	approved := env.newSong(t, "Reviewed", artist, owner)
	_, err := env.svc.ApproveSong(ctx, approved.ID, env.admin)
	require.NoError(t, err)

	pendingStatus := catalog.SongStatusPending

	t.Run("anonymous sees approved only", func(t *testing.T) {
		page, err := env.svc.ListSongs(ctx, catalog.ListSongsRequest{}, catalog.Actor{})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, approved.ID, page.Items[0].ID)
	})

	t.Run("listener cannot force a status filter", func(t *testing.T) {
		listener := catalog.Actor{UserID: uuid.New(), Role: catalog.RoleListener}
		page, err := env.svc.ListSongs(ctx, catalog.ListSongsRequest{Status: &pendingStatus}, listener)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, approved.ID, page.Items[0].ID)
	})

	t.Run("artist without filter sees approved only", func(t *testing.T) {
		page, err := env.svc.ListSongs(ctx, catalog.ListSongsRequest{}, owner)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, approved.ID, page.Items[0].ID)
	})

	t.Run("admin sees what it asks for", func(t *testing.T) {
		page, err := env.svc.ListSongs(ctx, catalog.ListSongsRequest{Status: &pendingStatus}, env.admin)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, pending.ID, page.Items[0].ID)

		all, err := env.svc.ListSongs(ctx, catalog.ListSongsRequest{}, env.admin)
		require.NoError(t, err)
		assert.Len(t, all.Items, 2)
	})
}

func TestListMySongs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "Mine")
	otherArtist, otherOwner := env.newArtist(t, "Theirs")

	mine := env.newSong(t, "My Pending", artist, owner)
	env.newSong(t, "Their Song", otherArtist, otherOwner)

	t.Run("returns own songs across statuses", func(t *testing.T) {
		page, err := env.svc.ListMySongs(ctx, owner, 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, mine.ID, page.Items[0].ID)
		assert.Equal(t, catalog.SongStatusPending, page.Items[0].Status)
	})

	t.Run("listener forbidden", func(t *testing.T) {
		_, err := env.svc.ListMySongs(ctx, catalog.Actor{UserID: uuid.New(), Role: catalog.RoleListener}, 1, 10)
		assert.True(t, catalog.IsForbidden(err))
	})
}

func TestListPendingSongsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	artist, owner := env.newArtist(t, "Queue")
	song := env.newSong(t, "In Queue", artist, owner)

	_, err := env.svc.ListPendingSongs(ctx, owner, 1, 10)
	assert.True(t, catalog.IsForbidden(err))

	page, err := env.svc.ListPendingSongs(ctx, env.admin, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, song.ID, page.Items[0].ID)
}

func countID(ids []uuid.UUID, id uuid.UUID) int {
	n := 0
	for _, candidate := range ids {
		if candidate == id {
			n++
		}
	}
	return n
}
