package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Role is the domain type for user roles.
type Role string

// Role constants (typed).
const (
	RoleListener Role = "listener"
	RoleArtist   Role = "artist"
	RoleAdmin    Role = "admin"
)

// Actor identifies who is performing an operation. A zero-value Actor
// represents an unauthenticated caller.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsAnonymous reports whether the actor is unauthenticated.
func (a Actor) IsAnonymous() bool { return a.Role == "" }

// SongStatus is the domain type for song lifecycle states.
type SongStatus string

// Song status constants (typed). None of the states is terminal; a song
// moves between them until it is explicitly deleted.
const (
	SongStatusPending  SongStatus = "pending"
	SongStatusApproved SongStatus = "approved"
	SongStatusRejected SongStatus = "rejected"
)

// Kind identifies an entity kind for bulk operations.
type Kind string

// Entity kind constants.
const (
	KindArtist   Kind = "artist"
	KindAlbum    Kind = "album"
	KindSong     Kind = "song"
	KindGenre    Kind = "genre"
	KindPlaylist Kind = "playlist"
)

// Artist represents an artist profile. OwnerUserID is nil for unclaimed
// profiles, which only admins can manage.
type Artist struct {
	ID          uuid.UUID  `json:"id"`
	OwnerUserID *uuid.UUID `json:"owner_user_id,omitempty"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Bio         string     `json:"bio,omitempty"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	Verified    bool       `json:"verified"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Album represents an album owned (through its artist) by a user.
type Album struct {
	ID          uuid.UUID  `json:"id"`
	ArtistID    uuid.UUID  `json:"artist_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Song represents a track in the catalog.
//
// Invariants maintained by the service layer:
//   - RejectionReason is only ever set while Status is rejected.
//   - ReviewedAt and ReviewedBy are either both set or both nil.
//   - PrimaryArtistID never appears in FeaturedArtistIDs.
type Song struct {
	ID                uuid.UUID   `json:"id"`
	PrimaryArtistID   uuid.UUID   `json:"primary_artist_id"`
	AlbumID           *uuid.UUID  `json:"album_id,omitempty"`
	FeaturedArtistIDs []uuid.UUID `json:"featured_artist_ids,omitempty"`
	GenreIDs          []uuid.UUID `json:"genre_ids,omitempty"`
	Title             string      `json:"title"`
	Slug              string      `json:"slug"`
	DurationMs        int64       `json:"duration_ms"`
	AudioURL          string      `json:"audio_url,omitempty"`
	CoverURL          string      `json:"cover_url,omitempty"`
	IsExplicit        bool        `json:"is_explicit"`
	Status            SongStatus  `json:"status"`
	RejectionReason   *string     `json:"rejection_reason,omitempty"`
	ReviewedAt        *time.Time  `json:"reviewed_at,omitempty"`
	ReviewedBy        *uuid.UUID  `json:"reviewed_by,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// Genre represents a music genre.
type Genre struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Playlist represents a user-owned playlist. TotalTracks and DurationMs
// are derived from the entries and recomputed in full on every membership
// change, never patched incrementally.
type Playlist struct {
	ID          uuid.UUID `json:"id"`
	OwnerUserID uuid.UUID `json:"owner_user_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	IsPublic    bool      `json:"is_public"`
	TotalTracks int       `json:"total_tracks"`
	DurationMs  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaylistEntry is the (playlist, song) membership pair. Positions are
// append-only (memberCount+1 on insert) and removals leave gaps that
// are never backfilled, so a re-add after a mid-list removal can repeat
// a surviving entry's position number. Ordering reads sort by position
// with insertion order as the tiebreaker.
type PlaylistEntry struct {
	PlaylistID uuid.UUID `json:"playlist_id"`
	SongID     uuid.UUID `json:"song_id"`
	Position   int       `json:"position"`
	AddedAt    time.Time `json:"added_at"`
	AddedBy    uuid.UUID `json:"added_by"`
}

// Page is a paginated result set.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NewPage builds a Page, normalizing page/limit to their defaults.
func NewPage[T any](items []T, total, page, limit int) Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	return Page[T]{Items: items, Total: total, Page: page, Limit: limit}
}

// DefaultPageLimit is applied when a list request does not set a limit.
const DefaultPageLimit = 10
