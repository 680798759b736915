// Package redis provides a catalog.EventSink backed by Redis pub/sub.
// Each event is published as a JSON envelope on a per-event channel so
// downstream consumers (notification workers, search indexers) can
// subscribe selectively.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tunehub/tunehub-server/pkg/catalog"
)

// Channel names for catalog events.
const (
	ChannelSongSubmitted   = "catalog:song:submitted"
	ChannelSongApproved    = "catalog:song:approved"
	ChannelSongRejected    = "catalog:song:rejected"
	ChannelPlaylistChanged = "catalog:playlist:changed"
)

// Sink publishes catalog events to Redis channels.
type Sink struct {
	client *goredis.Client
}

// New creates a Sink using an already-configured Redis client.
func New(client *goredis.Client) *Sink {
	return &Sink{client: client}
}

// NewFromAddr creates a Sink with its own Redis client and verifies the
// connection with a ping.
func NewFromAddr(ctx context.Context, addr, password string, db int) (*Sink, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &Sink{client: client}, nil
}

// Close releases the underlying Redis client.
func (s *Sink) Close() error {
	return s.client.Close()
}

type songEvent struct {
	SongID    string    `json:"song_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	ArtistID  string    `json:"artist_id"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type playlistEvent struct {
	PlaylistID  string    `json:"playlist_id"`
	Slug        string    `json:"slug"`
	TotalTracks int       `json:"total_tracks"`
	DurationMs  int64     `json:"duration_ms"`
	Timestamp   time.Time `json:"timestamp"`
}

func (s *Sink) publish(ctx context.Context, channel string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := s.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}

func (s *Sink) songPayload(song *catalog.Song) songEvent {
	ev := songEvent{
		SongID:    song.ID.String(),
		Title:     song.Title,
		Slug:      song.Slug,
		ArtistID:  song.PrimaryArtistID.String(),
		Status:    string(song.Status),
		Timestamp: time.Now().UTC(),
	}
	if song.RejectionReason != nil {
		ev.Reason = *song.RejectionReason
	}
	return ev
}

func (s *Sink) SongSubmitted(ctx context.Context, song *catalog.Song) error {
	return s.publish(ctx, ChannelSongSubmitted, s.songPayload(song))
}

func (s *Sink) SongApproved(ctx context.Context, song *catalog.Song) error {
	return s.publish(ctx, ChannelSongApproved, s.songPayload(song))
}

func (s *Sink) SongRejected(ctx context.Context, song *catalog.Song) error {
	return s.publish(ctx, ChannelSongRejected, s.songPayload(song))
}

func (s *Sink) PlaylistChanged(ctx context.Context, playlist *catalog.Playlist) error {
	return s.publish(ctx, ChannelPlaylistChanged, playlistEvent{
		PlaylistID:  playlist.ID.String(),
		Slug:        playlist.Slug,
		TotalTracks: playlist.TotalTracks,
		DurationMs:  playlist.DurationMs,
		Timestamp:   time.Now().UTC(),
	})
}
