package catalog

import "context"

// NoopEventSink is an EventSink that discards all events.
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-op event sink
func NewNoopEventSink() *NoopEventSink { return &NoopEventSink{} }

func (NoopEventSink) SongSubmitted(ctx context.Context, song *Song) error  { return nil }
func (NoopEventSink) SongApproved(ctx context.Context, song *Song) error   { return nil }
func (NoopEventSink) SongRejected(ctx context.Context, song *Song) error   { return nil }
func (NoopEventSink) PlaylistChanged(ctx context.Context, pl *Playlist) error { return nil }
