// Package catalog implements the content lifecycle and ownership engine
// of the music catalog: the song review state machine, the User→Artist→
// Song/Album ownership chain, unique slug allocation, and playlist
// membership with derived aggregates.
//
// The package is transport-agnostic. Construct a Service with a
// Repository implementation (see repo/memory and repo/postgres) and wire
// it behind whatever surface you need:
//
//	repo := memory.New()
//	svc, err := catalog.New(catalog.WithRepository(repo))
//	if err != nil {
//		log.Fatal(err)
//	}
//	song, err := svc.CreateSong(ctx, catalog.CreateSongRequest{...}, actor)
//
// All mutations take an Actor and are checked against the ownership rule
// (admin, or actor owns the resolved resource owner) before any write.
// Business-rule violations surface as typed failures: IsNotFound,
// IsForbidden and IsConflict classify them for transport layers.
package catalog
