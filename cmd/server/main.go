package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"

	"github.com/tunehub/tunehub-server/internal/api"
	"github.com/tunehub/tunehub-server/pkg/catalog"
	"github.com/tunehub/tunehub-server/pkg/catalog/config"
	"github.com/tunehub/tunehub-server/pkg/catalog/storage"
)

func buildRouter(svc catalog.Service, store storage.FileStore, tokenAuth *jwtauth.JWTAuth) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(jwtauth.Verifier(tokenAuth))
	r.Use(api.ActorExtractor)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/artists", api.NewArtistHandler(svc).Routes())
		r.Mount("/albums", api.NewAlbumHandler(svc).Routes())
		r.Mount("/songs", api.NewSongHandler(svc).Routes())
		r.Mount("/genres", api.NewGenreHandler(svc).Routes())
		r.Mount("/playlists", api.NewPlaylistHandler(svc).Routes())
		r.Mount("/media", api.NewMediaHandler(store).Routes())
	})

	return r
}

func main() {
	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	svc, err := cfg.BuildService(ctx)
	if err != nil {
		slog.Error("Failed to build catalog service", "err", err)
		os.Exit(1)
	}

	store, err := cfg.BuildFileStore()
	if err != nil {
		slog.Error("Failed to build file store", "err", err)
		os.Exit(1)
	}

	tokenAuth := api.NewTokenAuth(cfg.JWTSecret)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: buildRouter(svc, store, tokenAuth),
	}

	go func() {
		slog.Info("TuneHub server starting",
			"port", cfg.Port,
			"env", cfg.Environment,
			"database", cfg.DatabaseType,
			"storage", cfg.StorageBackend)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}
