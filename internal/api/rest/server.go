// Package rest provides the JSON HTTP API.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	zlog "github.com/rs/zerolog/log"

	domain "github.com/osa030/moodmix/internal/domain/playlist"
)

// Generator generates playlists.
type Generator interface {
	Generate(ctx context.Context, req domain.Request) (*domain.Playlist, error)
}

// Store gives access to saved playlists.
type Store interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Playlist, error)
	Delete(ctx context.Context, id string) error
}

// Options configures the router.
type Options struct {
	// CORSOrigins lists allowed origins; empty allows all.
	CORSOrigins []string
}

// NewRouter creates the API router.
func NewRouter(gen Generator, store Store, opts Options) http.Handler {
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	h := &handlers{gen: gen, store: store}
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handle(h.health))
		r.Method(http.MethodPost, "/generate-playlist", handle(h.generatePlaylist))
		r.Method(http.MethodGet, "/playlists/{userId}", handle(h.listPlaylists))
		r.Method(http.MethodDelete, "/playlists/{playlistId}", handle(h.deletePlaylist))
	})

	return r
}

// requestLogger logs each request with its status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		zlog.Info().Msgf("HTTP request: method=%s path=%s status=%d bytes=%d duration=%s request_id=%s",
			r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}
