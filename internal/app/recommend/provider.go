// Package recommend provides recommendation strategies seeded by a single track.
package recommend

import (
	"context"

	"github.com/osa030/moodmix/internal/domain/track"
)

// Provider is the interface for recommendation providers.
// Different implementations recommend tracks through different catalogs
// (e.g., Spotify recommendations, Last.fm similar tracks).
type Provider interface {
	// Recommend retrieves tracks similar to seed.
	// limit: the maximum number of tracks to return
	// exclude: track IDs that must not be returned
	Recommend(ctx context.Context, seed track.Track, limit int, exclude map[string]bool) ([]track.Track, error)

	// Name returns the provider name (used in config).
	Name() string
}

// SpotifyClient defines the catalog operations needed by providers.
type SpotifyClient interface {
	Search(ctx context.Context, query string, limit int) ([]track.Track, error)
	Recommendations(ctx context.Context, seedID string, limit int) ([]track.Track, error)
}
