package recommend

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/osa030/moodmix/internal/domain/track"
)

// SpotifyProvider recommends tracks with the Spotify recommendations endpoint.
type SpotifyProvider struct {
	spotify SpotifyClient
}

// NewSpotifyProvider creates a new SpotifyProvider.
func NewSpotifyProvider(spotify SpotifyClient) (*SpotifyProvider, error) {
	if spotify == nil {
		return nil, errors.New("spotify client is required")
	}
	return &SpotifyProvider{spotify: spotify}, nil
}

// Recommend retrieves recommendations seeded by the seed track's ID.
func (p *SpotifyProvider) Recommend(ctx context.Context, seed track.Track, limit int, exclude map[string]bool) ([]track.Track, error) {
	if limit <= 0 {
		return []track.Track{}, nil
	}

	tracks, err := p.spotify.Recommendations(ctx, seed.ID, limit)
	if err != nil {
		return nil, err
	}

	result := make([]track.Track, 0, len(tracks))
	for _, t := range tracks {
		if exclude[t.ID] {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

// Name returns the provider name.
func (p *SpotifyProvider) Name() string {
	return "spotify"
}
