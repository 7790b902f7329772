package recommend

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/moodmix/internal/domain/track"
	"github.com/osa030/moodmix/internal/infra/lastfm"
)

// LastFmClient defines the interface for Last.fm operations.
type LastFmClient interface {
	GetSimilarTracks(ctx context.Context, trackName, artistName string, limit int) ([]lastfm.SimilarTrack, error)
}

// LastFmProviderConfig represents the settings of the lastfm provider.
type LastFmProviderConfig struct {
	APIKey       string `yaml:"api_key" mapstructure:"api_key" validate:"required"`
	SimilarLimit int    `yaml:"similar_limit" mapstructure:"similar_limit" default:"20" validate:"gte=1,lte=100"`
}

// LastFmProvider recommends tracks from Last.fm similar tracks,
// resolved to catalog tracks with a Spotify search.
type LastFmProvider struct {
	lastfm  LastFmClient
	spotify SpotifyClient
	config  *LastFmProviderConfig
}

// NewLastFmProvider creates a new LastFmProvider.
func NewLastFmProvider(spotify SpotifyClient, settings map[string]any) (*LastFmProvider, error) {
	if spotify == nil {
		return nil, errors.New("spotify client is required")
	}
	if len(settings) == 0 {
		return nil, errors.New("settings are required")
	}

	var config LastFmProviderConfig
	if err := mapstructure.Decode(settings, &config); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}

	lastfmClient, err := lastfm.New(lastfm.Config{APIKey: config.APIKey})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create last.fm client")
	}

	return newLastFmProvider(lastfmClient, spotify, &config), nil
}

func newLastFmProvider(lfm LastFmClient, spotify SpotifyClient, config *LastFmProviderConfig) *LastFmProvider {
	return &LastFmProvider{
		lastfm:  lfm,
		spotify: spotify,
		config:  config,
	}
}

// Recommend retrieves tracks similar to seed.
// Similar tracks that cannot be found in the catalog are skipped.
func (p *LastFmProvider) Recommend(ctx context.Context, seed track.Track, limit int, exclude map[string]bool) ([]track.Track, error) {
	if limit <= 0 {
		return []track.Track{}, nil
	}
	if seed.Name == "" || seed.Artist == "" {
		return nil, errors.New("seed track needs a name and an artist")
	}

	similar, err := p.lastfm.GetSimilarTracks(ctx, seed.Name, seed.Artist, p.config.SimilarLimit)
	if err != nil {
		return nil, err
	}

	result := make([]track.Track, 0, limit)
	seen := make(map[string]bool)
	for _, sim := range similar {
		if len(result) >= limit {
			break
		}

		t := p.searchOnSpotify(ctx, sim.Name, sim.Artist)
		if t == nil || exclude[t.ID] || seen[t.ID] || t.ID == seed.ID {
			continue
		}
		seen[t.ID] = true
		result = append(result, *t)
	}

	return result, nil
}

// Name returns the provider name.
func (p *LastFmProvider) Name() string {
	return "lastfm"
}

// searchOnSpotify resolves a Last.fm track to a catalog track.
func (p *LastFmProvider) searchOnSpotify(ctx context.Context, trackName, artistName string) *track.Track {
	query := fmt.Sprintf("track:%s artist:%s", trackName, artistName)
	results, err := p.spotify.Search(ctx, query, 1)
	if err != nil {
		zlog.Debug().Msgf("spotify lookup failed: query=%q error=%v", query, err)
		return nil
	}
	if len(results) == 0 {
		return nil
	}
	return &results[0]
}
