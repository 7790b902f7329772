// Package spotify provides a catalog client for the Spotify Web API.
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/osa030/moodmix/internal/domain/track"
	"github.com/osa030/moodmix/internal/infra/provider"
)

const maxLimit = 50

// Client is a Spotify catalog client authenticated with app credentials.
type Client struct {
	client *spotify.Client
	market string
}

// Config represents Spotify client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	Market       string
}

// New creates a new Spotify client using the client credentials flow.
// Tokens are fetched lazily and refreshed by the oauth2 transport.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("spotify credentials are required")
	}

	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	return newClient(creds.Client(ctx), cfg.Market), nil
}

func newClient(httpClient *http.Client, market string, opts ...spotify.ClientOption) *Client {
	return &Client{
		client: spotify.New(httpClient, opts...),
		market: market,
	}
}

// Search searches the catalog for tracks matching query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]track.Track, error) {
	if strings.TrimSpace(query) == "" {
		return nil, provider.Newf(provider.Spotify, "search query is required")
	}
	if limit <= 0 {
		return nil, provider.Newf(provider.Spotify, "search limit must be positive, got %d", limit)
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	result, err := c.client.Search(ctx, query, spotify.SearchTypeTrack, c.options(limit)...)
	if err != nil {
		return nil, provider.Wrap(provider.Spotify, err, "failed to search")
	}
	if result.Tracks == nil {
		return []track.Track{}, nil
	}

	tracks := make([]track.Track, 0, len(result.Tracks.Tracks))
	for _, t := range result.Tracks.Tracks {
		tracks = append(tracks, c.convertTrack(t.SimpleTrack, t.Album))
	}

	return tracks, nil
}

// Recommendations returns tracks similar to the seed track.
// seedID can be a Spotify ID, URL, or URI.
func (c *Client) Recommendations(ctx context.Context, seedID string, limit int) ([]track.Track, error) {
	id := extractTrackID(seedID)
	if id == "" {
		return nil, provider.Newf(provider.Spotify, "seed track is required")
	}
	if limit <= 0 {
		return nil, provider.Newf(provider.Spotify, "recommendation limit must be positive, got %d", limit)
	}

	seeds := spotify.Seeds{Tracks: []spotify.ID{spotify.ID(id)}}
	result, err := c.client.GetRecommendations(ctx, seeds, nil, c.options(limit)...)
	if err != nil {
		return nil, provider.Wrap(provider.Spotify, err, "failed to get recommendations")
	}

	tracks := make([]track.Track, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		tracks = append(tracks, c.convertTrack(t, t.Album))
	}

	return tracks, nil
}

func (c *Client) options(limit int) []spotify.RequestOption {
	opts := []spotify.RequestOption{spotify.Limit(limit)}
	if c.market != "" {
		opts = append(opts, spotify.Market(c.market))
	}
	return opts
}

// convertTrack converts a Spotify track to the domain Track.
func (c *Client) convertTrack(t spotify.SimpleTrack, album spotify.SimpleAlbum) track.Track {
	var artist string
	if len(t.Artists) > 0 {
		artist = t.Artists[0].Name
	}

	var albumCover string
	if len(album.Images) > 0 {
		albumCover = album.Images[0].URL
	}

	duration := int(t.Duration)
	if duration < 0 {
		duration = 0
	}

	return track.Track{
		ID:         string(t.ID),
		Name:       t.Name,
		Artist:     artist,
		Album:      album.Name,
		AlbumCover: albumCover,
		URL:        c.GetTrackURL(string(t.ID)),
		DurationMs: duration,
		PreviewURL: t.PreviewURL,
	}
}

// GetTrackURL returns the Spotify URL for a track.
func (c *Client) GetTrackURL(trackID string) string {
	return fmt.Sprintf("https://open.spotify.com/track/%s", trackID)
}

// extractTrackID extracts the track ID from a Spotify track URL or URI.
func extractTrackID(input string) string {
	input = strings.TrimSpace(input)
	// Handle Spotify URI format: spotify:track:TRACK_ID
	if strings.HasPrefix(input, "spotify:track:") {
		return strings.TrimPrefix(input, "spotify:track:")
	}

	// Handle URL format: https://open.spotify.com/track/TRACK_ID or https://open.spotify.com/intl-XX/track/TRACK_ID
	if strings.Contains(input, "open.spotify.com") && strings.Contains(input, "/track/") {
		parts := strings.Split(input, "/track/")
		if len(parts) >= 2 {
			// Remove query parameters and trailing slashes
			id := strings.Split(parts[len(parts)-1], "?")[0]
			id = strings.TrimRight(id, "/")
			return id
		}
	}

	// Assume it's already a track ID
	return input
}
