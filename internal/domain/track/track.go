// Package track provides the Track domain entity.
package track

import (
	"encoding/json"
	"time"
)

// Track represents a catalog track as returned to clients.
// Only the first credited artist is kept.
type Track struct {
	ID         string `json:"id"`         // Spotify Track ID
	Name       string `json:"name"`       // Track name
	Artist     string `json:"artist"`     // First credited artist
	Album      string `json:"album"`      // Album name
	AlbumCover string `json:"albumCover"` // First album image URL, empty if none
	URL        string `json:"spotifyUrl"` // Spotify URL
	DurationMs int    `json:"duration"`   // Track duration in milliseconds
	PreviewURL string `json:"previewUrl"` // 30s preview URL, empty if none
}

// Duration returns the track duration.
func (t *Track) Duration() time.Duration {
	if t.DurationMs <= 0 {
		return 0
	}
	return time.Duration(t.DurationMs) * time.Millisecond
}

// MarshalJSON encodes a missing album cover or preview URL as null.
func (t Track) MarshalJSON() ([]byte, error) {
	type plain Track
	return json.Marshal(struct {
		plain
		AlbumCover *string `json:"albumCover"`
		PreviewURL *string `json:"previewUrl"`
	}{plain(t), Nullable(t.AlbumCover), Nullable(t.PreviewURL)})
}

// Nullable returns nil for an empty string.
func Nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Dedup removes duplicate tracks by ID, keeping the first occurrence.
func Dedup(tracks []Track) []Track {
	seen := make(map[string]bool)
	result := make([]Track, 0, len(tracks))

	for _, t := range tracks {
		if !seen[t.ID] {
			seen[t.ID] = true
			result = append(result, t)
		}
	}

	return result
}
