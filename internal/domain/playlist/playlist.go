// Package playlist provides the Playlist domain entity and the request it is built from.
package playlist

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/osa030/moodmix/internal/domain/track"
)

const (
	// DefaultVibeLevel is used when the request omits vibeLevel.
	DefaultVibeLevel = 5
	// DefaultLengthMinutes is used when the request omits playlistLength.
	DefaultLengthMinutes = 30
	// MinTargetTracks is the lower bound of the target track count.
	MinTargetTracks = 10
	// minutesPerTrack approximates an average track length.
	minutesPerTrack = 3
)

// ErrMoodRequired is returned when a request has no mood.
var ErrMoodRequired = errors.New("mood is required")

// Request represents a playlist generation request.
// Optional numeric fields are pointers so that omitted values get defaults.
type Request struct {
	Mood           string   `json:"mood"`
	FavoriteSong   string   `json:"favoriteSong,omitempty"`
	Genres         []string `json:"genres,omitempty"`
	VibeLevel      *int     `json:"vibeLevel,omitempty"`
	PlaylistLength *int     `json:"playlistLength,omitempty"`
	UserID         string   `json:"userId,omitempty"`
}

// Validate checks the request invariants.
func (r *Request) Validate() error {
	if r.Mood == "" {
		return ErrMoodRequired
	}
	return nil
}

// Vibe returns the requested vibe level or the default.
// Out-of-range values are passed through unchanged.
func (r *Request) Vibe() int {
	if r.VibeLevel == nil {
		return DefaultVibeLevel
	}
	return *r.VibeLevel
}

// LengthMinutes returns the requested playlist length or the default
// when it is omitted or not positive.
func (r *Request) LengthMinutes() int {
	if r.PlaylistLength == nil || *r.PlaylistLength <= 0 {
		return DefaultLengthMinutes
	}
	return *r.PlaylistLength
}

// GenreList returns the requested genres, never nil.
func (r *Request) GenreList() []string {
	if r.Genres == nil {
		return []string{}
	}
	return r.Genres
}

// TargetTrackCount returns max(10, lengthMinutes/3).
func TargetTrackCount(lengthMinutes int) int {
	n := lengthMinutes / minutesPerTrack
	if n < MinTargetTracks {
		return MinTargetTracks
	}
	return n
}

// Playlist represents a generated playlist.
// ID is only set on playlists read back from the store.
type Playlist struct {
	ID              string        `json:"id,omitempty"`
	Mood            string        `json:"mood"`
	MoodDescription string        `json:"moodDescription"`
	PlaylistConcept string        `json:"playlistConcept"`
	Tracks          []track.Track `json:"tracks"`
	PlaylistLength  int           `json:"playlistLength"`
	VibeLevel       int           `json:"vibeLevel"`
	Genres          []string      `json:"genres"`
	FavoriteSong    string        `json:"favoriteSong"`
	CreatedAt       time.Time     `json:"timestamp"`
	UserID          string        `json:"userId"`
}

// MarshalJSON encodes an anonymous playlist with a null userId.
func (p Playlist) MarshalJSON() ([]byte, error) {
	type plain Playlist
	return json.Marshal(struct {
		plain
		UserID *string `json:"userId"`
	}{plain(p), track.Nullable(p.UserID)})
}

// TrackIDs returns all track IDs in the playlist.
func (p *Playlist) TrackIDs() []string {
	ids := make([]string, len(p.Tracks))
	for i, t := range p.Tracks {
		ids[i] = t.ID
	}
	return ids
}

// TotalDuration returns the total duration of all tracks in seconds.
func (p *Playlist) TotalDuration() int64 {
	var total int64
	for _, t := range p.Tracks {
		total += int64(t.Duration().Seconds())
	}
	return total
}
