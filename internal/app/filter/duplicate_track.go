package filter

import (
	"context"
	"regexp"
	"strings"

	"github.com/osa030/moodmix/internal/domain/track"
)

// DuplicateTrackFilterName is the config name of the duplicate track filter.
const DuplicateTrackFilterName = "duplicate_track_filter"

// DuplicateTrackConfig represents the configuration for DuplicateTrackFilter.
type DuplicateTrackConfig struct {
	// MatchVersions also rejects remasters, live takes and edits of an accepted
	// song by the same artist.
	MatchVersions bool `yaml:"match_versions" mapstructure:"match_versions"`
}

// DuplicateTrackFilter rejects tracks already in the playlist.
// Detects:
// - Exact track ID matches
// - Remasters (normalized track name + same artist), when MatchVersions is set
// Excludes:
// - Cover songs (same track name but different artist)
type DuplicateTrackFilter struct {
	config DuplicateTrackConfig
}

// NewDuplicateTrackFilter creates a new duplicate track filter.
func NewDuplicateTrackFilter() *DuplicateTrackFilter {
	return &DuplicateTrackFilter{}
}

// Name returns the filter name.
func (f *DuplicateTrackFilter) Name() string {
	return DuplicateTrackFilterName
}

// Description returns the filter description.
func (f *DuplicateTrackFilter) Description() string {
	return "Rejects tracks already in the playlist; optionally treats remasters and edits as the same song. Always enabled"
}

// ReturnCodes returns possible return codes.
func (f *DuplicateTrackFilter) ReturnCodes() []string {
	return []string{"duplicate_track"}
}

// ValidateConfig validates the filter configuration.
func (f *DuplicateTrackFilter) ValidateConfig(settings map[string]any) error {
	var config DuplicateTrackConfig
	if err := decodeSettings(settings, &config); err != nil {
		return err
	}
	f.config = config
	return nil
}

// Check checks if the candidate is a duplicate.
func (f *DuplicateTrackFilter) Check(ctx context.Context, candidate track.Track, accepted []track.Track) Result {
	for _, t := range accepted {
		// 1. Exact track ID match
		if t.ID == candidate.ID {
			return Reject("duplicate_track")
		}

		// 2. Remaster detection: normalized name + same artist
		if f.config.MatchVersions && isRemaster(t, candidate) {
			return Reject("duplicate_track")
		}
	}

	return Accept()
}

// isRemaster checks if two tracks are the same song (remaster/different version).
func isRemaster(track1, track2 track.Track) bool {
	if normalizeTrackName(track1.Name) != normalizeTrackName(track2.Name) {
		return false
	}

	// Different artists means a cover song
	return isSameArtist(track1, track2)
}

var (
	remasterPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\s*-?\s*\d{4}\s+remaster(ed)?`),          // "- 2011 Remaster"
		regexp.MustCompile(`\s*\(remaster(ed)?\s*\d{0,4}\)`),         // "(Remastered 2023)"
		regexp.MustCompile(`\s*\[remaster(ed)?\s*\d{0,4}\]`),         // "[Remastered]"
		regexp.MustCompile(`\s*-?\s*\bremaster(ed)?(\s+version)?\b`), // "- Remastered"
		regexp.MustCompile(`\s*\(.*?remaster.*?\)`),                  // "(Any Remaster text)"
		regexp.MustCompile(`\s*\[.*?remaster.*?\]`),                  // "[Any Remaster text]"
	}
	versionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\s*\(.*?version\)`),            // "(Single Version)"
		regexp.MustCompile(`\s*\(.*?edit\)`),               // "(Radio Edit)"
		regexp.MustCompile(`\s*\(live\)`),                  // "(Live)"
		regexp.MustCompile(`\s*-?\s*\blive\b`),             // "- Live"
		regexp.MustCompile(`\s*-?\s*\bradio\s+edit\b`),     // "- Radio Edit"
		regexp.MustCompile(`\s*-?\s*\bsingle\s+version\b`), // "- Single Version"
	}
	spaces = regexp.MustCompile(`\s+`)
)

// normalizeTrackName removes remaster information and version details.
func normalizeTrackName(name string) string {
	normalized := strings.ToLower(name)

	for _, pattern := range remasterPatterns {
		normalized = pattern.ReplaceAllString(normalized, "")
	}
	for _, pattern := range versionPatterns {
		normalized = pattern.ReplaceAllString(normalized, "")
	}

	normalized = strings.TrimSpace(normalized)
	normalized = spaces.ReplaceAllString(normalized, " ")

	return strings.TrimRight(normalized, " -")
}

// isSameArtist compares the first credited artists, case-insensitive.
func isSameArtist(track1, track2 track.Track) bool {
	if track1.Artist == "" || track2.Artist == "" {
		return false
	}
	return strings.EqualFold(track1.Artist, track2.Artist)
}

func init() {
	Register(DuplicateTrackFilterName, func() Filter {
		return NewDuplicateTrackFilter()
	})
}
