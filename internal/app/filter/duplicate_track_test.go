package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/moodmix/internal/domain/track"
)

func newVersionMatchingFilter(t *testing.T) *DuplicateTrackFilter {
	t.Helper()
	f := NewDuplicateTrackFilter()
	require.NoError(t, f.ValidateConfig(map[string]any{"match_versions": true}))
	return f
}

func TestDuplicateTrackFilter_ExactIDMatch(t *testing.T) {
	accepted := []track.Track{{ID: "track123", Name: "Bohemian Rhapsody", Artist: "Queen"}}

	filter := NewDuplicateTrackFilter()

	// Same track ID should be rejected even with a different title
	result := filter.Check(
		context.Background(),
		track.Track{ID: "track123", Name: "Bohemian Rhapsody - 2011 Remaster", Artist: "Queen"},
		accepted,
	)

	assert.False(t, result.Accepted)
	assert.Equal(t, "duplicate_track", result.Code)
}

func TestDuplicateTrackFilter_VersionsAllowedByDefault(t *testing.T) {
	accepted := []track.Track{{ID: "original123", Name: "Yesterday", Artist: "The Beatles"}}

	result := NewDuplicateTrackFilter().Check(
		context.Background(),
		track.Track{ID: "remaster456", Name: "Yesterday (Remastered 2023)", Artist: "The Beatles"},
		accepted,
	)

	assert.True(t, result.Accepted, "remasters are distinct tracks unless match_versions is set")
}

func TestDuplicateTrackFilter_RemasterDetection(t *testing.T) {
	tests := []struct {
		name          string
		acceptedTrack track.Track
		candidate     track.Track
		shouldReject  bool
		description   string
	}{
		{
			name: "Standard remaster pattern",
			acceptedTrack: track.Track{
				ID:     "original123",
				Name:   "Bohemian Rhapsody",
				Artist: "Queen",
			},
			candidate: track.Track{
				ID:     "remaster456",
				Name:   "Bohemian Rhapsody - 2011 Remaster",
				Artist: "Queen",
			},
			shouldReject: true,
			description:  "Should detect '- 2011 Remaster' as duplicate",
		},
		{
			name: "Remastered in parentheses",
			acceptedTrack: track.Track{
				ID:     "original123",
				Name:   "Yesterday",
				Artist: "The Beatles",
			},
			candidate: track.Track{
				ID:     "remaster456",
				Name:   "Yesterday (Remastered 2023)",
				Artist: "The Beatles",
			},
			shouldReject: true,
			description:  "Should detect '(Remastered 2023)' as duplicate",
		},
		{
			name: "Cover song - different artist",
			acceptedTrack: track.Track{
				ID:     "original123",
				Name:   "Yesterday",
				Artist: "The Beatles",
			},
			candidate: track.Track{
				ID:     "cover789",
				Name:   "Yesterday",
				Artist: "Paul McCartney",
			},
			shouldReject: false,
			description:  "Should allow cover by different artist",
		},
		{
			name: "Different songs - similar names",
			acceptedTrack: track.Track{
				ID:     "track1",
				Name:   "Love",
				Artist: "John Lennon",
			},
			candidate: track.Track{
				ID:     "track2",
				Name:   "Love Song",
				Artist: "John Lennon",
			},
			shouldReject: false,
			description:  "Should allow different songs",
		},
		{
			name: "Radio Edit version",
			acceptedTrack: track.Track{
				ID:     "album123",
				Name:   "Stairway to Heaven",
				Artist: "Led Zeppelin",
			},
			candidate: track.Track{
				ID:     "radio456",
				Name:   "Stairway to Heaven (Radio Edit)",
				Artist: "Led Zeppelin",
			},
			shouldReject: true,
			description:  "Should detect radio edit as duplicate",
		},
		{
			name: "Live version",
			acceptedTrack: track.Track{
				ID:     "studio123",
				Name:   "Hotel California",
				Artist: "Eagles",
			},
			candidate: track.Track{
				ID:     "live456",
				Name:   "Hotel California - Live",
				Artist: "Eagles",
			},
			shouldReject: true,
			description:  "Should detect live version as duplicate",
		},
		{
			name: "Multiple remasters in queue",
			acceptedTrack: track.Track{
				ID:     "remaster2011",
				Name:   "Let It Be - 2011 Remaster",
				Artist: "The Beatles",
			},
			candidate: track.Track{
				ID:     "remaster2023",
				Name:   "Let It Be (Remastered 2023)",
				Artist: "The Beatles",
			},
			shouldReject: true,
			description:  "Should detect different remasters as duplicate",
		},
		{
			name: "Remix version - should be allowed",
			acceptedTrack: track.Track{
				ID:     "original123",
				Name:   "Le Freak",
				Artist: "CHIC",
			},
			candidate: track.Track{
				ID:     "remix456",
				Name:   "Le Freak (Oliver Heldens Remix)",
				Artist: "CHIC",
			},
			shouldReject: false,
			description:  "Should allow remix version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := newVersionMatchingFilter(t)
			result := filter.Check(context.Background(), tt.candidate, []track.Track{tt.acceptedTrack})

			if tt.shouldReject {
				assert.False(t, result.Accepted, tt.description)
				assert.Equal(t, "duplicate_track", result.Code)
			} else {
				assert.True(t, result.Accepted, tt.description)
			}
		})
	}
}

func TestDuplicateTrackFilter_VersionWordsInsideTitles(t *testing.T) {
	filter := newVersionMatchingFilter(t)
	accepted := []track.Track{{ID: "a1", Name: "A", Artist: "Pearl Jam"}}

	result := filter.Check(context.Background(), track.Track{ID: "a2", Name: "Alive", Artist: "Pearl Jam"}, accepted)
	assert.True(t, result.Accepted, "live inside a word is not a version marker")

	result = filter.Check(context.Background(), track.Track{ID: "a3", Name: "A - Live", Artist: "Pearl Jam"}, accepted)
	assert.False(t, result.Accepted)
}

func TestDuplicateTrackFilter_EmptyPlaylist(t *testing.T) {
	filter := NewDuplicateTrackFilter()

	result := filter.Check(
		context.Background(),
		track.Track{ID: "track123", Name: "Any Song", Artist: "Any Artist"},
		nil,
	)

	assert.True(t, result.Accepted, "Should accept any track when nothing is accepted yet")
}

func TestDuplicateTrackFilter_ValidateConfig(t *testing.T) {
	f := NewDuplicateTrackFilter()
	assert.NoError(t, f.ValidateConfig(nil))
	assert.False(t, f.config.MatchVersions)

	assert.NoError(t, f.ValidateConfig(map[string]any{"match_versions": "true"}))
	assert.True(t, f.config.MatchVersions)

	assert.Error(t, f.ValidateConfig(map[string]any{"match_versions": "sometimes"}))
}

func TestNormalizeTrackName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Bohemian Rhapsody", "bohemian rhapsody"},
		{"Bohemian Rhapsody - 2011 Remaster", "bohemian rhapsody"},
		{"Yesterday (Remastered 2023)", "yesterday"},
		{"Hotel California [Remastered]", "hotel california"},
		{"Stairway to Heaven (Radio Edit)", "stairway to heaven"},
		{"Imagine - Live", "imagine"},
		{"Let It Be (Single Version)", "let it be"},
		{"Hey Jude - Remastered Version", "hey jude"},
		{"Come Together (2019 Mix)", "come together (2019 mix)"},
		{"   Extra   Spaces   ", "extra spaces"},
		{"Jump (Live)", "jump"},
		{"Alive", "alive"},
		{"Oliver's Army", "oliver's army"},
		{"Delivery Man", "delivery man"},
		{"Liverpool Drive - Live", "liverpool drive"},
		{"Singleversion", "singleversion"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := normalizeTrackName(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsSameArtist(t *testing.T) {
	tests := []struct {
		name     string
		track1   track.Track
		track2   track.Track
		expected bool
	}{
		{
			name:     "Same artist",
			track1:   track.Track{Artist: "Queen"},
			track2:   track.Track{Artist: "Queen"},
			expected: true,
		},
		{
			name:     "Same artist - case insensitive",
			track1:   track.Track{Artist: "Queen"},
			track2:   track.Track{Artist: "queen"},
			expected: true,
		},
		{
			name:     "Different artists",
			track1:   track.Track{Artist: "The Beatles"},
			track2:   track.Track{Artist: "Paul McCartney"},
			expected: false,
		},
		{
			name:     "Empty artists array",
			track1:   track.Track{Artist: ""},
			track2:   track.Track{Artist: "Queen"},
			expected: false,
		},
		{
			name:     "Multiple artists - compare first",
			track1:   track.Track{Artist: "Queen"},
			track2:   track.Track{Artist: "Queen"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isSameArtist(tt.track1, tt.track2)
			assert.Equal(t, tt.expected, result)
		})
	}
}
