// Package concept turns a listener's mood and preferences into a mood description
// and a catalog search concept using a text generator.
package concept

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/moodmix/internal/infra/textgen"
)

const (
	descriptionSystem = "You are a music expert who creates engaging mood descriptions for playlists."
	conceptSystem     = "You are a music expert who creates effective Spotify search queries."

	descriptionMaxTokens   = 150
	descriptionTemperature = 0.7
	conceptMaxTokens       = 100
	conceptTemperature     = 0.8
)

// vibeKeywords maps each vibe level to search keywords.
var vibeKeywords = map[int]string{
	1:  "ambient, chill, lo-fi, peaceful",
	2:  "relaxing, smooth, gentle, calm",
	3:  "easy listening, soft, mellow",
	4:  "laid-back, groovy, soulful",
	5:  "balanced, melodic, rhythmic",
	6:  "upbeat, energetic, dynamic",
	7:  "powerful, driving, intense",
	8:  "high energy, fast-paced, electrifying",
	9:  "explosive, aggressive, adrenaline",
	10: "extreme, chaotic, overwhelming",
}

// Generator generates text for a prompt.
type Generator interface {
	Generate(ctx context.Context, p textgen.Prompt) (string, error)
}

// Synthesizer builds prompts and falls back to templated text when generation fails.
type Synthesizer struct {
	gen Generator
}

// NewSynthesizer creates a new Synthesizer. A nil generator always yields fallbacks.
func NewSynthesizer(gen Generator) *Synthesizer {
	return &Synthesizer{gen: gen}
}

// Describe returns a short human-readable description of the mood.
// It never fails.
func (s *Synthesizer) Describe(ctx context.Context, mood string, genres []string, vibeLevel int) string {
	genreText := "Any genre"
	if len(genres) > 0 {
		genreText = strings.Join(genres, ", ")
	}

	prompt := fmt.Sprintf(`Analyze this mood and create a short, engaging description (2-3 sentences):

Mood: %s
Genres: %s
Energy Level: %s (level %d/10)

Create a description that captures the emotional essence and musical vibe.`,
		mood, genreText, EnergyBucket(vibeLevel), vibeLevel)

	out, err := s.generate(ctx, textgen.Prompt{
		System:      descriptionSystem,
		User:        prompt,
		MaxTokens:   descriptionMaxTokens,
		Temperature: descriptionTemperature,
	})
	if err != nil {
		zlog.Warn().Err(err).Msg("Mood description generation failed, using fallback")
		return FallbackDescription(mood, genres)
	}
	return out
}

// Concept returns a plain catalog search string for the mood.
// It never fails.
func (s *Synthesizer) Concept(ctx context.Context, mood string, genres []string, favoriteSong string, vibeLevel int) string {
	var genreText, songText string
	if len(genres) > 0 {
		genreText = "genre:" + strings.Join(genres, ", ")
	}
	if favoriteSong != "" {
		songText = "similar to " + favoriteSong
	}

	prompt := fmt.Sprintf(`Create a Spotify search query to find tracks that match this mood:

Mood: %s
Genres: %s
Favorite Song: %s
Energy Level: %s

Return only the search terms, no explanations. Focus on mood keywords, emotions, and musical characteristics.`,
		mood, genreText, songText, VibeKeywords(vibeLevel))

	out, err := s.generate(ctx, textgen.Prompt{
		System:      conceptSystem,
		User:        prompt,
		MaxTokens:   conceptMaxTokens,
		Temperature: conceptTemperature,
	})
	if err != nil {
		zlog.Warn().Err(err).Msg("Playlist concept generation failed, using fallback")
		return FallbackConcept(mood, genres)
	}
	return out
}

func (s *Synthesizer) generate(ctx context.Context, p textgen.Prompt) (string, error) {
	if s.gen == nil {
		return "", errors.New("no text generator configured")
	}
	out, err := s.gen.Generate(ctx, p)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", errors.New("empty completion")
	}
	return out, nil
}

// EnergyBucket maps a vibe level to a textual energy description.
func EnergyBucket(vibeLevel int) string {
	switch {
	case vibeLevel <= 3:
		return "chill and relaxed"
	case vibeLevel <= 7:
		return "moderate energy"
	default:
		return "high energy and intense"
	}
}

// VibeKeywords maps a vibe level to search keywords, "energetic" outside 1..10.
func VibeKeywords(vibeLevel int) string {
	if kw, ok := vibeKeywords[vibeLevel]; ok {
		return kw
	}
	return "energetic"
}

// FallbackDescription builds a description from the request fields alone.
func FallbackDescription(mood string, genres []string) string {
	genreText := "diverse"
	if len(genres) > 0 {
		genreText = strings.Join(genres, ", ")
	}
	return fmt.Sprintf("A %s playlist with %s music", mood, genreText)
}

// FallbackConcept builds a search concept from the request fields alone.
func FallbackConcept(mood string, genres []string) string {
	genreText := "music"
	if len(genres) > 0 {
		genreText = strings.Join(genres, ", ")
	}
	return fmt.Sprintf("%s %s", mood, genreText)
}
