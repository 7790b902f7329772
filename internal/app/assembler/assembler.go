// Package assembler collects catalog tracks for a playlist concept.
package assembler

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/moodmix/internal/domain/track"
)

const (
	// seedSearchLimit is the number of results requested when looking up the favorite song.
	seedSearchLimit = 5
	// maxRecommendations caps the recommendation phase.
	maxRecommendations = 5
)

// Searcher searches the catalog.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]track.Track, error)
}

// Recommender recommends tracks similar to a seed track.
type Recommender interface {
	Recommend(ctx context.Context, seed track.Track, limit int, exclude map[string]bool) ([]track.Track, error)
}

// Filter decides which candidates are added to the accepted tracks.
type Filter interface {
	Apply(ctx context.Context, accepted []track.Track, candidates []track.Track) []track.Track
}

// Assembler builds the track list of a playlist.
type Assembler struct {
	searcher    Searcher
	recommender Recommender
	filter      Filter
}

// New creates a new Assembler. recommender and filter may be nil.
func New(searcher Searcher, recommender Recommender, filter Filter) *Assembler {
	return &Assembler{
		searcher:    searcher,
		recommender: recommender,
		filter:      filter,
	}
}

// Assemble returns at most target unique tracks for the concept.
// Tracks similar to favoriteSong fill the list when the concept search comes up short.
// Provider failures are logged and never returned.
func (a *Assembler) Assemble(ctx context.Context, concept, favoriteSong string, target int) []track.Track {
	if target <= 0 {
		return []track.Track{}
	}

	tracks := []track.Track{}

	found, err := a.searcher.Search(ctx, concept, target)
	if err != nil {
		zlog.Error().Err(err).Msgf("Concept search failed: concept=%q", concept)
		return tracks
	}
	tracks = a.accept(ctx, tracks, found)
	zlog.Debug().Msgf("concept search returned tracks: concept=%q count=%d", concept, len(tracks))

	if favoriteSong != "" && len(tracks) < target {
		tracks = a.addRecommendations(ctx, tracks, favoriteSong, target)
	}

	if len(tracks) > target {
		tracks = tracks[:target]
	}
	return tracks
}

// addRecommendations appends tracks similar to favoriteSong. Errors are logged and swallowed.
func (a *Assembler) addRecommendations(ctx context.Context, tracks []track.Track, favoriteSong string, target int) []track.Track {
	if a.recommender == nil {
		return tracks
	}

	seeds, err := a.searcher.Search(ctx, favoriteSong, seedSearchLimit)
	if err != nil {
		zlog.Warn().Err(err).Msgf("Favorite song lookup failed: song=%q", favoriteSong)
		return tracks
	}
	if len(seeds) == 0 {
		zlog.Debug().Msgf("favorite song not found: song=%q", favoriteSong)
		return tracks
	}
	seed := seeds[0]

	limit := min(maxRecommendations, target-len(tracks))
	exclude := make(map[string]bool, len(tracks))
	for _, t := range tracks {
		exclude[t.ID] = true
	}

	recs, err := a.recommender.Recommend(ctx, seed, limit, exclude)
	if err != nil {
		zlog.Warn().Err(err).Msgf("Recommendations failed: seed=%s", seed.ID)
		return tracks
	}

	before := len(tracks)
	tracks = a.accept(ctx, tracks, recs)
	zlog.Debug().Msgf("recommendations added: seed=%s requested=%d added=%d", seed.ID, limit, len(tracks)-before)
	return tracks
}

// accept runs candidates through the filter and drops duplicate IDs.
func (a *Assembler) accept(ctx context.Context, accepted, candidates []track.Track) []track.Track {
	if a.filter != nil {
		return track.Dedup(a.filter.Apply(ctx, accepted, candidates))
	}
	return track.Dedup(append(accepted, candidates...))
}
