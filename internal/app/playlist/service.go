// Package playlist orchestrates playlist generation and access to saved playlists.
package playlist

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	domain "github.com/osa030/moodmix/internal/domain/playlist"
	"github.com/osa030/moodmix/internal/domain/track"
)

// ErrGenerationFailed is returned when generation aborts unexpectedly.
var ErrGenerationFailed = errors.New("failed to generate playlist")

// Synthesizer produces the mood description and the search concept.
type Synthesizer interface {
	Describe(ctx context.Context, mood string, genres []string, vibeLevel int) string
	Concept(ctx context.Context, mood string, genres []string, favoriteSong string, vibeLevel int) string
}

// Assembler collects the tracks for a concept.
type Assembler interface {
	Assemble(ctx context.Context, concept, favoriteSong string, target int) []track.Track
}

// Service generates playlists.
type Service struct {
	synth     Synthesizer
	assembler Assembler
	store     *StoreService
	now       func() time.Time
}

// NewService creates a new Service. store may be nil, in which case nothing is persisted.
func NewService(synth Synthesizer, assembler Assembler, store *StoreService) *Service {
	return &Service{
		synth:     synth,
		assembler: assembler,
		store:     store,
		now:       time.Now,
	}
}

// Generate builds a playlist for the request and saves it when the request carries a user ID.
// Only validation errors and ErrGenerationFailed are returned; provider failures
// degrade to fallback text or fewer tracks.
func (s *Service) Generate(ctx context.Context, req domain.Request) (*domain.Playlist, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.UserID != "" {
		s.persist(ctx, *p)
	}

	zlog.Info().Msgf("Playlist generated: mood=%q tracks=%d duration=%ds user=%s",
		p.Mood, len(p.Tracks), p.TotalDuration(), p.UserID)
	zlog.Debug().Strs("tracks", p.TrackIDs()).Msg("playlist tracks")
	return p, nil
}

// build runs the generation steps, turning a panic into ErrGenerationFailed.
func (s *Service) build(ctx context.Context, req domain.Request) (p *domain.Playlist, err error) {
	defer func() {
		if r := recover(); r != nil {
			zlog.Error().Msgf("Playlist generation panicked: mood=%q panic=%v", req.Mood, r)
			p = nil
			err = errors.Wrap(ErrGenerationFailed, fmt.Sprint(r))
		}
	}()

	genres := req.GenreList()
	vibe := req.Vibe()
	length := req.LengthMinutes()

	description := s.synth.Describe(ctx, req.Mood, genres, vibe)
	concept := s.synth.Concept(ctx, req.Mood, genres, req.FavoriteSong, vibe)
	zlog.Debug().Msgf("concept synthesized: mood=%q concept=%q", req.Mood, concept)

	target := domain.TargetTrackCount(length)
	tracks := s.assembler.Assemble(ctx, concept, req.FavoriteSong, target)
	if tracks == nil {
		tracks = []track.Track{}
	}

	return &domain.Playlist{
		Mood:            req.Mood,
		MoodDescription: description,
		PlaylistConcept: concept,
		Tracks:          tracks,
		PlaylistLength:  length,
		VibeLevel:       vibe,
		Genres:          genres,
		FavoriteSong:    req.FavoriteSong,
		CreatedAt:       s.now(),
		UserID:          req.UserID,
	}, nil
}

// persist saves the playlist; failures are logged only.
func (s *Service) persist(ctx context.Context, p domain.Playlist) {
	id, err := s.store.Save(ctx, p)
	if err != nil {
		zlog.Warn().Err(err).Msgf("Failed to save playlist: user=%s", p.UserID)
		return
	}
	zlog.Debug().Msgf("playlist saved: id=%s user=%s", id, p.UserID)
}
