package recommend

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/moodmix/internal/domain/track"
)

// Chain tries multiple providers in order until enough tracks are found.
type Chain struct {
	providers []Provider
}

// NewChain creates a new provider chain.
func NewChain(providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
	}
}

// Recommend collects up to limit tracks similar to seed, asking each provider
// in turn for the remainder. Tracks in exclude and tracks already returned by
// an earlier provider are skipped.
// An error is returned only when every provider failed.
func (c *Chain) Recommend(ctx context.Context, seed track.Track, limit int, exclude map[string]bool) ([]track.Track, error) {
	if limit <= 0 {
		return []track.Track{}, nil
	}

	result := make([]track.Track, 0, limit)
	currentExclude := make(map[string]bool, len(exclude))
	for k, v := range exclude {
		currentExclude[k] = v
	}

	var lastErr error
	failed := 0
	for i, p := range c.providers {
		remaining := limit - len(result)
		if remaining <= 0 {
			break
		}

		zlog.Debug().Msgf("trying provider: index=%d total=%d name=%s remaining=%d",
			i+1, len(c.providers), p.Name(), remaining)

		tracks, err := p.Recommend(ctx, seed, remaining, currentExclude)
		if err != nil {
			zlog.Warn().Msgf("provider failed, trying next: provider=%s error=%v", p.Name(), err)
			lastErr = err
			failed++
			continue
		}

		added := 0
		for _, t := range tracks {
			if len(result) >= limit {
				break
			}
			if currentExclude[t.ID] {
				continue
			}
			// Update exclude set to avoid duplicates from next provider
			currentExclude[t.ID] = true
			result = append(result, t)
			added++
		}

		zlog.Info().Msgf("provider returned recommendations: provider=%s count=%d total_so_far=%d",
			p.Name(), added, len(result))
	}

	if len(result) == 0 && failed > 0 && failed == len(c.providers) {
		return nil, errors.Wrap(lastErr, "all providers failed to return recommendations")
	}

	return result, nil
}

// Providers returns the provider names in the order they are tried.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}
