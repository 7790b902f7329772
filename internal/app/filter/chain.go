package filter

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/moodmix/internal/domain/track"
	"github.com/osa030/moodmix/internal/infra/config"
)

// Chain executes filters in sequence.
type Chain struct {
	filters []Filter
}

// NewChain creates a new filter chain.
func NewChain() *Chain {
	return &Chain{
		filters: make([]Filter, 0),
	}
}

// NewChainFromConfig builds a chain from configuration.
// The duplicate track filter is always installed first; other registered
// filters are added in name order when enabled.
func NewChainFromConfig(cfg *config.Config) (*Chain, error) {
	c := NewChain()

	if fc, ok := cfg.Filters[DuplicateTrackFilterName]; ok && !fc.Enabled {
		zlog.Warn().Msgf("Filter %s cannot be disabled, ignoring enabled=false", DuplicateTrackFilterName)
	}
	dup := NewDuplicateTrackFilter()
	if err := dup.ValidateConfig(cfg.FilterSettings(DuplicateTrackFilterName)); err != nil {
		return nil, errors.Wrapf(err, "invalid config for filter %s", DuplicateTrackFilterName)
	}
	c.Add(dup)

	for _, name := range Names() {
		if name == DuplicateTrackFilterName || !cfg.IsFilterEnabled(name) {
			continue
		}
		f := registry[name]()
		if err := f.ValidateConfig(cfg.FilterSettings(name)); err != nil {
			return nil, errors.Wrapf(err, "invalid config for filter %s", name)
		}
		c.Add(f)
		zlog.Info().Msgf("filter enabled: name=%s", name)
	}

	return c, nil
}

// Add adds a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Execute runs all filters in sequence.
// Returns immediately if any filter rejects the candidate.
func (c *Chain) Execute(ctx context.Context, candidate track.Track, accepted []track.Track) Result {
	for _, f := range c.filters {
		result := f.Check(ctx, candidate, accepted)
		if !result.Accepted {
			return result
		}
	}
	return Accept()
}

// Apply appends each candidate that passes the chain to accepted and returns the result.
// Candidates are checked against everything accepted so far, including earlier candidates.
// A nil chain accepts everything.
func (c *Chain) Apply(ctx context.Context, accepted []track.Track, candidates []track.Track) []track.Track {
	for _, cand := range candidates {
		if c != nil {
			result := c.Execute(ctx, cand, accepted)
			if !result.Accepted {
				zlog.Debug().Msgf("candidate rejected by filter: track_id=%s name=%s reason=%s", cand.ID, cand.Name, result.Code)
				continue
			}
		}
		accepted = append(accepted, cand)
	}
	return accepted
}

// Filters returns all filters in the chain.
func (c *Chain) Filters() []Filter {
	return c.filters
}
