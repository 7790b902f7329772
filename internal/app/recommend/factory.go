package recommend

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/moodmix/internal/infra/config"
)

// Types returns the supported provider types.
func Types() []string {
	return []string{"spotify", "lastfm"}
}

// NewChainFromConfig creates a provider chain from configuration.
func NewChainFromConfig(cfg *config.Config, spotify SpotifyClient) (*Chain, error) {
	if len(cfg.Recommend.Providers) == 0 {
		return nil, errors.New("no recommendation providers configured")
	}

	var providers []Provider

	for i, pcfg := range cfg.Recommend.Providers {
		var provider Provider
		var err error
		zlog.Debug().Msgf("creating recommendation provider: index=%d type=%s", i+1, pcfg.Type)
		switch pcfg.Type {
		case "spotify":
			provider, err = NewSpotifyProvider(spotify)

		case "lastfm":
			provider, err = NewLastFmProvider(spotify, pcfg.Settings)

		default:
			return nil, errors.Newf("unsupported provider type: %s (provider index %d)", pcfg.Type, i)
		}

		if err != nil {
			return nil, errors.Wrapf(err, "failed to create provider (index %d, type %s)", i, pcfg.Type)
		}

		providers = append(providers, provider)

		zlog.Info().Msgf("registered recommendation provider: index=%d type=%s", i+1, pcfg.Type)
	}

	return NewChain(providers...), nil
}
