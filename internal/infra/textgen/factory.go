package textgen

import (
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"
)

// Types lists the supported generator types.
var Types = []string{"openai", "ollama"}

// NewFromSettings creates a generator of the given type from a settings map.
func NewFromSettings(typ string, settings map[string]any) (Generator, error) {
	zlog.Debug().Msgf("creating text generator: type=%s", typ)

	switch typ {
	case "openai":
		var cfg OpenAIConfig
		if err := decodeSettings(settings, &cfg); err != nil {
			return nil, errors.Wrap(err, "invalid openai settings")
		}
		return NewOpenAI(cfg)

	case "ollama":
		var cfg OllamaConfig
		if err := decodeSettings(settings, &cfg); err != nil {
			return nil, errors.Wrap(err, "invalid ollama settings")
		}
		return NewOllama(cfg), nil

	default:
		return nil, errors.Newf("unsupported text generator type: %s", typ)
	}
}

// decodeSettings decodes, defaults, and validates a settings map into out.
func decodeSettings(settings map[string]any, out any) error {
	if err := mapstructure.Decode(settings, out); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(out); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(out); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}
