package llmfactory

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/configloader"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	Providers []*ProviderConfig `json:"providers" yaml:"providers"`
}

// ProviderConfig describes one model backend.
type ProviderConfig struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	// Provider selects the backend implementation: GOOGLEAI|OPENAI
	Provider     string  `json:"provider" yaml:"provider" validate:"required,oneof=GOOGLEAI OPENAI"`
	Token        string  `json:"token,omitempty" yaml:"token,omitempty"`
	DefaultModel string  `json:"default_model,omitempty" yaml:"default_model,omitempty"`
	BaseURL      string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Temperature  float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"gte=0,lte=1"`
	MaxTokens    int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty" validate:"gte=0"`
}

// LoadConfig from file, expanding environment variables in values.
func LoadConfig(file string) (*Config, error) {
	cfg := new(Config)
	if file == "" {
		return cfg, nil
	}

	err := configloader.UnmarshalAndExpand(file, cfg)
	if err != nil {
		return nil, err
	}
	for _, p := range cfg.Providers {
		if err := validate.Struct(p); err != nil {
			return nil, errors.WithMessagef(err, "invalid provider %q", p.Name)
		}
	}
	return cfg, nil
}
