package llmfactory

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/stokhos-ai/parley/llms"
	"github.com/stokhos-ai/parley/llms/googleai"
	"github.com/stokhos-ai/parley/llms/openai"
)

var logger = xlog.NewPackageLogger("github.com/stokhos-ai/parley", "llmfactory")

type Factory interface {
	DefaultModel(ctx context.Context) (llms.Model, error)
	ModelByType(ctx context.Context, typ llms.ProviderType) (llms.Model, error)
	ModelByName(ctx context.Context, name string) (llms.Model, error)
}

// Load reads the provider config from the given location and returns a factory.
func Load(location string) (Factory, error) {
	cfg, err := LoadConfig(location)
	if err != nil {
		return nil, err
	}
	return New(cfg), nil
}

type factory struct {
	cfg *Config

	byType map[llms.ProviderType]llms.Model
	byName map[string]llms.Model
	lock   sync.Mutex
}

// New creates a new LLM factory
func New(cfg *Config) Factory {
	f := &factory{
		cfg:    cfg,
		byType: make(map[llms.ProviderType]llms.Model),
		byName: make(map[string]llms.Model),
	}
	return f
}

// NewLLM constructs a model client from a single provider config. It is a
// variable so tests can substitute a fake constructor.
var NewLLM = CreateLLM

// CreateLLM is the real model constructor behind NewLLM.
func CreateLLM(ctx context.Context, cfg *ProviderConfig) (llms.Model, error) {
	switch llms.ProviderType(strings.ToUpper(cfg.Provider)) {
	case llms.ProviderGoogleAI:
		var opts []googleai.Option
		if cfg.DefaultModel != "" {
			opts = append(opts, googleai.WithDefaultModel(cfg.DefaultModel))
		}
		if cfg.Temperature != 0 {
			opts = append(opts, googleai.WithDefaultTemperature(cfg.Temperature))
		}
		if cfg.MaxTokens != 0 {
			opts = append(opts, googleai.WithDefaultMaxTokens(cfg.MaxTokens))
		}
		return googleai.New(ctx, cfg.Token, opts...)
	case llms.ProviderOpenAI:
		var opts []openai.Option
		if cfg.DefaultModel != "" {
			opts = append(opts, openai.WithDefaultModel(cfg.DefaultModel))
		}
		if cfg.Temperature != 0 {
			opts = append(opts, openai.WithDefaultTemperature(cfg.Temperature))
		}
		if cfg.MaxTokens != 0 {
			opts = append(opts, openai.WithDefaultMaxTokens(cfg.MaxTokens))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		return openai.New(cfg.Token, opts...)
	}
	return nil, errors.Newf("unsupported provider: %s", cfg.Provider)
}

// DefaultModel returns the model of the first configured provider.
func (f *factory) DefaultModel(ctx context.Context) (llms.Model, error) {
	if len(f.cfg.Providers) == 0 {
		return nil, errors.New("no providers configured")
	}
	return f.ModelByName(ctx, f.cfg.Providers[0].Name)
}

func (f *factory) ModelByType(ctx context.Context, typ llms.ProviderType) (llms.Model, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if client, ok := f.byType[typ]; ok {
		return client, nil
	}

	for _, cfg := range f.cfg.Providers {
		if llms.ProviderType(strings.ToUpper(cfg.Provider)) != typ {
			continue
		}
		model, err := NewLLM(ctx, cfg)
		if err != nil {
			return nil, err
		}

		logger.KV(xlog.DEBUG,
			"status", "created_llm",
			"provider", cfg.Provider,
			"name", cfg.Name)

		f.byType[typ] = model
		return model, nil
	}
	return nil, errors.Newf("provider not found for type: %s", typ)
}

func (f *factory) ModelByName(ctx context.Context, name string) (llms.Model, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if client, ok := f.byName[name]; ok {
		return client, nil
	}

	for _, cfg := range f.cfg.Providers {
		if cfg.Name != name {
			continue
		}
		model, err := NewLLM(ctx, cfg)
		if err != nil {
			return nil, err
		}

		logger.KV(xlog.DEBUG,
			"status", "created_llm",
			"provider", cfg.Provider,
			"name", cfg.Name)

		f.byName[name] = model
		return model, nil
	}
	return nil, errors.Newf("provider not found for name: %s", name)
}
