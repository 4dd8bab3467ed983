package googleai

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/stokhos-ai/parley/llms"
	"google.golang.org/genai"
)

// ErrNoContentInResponse is returned when a generation succeeds but the
// response carries no text.
var ErrNoContentInResponse = errors.New("no content in generation response")

const (
	// DefaultModel is used when no model is configured or requested.
	DefaultModel = "gemini-2.0-flash"
)

// GoogleAI is a Gemini-backed model.
type GoogleAI struct {
	client *genai.Client
	opts   Options
}

var _ llms.Model = (*GoogleAI)(nil)

// New creates a Gemini backed model. The API key is resolved by the caller
// before the agent is constructed; this package never reads the environment.
func New(ctx context.Context, apiKey string, options ...Option) (*GoogleAI, error) {
	opts := DefaultOptions()
	for _, opt := range options {
		opt(&opts)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create genai client")
	}
	return &GoogleAI{
		client: client,
		opts:   opts,
	}, nil
}

// GetName implements the Model interface.
func (g *GoogleAI) GetName() string {
	return g.opts.DefaultModel
}

// GetProviderType implements the Model interface.
func (g *GoogleAI) GetProviderType() llms.ProviderType {
	return llms.ProviderGoogleAI
}

// GenerateContent implements the [llms.Model] interface.
func (g *GoogleAI) GenerateContent(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	opts := llms.CallOptions{
		Model:       g.opts.DefaultModel,
		Temperature: g.opts.DefaultTemperature,
		MaxTokens:   g.opts.DefaultMaxTokens,
	}
	for _, opt := range options {
		opt(&opts)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(opts.Temperature)),
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, opts.Model, genai.Text(prompt), cfg)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate content")
	}

	text := resp.Text()
	if text == "" {
		return "", ErrNoContentInResponse
	}
	return text, nil
}
