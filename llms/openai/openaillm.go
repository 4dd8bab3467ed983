package openai

import (
	"context"

	"github.com/cockroachdb/errors"
	oai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/stokhos-ai/parley/llms"
)

// ErrEmptyResponse is returned when the OpenAI API returns no choices.
var ErrEmptyResponse = errors.New("empty response")

const (
	// DefaultModel is used when no model is configured or requested.
	DefaultModel = "gpt-5-mini"
)

// LLM is an OpenAI chat-completions backed model.
type LLM struct {
	client oai.Client
	opts   Options
}

var _ llms.Model = (*LLM)(nil)

// New returns a new OpenAI LLM. The API key is resolved by the caller
// before the agent is constructed; this package never reads the environment.
func New(apiKey string, options ...Option) (*LLM, error) {
	opts := DefaultOptions()
	for _, opt := range options {
		opt(&opts)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Organization != "" {
		reqOpts = append(reqOpts, option.WithOrganization(opts.Organization))
	}

	return &LLM{
		client: oai.NewClient(reqOpts...),
		opts:   opts,
	}, nil
}

// GetName implements the Model interface.
func (o *LLM) GetName() string {
	return o.opts.DefaultModel
}

// GetProviderType implements the Model interface.
func (o *LLM) GetProviderType() llms.ProviderType {
	return llms.ProviderOpenAI
}

// GenerateContent implements the [llms.Model] interface.
func (o *LLM) GenerateContent(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	opts := llms.CallOptions{
		Model:       o.opts.DefaultModel,
		Temperature: o.opts.DefaultTemperature,
		MaxTokens:   o.opts.DefaultMaxTokens,
	}
	for _, opt := range options {
		opt(&opts)
	}

	params := oai.ChatCompletionNewParams{
		Model: oai.ChatModel(opts.Model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.UserMessage(prompt),
		},
		Temperature: oai.Float(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		params.MaxCompletionTokens = oai.Int(int64(opts.MaxTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate content")
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
