package llms

import (
	"context"
)

//go:generate mockgen -source=llms.go -destination=../mocks/mockllms/llms_mock.gen.go -package mockllms

// ProviderType is the type of provider.
type ProviderType string

const (
	// ProviderGoogleAI is the type of provider.
	ProviderGoogleAI ProviderType = "GOOGLEAI"
	// ProviderOpenAI is the type of provider.
	ProviderOpenAI ProviderType = "OPENAI"
)

// Model is the text-generation backend the agent delegates to.
// It receives the fully assembled prompt and returns the next assistant turn.
// Providers are opaque to the agent core; any failure is treated uniformly.
type Model interface {
	// GetProviderType returns the type of provider.
	GetProviderType() ProviderType
	// GenerateContent asks the model to continue the given prompt.
	GenerateContent(ctx context.Context, prompt string, options ...CallOption) (string, error)
}
