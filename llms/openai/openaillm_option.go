package openai

// Options is a set of creation options for the OpenAI client.
type Options struct {
	BaseURL            string
	Organization       string
	DefaultModel       string
	DefaultTemperature float64
	DefaultMaxTokens   int
}

// Option is a function that configures Options.
type Option func(*Options)

// DefaultOptions returns the default creation options.
func DefaultOptions() Options {
	return Options{
		DefaultModel: DefaultModel,
	}
}

// WithBaseURL passes a custom API endpoint to the client.
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		o.BaseURL = baseURL
	}
}

// WithOrganization specifies which organization's quota and billing
// should be used when making API requests.
func WithOrganization(organization string) Option {
	return func(o *Options) {
		o.Organization = organization
	}
}

// WithDefaultModel passes the default model name to the client.
func WithDefaultModel(model string) Option {
	return func(o *Options) {
		o.DefaultModel = model
	}
}

// WithDefaultTemperature passes the default temperature to the client.
func WithDefaultTemperature(temperature float64) Option {
	return func(o *Options) {
		o.DefaultTemperature = temperature
	}
}

// WithDefaultMaxTokens passes the default token cap to the client.
func WithDefaultMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.DefaultMaxTokens = maxTokens
	}
}
