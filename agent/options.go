package agent

import (
	"github.com/stokhos-ai/parley/chatmodel"
	"github.com/stokhos-ai/parley/prompts"
	"github.com/stokhos-ai/parley/store"
)

// Option configures an Agent at construction time.
type Option func(*Agent)

// WithHistory replaces the default in-memory history store,
// e.g. with a Redis backed one.
func WithHistory(history store.MessageStore) Option {
	return func(a *Agent) {
		a.history = history
	}
}

// WithDispatchRules replaces the default tool dispatch lexicon.
func WithDispatchRules(rules ...DispatchRule) Option {
	return func(a *Agent) {
		a.rules = rules
	}
}

// WithCallback sets the lifecycle callback.
func WithCallback(callback Callback) Option {
	return func(a *Agent) {
		a.callback = callback
	}
}

// WithGreetingTemplate replaces the default system greeting template.
// The template receives the agent name as the "name" variable.
func WithGreetingTemplate(tpl *prompts.PromptTemplate) Option {
	return func(a *Agent) {
		a.greeting = tpl
	}
}

// WithChatID pins the conversation ID instead of generating one.
func WithChatID(chatID string) Option {
	return func(a *Agent) {
		a.chatCtx = chatmodel.NewChatContext(chatID)
	}
}

// WithToolsDisabled turns keyword tool dispatch off; every turn goes straight
// to generation.
func WithToolsDisabled() Option {
	return func(a *Agent) {
		a.toolsDisabled = true
	}
}
