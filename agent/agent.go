// Package agent implements a minimal conversational agent: a linear message
// history, keyword-dispatched tools, and a text-generation backend that turns
// the assembled transcript into the next assistant reply.
package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/go-playground/validator/v10"
	"github.com/stokhos-ai/parley/chatmodel"
	"github.com/stokhos-ai/parley/llms"
	"github.com/stokhos-ai/parley/prompts"
	"github.com/stokhos-ai/parley/store"
	"github.com/stokhos-ai/parley/tools"
)

var logger = xlog.NewPackageLogger("github.com/stokhos-ai/parley", "agent")

// ErrInvalidConfig is returned when construction parameters are rejected.
var ErrInvalidConfig = errors.New("invalid agent configuration")

// DefaultContextLimit is the advisory context size, in estimated tokens.
const DefaultContextLimit = 4096

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds the construction parameters of an Agent.
type Config struct {
	// Name of the agent, used in the system greeting.
	Name string `json:"name" yaml:"name" validate:"required"`
	// Model is the backend model identifier, opaque to the agent.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
	// Temperature for generation, between 0 and 1.
	Temperature float64 `json:"temperature" yaml:"temperature" validate:"gte=0,lte=1"`
	// ContextLimit is advisory metadata; the agent stores it but never
	// enforces it, so prompts grow without truncation.
	ContextLimit int `json:"context_limit,omitempty" yaml:"context_limit,omitempty" validate:"gte=0"`
}

// Agent orchestrates one conversation: it owns the history and the tool
// registry, and delegates text generation to an llms.Model.
//
// ProcessTurn is serialized on an internal mutex; one turn is in flight at a
// time per agent. No deadline is imposed on the backend call, so callers that
// want one should pass a context with a deadline.
type Agent struct {
	cfg      Config
	llm      llms.Model
	registry *tools.Registry
	history  store.MessageStore
	greeting *prompts.PromptTemplate
	rules    []DispatchRule
	callback Callback
	chatCtx  chatmodel.ChatContext

	toolsDisabled bool
	turnMu        sync.Mutex
}

// New validates the configuration and creates an Agent with an empty registry
// and a history seeded with the system greeting. No backend call is made.
func New(llm llms.Model, cfg Config, options ...Option) (*Agent, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.WithMessagef(ErrInvalidConfig, "%s", err.Error())
	}
	if cfg.ContextLimit == 0 {
		cfg.ContextLimit = DefaultContextLimit
	}

	a := &Agent{
		cfg:      cfg,
		llm:      llm,
		registry: tools.NewRegistry(),
		history:  store.NewMemoryStore(),
		rules:    DefaultDispatchRules(),
		chatCtx:  chatmodel.NewChatContext(""),
	}
	for _, opt := range options {
		opt(a)
	}

	if a.greeting == nil {
		tpl, err := prompts.NewPromptTemplate(prompts.DefaultGreetingTemplate, []string{"name"})
		if err != nil {
			return nil, err
		}
		a.greeting = tpl
	}
	greeting, err := a.greeting.Format(map[string]any{"name": cfg.Name})
	if err != nil {
		return nil, err
	}
	if err := a.appendMessage(a.chat(context.Background()), chatmodel.RoleSystem, greeting); err != nil {
		return nil, err
	}
	return a, nil
}

// Name returns the agent name.
func (a *Agent) Name() string {
	return a.cfg.Name
}

// Model returns the backend model identifier.
func (a *Agent) Model() string {
	return a.cfg.Model
}

// Temperature returns the generation temperature.
func (a *Agent) Temperature() float64 {
	return a.cfg.Temperature
}

// ContextLimit returns the advisory context size.
func (a *Agent) ContextLimit() int {
	return a.cfg.ContextLimit
}

// ChatID returns the conversation ID.
func (a *Agent) ChatID() string {
	return a.chatCtx.GetChatID()
}

// RegisterTool binds a tool in the agent registry.
// Registering an existing name replaces the previous binding.
func (a *Agent) RegisterTool(tool tools.ITool) {
	a.registry.Register(tool)
}

// Tools returns the agent tool registry.
func (a *Agent) Tools() *tools.Registry {
	return a.registry
}

// History returns a snapshot copy of the conversation history.
func (a *Agent) History(ctx context.Context) []chatmodel.Message {
	return a.history.Messages(a.chat(ctx))
}

// Len returns the number of messages in the history.
func (a *Agent) Len(ctx context.Context) int {
	return len(a.History(ctx))
}

// EstimatedTokens returns a rough whitespace-split token count of the
// history. It is an estimate; nothing in the agent budgets by it.
func (a *Agent) EstimatedTokens(ctx context.Context) int {
	var total int
	for _, msg := range a.History(ctx) {
		total += len(strings.Fields(msg.Content))
	}
	return total
}

func (a *Agent) String() string {
	return fmt.Sprintf("Agent '%s' | Model: %s | Temp: %g", a.cfg.Name, a.cfg.Model, a.cfg.Temperature)
}

// ProcessTurn runs one turn: the user message is appended, tool selection may
// contribute a context string, the transcript goes to the backend, and the
// reply is appended and returned.
//
// Generation failures do not fail the turn: the error is folded into an
// assistant message and returned like any reply. A failure in a
// non-recoverable tool branch propagates instead.
func (a *Agent) ProcessTurn(ctx context.Context, input string) (string, error) {
	a.turnMu.Lock()
	defer a.turnMu.Unlock()

	ctx = a.chat(ctx)
	if a.callback != nil {
		a.callback.OnTurnStart(ctx, a, input)
	}

	if err := a.appendMessage(ctx, chatmodel.RoleUser, input); err != nil {
		return "", err
	}

	toolContext, err := a.toolContext(ctx, input)
	if err != nil {
		return "", err
	}

	prompt := prompts.RenderTranscript(a.history.Messages(ctx), toolContext)

	callOpts := []llms.CallOption{
		llms.WithTemperature(a.cfg.Temperature),
	}
	if a.cfg.Model != "" {
		callOpts = append(callOpts, llms.WithModel(a.cfg.Model))
	}

	text, genErr := a.llm.GenerateContent(ctx, prompt, callOpts...)
	if genErr != nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"status", "generation_failed",
			"agent", a.cfg.Name,
			"err", genErr.Error(),
		)
		if a.callback != nil {
			a.callback.OnGenerationError(ctx, a, input, genErr)
		}
		text = fmt.Sprintf("Error contacting the model: %s", genErr.Error())
	}

	if err := a.appendMessage(ctx, chatmodel.RoleAssistant, text); err != nil {
		return "", err
	}
	if a.callback != nil {
		a.callback.OnTurnEnd(ctx, a, input, text)
	}
	return text, nil
}

// ExportHistory returns the history as persistable records.
func (a *Agent) ExportHistory(ctx context.Context) []store.Record {
	return store.EncodeMessages(a.History(ctx))
}

// ImportHistory replaces the history wholesale with the decoded records.
// A decode failure leaves the existing history untouched.
func (a *Agent) ImportHistory(ctx context.Context, records []store.Record) error {
	msgs, err := store.DecodeRecords(records)
	if err != nil {
		return err
	}
	return a.history.Replace(a.chat(ctx), msgs)
}

// SaveHistory writes the history to a JSON file.
func (a *Agent) SaveHistory(ctx context.Context, path string) error {
	return store.SaveFile(path, a.ExportHistory(ctx))
}

// LoadHistory replaces the history with the contents of a JSON file.
func (a *Agent) LoadHistory(ctx context.Context, path string) error {
	records, err := store.LoadFile(path)
	if err != nil {
		return err
	}
	return a.ImportHistory(ctx, records)
}

// appendMessage is the single mutation point of the history; every message
// the agent records goes through here, preserving insertion order.
func (a *Agent) appendMessage(ctx context.Context, role chatmodel.Role, content string) error {
	if err := a.history.Append(ctx, chatmodel.NewMessage(role, content)); err != nil {
		return err
	}
	logger.ContextKV(ctx, xlog.DEBUG,
		"agent", a.cfg.Name,
		"role", role,
		"content", truncate(content, 50),
	)
	return nil
}

func (a *Agent) chat(ctx context.Context) context.Context {
	return chatmodel.WithChatContext(ctx, a.chatCtx)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
