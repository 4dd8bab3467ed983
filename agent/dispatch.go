package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

// DispatchRule selects a tool by case-insensitive substring matching on the
// latest user message. Rules are evaluated in order and only the first rule
// whose trigger matches and whose tool is registered fires; there is no tool
// chaining and no re-entry after a tool result.
type DispatchRule struct {
	// Triggers are lowercase substrings that activate the rule.
	Triggers []string
	// Tool is the registry name of the tool to invoke.
	Tool string
	// BuildInput converts the message and the matched trigger into the
	// tool's JSON-encoded arguments.
	BuildInput func(message, trigger string) (string, error)
	// FormatResult embeds a successful tool result into a system-annotated
	// context string.
	FormatResult func(result string) string
	// FormatError embeds a failed invocation into a context string.
	// Consulted only when Recoverable is set.
	FormatError func(err error) string
	// Recoverable folds tool failures into the tool context instead of
	// failing the turn.
	Recoverable bool
}

func (r DispatchRule) match(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, trigger := range r.Triggers {
		if strings.Contains(lower, trigger) {
			return trigger, true
		}
	}
	return "", false
}

// DefaultDispatchRules returns the built-in lexicon: a compute rule bound to
// the "calculate" tool and a search rule bound to the "search" tool. The
// compute rule matches the stem "calcul" so that inflected forms such as
// "calcule" and "calcular" both hit. The compute branch recovers from tool
// failures; the search branch does not.
func DefaultDispatchRules() []DispatchRule {
	return []DispatchRule{
		{
			Triggers: []string{"calcul", "compute"},
			Tool:     "calculate",
			BuildInput: func(message, _ string) (string, error) {
				// the whole message is the expression argument
				return marshalArgs(map[string]string{"expression": message})
			},
			FormatResult: func(result string) string {
				return fmt.Sprintf("\n[SYSTEM] The user asked for a calculation. Tool result: %s. Use it to answer.", result)
			},
			FormatError: func(err error) string {
				return fmt.Sprintf("\n[SYSTEM] Calculation failed: %s", err.Error())
			},
			Recoverable: true,
		},
		{
			Triggers: []string{"pesquisar", "search"},
			Tool:     "search",
			BuildInput: func(message, trigger string) (string, error) {
				return marshalArgs(map[string]string{"query": StripTrigger(message, trigger)})
			},
			FormatResult: func(result string) string {
				return fmt.Sprintf("\n[SYSTEM] Search result: %s. Use it to answer.", result)
			},
			Recoverable: false,
		},
	}
}

// StripTrigger removes every case-insensitive occurrence of the trigger word
// from the message and trims surrounding whitespace.
func StripTrigger(message, trigger string) string {
	var b strings.Builder
	lower := strings.ToLower(message)
	for i := 0; i < len(message); {
		j := strings.Index(lower[i:], trigger)
		if j < 0 {
			b.WriteString(message[i:])
			break
		}
		b.WriteString(message[i : i+j])
		i += j + len(trigger)
	}
	return strings.TrimSpace(b.String())
}

func marshalArgs(args any) (string, error) {
	bs, err := json.Marshal(args)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal tool arguments")
	}
	return string(bs), nil
}

// toolContext runs tool selection for the latest user message and returns the
// context string to inject into the prompt, or an empty string when no rule
// fires. A failure in a non-recoverable branch is returned as an error.
func (a *Agent) toolContext(ctx context.Context, message string) (string, error) {
	if a.toolsDisabled {
		return "", nil
	}
	for _, rule := range a.rules {
		trigger, ok := rule.match(message)
		if !ok {
			continue
		}
		tool, ok := a.registry.Lookup(rule.Tool)
		if !ok {
			continue
		}

		input, err := rule.BuildInput(message, trigger)
		if err != nil {
			return "", err
		}

		if a.callback != nil {
			a.callback.OnToolStart(ctx, tool, input)
		}
		result, err := tool.Call(ctx, input)
		if err != nil {
			if a.callback != nil {
				a.callback.OnToolError(ctx, tool, input, err)
			}
			if !rule.Recoverable {
				return "", errors.WithMessagef(err, "tool %q failed", tool.Name())
			}
			logger.ContextKV(ctx, xlog.WARNING,
				"status", "tool_failed",
				"tool", tool.Name(),
				"err", err.Error(),
			)
			return rule.FormatError(err), nil
		}
		if a.callback != nil {
			a.callback.OnToolEnd(ctx, tool, input, result)
		}
		logger.ContextKV(ctx, xlog.DEBUG,
			"status", "tool_invoked",
			"tool", tool.Name(),
		)
		return rule.FormatResult(result), nil
	}
	return "", nil
}
