package prompts

import (
	"github.com/cockroachdb/errors"
	"github.com/nikolalohinski/gonja"
	"github.com/nikolalohinski/gonja/exec"
)

// DefaultGreetingTemplate is the system message appended when an agent is
// created.
const DefaultGreetingTemplate = "You are {{ name }}, a helpful and friendly AI assistant."

// PromptTemplate renders prompt text from a template with named variables.
type PromptTemplate struct {
	text           string
	inputVariables []string
	tpl            *exec.Template
}

// NewPromptTemplate parses the template text.
func NewPromptTemplate(text string, inputVariables []string) (*PromptTemplate, error) {
	tpl, err := gonja.FromString(text)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse prompt template")
	}
	return &PromptTemplate{
		text:           text,
		inputVariables: inputVariables,
		tpl:            tpl,
	}, nil
}

// GetInputVariables returns the variables the template expects.
func (p *PromptTemplate) GetInputVariables() []string {
	return p.inputVariables
}

// Format renders the template with the given values.
// All declared input variables must be provided.
func (p *PromptTemplate) Format(values map[string]any) (string, error) {
	ctx := gonja.Context{}
	for k, v := range values {
		ctx[k] = v
	}
	for _, name := range p.inputVariables {
		if _, ok := values[name]; !ok {
			return "", errors.Newf("missing prompt input variable %q", name)
		}
	}
	out, err := p.tpl.Execute(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to render prompt template")
	}
	return out, nil
}
