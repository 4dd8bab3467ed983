// Package calculator provides an arithmetic tool. It extracts an arithmetic
// expression from free text and evaluates it, so that inputs like
// "calcule 10+2+5" resolve to 17 without the model doing the math.
package calculator

import (
	"context"
	"encoding/json"
	"reflect"
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/stokhos-ai/parley/schema"
	"github.com/stokhos-ai/parley/tools"
)

const ToolName = "calculate"

// ErrNoExpression is returned when the input contains nothing to evaluate.
var ErrNoExpression = errors.New("no arithmetic expression found")

// Request represents the tool input.
type Request struct {
	Expression string `json:"expression" jsonschema:"title=Expression,description=Free text containing the arithmetic expression to evaluate."`
}

// Result represents the evaluated value.
type Result struct {
	Value float64 `json:"value"`
}

// GetContent returns the display form of the result.
func (r *Result) GetContent() string {
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

// Tool evaluates arithmetic expressions found in free text.
type Tool struct {
	name        string
	description string
	funcParams  any
}

var _ tools.Tool[Request, Result] = (*Tool)(nil)

// expression extraction mirrors the lesson material: a run of digits, dots,
// parens and whitespace around at least one operator, else a bare number.
var (
	reExpression = regexp.MustCompile(`[\d.\s()]*[+\-*/][\d.\s()+\-*/]*`)
	reNumber     = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// New creates the calculator tool.
func New() (*Tool, error) {
	sc, err := schema.New(reflect.TypeOf(Request{}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &Tool{
		name:        ToolName,
		description: "Evaluates arithmetic expressions (+ - * / and parentheses) found in the input text.",
		funcParams:  sc.Parameters,
	}, nil
}

func (t *Tool) Name() string {
	return t.name
}

func (t *Tool) Description() string {
	return t.description
}

func (t *Tool) Parameters() any {
	return t.funcParams
}

// Call executes the tool with a JSON-encoded Request.
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	var req Request
	if err := json.Unmarshal([]byte(input), &req); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal input")
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return out.GetContent(), nil
}

// Run evaluates the expression found in the request text.
func (t *Tool) Run(_ context.Context, req *Request) (*Result, error) {
	expr := reExpression.FindString(req.Expression)
	if expr == "" {
		// a bare number with no operators still counts, e.g. "calculate 10"
		num := reNumber.FindString(req.Expression)
		if num == "" {
			return nil, ErrNoExpression
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid number")
		}
		return &Result{Value: v}, nil
	}

	v, err := evaluate(expr)
	if err != nil {
		return nil, err
	}
	return &Result{Value: v}, nil
}
