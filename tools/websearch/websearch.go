// Package websearch provides a web search tool backed by the Tavily API.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	tavilygo "github.com/diverged/tavily-go"
	tavilymodels "github.com/diverged/tavily-go/models"
	"github.com/stokhos-ai/parley/schema"
	"github.com/stokhos-ai/parley/tools"
)

const ToolName = "search"

// Request represents the tool input.
type Request struct {
	Query string `json:"query" jsonschema:"title=Query,description=The query to search the web for."`
}

// Result represents a web search response.
type Result struct {
	Results []tavilymodels.SearchResult `json:"results"`
	Answer  string                      `json:"answer,omitempty"`
}

// GetContent returns the display form of the result.
func (r *Result) GetContent() string {
	var buf strings.Builder
	if r.Answer != "" {
		fmt.Fprintf(&buf, "ANSWER: %s\n", r.Answer)
	}
	for _, result := range r.Results {
		fmt.Fprintf(&buf, "- %s (%s): %s\n", result.Title, result.URL, result.Content)
	}
	return buf.String()
}

// Tool provides web search.
type Tool struct {
	name        string
	description string
	funcParams  any

	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ tools.Tool[Request, Result] = (*Tool)(nil)

// New creates the web search tool with the given Tavily API key.
// The credential is resolved by the caller; the tool never reads the
// environment itself.
func New(apiKey string) (*Tool, error) {
	if apiKey == "" {
		return nil, errors.New("tavily API key is not set")
	}
	sc, err := schema.New(reflect.TypeOf(Request{}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &Tool{
		name:        ToolName,
		description: "Searches the web and returns relevant results with an aggregated answer.",
		funcParams:  sc.Parameters,
		apiKey:      apiKey,
		httpClient:  http.DefaultClient,
	}, nil
}

func (t *Tool) WithBaseURL(baseURL string) *Tool {
	t.baseURL = baseURL
	return t
}

func (t *Tool) WithHTTPClient(client *http.Client) *Tool {
	t.httpClient = client
	return t
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

// Run performs the web search.
func (t *Tool) Run(_ context.Context, req *Request) (*Result, error) {
	if req.Query == "" {
		return nil, errors.New("invalid request: empty query")
	}

	client := tavilygo.NewClient(t.apiKey)
	if t.baseURL != "" {
		client.BaseURL = t.baseURL
	}
	if t.httpClient != nil {
		client.HTTPClient = t.httpClient
	}

	searchReq := tavilymodels.SearchRequest{
		Query:         req.Query,
		SearchDepth:   "basic",
		IncludeAnswer: true,
	}
	searchResp, err := tavilygo.Search(client, searchReq)
	if err != nil {
		return nil, errors.Wrap(err, "failed to perform search")
	}

	return &Result{
		Results: searchResp.Results,
		Answer:  searchResp.Answer,
	}, nil
}
