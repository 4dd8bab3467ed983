package websearch_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stokhos-ai/parley/tools/websearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WebSearch_New(t *testing.T) {
	_, err := websearch.New("")
	assert.EqualError(t, err, "tavily API key is not set")

	tool, err := websearch.New("test-key")
	require.NoError(t, err)
	assert.Equal(t, "search", tool.Name())
	assert.NotEmpty(t, tool.Description())
	assert.NotNil(t, tool.Parameters())
}

func Test_WebSearch_Run(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"answer": "Cats are popular pets.",
			"results": []map[string]any{
				{
					"title":   "Gatos",
					"url":     "https://example.com/gatos",
					"content": "Tudo sobre gatos.",
					"score":   0.99,
				},
			},
		})
	}))
	defer srv.Close()

	tool, err := websearch.New("test-key")
	require.NoError(t, err)
	tool = tool.WithBaseURL(srv.URL).WithHTTPClient(srv.Client())

	ctx := context.Background()
	res, err := tool.Run(ctx, &websearch.Request{Query: "gatos"})
	require.NoError(t, err)
	assert.Equal(t, "Cats are popular pets.", res.Answer)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "Gatos", res.Results[0].Title)

	out := res.GetContent()
	assert.Contains(t, out, "ANSWER: Cats are popular pets.")
	assert.Contains(t, out, "https://example.com/gatos")

	_, err = tool.Run(ctx, &websearch.Request{Query: ""})
	assert.EqualError(t, err, "invalid request: empty query")
}

func Test_WebSearch_Call(t *testing.T) {
	tool, err := websearch.New("test-key")
	require.NoError(t, err)

	_, err = tool.Call(context.Background(), "not json")
	assert.Error(t, err)
}
