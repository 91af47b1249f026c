// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/answer-engine/internal/demo"
	"github.com/pdiddy/answer-engine/internal/present"
	"github.com/pdiddy/answer-engine/internal/secrets"
	"github.com/pdiddy/answer-engine/pkg/types"
)

type fakeRunner struct {
	queries []string
}

func (f *fakeRunner) Run(_ context.Context, query string) types.PipelineResult {
	f.queries = append(f.queries, query)
	if strings.TrimSpace(query) == "" {
		return types.PipelineResult{Query: query, Failure: &types.Failure{
			Kind: types.FailureEmptyQuery, Stage: types.StageValidating, Message: "The query cannot be empty.",
		}}
	}
	return types.PipelineResult{
		Query:         query,
		SearchResults: &types.SearchResultSet{Results: []types.SearchResultItem{{Title: "Src", URL: "https://src"}}},
		Answer:        "An answer.",
	}
}

func TestRunInteractive(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantQueries []string
		wantOut     []string
	}{
		{
			name:        "query then exit",
			input:       "What is LangChain?\nexit\nnever read\n",
			wantQueries: []string{"What is LangChain?"},
			wantOut:     []string{"=== Results for Query: 'What is LangChain?' ===", "An answer.", "Goodbye!"},
		},
		{
			name:        "commands are case insensitive",
			input:       "DEMO\nExit\n",
			wantQueries: []string{"first demo", ""},
			wantOut:     []string{"--- Running Predefined Demo Queries ---", "Error: The query cannot be empty.", "Goodbye!"},
		},
		{
			name:        "empty line reports empty query",
			input:       "   \n",
			wantQueries: []string{""},
			wantOut:     []string{"Error: The query cannot be empty."},
		},
		{
			name:        "end of input stops the loop",
			input:       "",
			wantQueries: nil,
			wantOut:     []string{replPrompt},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{}
			var out bytes.Buffer
			err := runInteractive(context.Background(), strings.NewReader(tt.input), &out, r,
				[]string{"first demo", ""}, present.FormatText)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQueries, r.queries)
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestRunInteractiveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &fakeRunner{}
	var out bytes.Buffer
	// Nothing is ever written, so the scanner stays blocked.
	pr, pw := io.Pipe()
	defer pw.Close()

	err := runInteractive(ctx, pr, &out, r, nil, present.FormatText)
	require.NoError(t, err)
	assert.Empty(t, r.queries)
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestPipelineConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := pipelineConfig(v)
	assert.Equal(t, types.DefaultSearchEndpoint, cfg.Search.Endpoint)
	assert.Equal(t, 2, cfg.Assembly.MaxResults)
	assert.Equal(t, "gpt-4", cfg.Generation.Model)
	assert.Zero(t, cfg.Generation.Temperature)
	assert.Equal(t, 5*time.Second, cfg.Generation.RateLimitDelay)
	assert.Equal(t, 2, cfg.Generation.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.True(t, strings.HasPrefix(cfg.HTTP.UserAgent, "answer-engine/"))
	assert.Equal(t, demo.DefaultQueries, v.GetStringSlice("demo.queries"))
}

func TestPipelineConfigFromYAML(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
search:
  depth: advanced
  max_results: 8
assemble:
  max_results: 3
  max_chars: 2000
generation:
  model: gpt-4o
  rate_limit_delay: 2s
http:
  timeout: 10s
  requests_per_second: 0.5
demo:
  queries:
    - one
    - two
`)))

	cfg := pipelineConfig(v)
	assert.Equal(t, "advanced", cfg.Search.Depth)
	assert.Equal(t, 8, cfg.Search.MaxResults)
	assert.Equal(t, 3, cfg.Assembly.MaxResults)
	assert.Equal(t, 2000, cfg.Assembly.MaxChars)
	assert.Equal(t, "gpt-4o", cfg.Generation.Model)
	assert.Equal(t, 2*time.Second, cfg.Generation.RateLimitDelay)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 0.5, cfg.HTTP.RequestsPerSecond)
	assert.Equal(t, []string{"one", "two"}, v.GetStringSlice("demo.queries"))
}

// executeRoot runs rootCmd with args against isolated credentials sources.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(""))
	base := []string{"--env", filepath.Join(dir, ".env"), "--secrets-dir", filepath.Join(dir, "secrets"), "--format", "text"}
	rootCmd.SetArgs(append(args, base...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAskMissingCredentials(t *testing.T) {
	t.Setenv(secrets.TavilyEnv, "")
	t.Setenv(secrets.OpenAIEnv, "")

	_, err := executeRoot(t, "ask", "What is LangChain?")
	var cfgErr *secrets.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{secrets.TavilyEnv, secrets.OpenAIEnv}, cfgErr.Missing)
}

func TestAskEndToEnd(t *testing.T) {
	tavily := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tvly-test", body["api_key"])
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [{"title": "LangChain", "url": "https://langchain.com", "content": "LangChain is a framework."}]}`))
	}))
	defer tavily.Close()

	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "x", "object": "chat.completion", "created": 1, "model": "gpt-4",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "It is a framework. It chains calls."}}]}`))
	}))
	defer llm.Close()

	t.Setenv(secrets.TavilyEnv, "tvly-test")
	t.Setenv(secrets.OpenAIEnv, "sk-test")
	t.Setenv("ANSWER_ENGINE_SEARCH_ENDPOINT", tavily.URL)
	t.Setenv("ANSWER_ENGINE_GENERATION_BASE_URL", llm.URL)

	out, err := executeRoot(t, "ask", "What", "is", "LangChain?")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Results for Query: 'What is LangChain?' ===")
	assert.Contains(t, out, "1. LangChain\n   URL: https://langchain.com")
	assert.Contains(t, out, "It is a framework.\nIt chains calls.")
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "answer-engine dev\n", out.String())
}

func TestDemoSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.yaml")

	out, err := executeRoot(t, "demo", "--save", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 7 queries to "+path)

	got, err := demo.ReadQueryFile(path)
	require.NoError(t, err)
	assert.Equal(t, demo.DefaultQueries, got)
}
