// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/answer-engine/internal/logging"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// maxErrorBody bounds how much of a failed response body ends up in an error.
const maxErrorBody = 512

// TavilyClient queries the Tavily search API.
type TavilyClient struct {
	cfg    types.SearchConfig
	client *http.Client
	log    logrus.FieldLogger
}

// NewTavilyClient returns a client for cfg. A nil client uses
// http.DefaultClient and a nil logger discards output.
func NewTavilyClient(cfg types.SearchConfig, client *http.Client, log logrus.FieldLogger) *TavilyClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = types.DefaultSearchEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logging.Discard()
	}
	return &TavilyClient{cfg: cfg, client: client, log: log.WithField("component", "search")}
}

type tavilyRequest struct {
	Query       string `json:"query"`
	APIKey      string `json:"api_key"`
	SearchDepth string `json:"search_depth,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

// Search sends one POST to the provider. Blank queries return ErrEmptyQuery
// without a request. Transport errors, non-2xx statuses and undecodable
// bodies are returned as errors.
func (c *TavilyClient) Search(ctx context.Context, query string) (*types.SearchResultSet, error) {
	if strings.TrimSpace(query) == "" {
		c.log.Warn("query is empty, skipping search")
		return nil, ErrEmptyQuery
	}

	set, err := c.search(ctx, query)
	if err != nil {
		c.log.WithError(err).WithField("query", query).Error("search request failed")
		return nil, err
	}
	c.log.WithFields(logrus.Fields{"query": query, "results": len(set.Results)}).Debug("search complete")
	return set, nil
}

func (c *TavilyClient) search(ctx context.Context, query string) (*types.SearchResultSet, error) {
	payload, err := json.Marshal(tavilyRequest{
		Query:       query,
		APIKey:      c.cfg.APIKey,
		SearchDepth: c.cfg.Depth,
		MaxResults:  c.cfg.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling tavily request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading tavily response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, fmt.Errorf("tavily returned HTTP %d: %s", resp.StatusCode, snippet)
	}

	return decodeResponse(query, body)
}

// decodeResponse splits the provider body into result items and opaque
// metadata. A missing or null results key yields an empty result list.
func decodeResponse(query string, body []byte) (*types.SearchResultSet, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding tavily response: %w", err)
	}

	set := &types.SearchResultSet{
		Query:   query,
		Results: []types.SearchResultItem{},
	}

	if rawResults, ok := raw["results"]; ok {
		var items []types.SearchResultItem
		if err := json.Unmarshal(rawResults, &items); err != nil {
			return nil, fmt.Errorf("decoding tavily results: %w", err)
		}
		if items != nil {
			set.Results = items
		}
		delete(raw, "results")
	}

	if len(raw) > 0 {
		set.Metadata = make(map[string]any, len(raw))
		for k, v := range raw {
			var value any
			if err := json.Unmarshal(v, &value); err != nil {
				return nil, fmt.Errorf("decoding tavily field %q: %w", k, err)
			}
			set.Metadata[k] = value
		}
	}

	return set, nil
}
