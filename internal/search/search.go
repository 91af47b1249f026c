// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search sends a query to the web search provider and returns its
// results in provider order. A failed call is reported once and never retried.
package search

import (
	"context"
	"errors"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// ErrEmptyQuery is returned when the query is blank after trimming.
// No request is sent in that case.
var ErrEmptyQuery = errors.New("search query is empty")

// Searcher queries one web search provider.
type Searcher interface {
	Search(ctx context.Context, query string) (*types.SearchResultSet, error)
}

// SearcherFunc adapts a plain function to the Searcher interface.
type SearcherFunc func(ctx context.Context, query string) (*types.SearchResultSet, error)

// Search calls f.
func (f SearcherFunc) Search(ctx context.Context, query string) (*types.SearchResultSet, error) {
	return f(ctx, query)
}
