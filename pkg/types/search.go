// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the answer-engine pipeline:
// search results as returned by the search provider, the tagged pipeline
// outcome, and the per-stage configuration.
package types

// Placeholders shown when a provider omits a title or URL.
const (
	NoTitle = "No Title"
	NoURL   = "No URL"
)

// SearchResultItem is one hit returned by the search provider. Fields the
// provider omits decode to the empty string; placeholders are applied only
// when the item is displayed.
type SearchResultItem struct {
	// Title is the page title.
	Title string `json:"title" yaml:"title"`

	// URL is the page address.
	URL string `json:"url" yaml:"url"`

	// Content is the snippet the provider extracted from the page.
	Content string `json:"content" yaml:"content"`
}

// DisplayTitle returns the title, or NoTitle when the provider sent none.
func (r SearchResultItem) DisplayTitle() string {
	if r.Title == "" {
		return NoTitle
	}
	return r.Title
}

// DisplayURL returns the URL, or NoURL when the provider sent none.
func (r SearchResultItem) DisplayURL() string {
	if r.URL == "" {
		return NoURL
	}
	return r.URL
}

// SearchResultSet holds the results of one search call in provider order.
// Metadata carries every other top-level field of the provider response
// without interpretation.
type SearchResultSet struct {
	Query    string             `json:"query" yaml:"query"`
	Results  []SearchResultItem `json:"results" yaml:"results"`
	Metadata map[string]any     `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Len returns the number of result items.
func (s *SearchResultSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Results)
}
