// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble turns the leading search results into the text context
// handed to the answer generator. Results are truncated in provider order,
// never re-ranked.
package assemble

import (
	"errors"
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// ErrInsufficientContext is returned when no selected result yields any
// usable text after cleaning.
var ErrInsufficientContext = errors.New("search results contain no usable context")

// Assembler builds a context from a search result set.
type Assembler struct {
	cfg types.AssemblyConfig
}

// New returns an Assembler. A non-positive MaxResults falls back to
// types.DefaultContextResults.
func New(cfg types.AssemblyConfig) *Assembler {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = types.DefaultContextResults
	}
	return &Assembler{cfg: cfg}
}

// Assemble cleans the content of the first MaxResults items and joins the
// non-empty ones with a newline. When MaxChars is set the context is cut to
// that many characters.
func (a *Assembler) Assemble(set *types.SearchResultSet) (string, error) {
	text, err := Assemble(set, a.cfg.MaxResults)
	if err != nil {
		return "", err
	}
	if a.cfg.MaxChars > 0 {
		text = truncateRunes(text, a.cfg.MaxChars)
	}
	return text, nil
}

// Assemble joins the cleaned content of the first maxResults items of set.
// It returns ErrInsufficientContext when the result is blank.
func Assemble(set *types.SearchResultSet, maxResults int) (string, error) {
	if set == nil || maxResults <= 0 {
		return "", ErrInsufficientContext
	}

	items := set.Results
	if len(items) > maxResults {
		items = items[:maxResults]
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		if cleaned := CleanContent(item.Content); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}

	joined := strings.Join(parts, "\n")
	if strings.TrimSpace(joined) == "" {
		return "", ErrInsufficientContext
	}
	return joined, nil
}

func truncateRunes(s string, max int) string {
	n := 0
	for i := range s {
		if n == max {
			return strings.TrimSpace(s[:i])
		}
		n++
	}
	return s
}
