// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package present renders pipeline results for the console: a readable text
// layout, or the full result as JSON or YAML.
package present

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// DefaultSources is the number of search results listed in text output.
const DefaultSources = 3

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Write renders res to w in the given format.
func Write(w io.Writer, res types.PipelineResult, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, res)
	case FormatYAML:
		return WriteYAML(w, res)
	default:
		WriteText(w, res, DefaultSources)
		return nil
	}
}

// WriteText prints the query header followed by either the failure message
// or the first maxSources results and the formatted answer.
func WriteText(w io.Writer, res types.PipelineResult, maxSources int) {
	fmt.Fprintf(w, "\n=== Results for Query: '%s' ===\n\n", res.Query)

	if res.Failure != nil {
		fmt.Fprintf(w, "Error: %s\n", res.Failure.Message)
		return
	}

	fmt.Fprintln(w, "--- Search Results ---")
	fmt.Fprintln(w)
	if res.SearchResults != nil {
		items := res.SearchResults.Results
		if maxSources > 0 && len(items) > maxSources {
			items = items[:maxSources]
		}
		for i, item := range items {
			fmt.Fprintf(w, "%d. %s\n   URL: %s\n", i+1, item.DisplayTitle(), item.DisplayURL())
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Generated Response ---")
	fmt.Fprintln(w)
	fmt.Fprintln(w, FormatAnswer(res.Answer))
}

var (
	numberedLine  = regexp.MustCompile(`^(\d+)\.`)
	sentenceBreak = regexp.MustCompile(`([.!?])\s+`)
)

// FormatAnswer lays out model output for the terminal. Numbered list items
// such as "1. foo" become "[1] foo"; any other line is split into one
// sentence per line.
func FormatAnswer(answer string) string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(answer), "\n") {
		line = strings.TrimSpace(line)
		if numberedLine.MatchString(line) {
			out = append(out, numberedLine.ReplaceAllString(line, "[$1]"))
			continue
		}
		for _, sentence := range strings.Split(sentenceBreak.ReplaceAllString(line, "$1\n"), "\n") {
			if s := strings.TrimSpace(sentence); s != "" {
				out = append(out, s)
			}
		}
	}
	return strings.Join(out, "\n")
}

// WriteJSON writes res as indented JSON.
func WriteJSON(w io.Writer, res types.PipelineResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteYAML writes res as a YAML document.
func WriteYAML(w io.Writer, res types.PipelineResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
