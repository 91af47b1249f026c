// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package demo runs a fixed set of example queries through the pipeline.
// The set can be replaced by a YAML query file.
package demo

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/answer-engine/internal/present"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// DefaultQueries is the built-in demo set. The trailing empty query shows
// the empty-query failure path.
var DefaultQueries = []string{
	"Who is serving as the President of the United States in 2024?",
	"Latest AI advancements",
	"Explain the role of AI in healthcare",
	"How is GPT-4 used in business?",
	"What is LangChain?",
	"The future of AI by 2030",
	"",
}

// QueryFile is the on-disk form of a demo query set:
//
//	queries:
//	  - What is LangChain?
//	  - ""      # runs and reports the empty-query failure
//	  - ~       # skipped
type QueryFile struct {
	Queries []*string `yaml:"queries"`
}

// ReadQueryFile loads a query set from a YAML file. Null entries are
// dropped; empty strings are kept.
func ReadQueryFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}

	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file %s: %w", path, err)
	}

	queries := make([]string, 0, len(qf.Queries))
	for _, q := range qf.Queries {
		if q != nil {
			queries = append(queries, *q)
		}
	}
	return queries, nil
}

// WriteQueryFile saves queries as a YAML query file.
func WriteQueryFile(path string, queries []string) error {
	qf := QueryFile{Queries: make([]*string, len(queries))}
	for i := range queries {
		qf.Queries[i] = &queries[i]
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Runner answers a single query.
type Runner interface {
	Run(ctx context.Context, query string) types.PipelineResult
}

// Summary counts demo outcomes.
type Summary struct {
	Answered int
	Failed   int
}

// Run sends each query through r and writes every result to w. It stops
// early only when ctx is cancelled.
func Run(ctx context.Context, r Runner, queries []string, w io.Writer, format present.Format) (Summary, error) {
	var summary Summary
	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if format == present.FormatText {
			fmt.Fprintf(w, "\n[%d/%d] Running query: '%s'\n", i+1, len(queries), q)
		}

		res := r.Run(ctx, q)
		if res.OK() {
			summary.Answered++
		} else {
			summary.Failed++
		}

		if err := present.Write(w, res, format); err != nil {
			return summary, fmt.Errorf("writing result for %q: %w", q, err)
		}
	}
	return summary, nil
}
