// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/answer-engine/internal/demo"
	"github.com/pdiddy/answer-engine/internal/present"
)

const replPrompt = "Enter your query (or 'demo' for predefined queries, 'exit' to quit): "

// runInteractive reads queries line by line until "exit", end of input or
// cancellation. "demo" runs demoQueries; anything else is answered.
func runInteractive(ctx context.Context, in io.Reader, out io.Writer, r demo.Runner, demoQueries []string, format present.Format) error {
	fmt.Fprintln(out, "Welcome to answer-engine.")
	fmt.Fprintln(out, "Type 'demo' to see predefined queries or enter your question below. Type 'exit' to quit.")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, readErr := readLines(ctx, in)

	for {
		fmt.Fprintf(out, "\n%s", replPrompt)

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nGoodbye!")
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			return <-readErr
		}

		query := strings.TrimSpace(line)
		switch strings.ToLower(query) {
		case "exit":
			fmt.Fprintln(out, "\nGoodbye!")
			return nil
		case "demo":
			fmt.Fprintln(out, "\n--- Running Predefined Demo Queries ---")
			if _, err := demo.Run(ctx, r, demoQueries, out, format); err != nil {
				if ctx.Err() != nil {
					continue
				}
				return err
			}
		default:
			if err := present.Write(out, r.Run(ctx, query), format); err != nil {
				return err
			}
		}
	}
}

// readLines scans in on its own goroutine so a blocked read does not hold
// up cancellation. The error channel yields the scanner error once lines
// is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}
