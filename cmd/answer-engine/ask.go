// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/present"
)

var askCmd = &cobra.Command{
	Use:   "ask [query...]",
	Short: "Answer a single query",
	Long: `Ask searches the web for the query, assembles a context from the leading
results, and prints the generated answer with its sources. The arguments are
joined with spaces to form the query.

A failed stage is printed as an error message rather than returned as a
command error, so the exit status is zero unless startup fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		res := a.pipeline.Run(cmd.Context(), strings.Join(args, " "))
		return present.Write(cmd.OutOrStdout(), res, format)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
