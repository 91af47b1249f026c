// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/answer-engine/internal/demo"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the predefined demo queries",
	Long: `Demo runs a fixed set of example queries, including an empty query that
shows the empty-query error path. Use --queries to load a different set from a
YAML file, or set demo.queries in the config file. --save writes the active
set to a query file and exits without running it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		queries := viper.GetStringSlice("demo.queries")
		if path, _ := cmd.Flags().GetString("queries"); path != "" {
			queries, err = demo.ReadQueryFile(path)
			if err != nil {
				return err
			}
		}

		if path, _ := cmd.Flags().GetString("save"); path != "" {
			if err := demo.WriteQueryFile(path, queries); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d queries to %s\n", len(queries), path)
			return nil
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		summary, err := demo.Run(cmd.Context(), a.pipeline, queries, cmd.OutOrStdout(), format)
		a.log.WithFields(logrus.Fields{
			"answered": summary.Answered,
			"failed":   summary.Failed,
		}).Info("demo finished")
		return err
	},
}

func init() {
	demoCmd.Flags().String("queries", "", "YAML file with a 'queries' list to run instead of the built-in set")
	demoCmd.Flags().String("save", "", "write the active query set to this YAML file instead of running it")

	rootCmd.AddCommand(demoCmd)
}
