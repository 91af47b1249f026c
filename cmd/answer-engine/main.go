// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the answer-engine CLI. Run without
// arguments it starts an interactive prompt; the ask and demo subcommands
// answer one query or the demo set non-interactively.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the answer-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "answer-engine",
	Short: "Answer questions from live web search results",
	Long: `answer-engine searches the web for a query, condenses the top results into a
short context, and asks a chat model to answer the query from that context.

Without a subcommand it starts an interactive prompt. Type a question, 'demo'
to run the example queries, or 'exit' to quit.

Credentials are read from TAVILY_API_KEY and OPENAI_API_KEY, loaded from the
process environment, the --env file, or key files in --secrets-dir.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		return runInteractive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), a.pipeline, a.demoQueries, format)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./answer-engine.yaml or ~/.config/answer-engine/answer-engine.yaml)")
	rootCmd.PersistentFlags().String("env", ".env", "dotenv file loaded before credentials are resolved")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of API key files (tavily-api-key, openai-api-key)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default warn)")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json (default text)")
	rootCmd.PersistentFlags().String("format", "text", "output format: text, json or yaml")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("answer-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "answer-engine"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("ANSWER_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
