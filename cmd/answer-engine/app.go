// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/answer-engine/internal/assemble"
	"github.com/pdiddy/answer-engine/internal/demo"
	"github.com/pdiddy/answer-engine/internal/generate"
	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/internal/logging"
	"github.com/pdiddy/answer-engine/internal/pipeline"
	"github.com/pdiddy/answer-engine/internal/present"
	"github.com/pdiddy/answer-engine/internal/search"
	"github.com/pdiddy/answer-engine/internal/secrets"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// setDefaults registers every configuration key with its default value.
func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", types.DefaultHTTPTimeout)
	v.SetDefault("http.user_agent", "answer-engine/"+version)
	v.SetDefault("http.requests_per_second", 0.0)
	v.SetDefault("search.endpoint", types.DefaultSearchEndpoint)
	v.SetDefault("search.depth", "")
	v.SetDefault("search.max_results", 0)
	v.SetDefault("assemble.max_results", types.DefaultContextResults)
	v.SetDefault("assemble.max_chars", 0)
	v.SetDefault("generation.model", types.DefaultModel)
	v.SetDefault("generation.base_url", "")
	v.SetDefault("generation.temperature", 0.0)
	v.SetDefault("generation.system_prompt", types.DefaultSystemPrompt)
	v.SetDefault("generation.rate_limit_delay", types.DefaultRateLimitDelay)
	v.SetDefault("generation.max_attempts", types.DefaultMaxAttempts)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("demo.queries", demo.DefaultQueries)
}

// pipelineConfig reads the stage configuration from v. Credentials are
// filled in separately.
func pipelineConfig(v *viper.Viper) types.PipelineConfig {
	cfg := types.PipelineConfig{
		HTTP: types.HTTPConfig{
			Timeout:           v.GetDuration("http.timeout"),
			UserAgent:         v.GetString("http.user_agent"),
			RequestsPerSecond: v.GetFloat64("http.requests_per_second"),
		},
		Search: types.SearchConfig{
			Endpoint:   v.GetString("search.endpoint"),
			Depth:      v.GetString("search.depth"),
			MaxResults: v.GetInt("search.max_results"),
		},
		Assembly: types.AssemblyConfig{
			MaxResults: v.GetInt("assemble.max_results"),
			MaxChars:   v.GetInt("assemble.max_chars"),
		},
		Generation: types.GenerationConfig{
			AIConfig: types.AIConfig{
				Model:       v.GetString("generation.model"),
				BaseURL:     v.GetString("generation.base_url"),
				Temperature: v.GetFloat64("generation.temperature"),
			},
			SystemPrompt:   v.GetString("generation.system_prompt"),
			RateLimitDelay: v.GetDuration("generation.rate_limit_delay"),
			MaxAttempts:    v.GetInt("generation.max_attempts"),
		},
	}
	return cfg.WithDefaults()
}

// buildPipeline wires the stages for cfg. One HTTP client is shared by
// both providers.
func buildPipeline(cfg types.PipelineConfig, log logrus.FieldLogger) *pipeline.Pipeline {
	client := httputil.NewClient(cfg.HTTP)
	backend := generate.NewOpenAIBackend(cfg.Generation.AIConfig, client)

	return pipeline.New(
		search.NewTavilyClient(cfg.Search, client, log),
		assemble.New(cfg.Assembly),
		generate.New(backend, cfg.Generation, generate.WithLogger(log)),
		pipeline.WithLogger(log),
	)
}

// app holds what a command needs once startup succeeded.
type app struct {
	log         *logrus.Logger
	pipeline    *pipeline.Pipeline
	demoQueries []string
}

// newApp builds the logger, resolves credentials and wires the pipeline.
// A missing credential is fatal and reported before any query runs.
func newApp(cmd *cobra.Command) (*app, error) {
	v := viper.GetViper()

	logger, err := logging.New(logging.Config{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	envFile, _ := cmd.Flags().GetString("env")
	secretsDir, _ := cmd.Flags().GetString("secrets-dir")
	creds, err := secrets.LoadCredentials(envFile, secretsDir, cmd.ErrOrStderr())
	if err != nil {
		var cfgErr *secrets.ConfigurationError
		if errors.As(err, &cfgErr) {
			logger.WithField("missing", cfgErr.Missing).Error("configuration error")
		}
		return nil, err
	}

	cfg := pipelineConfig(v)
	cfg.Search.APIKey = creds.SearchKey
	cfg.Generation.APIKey = creds.LLMKey

	return &app{
		log:         logger,
		pipeline:    buildPipeline(cfg, logger),
		demoQueries: v.GetStringSlice("demo.queries"),
	}, nil
}

// outputFormat reads and validates the --format flag.
func outputFormat(cmd *cobra.Command) (present.Format, error) {
	s, _ := cmd.Flags().GetString("format")
	return present.ParseFormat(s)
}
