// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate asks a chat-completion provider to answer a query from an
// assembled search context. A provider rate limit is retried once after a
// fixed delay; every other failure is returned immediately.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/answer-engine/internal/logging"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// Errors returned by Generate and by Completer implementations. Backends
// wrap the provider error with ErrRateLimited or ErrUnauthorized so the
// Generator can classify it with errors.Is.
var (
	ErrEmptyInput      = errors.New("context and query must both be non-empty")
	ErrRateLimited     = errors.New("provider rate limit exceeded")
	ErrUnauthorized    = errors.New("provider rejected the API key")
	ErrEmptyCompletion = errors.New("provider returned an empty completion")
)

// Completer sends one chat-completion request and returns the text of the
// first choice.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Generator produces answers through a Completer.
type Generator struct {
	backend Completer
	cfg     types.GenerationConfig
	sleep   SleepFunc
	log     logrus.FieldLogger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for failures and retries.
func WithLogger(log logrus.FieldLogger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// WithSleep replaces the delay function used before the rate-limit retry.
func WithSleep(sleep SleepFunc) Option {
	return func(g *Generator) {
		if sleep != nil {
			g.sleep = sleep
		}
	}
}

// New returns a Generator calling backend. Zero config values take the
// package defaults: the fixed system prompt, a 5s rate-limit delay and
// at most two attempts.
func New(backend Completer, cfg types.GenerationConfig, opts ...Option) *Generator {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = types.DefaultSystemPrompt
	}
	if cfg.RateLimitDelay <= 0 {
		cfg.RateLimitDelay = types.DefaultRateLimitDelay
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = types.DefaultMaxAttempts
	}

	g := &Generator{
		backend: backend,
		cfg:     cfg,
		sleep:   sleepContext,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.WithField("component", "generate")
	return g
}

// Generate answers query from contextText. Blank input returns ErrEmptyInput
// without calling the provider. A rate-limited call is repeated with the
// identical request after the configured delay, up to MaxAttempts calls in
// total; the last failure is returned as is.
func (g *Generator) Generate(ctx context.Context, contextText, query string) (string, error) {
	if strings.TrimSpace(contextText) == "" || strings.TrimSpace(query) == "" {
		g.log.Error("context or query is empty, not calling the provider")
		return "", ErrEmptyInput
	}

	messages, err := buildMessages(g.cfg.SystemPrompt, contextText, query)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	for attempt := 1; ; attempt++ {
		answer, err := g.backend.Complete(ctx, messages)
		if err == nil {
			if strings.TrimSpace(answer) == "" {
				g.log.Error("provider returned an empty completion")
				return "", ErrEmptyCompletion
			}
			return answer, nil
		}

		switch {
		case errors.Is(err, ErrRateLimited) && attempt < g.cfg.MaxAttempts:
			g.log.WithFields(logrus.Fields{
				"attempt": attempt,
				"delay":   g.cfg.RateLimitDelay,
			}).Warn("rate limit exceeded, retrying")
			if serr := g.sleep(ctx, g.cfg.RateLimitDelay); serr != nil {
				return "", serr
			}
			continue
		case errors.Is(err, ErrUnauthorized):
			g.log.WithError(err).Error("invalid API key")
		default:
			g.log.WithError(err).WithField("attempt", attempt).Error("generation failed")
		}
		return "", err
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
