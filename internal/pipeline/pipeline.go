// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences search, context assembly and answer generation
// for one query. Each stage is a gate: the first failure ends the run and is
// reported as the failure variant of types.PipelineResult. Run never returns
// an error and never panics.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pdiddy/answer-engine/internal/logging"
	"github.com/pdiddy/answer-engine/internal/search"
	"github.com/pdiddy/answer-engine/pkg/types"
)

const tracerName = "github.com/pdiddy/answer-engine/internal/pipeline"

// User-facing failure messages, one per failure path.
const (
	MsgEmptyQuery = "The query cannot be empty. Please type a question or phrase to search for. " +
		"Example: 'Explain the role of AI in healthcare.'"
	MsgSearchError = "An unexpected error occurred while fetching search results. " +
		"Please check your internet connection or try again later."
	MsgNoResults = "No results were found for your query. Ensure your query is relevant and try again."
	MsgNoContext = "The search results did not contain enough information to generate a response. " +
		"Try rephrasing your query or being more specific."
	MsgGeneration = "The system was unable to generate a response. Please verify your API key or try again later. " +
		"You might also refine your query for better results."
)

// ContextAssembler builds the generation context from search results.
type ContextAssembler interface {
	Assemble(set *types.SearchResultSet) (string, error)
}

// AnswerGenerator produces an answer from a context and a query.
type AnswerGenerator interface {
	Generate(ctx context.Context, contextText, query string) (string, error)
}

// Pipeline runs queries through the three stages. It holds no state that
// changes between runs.
type Pipeline struct {
	searcher  search.Searcher
	assembler ContextAssembler
	generator AnswerGenerator
	log       logrus.FieldLogger
	tracer    trace.Tracer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for stage transitions.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// WithTracerProvider sets the provider stage spans are created from.
// The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *Pipeline) {
		if tp != nil {
			p.tracer = tp.Tracer(tracerName)
		}
	}
}

// New returns a Pipeline over the given stages.
func New(s search.Searcher, a ContextAssembler, g AnswerGenerator, opts ...Option) *Pipeline {
	p := &Pipeline{
		searcher:  s,
		assembler: a,
		generator: g,
		log:       logging.Discard(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.WithField("component", "pipeline")
	return p
}

// Run answers query. The result carries the search results whenever the
// search stage succeeded, including on context and generation failures.
func (p *Pipeline) Run(ctx context.Context, query string) (result types.PipelineResult) {
	result.Query = query
	stage := types.StageValidating
	log := p.log.WithField("run_id", uuid.NewString())

	ctx, span := p.tracer.Start(ctx, "pipeline.run")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			log.WithField("stage", stage).Errorf("stage panicked: %v", r)
			span.RecordError(fmt.Errorf("panic: %v", r))
			span.SetStatus(codes.Error, "panic")
			result.Answer = ""
			result.Failure = panicFailure(stage)
		}
	}()

	fail := func(kind types.FailureKind, msg string, err error) types.PipelineResult {
		entry := log.WithFields(logrus.Fields{"stage": stage, "kind": kind})
		if err != nil {
			entry = entry.WithError(err)
			span.RecordError(err)
		}
		entry.Warn("pipeline stopped")
		span.SetStatus(codes.Error, string(kind))
		result.Failure = &types.Failure{Kind: kind, Stage: stage, Message: msg}
		return result
	}

	if strings.TrimSpace(query) == "" {
		return fail(types.FailureEmptyQuery, MsgEmptyQuery, nil)
	}

	stage = types.StageSearching
	log.WithField("stage", stage).Debug("searching")
	set, err := traced(ctx, p.tracer, "pipeline.search", func(ctx context.Context) (*types.SearchResultSet, error) {
		return p.searcher.Search(ctx, query)
	})
	if err != nil {
		return fail(types.FailureSearch, MsgSearchError, err)
	}
	if set.Len() == 0 {
		return fail(types.FailureSearch, MsgNoResults, nil)
	}
	result.SearchResults = set
	span.SetAttributes(attribute.Int("search.results", set.Len()))

	stage = types.StageAssembling
	log.WithField("stage", stage).Debug("assembling context")
	contextText, err := traced(ctx, p.tracer, "pipeline.assemble", func(context.Context) (string, error) {
		return p.assembler.Assemble(set)
	})
	if err != nil {
		return fail(types.FailureContext, MsgNoContext, err)
	}
	if strings.TrimSpace(contextText) == "" {
		return fail(types.FailureContext, MsgNoContext, nil)
	}

	stage = types.StageGenerating
	log.WithField("stage", stage).Debug("generating answer")
	answer, err := traced(ctx, p.tracer, "pipeline.generate", func(ctx context.Context) (string, error) {
		return p.generator.Generate(ctx, contextText, query)
	})
	if err != nil {
		return fail(types.FailureGeneration, MsgGeneration, err)
	}
	if strings.TrimSpace(answer) == "" {
		return fail(types.FailureGeneration, MsgGeneration, nil)
	}

	stage = types.StageDone
	log.WithField("stage", stage).Debug("answer ready")
	result.Answer = answer
	return result
}

// traced runs fn inside a child span named name and records its error.
func traced[T any](ctx context.Context, tracer trace.Tracer, name string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	v, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return v, err
}

// panicFailure maps the stage that panicked to its failure variant.
func panicFailure(stage types.Stage) *types.Failure {
	switch stage {
	case types.StageSearching:
		return &types.Failure{Kind: types.FailureSearch, Stage: stage, Message: MsgSearchError}
	case types.StageAssembling:
		return &types.Failure{Kind: types.FailureContext, Stage: stage, Message: MsgNoContext}
	default:
		return &types.Failure{Kind: types.FailureGeneration, Stage: stage, Message: MsgGeneration}
	}
}
