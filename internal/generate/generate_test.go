// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// --- fake backend ---

type reply struct {
	text string
	err  error
}

type fakeCompleter struct {
	replies  []reply
	calls    [][]Message
	callTime []time.Time
}

func (f *fakeCompleter) Complete(_ context.Context, messages []Message) (string, error) {
	f.calls = append(f.calls, messages)
	f.callTime = append(f.callTime, time.Now())
	i := len(f.calls) - 1
	if i >= len(f.replies) {
		i = len(f.replies) - 1
	}
	return f.replies[i].text, f.replies[i].err
}

type recordedSleep struct {
	delays []time.Duration
}

func (r *recordedSleep) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func TestRenderPrompt(t *testing.T) {
	got, err := RenderPrompt("ctx line one\nctx line two", "What is Go?")
	require.NoError(t, err)
	assert.Equal(t, "Using the following search results:\nctx line one\nctx line two\n\nAnswer the query: What is Go?", got)

	got, err = RenderPrompt("<b>&</b>", "{{.Query}}")
	require.NoError(t, err)
	assert.Contains(t, got, "<b>&</b>")
	assert.Contains(t, got, "Answer the query: {{.Query}}")
}

func TestGenerate_Success(t *testing.T) {
	backend := &fakeCompleter{replies: []reply{{text: "Go is a language."}}}
	g := New(backend, types.GenerationConfig{})

	got, err := g.Generate(context.Background(), "Go is a programming language by Google.", "What is Go?")
	require.NoError(t, err)
	assert.Equal(t, "Go is a language.", got)

	require.Len(t, backend.calls, 1)
	msgs := backend.calls[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{Role: RoleSystem, Content: "You are a helpful assistant."}, msgs[0])
	assert.Equal(t, RoleUser, msgs[1].Role)
	assert.Equal(t, "Using the following search results:\nGo is a programming language by Google.\n\nAnswer the query: What is Go?", msgs[1].Content)
}

func TestGenerate_EmptyInput(t *testing.T) {
	tests := []struct {
		name    string
		context string
		query   string
	}{
		{"empty context", "", "q"},
		{"blank context", "  \n ", "q"},
		{"empty query", "ctx", ""},
		{"blank query", "ctx", "\t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeCompleter{replies: []reply{{text: "unused"}}}
			got, err := New(backend, types.GenerationConfig{}).Generate(context.Background(), tt.context, tt.query)
			assert.ErrorIs(t, err, ErrEmptyInput)
			assert.Empty(t, got)
			assert.Empty(t, backend.calls, "provider must not be called")
		})
	}
}

func TestGenerate_RateLimitRetriesOnce(t *testing.T) {
	backend := &fakeCompleter{replies: []reply{
		{err: ErrRateLimited},
		{text: "second time lucky"},
	}}
	rec := &recordedSleep{}
	g := New(backend, types.GenerationConfig{RateLimitDelay: 5 * time.Second}, WithSleep(rec.sleep))

	got, err := g.Generate(context.Background(), "ctx", "q")
	require.NoError(t, err)
	assert.Equal(t, "second time lucky", got)
	require.Len(t, backend.calls, 2)
	assert.Equal(t, backend.calls[0], backend.calls[1], "retry repeats the identical request")
	assert.Equal(t, []time.Duration{5 * time.Second}, rec.delays)
}

func TestGenerate_RateLimitWaitsRealDelay(t *testing.T) {
	const delay = 50 * time.Millisecond
	backend := &fakeCompleter{replies: []reply{
		{err: ErrRateLimited},
		{text: "ok"},
	}}
	g := New(backend, types.GenerationConfig{RateLimitDelay: delay})

	got, err := g.Generate(context.Background(), "ctx", "q")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	require.Len(t, backend.callTime, 2)
	assert.GreaterOrEqual(t, backend.callTime[1].Sub(backend.callTime[0]), delay)
}

func TestGenerate_RateLimitTwiceFails(t *testing.T) {
	backend := &fakeCompleter{replies: []reply{{err: ErrRateLimited}}}
	rec := &recordedSleep{}
	g := New(backend, types.GenerationConfig{}, WithSleep(rec.sleep))

	_, err := g.Generate(context.Background(), "ctx", "q")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Len(t, backend.calls, 2)
	assert.Len(t, rec.delays, 1)
}

func TestGenerate_NoRetryOnOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	tests := []struct {
		name string
		err  error
	}{
		{"unauthorized", ErrUnauthorized},
		{"generic", boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeCompleter{replies: []reply{{err: tt.err}, {text: "never"}}}
			rec := &recordedSleep{}
			_, err := New(backend, types.GenerationConfig{}, WithSleep(rec.sleep)).Generate(context.Background(), "ctx", "q")
			assert.ErrorIs(t, err, tt.err)
			assert.Len(t, backend.calls, 1)
			assert.Empty(t, rec.delays)
		})
	}
}

func TestGenerate_RetryAfterRateLimitThenUnauthorized(t *testing.T) {
	backend := &fakeCompleter{replies: []reply{{err: ErrRateLimited}, {err: ErrUnauthorized}}}
	rec := &recordedSleep{}
	_, err := New(backend, types.GenerationConfig{}, WithSleep(rec.sleep)).Generate(context.Background(), "ctx", "q")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Len(t, backend.calls, 2)
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	backend := &fakeCompleter{replies: []reply{{text: "  "}}}
	_, err := New(backend, types.GenerationConfig{}).Generate(context.Background(), "ctx", "q")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
	assert.Len(t, backend.calls, 1)
}

func TestGenerate_CancelledDuringBackoff(t *testing.T) {
	backend := &fakeCompleter{replies: []reply{{err: ErrRateLimited}, {text: "never"}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(backend, types.GenerationConfig{RateLimitDelay: time.Hour}).Generate(ctx, "ctx", "q")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, backend.calls, 1)
}

func TestGenerate_CustomSystemPrompt(t *testing.T) {
	backend := &fakeCompleter{replies: []reply{{text: "ok"}}}
	_, err := New(backend, types.GenerationConfig{SystemPrompt: "Be brief."}).Generate(context.Background(), "ctx", "q")
	require.NoError(t, err)
	assert.Equal(t, "Be brief.", backend.calls[0][0].Content)
}
