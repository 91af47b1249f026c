// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// OpenAIBackend sends chat-completion requests through the OpenAI SDK.
// SDK-level retries are disabled; the Generator owns the retry policy.
type OpenAIBackend struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAIBackend returns a backend for cfg. httpClient may be nil.
func NewOpenAIBackend(cfg types.AIConfig, httpClient *http.Client) *OpenAIBackend {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	model := cfg.Model
	if model == "" {
		model = types.DefaultModel
	}

	return &OpenAIBackend{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: cfg.Temperature,
	}
}

// Model returns the model identifier sent with each request.
func (b *OpenAIBackend) Model() string { return b.model }

// Complete sends messages and returns the first choice's content.
func (b *OpenAIBackend) Complete(ctx context.Context, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(b.model),
		Messages:    toParams(messages),
		Temperature: openai.Float(b.temperature),
	}

	completion, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no completion choices")
	}
	return completion.Choices[0].Message.Content, nil
}

func toParams(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// classify wraps provider errors with the sentinel the Generator acts on.
func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", ErrRateLimited, err)
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
	}
	return fmt.Errorf("OpenAI API call failed: %w", err)
}
