// Package openai provides an agent handle backed by the OpenAI Chat
// Completions API.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
)

// Options configures the OpenAI handle. Fields mirror a subset of Chat
// Completion parameters intentionally kept minimal; extend via functional
// options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	APIKey              string
	System              string
}

// Handle adapts the OpenAI Chat Completions API to the core.Handle
// interface. Collaboration context is folded into the user turn ahead of the
// task.
type Handle struct {
	id     string
	client *openai.Client
	opts   Options
}

// New creates a new OpenAI handle using the official client. Without an
// explicit APIKey the client reads OPENAI_API_KEY from the environment.
func New(id string, optFns ...func(o *Options)) *Handle {
	opts := defaultOptions(optFns)

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := openai.NewClient(clientOpts...)

	return &Handle{id: id, client: &client, opts: opts}
}

// NewFromClient creates a new OpenAI handle from an existing client.
func NewFromClient(id string, client *openai.Client, optFns ...func(o *Options)) *Handle {
	return &Handle{id: id, client: client, opts: defaultOptions(optFns)}
}

func defaultOptions(optFns []func(o *Options)) Options {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// ID implements the core.Handle interface.
func (h *Handle) ID() string { return h.id }

// Invoke implements the core.Handle interface.
func (h *Handle) Invoke(ctx context.Context, req core.Request) (core.Response, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if h.opts.System != "" {
		messages = append(messages, openai.SystemMessage(h.opts.System))
	}
	messages = append(messages, openai.UserMessage(prompt(req)))

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               h.opts.Model,
		Temperature:         openai.Float(h.opts.Temperature),
		MaxCompletionTokens: openai.Int(h.opts.MaxCompletionTokens),
	}

	resp, err := h.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return core.Response{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return core.Response{}, fmt.Errorf("no choices returned")
	}
	return core.Response{Content: resp.Choices[0].Message.Content}, nil
}

func prompt(req core.Request) string {
	if req.Context == "" {
		return req.Task
	}
	return req.Context + "\n\n" + req.Task
}
