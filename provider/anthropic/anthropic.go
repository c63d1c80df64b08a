// Package anthropic provides an agent handle backed by the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
)

// Options configures the Anthropic handle (model id, decoding limits, API
// key, optional system prompt). Extend via functional options to preserve
// stability.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	APIKey      string
	System      string
}

// Handle adapts the Anthropic Messages API to the core.Handle interface.
// Collaboration context is folded into the user turn ahead of the task.
type Handle struct {
	id     string
	client *anthropic.Client
	opts   Options
}

// New creates a new Anthropic handle using the official client. Without an
// explicit APIKey the client reads ANTHROPIC_API_KEY from the environment.
func New(id string, optFns ...func(o *Options)) *Handle {
	opts := defaultOptions(optFns)

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Handle{id: id, client: &client, opts: opts}
}

// NewFromClient creates a new Anthropic handle from an existing client.
func NewFromClient(id string, client *anthropic.Client, optFns ...func(o *Options)) *Handle {
	return &Handle{id: id, client: client, opts: defaultOptions(optFns)}
}

func defaultOptions(optFns []func(o *Options)) Options {
	opts := Options{
		Model:       string(anthropic.ModelClaude3_5Sonnet20241022),
		Temperature: 0.7,
		MaxTokens:   4096,
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
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(h.opts.Model),
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt(req)))},
		MaxTokens:   h.opts.MaxTokens,
		Temperature: anthropic.Float(h.opts.Temperature),
	}
	if h.opts.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: h.opts.System}}
	}

	resp, err := h.client.Messages.New(ctx, params)
	if err != nil {
		return core.Response{}, fmt.Errorf("anthropic api error: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.AsText().Text)
		}
	}
	return core.Response{Content: b.String()}, nil
}

func prompt(req core.Request) string {
	if req.Context == "" {
		return req.Task
	}
	return req.Context + "\n\n" + req.Task
}
