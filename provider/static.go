package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
)

// StaticOptions configures a static handle.
type StaticOptions struct {
	// Responses maps an exact task to a canned completion.
	Responses map[string]string
	// Reply computes the response dynamically; it takes precedence over
	// Responses when set.
	Reply func(req core.Request) (string, error)
	// Latency is slept before answering, to mimic a remote backend.
	Latency time.Duration
}

// Static is a deterministic in-memory handle useful for tests, examples and
// local development without a model backend. It answers from a canned
// response table, falling back to an echo of the task.
type Static struct {
	id   string
	opts StaticOptions
}

// NewStatic constructs a static handle.
func NewStatic(id string, optFns ...func(o *StaticOptions)) *Static {
	opts := StaticOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Static{id: id, opts: opts}
}

// AddResponse registers a deterministic canned completion for a task.
func (s *Static) AddResponse(task, response string) {
	if s.opts.Responses == nil {
		s.opts.Responses = make(map[string]string)
	}
	s.opts.Responses[task] = response
}

// ID implements the core.Handle interface.
func (s *Static) ID() string { return s.id }

// Invoke implements the core.Handle interface.
func (s *Static) Invoke(ctx context.Context, req core.Request) (core.Response, error) {
	if s.opts.Latency > 0 {
		select {
		case <-ctx.Done():
			return core.Response{}, ctx.Err()
		case <-time.After(s.opts.Latency):
		}
	}
	if s.opts.Reply != nil {
		content, err := s.opts.Reply(req)
		if err != nil {
			return core.Response{}, err
		}
		return core.Response{Content: content}, nil
	}
	if content, ok := s.opts.Responses[req.Task]; ok {
		return core.Response{Content: content}, nil
	}
	return core.Response{Content: fmt.Sprintf("%s response to: %s", s.id, req.Task)}, nil
}
