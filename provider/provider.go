// Package provider resolves agent ids to invocable handles.
//
// Core goals:
//   - Keep the orchestrator decoupled from vendor SDKs: backends (Anthropic,
//     OpenAI, static) implement core.Handle behind this package
//   - Construct handles declaratively from validated agent specs, so a
//     config file is enough to assemble a working roster
//   - Facilitate lightweight substitution in tests (static backend)
package provider

import (
	"fmt"
	"strings"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/provider/anthropic"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/provider/openai"
)

// Backend names accepted in agent specs.
const (
	BackendAnthropic = "anthropic"
	BackendOpenAI    = "openai"
	BackendStatic    = "static"
)

// ErrUnknownBackend is returned when an agent spec names an unsupported backend.
var ErrUnknownBackend = fmt.Errorf("unknown agent backend")

// Spec describes a single agent handle to construct. Zero fields fall back to
// the backend's defaults; Responses only applies to the static backend.
type Spec struct {
	ID          string
	Backend     string
	Model       string
	APIKey      string
	System      string
	Temperature float64
	MaxTokens   int64
	Responses   map[string]string
}

// NewHandle constructs an agent handle from its spec.
func NewHandle(spec Spec) (core.Handle, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("agent spec requires an id")
	}

	switch strings.ToLower(spec.Backend) {
	case BackendAnthropic, "":
		return anthropic.New(spec.ID, func(o *anthropic.Options) {
			if spec.Model != "" {
				o.Model = spec.Model
			}
			if spec.APIKey != "" {
				o.APIKey = spec.APIKey
			}
			if spec.System != "" {
				o.System = spec.System
			}
			if spec.Temperature > 0 {
				o.Temperature = spec.Temperature
			}
			if spec.MaxTokens > 0 {
				o.MaxTokens = spec.MaxTokens
			}
		}), nil
	case BackendOpenAI:
		return openai.New(spec.ID, func(o *openai.Options) {
			if spec.Model != "" {
				o.Model = spec.Model
			}
			if spec.APIKey != "" {
				o.APIKey = spec.APIKey
			}
			if spec.System != "" {
				o.System = spec.System
			}
			if spec.Temperature > 0 {
				o.Temperature = spec.Temperature
			}
			if spec.MaxTokens > 0 {
				o.MaxCompletionTokens = spec.MaxTokens
			}
		}), nil
	case BackendStatic:
		return NewStatic(spec.ID, func(o *StaticOptions) {
			o.Responses = spec.Responses
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, spec.Backend)
	}
}
