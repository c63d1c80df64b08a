package core

import (
	"context"
	"time"
)

// GatewayResponse is the decoded outcome of a bridge gateway call.
type GatewayResponse struct {
	// Status is the HTTP status code returned by the gateway.
	Status int

	// Body is the decoded JSON response body. Nil when the gateway returned
	// an empty body.
	Body map[string]any
}

// Gateway is the transport contract for bridge services: optional remote
// capability providers reachable over the network. Gateways may be
// unavailable at any time; callers treat failures as degradation, never as a
// fatal orchestrator error.
type Gateway interface {
	// Call posts the payload to the endpoint path and decodes the response.
	// The timeout bounds this single call in addition to any deadline already
	// on ctx; zero means the gateway default applies.
	Call(ctx context.Context, endpoint string, payload any, timeout time.Duration) (*GatewayResponse, error)
}

// BridgeManager coordinates the configured bridge gateways. Every method
// degrades instead of failing: Initialize and GenerateCode report problems
// inside their return values, and an Augment error only downgrades the
// result it was meant to enrich.
type BridgeManager interface {
	// Initialize probes every configured gateway once and records which are
	// healthy. Subsequent calls return the recorded status unchanged.
	Initialize(ctx context.Context) BridgeStatus

	// GenerateCode asks a healthy gateway to produce code for the prompt.
	GenerateCode(ctx context.Context, prompt, language string, paradigm Paradigm) CodeResult

	// Augment posts a collaboration summary to a healthy gateway.
	Augment(ctx context.Context, result *Result) error

	// Healthy reports whether at least one gateway passed its probe.
	Healthy() bool
}
