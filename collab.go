// Package collab provides a high-level façade over the collaboration engine
// and its services (agent providers, sessions, paradigm strategies, bridges &
// logging) enabling rapid construction of multi-agent collaboration systems.
// Most applications interact with this package by:
//  1. Creating an Orchestrator via New() (optionally overriding default
//     in-memory services) or NewFromConfig() for YAML-driven setups
//  2. Registering one or more agent handles (anthropic, openai, static, custom)
//  3. Running collaborations under one of the five paradigms
//
// The façade delegates orchestration to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply real model backends, bridge
// endpoints and a structured logger.
package collab

import (
	"context"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/bridge"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/config"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/engine"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/evaluation"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/logging"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/metrics"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/paradigm"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/provider"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/session"
)

// Options configures the Orchestrator instance.
type Options struct {
	// EngineConfig carries the engine tuning parameters (timeouts,
	// concurrency bound, augmentation opt-in).
	EngineConfig engine.Config

	// Registry holds the agent handles available to collaborations.
	// Defaults to an empty registry populated via RegisterAgent.
	Registry *provider.Registry

	// Sessions manages the session lifecycle (defaults to an unbounded
	// in-memory manager).
	Sessions *session.Manager

	// Metrics accumulates per-agent invocation statistics (defaults to an
	// in-memory registry).
	Metrics *metrics.Registry

	// Strategies is the paradigm strategy set (defaults to the built-in five
	// paradigms with default tuning).
	Strategies *paradigm.Registry

	// Bridges is the optional HTTP bridge layer (defaults to none; bridge
	// operations then degrade instead of failing).
	Bridges core.BridgeManager

	// Logger provides structured logging (defaults to a no-op logger).
	Logger *logging.CollabLogger
}

// Orchestrator is the high-level façade aggregating the underlying engine and
// services.
type Orchestrator struct {
	opts   Options
	engine *engine.Engine
}

// New creates an Orchestrator with optional overrides. Any unset service is
// initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Registry:     provider.NewRegistry(),
		Sessions:     session.NewManager(),
		Metrics:      metrics.NewRegistry(),
		Strategies:   paradigm.NewRegistry(),
		Logger:       logging.NewNopLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	eng := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.Sessions = opts.Sessions
		o.Provider = opts.Registry
		o.Metrics = opts.Metrics
		o.Strategies = opts.Strategies
		o.Bridges = opts.Bridges
		o.Logger = opts.Logger
	})

	return &Orchestrator{opts: opts, engine: eng}
}

// NewFromConfig builds a fully wired Orchestrator from a validated
// configuration: agent handles from the declared specs, bridge endpoints,
// paradigm tuning, session retention and the structured logger. Additional
// option functions run after the configuration wiring and may override any of
// it.
func NewFromConfig(cfg *config.Config, optFns ...func(o *Options)) (*Orchestrator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	specs := make([]provider.Spec, len(cfg.Agents))
	for i, a := range cfg.Agents {
		specs[i] = provider.Spec{
			ID:          a.ID,
			Backend:     a.Backend,
			Model:       a.Model,
			APIKey:      a.APIKey,
			System:      a.System,
			Temperature: a.Temperature,
			MaxTokens:   a.MaxTokens,
			Responses:   a.Responses,
		}
	}
	registry, err := provider.FromSpecs(specs)
	if err != nil {
		return nil, err
	}

	scorer, err := evaluation.FromConfig(
		cfg.Paradigm.Retention.Heuristic,
		cfg.Paradigm.Retention.MinLength,
		cfg.Paradigm.Retention.Keywords,
	)
	if err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format, false)

	var bridges core.BridgeManager
	if len(cfg.Bridges) > 0 {
		endpoints := make([]bridge.Endpoint, len(cfg.Bridges))
		for i, b := range cfg.Bridges {
			endpoints[i] = bridge.Endpoint{
				Name:    b.Name,
				BaseURL: b.BaseURL,
				Timeout: b.Timeout.Std(),
			}
		}
		manager, err := bridge.NewManager(endpoints, func(o *bridge.Options) {
			o.Logger = logger
		})
		if err != nil {
			return nil, err
		}
		bridges = manager
	}

	wireFns := append([]func(o *Options){func(o *Options) {
		o.Registry = registry
		o.Sessions = session.NewManager(session.WithMaxSessions(cfg.Session.MaxSessions))
		o.Strategies = paradigm.NewRegistry(func(po *paradigm.Options) {
			po.MeshRounds = cfg.Paradigm.MeshRounds
			po.EcosystemGenerations = cfg.Paradigm.EcosystemGenerations
			po.Scorer = scorer
		})
		o.Bridges = bridges
		o.Logger = logger
	}}, optFns...)

	return New(wireFns...), nil
}

// RegisterAgent adds a handle to the underlying registry, replacing any
// handle registered under the same id.
func (o *Orchestrator) RegisterAgent(h core.Handle) { o.opts.Registry.Register(h) }

// AgentIDs returns the ids of all registered agents in a stable order.
func (o *Orchestrator) AgentIDs() []string { return o.opts.Registry.IDs() }

// Collaborate runs one collaboration under the given paradigm and returns its
// result. See engine.Engine.Collaborate for the validation order and failure
// semantics.
func (o *Orchestrator) Collaborate(ctx context.Context, sessionID string, p core.Paradigm, task string, agentIDs []string) (*core.Result, error) {
	return o.engine.Collaborate(ctx, sessionID, p, task, agentIDs)
}

// InitializeBridges probes the configured bridge gateways once and reports
// which endpoints are reachable. Repeat calls return the recorded status.
func (o *Orchestrator) InitializeBridges(ctx context.Context) core.BridgeStatus {
	return o.engine.InitializeBridges(ctx)
}

// GenerateCodeWithBridges requests code generation from the first healthy
// bridge. The call never returns a Go error; failures are reported through
// the CodeResult.
func (o *Orchestrator) GenerateCodeWithBridges(ctx context.Context, prompt, language string, p core.Paradigm) core.CodeResult {
	return o.engine.GenerateCodeWithBridges(ctx, prompt, language, p)
}

// Session returns a snapshot of the stored session for id.
func (o *Orchestrator) Session(id string) (*core.Session, error) { return o.engine.Session(id) }

// ResetSession removes a terminal session so its id can be reused.
func (o *Orchestrator) ResetSession(id string) error { return o.engine.ResetSession(id) }

// ActiveSessions returns the ids with a running collaboration, sorted.
func (o *Orchestrator) ActiveSessions() []string { return o.engine.ActiveSessions() }

// MetricsSnapshot captures the current invocation statistics.
func (o *Orchestrator) MetricsSnapshot() metrics.Snapshot { return o.opts.Metrics.Snapshot() }
