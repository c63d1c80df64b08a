package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/logging"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/metrics"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/paradigm"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/provider"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/session"
)

// Config defines tuning parameters for the Engine's operational behavior.
//
// The configuration covers the engine's own cross-cutting concerns: timeouts
// applied around agent and bridge calls, the global invocation concurrency
// bound, and whether completed results are offered to the bridge layer for
// augmentation. Paradigm-specific tuning (mesh rounds, ecosystem generations,
// retention scoring) belongs to the strategy registry, not here.
type Config struct {
	// InvocationTimeout bounds a single agent invocation. An invocation that
	// exceeds it fails with the timeout kind while the collaboration
	// continues under the strategy's failure tolerance. Zero disables the
	// per-call bound; the caller's context still applies.
	InvocationTimeout time.Duration

	// BridgeTimeout bounds each engine-level bridge operation (initialize,
	// code generation, augmentation). Zero disables the bound; the bridge
	// manager's own per-endpoint timeouts still apply.
	BridgeTimeout time.Duration

	// MaxConcurrentInvocations limits how many agent invocations may execute
	// simultaneously across all in-flight collaborations. This provides
	// backpressure when many swarm or ecosystem runs overlap. Set to 0 for
	// unlimited (not recommended).
	MaxConcurrentInvocations int

	// AugmentResults offers every completed result to the bridge manager for
	// augmentation. Augmentation failures are logged and suppressed; they
	// never fail the collaboration.
	AugmentResults bool
}

// DefaultConfig provides production-ready default configuration values.
//
// Configuration values:
//   - InvocationTimeout: 60s (generous for LLM backends, bounded for hangs)
//   - BridgeTimeout: 10s (bridges are auxiliary and must fail fast)
//   - MaxConcurrentInvocations: 10 (safe for most environments)
//   - AugmentResults: false (augmentation is opt-in)
var DefaultConfig = Config{
	InvocationTimeout:        60 * time.Second,
	BridgeTimeout:            10 * time.Second,
	MaxConcurrentInvocations: 10,
	AugmentResults:           false,
}

// Options configures an Engine instance using the functional options pattern.
//
// Every service dependency has an in-memory default, so New() with no options
// yields a working engine for development and testing: an empty provider
// registry, an unbounded session manager, the built-in strategy set, an
// in-memory metrics registry and a no-op logger. Production setups override
// the services they care about and leave the rest.
type Options struct {
	// Config contains operational parameters for the engine behavior.
	// Defaults to DefaultConfig if not specified.
	Config Config

	// Sessions manages the session lifecycle and retention.
	// Defaults to an unbounded in-memory manager if not provided.
	Sessions *session.Manager

	// Provider resolves agent ids to invocable handles.
	// Defaults to an empty registry (every resolve fails) if not provided.
	Provider core.Provider

	// Metrics receives per-invocation durations and outcomes.
	// Defaults to an in-memory registry if not provided.
	Metrics core.MetricsSink

	// Strategies is the closed set of paradigm implementations.
	// Defaults to the built-in five-paradigm registry if not provided.
	Strategies *paradigm.Registry

	// Bridges is the optional HTTP bridge layer. Nil means no bridges are
	// configured; bridge operations then degrade instead of failing.
	Bridges core.BridgeManager

	// Logger provides structured logging for debugging and monitoring.
	// Defaults to a no-op logger if not provided.
	Logger *logging.CollabLogger
}

// Engine coordinates multi-agent collaborations across the five paradigms.
//
// The engine validates each request, admits it into a session, executes the
// selected strategy over the resolved handles, and records the outcome. It
// holds no mutable state of its own: sessions live in the session manager,
// handles in the provider, counters in the metrics sink. All public methods
// are safe for concurrent use.
type Engine struct {
	config     Config
	sessions   *session.Manager
	provider   core.Provider
	metrics    core.MetricsSink
	strategies *paradigm.Registry
	bridges    core.BridgeManager
	logger     *logging.CollabLogger

	// sem bounds concurrent agent invocations across all collaborations.
	// Nil when MaxConcurrentInvocations is 0.
	sem chan struct{}
}

// New creates an Engine with sensible defaults and optional configuration.
//
// The engine does not take ownership of provided services and will not manage
// their lifecycle. Callers remain responsible for initializing services
// before use.
//
// Example:
//
//	eng := engine.New(func(o *engine.Options) {
//	    o.Provider = registry
//	    o.Config.MaxConcurrentInvocations = 50
//	})
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config:     DefaultConfig,
		Sessions:   session.NewManager(),
		Provider:   provider.NewRegistry(),
		Metrics:    metrics.NewRegistry(),
		Strategies: paradigm.NewRegistry(),
		Logger:     logging.NewNopLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	e := &Engine{
		config:     opts.Config,
		sessions:   opts.Sessions,
		provider:   opts.Provider,
		metrics:    opts.Metrics,
		strategies: opts.Strategies,
		bridges:    opts.Bridges,
		logger:     opts.Logger.WithComponent("engine"),
	}
	if opts.Config.MaxConcurrentInvocations > 0 {
		e.sem = make(chan struct{}, opts.Config.MaxConcurrentInvocations)
	}
	return e
}

// Collaborate runs one collaboration and returns its result.
//
// Validation happens in a fixed order before any side effect: the paradigm
// must name a registered strategy, the agent list must be non-empty, and
// every agent id must resolve. Only then is the session admitted; a run
// already in flight for the id fails with the session_busy kind.
//
// On success the session transitions to completed and the stored and
// returned results are structurally equal. On failure the session
// transitions to failed with the cause recorded: an expired caller context
// yields the timeout kind and discards any partial output, every other
// strategy fault yields the paradigm_execution kind wrapping the underlying
// cause.
func (e *Engine) Collaborate(ctx context.Context, sessionID string, p core.Paradigm, task string, agentIDs []string) (*core.Result, error) {
	started := time.Now()
	logger := e.logger.WithSession(sessionID, uuid.NewString()).WithParadigm(p.String())

	strat, ok := e.strategies.Strategy(p)
	if !ok {
		return nil, core.NewError(core.KindUnknownParadigm, sessionID, fmt.Errorf("paradigm %q is not registered", p))
	}
	if len(agentIDs) == 0 {
		return nil, core.NewError(core.KindNoAgents, sessionID, errors.New("at least one agent id is required"))
	}

	// Resolve all participants before touching the session so a bad id
	// leaves no trace.
	handles := make([]core.Handle, len(agentIDs))
	for i, id := range agentIDs {
		h, err := e.provider.Resolve(id)
		if err != nil {
			return nil, withSession(err, sessionID)
		}
		handles[i] = h
	}

	if _, err := e.sessions.Begin(sessionID, p, task, agentIDs); err != nil {
		return nil, err
	}

	logger.Info("collaboration started", "task", task, "agents", len(agentIDs))

	run := &paradigm.Run{
		Task:   task,
		Agents: handles,
		Invoke: e.invoker(sessionID, logger),
	}
	payload, execErr := strat.Execute(ctx, run)

	if execErr != nil || ctx.Err() != nil {
		runErr := collaborationError(sessionID, execErr, ctx.Err())
		if failErr := e.sessions.Fail(sessionID, runErr); failErr != nil {
			logger.Warn("failed to record session failure", "error", failErr)
		}
		logger.LogCollaboration(p.String(), len(agentIDs), time.Since(started), runErr)
		return nil, runErr
	}

	result := &core.Result{
		Paradigm: p,
		Task:     task,
		Agents:   append([]string(nil), agentIDs...),
		Payload:  payload,
	}

	if e.bridges != nil && e.config.AugmentResults {
		e.augment(ctx, result, logger)
	}

	if err := e.sessions.Complete(sessionID, result); err != nil {
		logger.Warn("failed to record session completion", "error", err)
	}

	logger.LogCollaboration(p.String(), len(agentIDs), time.Since(started), nil)
	return result, nil
}

// invoker builds the single instrumented invocation path every strategy
// call funnels through: semaphore admission, the per-call timeout, metrics
// recording and contextual logging all live here so no paradigm can bypass
// them.
func (e *Engine) invoker(sessionID string, logger *logging.CollabLogger) paradigm.Invoker {
	return func(ctx context.Context, h core.Handle, req core.Request) (core.Response, error) {
		if e.sem != nil {
			select {
			case e.sem <- struct{}{}:
				defer func() { <-e.sem }()
			case <-ctx.Done():
				return core.Response{}, ctx.Err()
			}
		}

		callCtx := ctx
		if e.config.InvocationTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, e.config.InvocationTimeout)
			defer cancel()
		}

		callLogger := logger.WithAgent(h.ID()).WithContext("call_id", uuid.NewString())

		rec := core.InvocationRecord{AgentID: h.ID(), StartedAt: time.Now()}
		resp, err := h.Invoke(callCtx, req)
		rec.EndedAt = time.Now()
		rec.Success = err == nil
		rec.Err = err

		e.metrics.Record(rec.AgentID, rec.Duration(), rec.Success)
		callLogger.LogInvocation(rec.AgentID, rec.Duration(), err)

		if err != nil {
			// Distinguish the per-call bound from the caller's own deadline:
			// only the former is reported against the invocation timeout.
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				return core.Response{}, core.NewError(core.KindTimeout, sessionID,
					fmt.Errorf("agent %s timed out after %s", h.ID(), e.config.InvocationTimeout))
			}
			return core.Response{}, core.NewError(core.KindAgentError, sessionID,
				fmt.Errorf("agent %s: %w", h.ID(), err))
		}
		return resp, nil
	}
}

// augment offers the completed result to the bridge layer. Failures are
// logged and suppressed; BridgeAvailable is set only when augmentation was
// actually applied.
func (e *Engine) augment(ctx context.Context, result *core.Result, logger *logging.CollabLogger) {
	actx, cancel := e.bridgeContext(ctx)
	defer cancel()

	if err := e.bridges.Augment(actx, result); err != nil {
		logger.Warn("bridge augmentation skipped", "error", err)
		return
	}
	result.BridgeAvailable = true
}

// InitializeBridges probes every configured bridge gateway once and reports
// which endpoints are reachable. The probe result is recorded; subsequent
// calls return the recorded status without re-probing. Without a configured
// bridge manager the status is degraded, never an error.
func (e *Engine) InitializeBridges(ctx context.Context) core.BridgeStatus {
	if e.bridges == nil {
		return core.BridgeStatus{Success: false, Error: "no bridges configured"}
	}
	bctx, cancel := e.bridgeContext(ctx)
	defer cancel()
	return e.bridges.Initialize(bctx)
}

// GenerateCodeWithBridges requests code generation from the first healthy
// bridge. Every failure mode (no bridges, no healthy endpoint, transport
// error, unusable response) is reported through the CodeResult; the method
// never returns a Go error.
func (e *Engine) GenerateCodeWithBridges(ctx context.Context, prompt, language string, p core.Paradigm) core.CodeResult {
	if e.bridges == nil {
		return core.CodeResult{Success: false, Error: "no bridges configured"}
	}
	bctx, cancel := e.bridgeContext(ctx)
	defer cancel()
	return e.bridges.GenerateCode(bctx, prompt, language, p)
}

// Session returns a snapshot of the stored session for id.
func (e *Engine) Session(id string) (*core.Session, error) {
	return e.sessions.Get(id)
}

// ResetSession removes a terminal session so its id can be reused.
func (e *Engine) ResetSession(id string) error {
	return e.sessions.Reset(id)
}

// ActiveSessions returns the ids with a running collaboration, sorted.
func (e *Engine) ActiveSessions() []string {
	return e.sessions.ActiveIDs()
}

// bridgeContext bounds a bridge operation by the configured BridgeTimeout.
func (e *Engine) bridgeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.config.BridgeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.config.BridgeTimeout)
}

// collaborationError classifies a failed run. An expired caller context wins
// over the strategy's own error so deadline expiry always surfaces as the
// timeout kind.
func collaborationError(sessionID string, execErr, ctxErr error) error {
	if ctxErr != nil {
		return core.NewError(core.KindTimeout, sessionID, ctxErr)
	}
	return core.NewError(core.KindParadigmExecution, sessionID, execErr)
}

// withSession stamps the session id onto an orchestrator error produced by a
// component that did not know it yet.
func withSession(err error, sessionID string) error {
	var cerr *core.Error
	if errors.As(err, &cerr) && cerr.SessionID == "" {
		return core.NewError(cerr.Kind, sessionID, cerr.Err)
	}
	return err
}
